package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/ghuser/usedmarket/pkg/logger"
	userdomain "github.com/ghuser/usedmarket/services/user/domain"
	"github.com/ghuser/usedmarket/services/user/domain/models"
	"github.com/ghuser/usedmarket/services/user/domain/repositories"
)

// AuthService registers accounts and checks login credentials.
type AuthService struct {
	repo repositories.UserRepository
	log  logger.Logger
}

// NewAuthService returns an AuthService wired with the given repository.
func NewAuthService(repo repositories.UserRepository, log logger.Logger) *AuthService {
	return &AuthService{repo: repo, log: log}
}

// Register creates an account and returns its ID.
// Returns ErrDuplicateEmail if the email is already registered.
func (s *AuthService) Register(ctx context.Context, email, password string) (int64, error) {
	u, err := models.NewUser(email, password)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", userdomain.ErrInvalidCredentials, err)
	}

	id, err := s.repo.Create(ctx, u.Email, u.Password)
	if err != nil {
		if errors.Is(err, userdomain.ErrDuplicateEmail) {
			s.log.InfoContext(ctx, "signup rejected: email taken")
			return 0, err
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", id)
	return id, nil
}

// Authenticate returns the user whose email and password match exactly.
// An unknown email and a wrong password both yield ErrAuthenticationFailed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			s.log.InfoContext(ctx, "login failed")
			return nil, userdomain.ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) != 1 {
		s.log.InfoContext(ctx, "login failed")
		return nil, userdomain.ErrAuthenticationFailed
	}
	return u, nil
}

// GetUser returns ErrUserNotFound if no user has the given ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
