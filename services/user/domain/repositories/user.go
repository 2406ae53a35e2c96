package repositories

import (
	"context"

	"github.com/ghuser/usedmarket/services/user/domain/models"
)

// UserRepository is the only path to reading and writing user rows.
// The domain layer owns this interface; infrastructure implements it.
type UserRepository interface {
	// Create inserts a user and returns the store-assigned ID.
	// Returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, email, password string) (int64, error)

	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id int64) (*models.User, error)
}
