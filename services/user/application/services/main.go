package services

import (
	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Auth *AuthService
}

// New wires all user application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewUserRepository(a.Db)
	return &Services{
		Auth: NewAuthService(repo, a.Logger.With("context", "user")),
	}
}
