package services

import (
	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/services/chat/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Chat *ChatService
}

// New wires all chat application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Chat: NewChatService(
			postgres.NewRoomRepository(a.Db),
			postgres.NewMessageRepository(a.Db, a.EventBus),
			a.Logger.With("context", "chat"),
		),
	}
}
