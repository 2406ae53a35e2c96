package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/pkg/config"
	"github.com/ghuser/usedmarket/pkg/database"
	"github.com/ghuser/usedmarket/pkg/events"
	"github.com/ghuser/usedmarket/pkg/logger"
)

// Application is the dependency container built once per binary and handed
// to each bounded context's route or subscriber registration.
//
// Prefer the context logging methods inside requests and handlers so trace,
// request and user attributes are attached:
//
//	a.Logger.InfoContext(ctx, "message sent", "room_id", roomID)
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus // nil disables outbox publishing
	Redis        *cache.RedisClient
	SessionStore sessions.Store // nil in the worker
}
