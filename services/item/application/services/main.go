package services

import (
	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
// The item cache is skipped when the application has no Redis client.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.EventBus)
	var itemCache ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis, a.Config.ItemCacheTTL)
	}
	return &Services{
		Item: NewItemService(repo, itemCache, a.Logger.With("context", "item")),
	}
}
