package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/pkg/logger"
	itemdomain "github.com/ghuser/usedmarket/services/item/domain"
	"github.com/ghuser/usedmarket/services/item/domain/models"
	"github.com/ghuser/usedmarket/services/item/domain/repositories"
	domainsvcs "github.com/ghuser/usedmarket/services/item/domain/services"
)

// ItemCache is the read cache consulted by GetItem. *pkgcache.ItemCache
// satisfies it; Get must return redis.Nil on a miss.
type ItemCache interface {
	Get(ctx context.Context, itemID int64) (*pkgcache.CachedItem, error)
	Set(ctx context.Context, item *pkgcache.CachedItem) error
}

// ItemService orchestrates listing creation and retrieval.
// Event publishing is handled by the repository layer (outbox pattern).
// Single-listing reads are served from Redis when available.
type ItemService struct {
	repo  repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
}

// NewItemService returns an ItemService. cache may be nil.
func NewItemService(repo repositories.ItemRepository, cache ItemCache, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, cache: cache, log: log}
}

// RegisterItem validates and stores a listing owned by ownerID.
// The repository publishes ItemListedEvent.
func (s *ItemService) RegisterItem(ctx context.Context, ownerID int64, category, title, description, price string) (*models.Item, error) {
	item, err := models.NewItem(ownerID, category, title, description, price)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	if err := domainsvcs.ValidateItemForCreation(item); err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItem, err)
	}

	saved, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("save item: %w", err)
	}

	s.log.InfoContext(ctx, "item listed", "item_id", saved.ID, "owner_id", saved.OwnerID)
	return saved, nil
}

// ListItems returns listings newest first; search is forwarded unchanged.
func (s *ItemService) ListItems(ctx context.Context, search string) ([]*models.Item, error) {
	items, err := s.repo.FindAll(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetItem retrieves a listing using a read-through cache:
//  1. Check Redis first.
//  2. On a miss (or cache error), query Postgres.
//  3. Store the Postgres result in Redis; a failed write is only logged.
//
// Listings never change after creation, so cached entries cannot go stale.
func (s *ItemService) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return fromCached(cached), nil
		}
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
		}
	}

	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, toCached(item)); err != nil {
			s.log.WarnContext(ctx, "item cache write failed", "item_id", id, "error", err)
		}
	}

	return item, nil
}

// toCached converts a listing to its cache representation.
func toCached(item *models.Item) *pkgcache.CachedItem {
	return &pkgcache.CachedItem{
		ID:          item.ID,
		Category:    item.Category,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		OwnerID:     item.OwnerID,
		CreatedAt:   item.CreatedAt,
	}
}

func fromCached(c *pkgcache.CachedItem) *models.Item {
	return &models.Item{
		ID:          c.ID,
		Category:    c.Category,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
	}
}
