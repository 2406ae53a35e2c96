package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const itemCacheKeyPrefix = "item"

// CachedItem is the listing read model stored in Redis as a hash.
// Listings are immutable once created, so entries never need invalidation;
// the TTL only bounds memory.
type CachedItem struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItemCache provides read/write operations for listing cache entries.
// Key format: "item:{itemID}"
type ItemCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewItemCache creates an ItemCache backed by r whose entries expire after ttl.
func NewItemCache(r *RedisClient, ttl time.Duration) *ItemCache {
	return &ItemCache{client: r, ttl: ttl}
}

// Get retrieves a cached listing.
// Returns redis.Nil when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID int64) (*CachedItem, error) {
	vals, err := c.client.Client().HGetAll(ctx, itemKey(itemID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeItem(vals)
}

// Set writes a listing as a Redis hash and applies the TTL in one pipeline.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := itemKey(item.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.HSet(ctx, key,
		"id", strconv.FormatInt(item.ID, 10),
		"category", item.Category,
		"title", item.Title,
		"description", item.Description,
		"price", item.Price,
		"owner_id", strconv.FormatInt(item.OwnerID, 10),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func decodeItem(vals map[string]string) (*CachedItem, error) {
	id, err := strconv.ParseInt(vals["id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	ownerID, err := strconv.ParseInt(vals["owner_id"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	return &CachedItem{
		ID:          id,
		Category:    vals["category"],
		Title:       vals["title"],
		Description: vals["description"],
		Price:       vals["price"],
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
	}, nil
}

func itemKey(itemID int64) string {
	return fmt.Sprintf("%s:%d", itemCacheKeyPrefix, itemID)
}
