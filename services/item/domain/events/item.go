package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicItemListed is the Watermill topic published when a listing is stored.
const TopicItemListed = "item.listed"

// ItemListedEvent carries the full listing so consumers (the cache warmer)
// need no read-back. Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemListed).
type ItemListedEvent struct {
	EventID     uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int       `json:"version"`  // Schema version; increment on breaking changes
	ItemID      int64     `json:"item_id"`
	OwnerID     int64     `json:"owner_id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       string    `json:"price"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e ItemListedEvent) Topic() string { return TopicItemListed }
func (e ItemListedEvent) ID() string    { return e.EventID.String() }
