package repositories

import (
	"context"

	"github.com/ghuser/usedmarket/services/item/domain/models"
)

// ItemRepository is the persistence interface for listings.
// The domain layer owns this interface; infrastructure implements it.
type ItemRepository interface {
	// Create stores a listing and returns it with ID and CreatedAt assigned.
	// Returns domain.ErrOwnerNotFound when OwnerID references no user.
	Create(ctx context.Context, item *models.Item) (*models.Item, error)

	// FindAll returns listings newest first. A non-empty search keeps only
	// listings whose title or description contains it, ignoring case.
	FindAll(ctx context.Context, search string) ([]*models.Item, error)

	// FindByID returns domain.ErrItemNotFound when no listing matches.
	FindByID(ctx context.Context, id int64) (*models.Item, error)
}
