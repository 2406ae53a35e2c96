package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/usedmarket/pkg/database"
	"github.com/ghuser/usedmarket/pkg/events"
	itemdomain "github.com/ghuser/usedmarket/services/item/domain"
	domainevents "github.com/ghuser/usedmarket/services/item/domain/events"
	"github.com/ghuser/usedmarket/services/item/domain/models"
	"github.com/ghuser/usedmarket/services/item/infrastructure/persistence/postgres/db"
)

const (
	pgForeignKeyViolation = "23503"
	itemOwnerFKey         = "items_owner_id_fkey"
)

// likeEscaper makes user input literal inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given storage gateway
// and event bus. A nil bus disables ItemListedEvent publishing.
func NewItemRepository(database *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: database, bus: bus}
}

// Create stores a listing and publishes an ItemListedEvent within the same transaction.
// Returns ErrOwnerNotFound when the owner does not exist.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	saved := *item
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		row, err := db.New(tx).InsertItem(ctx, db.InsertItemParams{
			Category:    item.Category,
			Title:       item.Title,
			Description: sql.NullString{String: item.Description, Valid: item.Description != ""},
			Price:       item.Price,
			OwnerID:     item.OwnerID,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == itemOwnerFKey {
				return itemdomain.ErrOwnerNotFound
			}
			return fmt.Errorf("insert item: %w", err)
		}
		saved.ID = row.ID
		saved.CreatedAt = row.CreatedAt

		if r.bus != nil {
			if err := r.publishListed(ctx, tx, &saved); err != nil {
				return fmt.Errorf("publish item listed: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// FindAll returns listings newest first, optionally filtered by a
// case-insensitive substring of title or description.
func (r *ItemRepository) FindAll(ctx context.Context, search string) ([]*models.Item, error) {
	var rows []db.Item
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		var err error
		q := db.New(conn)
		if search == "" {
			rows, err = q.ListItems(ctx)
		} else {
			rows, err = q.SearchItems(ctx, "%"+likeEscaper.Replace(search)+"%")
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = rowToItem(row)
	}
	return items, nil
}

// FindByID returns ErrItemNotFound if no listing has the given ID.
func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	var row db.Item
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		var err error
		row, err = db.New(conn).GetItemByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, itemdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return rowToItem(row), nil
}

func (r *ItemRepository) publishListed(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	event := domainevents.ItemListedEvent{
		EventID:     uuid.New(),
		Version:     1,
		ItemID:      item.ID,
		OwnerID:     item.OwnerID,
		Category:    item.Category,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		OccurredAt:  item.CreatedAt,
	}
	return r.bus.PublishInTx(ctx, tx, event)
}

// rowToItem maps a db.Item to a domain models.Item.
func rowToItem(row db.Item) *models.Item {
	return &models.Item{
		ID:          row.ID,
		Category:    row.Category,
		Title:       row.Title,
		Description: row.Description.String,
		Price:       row.Price,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
	}
}
