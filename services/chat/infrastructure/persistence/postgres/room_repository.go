package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/usedmarket/pkg/database"
	chatdomain "github.com/ghuser/usedmarket/services/chat/domain"
	"github.com/ghuser/usedmarket/services/chat/domain/models"
	"github.com/ghuser/usedmarket/services/chat/infrastructure/persistence/postgres/db"
)

// RoomRepository implements repositories.ChatRoomRepository against PostgreSQL.
type RoomRepository struct {
	db *database.Database
}

func NewRoomRepository(database *database.Database) *RoomRepository {
	return &RoomRepository{db: database}
}

// GetOrCreateRoom reads the room for itemID and falls back to an upsert on
// chat_rooms_item_id_key when none exists yet. The upsert alone decides the
// winner of concurrent first accesses; the read only skips a write when the
// room is already there.
func (r *RoomRepository) GetOrCreateRoom(ctx context.Context, itemID int64) (*models.Room, error) {
	var row db.ChatRoom
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		q := db.New(conn)
		var err error
		row, err = q.GetRoomByItemID(ctx, itemID)
		if errors.Is(err, sql.ErrNoRows) {
			row, err = q.UpsertRoom(ctx, itemID)
		}
		return err
	})
	if err != nil {
		if isFKViolation(err, roomItemFKey) {
			return nil, chatdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("get or create room: %w", err)
	}
	return &models.Room{ID: row.ID, ItemID: row.ItemID, CreatedAt: row.CreatedAt}, nil
}
