package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/usedmarket/pkg/database"
	"github.com/ghuser/usedmarket/pkg/events"
	chatdomain "github.com/ghuser/usedmarket/services/chat/domain"
	domainevents "github.com/ghuser/usedmarket/services/chat/domain/events"
	"github.com/ghuser/usedmarket/services/chat/domain/models"
	"github.com/ghuser/usedmarket/services/chat/infrastructure/persistence/postgres/db"
)

// MessageRepository implements repositories.ChatMessageRepository against PostgreSQL.
type MessageRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewMessageRepository returns a MessageRepository. A nil bus disables
// MessageSentEvent publishing.
func NewMessageRepository(database *database.Database, bus *events.EventBus) *MessageRepository {
	return &MessageRepository{db: database, bus: bus}
}

// SendMessage appends a message and publishes MessageSentEvent in one
// transaction. The room row stays locked until commit, so sends to one room
// are serialized and their timestamps follow commit order.
func (r *MessageRepository) SendMessage(ctx context.Context, roomID, senderID int64, text string) (*models.Message, error) {
	msg := &models.Message{RoomID: roomID, SenderID: senderID, Text: text}
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if _, err := q.LockRoom(ctx, roomID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return chatdomain.ErrRoomNotFound
			}
			return fmt.Errorf("lock room: %w", err)
		}

		row, err := q.InsertMessage(ctx, db.InsertMessageParams{
			RoomID:   roomID,
			SenderID: senderID,
			Message:  text,
		})
		if err != nil {
			switch {
			case isFKViolation(err, messageSenderFKey):
				return chatdomain.ErrSenderNotFound
			case isFKViolation(err, messageRoomFKey):
				return chatdomain.ErrRoomNotFound
			}
			return fmt.Errorf("insert message: %w", err)
		}
		msg.ID = row.ID
		msg.CreatedAt = row.CreatedAt

		if r.bus != nil {
			if err := r.publishSent(ctx, tx, msg); err != nil {
				return fmt.Errorf("publish message sent: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// ListMessages returns messages oldest first with ID as the tie-breaker.
func (r *MessageRepository) ListMessages(ctx context.Context, roomID int64) ([]*models.Message, error) {
	var rows []db.ChatMessage
	err := r.db.WithConn(ctx, func(conn *sql.Conn) error {
		var err error
		rows, err = db.New(conn).ListMessages(ctx, roomID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}

	msgs := make([]*models.Message, len(rows))
	for i, row := range rows {
		msgs[i] = &models.Message{
			ID:        row.ID,
			RoomID:    row.RoomID,
			SenderID:  row.SenderID,
			Text:      row.Message,
			CreatedAt: row.CreatedAt,
		}
	}
	return msgs, nil
}

func (r *MessageRepository) publishSent(ctx context.Context, tx *sql.Tx, msg *models.Message) error {
	event := domainevents.MessageSentEvent{
		EventID:   uuid.New(),
		Version:   1,
		MessageID: msg.ID,
		RoomID:    msg.RoomID,
		SenderID:  msg.SenderID,
		SentAt:    msg.CreatedAt,
	}
	return r.bus.PublishInTx(ctx, tx, event)
}
