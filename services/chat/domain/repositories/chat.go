package repositories

import (
	"context"

	"github.com/ghuser/usedmarket/services/chat/domain/models"
)

// ChatRoomRepository owns chat_rooms rows.
type ChatRoomRepository interface {
	// GetOrCreateRoom returns the room for itemID, creating it atomically on
	// first access. Concurrent callers for the same item get the same room.
	// Returns domain.ErrItemNotFound when the listing does not exist.
	GetOrCreateRoom(ctx context.Context, itemID int64) (*models.Room, error)
}

// ChatMessageRepository owns chat_messages rows.
type ChatMessageRepository interface {
	// SendMessage appends a message stamped no earlier than the room's latest
	// message. Returns domain.ErrRoomNotFound or domain.ErrSenderNotFound.
	SendMessage(ctx context.Context, roomID, senderID int64, text string) (*models.Message, error)

	// ListMessages returns the room's messages oldest first, ties broken by ID.
	// A room with no messages, or no room at all, yields an empty slice.
	ListMessages(ctx context.Context, roomID int64) ([]*models.Message, error)
}
