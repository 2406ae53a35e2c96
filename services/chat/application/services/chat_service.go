package services

import (
	"context"
	"fmt"

	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/services/chat/domain/models"
	"github.com/ghuser/usedmarket/services/chat/domain/repositories"
)

// ChatService coordinates per-listing chat threads. Notifications hang off
// the MessageSentEvent published by the message repository, not off this service.
type ChatService struct {
	rooms    repositories.ChatRoomRepository
	messages repositories.ChatMessageRepository
	log      logger.Logger
}

func NewChatService(rooms repositories.ChatRoomRepository, messages repositories.ChatMessageRepository, log logger.Logger) *ChatService {
	return &ChatService{rooms: rooms, messages: messages, log: log}
}

// GetOrCreateRoom returns the listing's room, creating it on first access.
func (s *ChatService) GetOrCreateRoom(ctx context.Context, itemID int64) (*models.Room, error) {
	room, err := s.rooms.GetOrCreateRoom(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get or create room: %w", err)
	}
	return room, nil
}

// SendMessage appends text to the room. Surrounding whitespace is trimmed;
// an empty result is rejected with ErrEmptyMessage.
func (s *ChatService) SendMessage(ctx context.Context, roomID, senderID int64, text string) (*models.Message, error) {
	text, err := models.NormalizeMessageText(text)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.SendMessage(ctx, roomID, senderID, text)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.log.InfoContext(ctx, "chat message sent", "room_id", roomID, "message_id", msg.ID, "sender_id", senderID)
	return msg, nil
}

// ListMessages returns the room's history oldest first.
func (s *ChatService) ListMessages(ctx context.Context, roomID int64) ([]*models.Message, error) {
	msgs, err := s.messages.ListMessages(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}
