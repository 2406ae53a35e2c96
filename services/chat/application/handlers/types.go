package handlers

import (
	"time"

	"github.com/ghuser/usedmarket/services/chat/domain/models"
)

// SendMessageRequest is the body of POST /items/{id}/chat.
type SendMessageRequest struct {
	Message string `json:"message" validate:"required,notblank,max=2000" example:"Is it still available?"`
} // @name SendMessageRequest

// MessageResponse is one chat message.
type MessageResponse struct {
	ID        int64     `json:"id"         example:"5"`
	SenderID  int64     `json:"sender_id"  example:"7"`
	Message   string    `json:"message"    example:"Is it still available?"`
	CreatedAt time.Time `json:"created_at" example:"2024-01-15T10:30:00.123456Z"`
} // @name MessageResponse

// ThreadResponse is a room and its history, oldest message first.
type ThreadResponse struct {
	RoomID   int64             `json:"room_id"  example:"3"`
	ItemID   int64             `json:"item_id"  example:"42"`
	Messages []MessageResponse `json:"messages"`
} // @name ThreadResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"message must not be empty"`
} // @name ErrorResponse

func toMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		SenderID:  m.SenderID,
		Message:   m.Text,
		CreatedAt: m.CreatedAt,
	}
}
