package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicMessageSent is the Watermill topic published after a chat message is stored.
const TopicMessageSent = "chat.message_sent"

// MessageSentEvent is the hook for notifications; it omits the message text.
type MessageSentEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	Version   int       `json:"version"`
	MessageID int64     `json:"message_id"`
	RoomID    int64     `json:"room_id"`
	SenderID  int64     `json:"sender_id"`
	SentAt    time.Time `json:"sent_at"`
}

func (e MessageSentEvent) Topic() string { return TopicMessageSent }
func (e MessageSentEvent) ID() string    { return e.EventID.String() }
