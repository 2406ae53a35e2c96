package db

import (
	"time"
)

type ChatRoom struct {
	ID        int64
	ItemID    int64
	CreatedAt time.Time
}

type ChatMessage struct {
	ID        int64
	RoomID    int64
	SenderID  int64
	Message   string
	CreatedAt time.Time
}
