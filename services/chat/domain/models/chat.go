package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	chatdomain "github.com/ghuser/usedmarket/services/chat/domain"
)

// MaxMessageLength is counted in runes.
const MaxMessageLength = 2000

// Room is the single chat thread attached to a listing.
type Room struct {
	ID        int64
	ItemID    int64
	CreatedAt time.Time
}

// Message is one append-only entry in a room. CreatedAt is non-decreasing in
// send order within a room; ID breaks ties.
type Message struct {
	ID        int64
	RoomID    int64
	SenderID  int64
	Text      string
	CreatedAt time.Time
}

// NormalizeMessageText trims surrounding whitespace and checks the result.
// Returns ErrEmptyMessage or ErrMessageTooLong.
func NormalizeMessageText(s string) (string, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return "", chatdomain.ErrEmptyMessage
	}
	if n := utf8.RuneCountInString(text); n > MaxMessageLength {
		return "", fmt.Errorf("%w: %d characters, limit %d", chatdomain.ErrMessageTooLong, n, MaxMessageLength)
	}
	return text, nil
}
