package domain

import "errors"

// Sentinel errors for the chat domain. Use errors.Is() to check these.
var (
	// ErrRoomNotFound indicates a message was sent to a room that does not exist.
	ErrRoomNotFound = errors.New("chat room not found")

	// ErrItemNotFound indicates a room was requested for a listing that does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrSenderNotFound indicates the sender_id references no user.
	ErrSenderNotFound = errors.New("sender not found")

	// ErrEmptyMessage indicates a message with no visible text.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrMessageTooLong indicates a message over the length limit.
	ErrMessageTooLong = errors.New("message too long")
)
