package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested listing does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates a listing violates domain constraints
	// (missing category, title or price, or malformed text).
	ErrInvalidItem = errors.New("invalid item")

	// ErrOwnerNotFound indicates the listing's owner_id references no user.
	ErrOwnerNotFound = errors.New("item owner not found")
)
