package models

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered marketplace account. ID is assigned by the store.
type User struct {
	ID        int64
	Email     string
	Password  string // opaque credential, compared verbatim
	CreatedAt time.Time
}

// NormalizeEmail trims and lower-cases an address so that lookups and the
// uniqueness check agree regardless of how the user typed it.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewUser builds an unsaved User from raw signup input.
func NewUser(email, password string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, fmt.Errorf("email must not be empty")
	}
	if password == "" {
		return nil, fmt.Errorf("password must not be empty")
	}
	return &User{Email: email, Password: password}, nil
}
