package domain

import "errors"

// Sentinel errors for the user domain. Use errors.Is() to check these.
var (
	// ErrDuplicateEmail indicates a user with the same email already exists.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAuthenticationFailed is returned for both an unknown email and a wrong
	// password so callers cannot tell the two apart.
	ErrAuthenticationFailed = errors.New("invalid email or password")

	// ErrInvalidCredentials indicates an empty or malformed email or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
