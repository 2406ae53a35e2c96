package auth

import (
	"context"
	"errors"
)

type userIDCtxKey struct{}

// ErrUserIDNotFound means the request has no logged-in user.
var ErrUserIDNotFound = errors.New("user_id not found in context")

// UserIDFromCtx returns the user bound by RequireAuth. IDs start at 1, so a
// zero or negative value counts as absent.
func UserIDFromCtx(ctx context.Context) (int64, error) {
	if id, ok := ctx.Value(userIDCtxKey{}).(int64); ok && id > 0 {
		return id, nil
	}
	return 0, ErrUserIDNotFound
}

// WithUserID binds userID to ctx.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}
