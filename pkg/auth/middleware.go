package auth

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/sessions"

	"github.com/ghuser/usedmarket/pkg/httpx"
	"github.com/ghuser/usedmarket/pkg/logger"
)

// RequireAuth is a chi middleware that enforces a logged-in session.
// It reads the session cookie, extracts the user ID, and injects it into the request context.
// Returns 401 Unauthorized if the session is missing or lacks a user ID, and
// 500 if the session store cannot be read.
//
// After this middleware, handlers can safely call auth.UserIDFromCtx(r.Context()).
func RequireAuth(store sessions.Store, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := SessionUserID(store, r)
			switch {
			case errors.Is(err, ErrUserIDNotFound):
				log.InfoContext(r.Context(), "unauthenticated request", "path", r.URL.Path)
				httpx.JSONError(w, http.StatusUnauthorized, "login required")
				return
			case err != nil:
				// errhttp depends on this package, so the 500 is written here.
				log.ErrorContext(r.Context(), "session lookup failed", "path", r.URL.Path, "error", err)
				if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
					hub.CaptureException(err)
				}
				httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			ctx := logger.WithContext(WithUserID(r.Context(), userID), "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
