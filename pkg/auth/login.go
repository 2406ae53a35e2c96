package auth

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	// SessionName is the cookie name carrying the encrypted session ID.
	SessionName      = "usedmarket_session"
	sessionUserIDKey = "user_id"
)

// StartSession records userID in the request's session and writes the cookie.
func StartSession(store sessions.Store, w http.ResponseWriter, r *http.Request, userID int64) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	session.Values[sessionUserIDKey] = userID
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// EndSession clears the session and expires its cookie.
func EndSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// SessionUserID returns the user ID stored by StartSession.
// Returns ErrUserIDNotFound when the request carries no logged-in session,
// including a cookie that fails to decode. Any other error means the session
// store itself failed.
func SessionUserID(store sessions.Store, r *http.Request) (int64, error) {
	session, err := store.Get(r, SessionName)
	if err != nil {
		var cookieErr securecookie.Error
		if errors.As(err, &cookieErr) && cookieErr.IsDecode() {
			return 0, ErrUserIDNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}
	userID, ok := session.Values[sessionUserIDKey].(int64)
	if !ok || userID <= 0 {
		return 0, ErrUserIDNotFound
	}
	return userID, nil
}
