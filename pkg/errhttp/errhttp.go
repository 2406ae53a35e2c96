// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add an entry to statusTable for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/pkg/httpx"
	chatdomain "github.com/ghuser/usedmarket/services/chat/domain"
	itemdomain "github.com/ghuser/usedmarket/services/item/domain"
	userdomain "github.com/ghuser/usedmarket/services/user/domain"
)

const internalErrorMessage = "internal server error"

// statusTable is checked in order; the first sentinel matched by errors.Is wins.
var statusTable = []struct {
	err    error
	status int
}{
	{userdomain.ErrDuplicateEmail, http.StatusConflict},
	{userdomain.ErrAuthenticationFailed, http.StatusUnauthorized},
	{auth.ErrUserIDNotFound, http.StatusUnauthorized},
	{userdomain.ErrUserNotFound, http.StatusNotFound},
	{userdomain.ErrInvalidCredentials, http.StatusUnprocessableEntity},

	{itemdomain.ErrItemNotFound, http.StatusNotFound},
	{itemdomain.ErrInvalidItem, http.StatusUnprocessableEntity},
	{itemdomain.ErrOwnerNotFound, http.StatusUnprocessableEntity},

	{chatdomain.ErrItemNotFound, http.StatusNotFound},
	{chatdomain.ErrRoomNotFound, http.StatusNotFound},
	{chatdomain.ErrEmptyMessage, http.StatusUnprocessableEntity},
	{chatdomain.ErrMessageTooLong, http.StatusUnprocessableEntity},
	{chatdomain.ErrSenderNotFound, http.StatusUnprocessableEntity},
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// The body carries the sentinel's message, never the wrapped chain.
// Unrecognized errors become 500 with a generic message and are reported to
// Sentry when the request carries a hub.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		if hub := sentry.GetHubFromContext(r.Context()); hub != nil {
			hub.CaptureException(err)
		}
	}
	httpx.JSONError(w, status, msg)
}

func mapError(err error) (int, string) {
	for _, e := range statusTable {
		if errors.Is(err, e.err) {
			return e.status, e.err.Error()
		}
	}
	return http.StatusInternalServerError, internalErrorMessage
}
