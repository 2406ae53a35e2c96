package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/usedmarket/pkg/auth"
	chatdomain "github.com/ghuser/usedmarket/services/chat/domain"
	itemdomain "github.com/ghuser/usedmarket/services/item/domain"
	userdomain "github.com/ghuser/usedmarket/services/user/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate email", userdomain.ErrDuplicateEmail, http.StatusConflict},
		{"auth failed", userdomain.ErrAuthenticationFailed, http.StatusUnauthorized},
		{"no session user", auth.ErrUserIDNotFound, http.StatusUnauthorized},
		{"user not found", userdomain.ErrUserNotFound, http.StatusNotFound},
		{"invalid credentials", fmt.Errorf("%w: email must not be empty", userdomain.ErrInvalidCredentials), http.StatusUnprocessableEntity},
		{"item not found", fmt.Errorf("get item: %w", itemdomain.ErrItemNotFound), http.StatusNotFound},
		{"invalid item", fmt.Errorf("%w: title is required", itemdomain.ErrInvalidItem), http.StatusUnprocessableEntity},
		{"owner not found", itemdomain.ErrOwnerNotFound, http.StatusUnprocessableEntity},
		{"chat item not found", fmt.Errorf("get or create room: %w", chatdomain.ErrItemNotFound), http.StatusNotFound},
		{"room not found", chatdomain.ErrRoomNotFound, http.StatusNotFound},
		{"empty message", chatdomain.ErrEmptyMessage, http.StatusUnprocessableEntity},
		{"message too long", chatdomain.ErrMessageTooLong, http.StatusUnprocessableEntity},
		{"sender not found", chatdomain.ErrSenderNotFound, http.StatusUnprocessableEntity},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	msg, ok := body["error"]
	if !ok {
		t.Fatal("response body missing 'error' key")
	}
	return msg
}

func TestWriteError_BodyUsesSentinelMessage(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody),
		fmt.Errorf("save item: insert item: %w", itemdomain.ErrOwnerNotFound))

	if got := decodeError(t, w); got != itemdomain.ErrOwnerNotFound.Error() {
		t.Fatalf("expected sentinel message, got %q", got)
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody),
		errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	if got := decodeError(t, w); got != internalErrorMessage {
		t.Fatalf("expected generic message, got %q", got)
	}
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
