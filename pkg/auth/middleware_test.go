package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/usedmarket/pkg/logger"
)

// newTestStore is a cookie-only store with the same sessions.Store contract
// as RedisStore.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(testAuthKey, testEncKey)
}

func copyCookies(w *httptest.ResponseRecorder, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, http.NoBody)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func loggedIn(t *testing.T, store sessions.Store, userID int64) *http.Request {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, StartSession(store, w, httptest.NewRequest(http.MethodPost, "/api/auth/login", http.NoBody), userID))
	return copyCookies(w, http.MethodPost, "/api/items")
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")

	var captured int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = UserIDFromCtx(r.Context())
		log.InfoContext(r.Context(), "handled")
		w.WriteHeader(http.StatusOK)
	})

	w := httptest.NewRecorder()
	RequireAuth(store, log)(next).ServeHTTP(w, loggedIn(t, store, 7))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(7), captured)
	require.Contains(t, buf.String(), `"user_id":7`)
}

func TestRequireAuth_Rejects(t *testing.T) {
	store := newTestStore()

	orphan := func() *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/api/items", http.NoBody)
		w := httptest.NewRecorder()
		session, _ := store.Get(r, SessionName)
		session.Values["other"] = "value"
		require.NoError(t, session.Save(r, w))
		return copyCookies(w, http.MethodPost, "/api/items")
	}

	tampered := httptest.NewRequest(http.MethodPost, "/api/items", http.NoBody)
	tampered.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})

	cases := map[string]*http.Request{
		"missing cookie":       httptest.NewRequest(http.MethodPost, "/api/items", http.NoBody),
		"session without user": orphan(),
		"tampered cookie":      tampered,
	}
	for name, r := range cases {
		t.Run(name, func(t *testing.T) {
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler should not be called")
			})
			w := httptest.NewRecorder()
			RequireAuth(store, logger.Nop())(next).ServeHTTP(w, r)

			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.JSONEq(t, `{"error":"login required"}`, w.Body.String())
		})
	}
}

func TestEndSession_ClearsUser(t *testing.T) {
	store := newTestStore()

	w := httptest.NewRecorder()
	require.NoError(t, EndSession(store, w, loggedIn(t, store, 9)))

	var expired bool
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionName && c.MaxAge < 0 {
			expired = true
		}
	}
	require.True(t, expired, "session cookie should be expired")

	_, err := SessionUserID(store, copyCookies(w, http.MethodGet, "/api/auth/me"))
	require.ErrorIs(t, err, ErrUserIDNotFound)
}

func TestSessionUserID_NoCookie(t *testing.T) {
	_, err := SessionUserID(newTestStore(), httptest.NewRequest(http.MethodGet, "/api/auth/me", http.NoBody))
	require.ErrorIs(t, err, ErrUserIDNotFound)
}

// unreachableStore fails every lookup the way RedisStore does during an outage.
type unreachableStore struct{}

var errStoreDown = errors.New("load session: dial tcp 127.0.0.1:6379: connect: connection refused")

func (unreachableStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.NewSession(unreachableStore{}, name), errStoreDown
}

func (s unreachableStore) New(r *http.Request, name string) (*sessions.Session, error) {
	return s.Get(r, name)
}

func (unreachableStore) Save(*http.Request, http.ResponseWriter, *sessions.Session) error {
	return errStoreDown
}

func TestRequireAuth_StoreFailureIsServerError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "info")
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not be called")
	})

	r := httptest.NewRequest(http.MethodPost, "/api/items", http.NoBody)
	r.AddCookie(&http.Cookie{Name: SessionName, Value: "opaque"})
	w := httptest.NewRecorder()
	RequireAuth(unreachableStore{}, log)(next).ServeHTTP(w, r)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
	require.Contains(t, buf.String(), "session lookup failed")
	require.NotContains(t, w.Body.String(), "connection refused")
}

func TestSessionUserID_Errors(t *testing.T) {
	tampered := httptest.NewRequest(http.MethodGet, "/api/auth/me", http.NoBody)
	tampered.AddCookie(&http.Cookie{Name: SessionName, Value: "garbage"})

	_, err := SessionUserID(newTestStore(), tampered)
	require.ErrorIs(t, err, ErrUserIDNotFound)

	_, err = SessionUserID(unreachableStore{}, httptest.NewRequest(http.MethodGet, "/api/auth/me", http.NoBody))
	require.ErrorIs(t, err, errStoreDown)
	require.NotErrorIs(t, err, ErrUserIDNotFound)
}
