package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var (
	testAuthKey = []byte("test-auth-key-must-be-32-bytes!!")
	testEncKey  = []byte("test-enc-key-must-be-32-bytes!!!")
)

func offlineStore(opts ...StoreOption) *RedisStore {
	// Nothing listens here; tests using it must not reach Redis.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	return NewSessionStore(client, testAuthKey, testEncKey, true, opts...)
}

func TestRedisStore_Options(t *testing.T) {
	s := offlineStore(WithKeyPrefix("test:"), WithMaxAge(time.Hour))

	require.Equal(t, "test:abc", s.key("abc"))
	require.Equal(t, 3600, s.options.MaxAge)
	require.True(t, s.options.Secure)
	require.True(t, s.options.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, s.options.SameSite)
}

func TestRedisStore_NewWithoutUsableCookie(t *testing.T) {
	s := offlineStore()

	cases := map[string]*http.Cookie{
		"no cookie": nil,
		"forged":    {Name: SessionName, Value: "not-a-signed-value"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/auth/me", http.NoBody)
			if c != nil {
				r.AddCookie(c)
			}
			session, err := s.New(r, SessionName)
			require.NoError(t, err)
			require.True(t, session.IsNew)
			require.Empty(t, session.ID)
		})
	}
}

func cookieValue(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionName {
			return c.Value
		}
	}
	return ""
}

// Needs a live Redis at REDIS_URL.
func TestRedisStore_RoundTrip(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	store := NewSessionStore(client, testAuthKey, testEncKey, false, WithKeyPrefix("test:session:"))

	login := httptest.NewRecorder()
	require.NoError(t, StartSession(store, login, httptest.NewRequest(http.MethodPost, "/api/auth/login", http.NoBody), 11))

	got, err := SessionUserID(store, copyCookies(login, http.MethodGet, "/api/auth/me"))
	require.NoError(t, err)
	require.Equal(t, int64(11), got)

	// A second login from the same browser keeps one server-side session.
	relogin := httptest.NewRecorder()
	require.NoError(t, StartSession(store, relogin, copyCookies(login, http.MethodPost, "/api/auth/login"), 12))
	require.NotEmpty(t, cookieValue(relogin))
	got, err = SessionUserID(store, copyCookies(relogin, http.MethodGet, "/api/auth/me"))
	require.NoError(t, err)
	require.Equal(t, int64(12), got)

	logout := httptest.NewRecorder()
	require.NoError(t, EndSession(store, logout, copyCookies(relogin, http.MethodPost, "/api/auth/logout")))

	_, err = SessionUserID(store, copyCookies(relogin, http.MethodGet, "/api/auth/me"))
	require.ErrorIs(t, err, ErrUserIDNotFound)
}
