package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/usedmarket/pkg/config"
)

func TestScrubEvent(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		URL:     "http://localhost/api/auth/login",
		Cookies: "usedmarket_session=secret",
		Data:    `{"password":"hunter2"}`,
		Headers: map[string]string{
			"Cookie":       "usedmarket_session=secret",
			"Content-Type": "application/json",
		},
	}}

	got := scrubEvent(event, nil)

	require.Empty(t, got.Request.Cookies)
	require.Empty(t, got.Request.Data)
	require.NotContains(t, got.Request.Headers, "Cookie")
	require.Equal(t, "application/json", got.Request.Headers["Content-Type"])
	require.Equal(t, "http://localhost/api/auth/login", got.Request.URL)
}

func TestScrubEvent_NoRequest(t *testing.T) {
	event := &sentry.Event{Message: "boom"}
	require.Same(t, event, scrubEvent(event, nil))
}

func TestSetupSentry_DisabledWithoutDSN(t *testing.T) {
	require.NoError(t, SetupSentry(&config.Config{}))
}

func TestTracesSampleRate(t *testing.T) {
	require.InDelta(t, 0.2, tracesSampleRate(config.EnvProduction), 1e-9)
	require.InDelta(t, 1.0, tracesSampleRate(config.EnvDevelopment), 1e-9)
}

func TestSentryMiddleware_Repanics(t *testing.T) {
	h := SentryMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	require.Panics(t, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}
