package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/ghuser/usedmarket/pkg/config"
)

const sentryFlushTimeout = 2 * time.Second

// scrubbedHeaders never leave the process.
var scrubbedHeaders = []string{"Cookie", "Authorization", "Set-Cookie"}

// SetupSentry initialises crash reporting. An empty DSN leaves it disabled.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: tracesSampleRate(cfg.Environment),
		SendDefaultPII:   false,
		BeforeSend:       scrubEvent,
	})
	if err != nil {
		return fmt.Errorf("sentry init: %w", err)
	}
	return nil
}

func tracesSampleRate(env string) float64 {
	if env == config.EnvProduction {
		return 0.2
	}
	return 1.0
}

// scrubEvent strips session cookies and credentials from captured requests.
func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request == nil {
		return event
	}
	event.Request.Cookies = ""
	event.Request.Data = ""
	for _, h := range scrubbedHeaders {
		delete(event.Request.Headers, h)
	}
	return event
}

// SentryFlush blocks until buffered events are sent or the timeout passes.
func SentryFlush() {
	sentry.Flush(sentryFlushTimeout)
}

// SentryMiddleware attaches a hub to each request and reports panics. It
// re-panics so logger.Recovery still writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         sentryFlushTimeout,
	}).Handle
}
