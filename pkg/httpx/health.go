package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything that can prove it is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks names each dependency probed by HealthHandler.
type HealthChecks map[string]HealthChecker

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler pings every dependency in parallel under a shared deadline.
// It answers 200 "ok" when all succeed and 503 "degraded" otherwise. Error
// details stay out of the body.
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var (
			mu  sync.Mutex
			g   errgroup.Group
			out = healthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		)
		for name, c := range checks {
			g.Go(func() error {
				state := "ok"
				if err := c.Ping(ctx); err != nil {
					state = "unreachable"
				}
				mu.Lock()
				defer mu.Unlock()
				out.Checks[name] = state
				if state != "ok" {
					out.Status = "degraded"
				}
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		if out.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, out)
	}
}
