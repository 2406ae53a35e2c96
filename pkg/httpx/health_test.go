package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/usedmarket/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func serveHealth(t *testing.T, checks httpx.HealthChecks) (*httptest.ResponseRecorder, healthBody) {
	t.Helper()
	rr := httptest.NewRecorder()
	httpx.HealthHandler(checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var body healthBody
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, body
}

func TestHealthHandler(t *testing.T) {
	down := errors.New("conn refused")

	tests := []struct {
		name        string
		checks      httpx.HealthChecks
		wantStatus  int
		wantOverall string
		wantChecks  map[string]string
	}{
		{
			name: "all healthy",
			checks: httpx.HealthChecks{
				"database":  &stubChecker{},
				"redis":     &stubChecker{},
				"event_bus": &stubChecker{},
			},
			wantStatus:  http.StatusOK,
			wantOverall: "ok",
			wantChecks:  map[string]string{"database": "ok", "redis": "ok", "event_bus": "ok"},
		},
		{
			name: "database down",
			checks: httpx.HealthChecks{
				"database": &stubChecker{err: down},
				"redis":    &stubChecker{},
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantOverall: "degraded",
			wantChecks:  map[string]string{"database": "unreachable", "redis": "ok"},
		},
		{
			name: "redis down",
			checks: httpx.HealthChecks{
				"database": &stubChecker{},
				"redis":    &stubChecker{err: down},
			},
			wantStatus:  http.StatusServiceUnavailable,
			wantOverall: "degraded",
			wantChecks:  map[string]string{"database": "ok", "redis": "unreachable"},
		},
		{
			name:        "no checks registered",
			checks:      httpx.HealthChecks{},
			wantStatus:  http.StatusOK,
			wantOverall: "ok",
			wantChecks:  map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := serveHealth(t, tt.checks)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if body.Status != tt.wantOverall {
				t.Errorf("status: got %q, want %q", body.Status, tt.wantOverall)
			}
			for name, want := range tt.wantChecks {
				if body.Checks[name] != want {
					t.Errorf("%s: got %q, want %q", name, body.Checks[name], want)
				}
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	rr, _ := serveHealth(t, httpx.HealthChecks{"database": &stubChecker{}})

	ct := rr.Header().Get("Content-Type")
	if ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json; charset=utf-8")
	}
}

type blockingChecker struct{}

func (blockingChecker) Ping(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestHealthHandler_SlowDependencyTimesOut(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the probe deadline")
	}
	rr, body := serveHealth(t, httpx.HealthChecks{
		"database": &stubChecker{},
		"redis":    blockingChecker{},
	})

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if body.Checks["redis"] != "unreachable" || body.Checks["database"] != "ok" {
		t.Errorf("unexpected checks: %v", body.Checks)
	}
}
