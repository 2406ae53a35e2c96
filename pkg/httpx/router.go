package httpx

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultRequestsPerMinute = 100
	defaultBodyLimit         = 1 << 20
	handlerTimeout           = 30 * time.Second
)

// RouterConfig tunes the shared middleware stack.
type RouterConfig struct {
	ServiceName   string
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated origin list, or "*".
	CORSAllowedOrigins string
	// RequestsPerMinute is the per-client budget. Zero uses the default.
	RequestsPerMinute int
	// BodyLimit caps request bodies in bytes. Zero uses 1 MiB.
	BodyLimit int64
}

// Instrumentation carries the middlewares owned by other packages.
// Nil fields are skipped.
type Instrumentation struct {
	Recover func(http.Handler) http.Handler
	Sentry  func(http.Handler) http.Handler
	Trace   func(http.Handler) http.Handler
	Log     func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the standard stack installed, outermost
// first: recover, sentry, request id, trace, access log, real ip,
// rate limit, cors, body limit, timeout, security headers.
//
// Recover sits outside Sentry so a panic is reported before it becomes a 500.
func NewRouter(cfg RouterConfig, inst Instrumentation) *chi.Mux {
	r := chi.NewRouter()

	use := func(mw func(http.Handler) http.Handler) {
		if mw != nil {
			r.Use(mw)
		}
	}
	use(inst.Recover)
	use(inst.Sentry)
	r.Use(middleware.RequestID)
	use(inst.Trace)
	use(inst.Log)
	r.Use(
		middleware.RealIP,
		rateLimiter(cfg.RequestsPerMinute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(orDefault(cfg.BodyLimit, defaultBodyLimit)),
		middleware.Timeout(handlerTimeout),
		securityHeaders(cfg.IsDevelopment).Handler,
	)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		JSONError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		JSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// rateLimiter keys on the client address after RealIP has rewritten it.
func rateLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(
		int(orDefault(int64(perMinute), defaultRequestsPerMinute)),
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			JSONError(w, http.StatusTooManyRequests, "too many requests")
		}),
	)
}

func securityHeaders(dev bool) *secure.Secure {
	return secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(), usb=()",
		IsDevelopment:         dev,
	})
}

// RequestBodyLimit wraps the body in http.MaxBytesReader. Decoders then see a
// *http.MaxBytesError once maxBytes is exceeded.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

func orDefault(v, def int64) int64 {
	if v <= 0 {
		return def
	}
	return v
}
