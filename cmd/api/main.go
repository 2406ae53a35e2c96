package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/usedmarket/docs/swagger"
	"github.com/ghuser/usedmarket/migrations"
	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/auth"
	"github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/pkg/config"
	"github.com/ghuser/usedmarket/pkg/database"
	"github.com/ghuser/usedmarket/pkg/events"
	"github.com/ghuser/usedmarket/pkg/httpx"
	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/pkg/telemetry"
	chatApi "github.com/ghuser/usedmarket/services/chat/application/api"
	itemApi "github.com/ghuser/usedmarket/services/item/application/api"
	userApi "github.com/ghuser/usedmarket/services/user/application/api"
)

// @title			Used Market API
// @version		1.0
// @description	Used-goods marketplace: accounts, listings and per-item buyer chat.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.Debug("config loaded", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()

	if err := pool.InitializeSchema(ctx, migrations.FS); err != nil {
		log.Error("failed to initialize schema", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("database ready")

	eventBus, err := events.New(pool.DB(), cfg.ServiceName+"-api", events.Outbox, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.Environment == config.EnvProduction,
	)

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
	}

	r := httpx.NewRouter(
		httpx.RouterConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.RequestsPerMinute,
		},
		httpx.Instrumentation{
			Recover: logger.Recovery(log),
			Sentry:  telemetry.SentryMiddleware(),
			Trace:   otelhttp.NewMiddleware(cfg.ServiceName),
			Log:     logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		"database": pool,
		"redis":    redisClient,
		"events":   eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)
	log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
	if err := httpx.Serve(ctx, srv, cfg.ShutdownTimeout); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("server stopped")
}

// registerRoutes mounts every bounded context under /api.
// Item and chat share the /items/{id} prefix, so both register flat routes on r.
func registerRoutes(r chi.Router, a *app.Application) {
	userApi.UserRoutes(r, a)
	itemApi.ItemRoutes(r, a)
	chatApi.ChatRoutes(r, a)
}
