package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/usedmarket/migrations"
	"github.com/ghuser/usedmarket/pkg/app"
	"github.com/ghuser/usedmarket/pkg/cache"
	"github.com/ghuser/usedmarket/pkg/config"
	"github.com/ghuser/usedmarket/pkg/database"
	"github.com/ghuser/usedmarket/pkg/events"
	"github.com/ghuser/usedmarket/pkg/httpx"
	"github.com/ghuser/usedmarket/pkg/logger"
	"github.com/ghuser/usedmarket/pkg/telemetry"
	chatEvents "github.com/ghuser/usedmarket/services/chat/domain/events"
	itemEvents "github.com/ghuser/usedmarket/services/item/domain/events"
)

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
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()

	// The worker may start before the API; the subscriber tables and the
	// domain tables must both exist.
	if err := pool.InitializeSchema(ctx, migrations.FS); err != nil {
		log.Error("failed to initialize schema", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	eventBus, err := events.New(pool.DB(), cfg.ServiceName+"-worker", events.Direct, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	metrics, err := telemetry.NewMarketMetrics()
	if err != nil {
		log.Error("failed to register metrics", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig, metrics); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	srv := httpx.NewServer(cfg.WorkerOpsAddr, opsRouter(metricsHandler, httpx.HealthChecks{
		"database": pool,
		"redis":    redisClient,
		"events":   eventBus,
	}))
	log.Info("worker ops listening", "addr", srv.Addr)
	if err := httpx.Serve(ctx, srv, cfg.ShutdownTimeout); err != nil {
		log.Error("ops server stopped with error", "error", err)
	}

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("shutting down worker...")
}

// opsRouter serves the worker's Prometheus scrape and health endpoints.
func opsRouter(metrics http.Handler, checks httpx.HealthChecks) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metrics.ServeHTTP)
	return r
}

type subscription struct {
	topic   string
	handler events.Handler
}

// registerSubscribers wires all domain event handlers.
func registerSubscribers(ctx context.Context, a *app.Application, m *telemetry.MarketMetrics) error {
	subs := []subscription{
		{topic: itemEvents.TopicItemListed, handler: handleItemListed(a, m, cache.NewItemCache(a.Redis, a.Config.ItemCacheTTL))},
		{topic: chatEvents.TopicMessageSent, handler: handleMessageSent(a, m)},
	}

	topics := make([]string, 0, len(subs))
	for _, s := range subs {
		errCh, err := a.EventBus.Subscribe(ctx, s.topic, s.handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", s.topic, err)
		}
		go drainErrors(ctx, a.Logger, s.topic, errCh)
		topics = append(topics, s.topic)
	}

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// drainErrors keeps the subscriber error channel from blocking.
func drainErrors(ctx context.Context, log logger.Logger, topic string, errCh <-chan error) {
	for err := range errCh {
		log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
	}
}

// itemCacheWriter is the part of cache.ItemCache the worker needs.
type itemCacheWriter interface {
	Set(ctx context.Context, item *cache.CachedItem) error
}

// handleItemListed warms the Redis read model so the first GET /items/{id}
// after publication is served from cache. Redis writes are idempotent, so a
// redelivered event is harmless.
func handleItemListed(a *app.Application, m *telemetry.MarketMetrics, itemCache itemCacheWriter) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[itemEvents.ItemListedEvent](msg)
		if err != nil {
			return err
		}

		m.ItemListed(ctx, evt.Category)

		if err := itemCache.Set(ctx, &cache.CachedItem{
			ID:          evt.ItemID,
			Category:    evt.Category,
			Title:       evt.Title,
			Description: evt.Description,
			Price:       evt.Price,
			OwnerID:     evt.OwnerID,
			CreatedAt:   evt.OccurredAt,
		}); err != nil {
			// Best-effort: the API falls back to Postgres on a miss.
			a.Logger.WarnContext(ctx, "cache warm failed",
				"item_id", evt.ItemID, "error", err)
			return nil
		}

		a.Logger.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
		return nil
	}
}

// handleMessageSent is the notification hook for new chat messages.
func handleMessageSent(a *app.Application, m *telemetry.MarketMetrics) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := events.Decode[chatEvents.MessageSentEvent](msg)
		if err != nil {
			return err
		}

		m.MessageSent(ctx)
		a.Logger.InfoContext(ctx, "chat message sent",
			"message_id", evt.MessageID,
			"room_id", evt.RoomID,
			"sender_id", evt.SenderID,
		)
		return nil
	}
}
