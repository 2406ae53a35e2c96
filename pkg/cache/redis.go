// Package cache owns the Redis connection shared by sessions and the
// listing read model.
package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/usedmarket/pkg/config"
	"github.com/ghuser/usedmarket/pkg/logger"
)

const (
	pingTimeout   = 2 * time.Second
	slowThreshold = 50 * time.Millisecond
)

// RedisClient is the process-wide Redis handle.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient dials cfg.RedisURL and pings it. Pool and timeout settings
// from the URL query (pool_size, dial_timeout, ...) override the defaults.
func NewRedisClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*RedisClient, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	applyDefaults(opts)

	rdb := redis.NewClient(opts)
	rdb.AddHook(slowLog{log: log, threshold: slowThreshold})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisClient{client: rdb}, nil
}

func applyDefaults(o *redis.Options) {
	if o.PoolSize == 0 {
		o.PoolSize = 10
	}
	if o.MinIdleConns == 0 {
		o.MinIdleConns = 2
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = 5 * time.Second
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = 3 * time.Second
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = o.ReadTimeout
	}
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Client exposes the raw client to the session store.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// slowLog warns about commands and pipelines that exceed threshold.
type slowLog struct {
	log       logger.Logger
	threshold time.Duration
}

func (h slowLog) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			h.log.WarnContext(ctx, "redis dial failed", "addr", addr, "error", err)
		}
		return conn, err
	}
}

func (h slowLog) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		if d := time.Since(start); d > h.threshold {
			h.log.WarnContext(ctx, "slow redis command", "cmd", cmd.Name(), "duration_ms", d.Milliseconds())
		}
		return err
	}
}

func (h slowLog) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if d := time.Since(start); d > h.threshold {
			h.log.WarnContext(ctx, "slow redis pipeline", "cmds", len(cmds), "duration_ms", d.Milliseconds())
		}
		return err
	}
}
