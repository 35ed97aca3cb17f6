package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"blogicum/internal/custom_errors"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/config"
)

const (
	keyNamespace   = "blogicum:"
	connectTimeout = 5 * time.Second
)

// Client stores JSON documents under the blogicum: key namespace. It knows
// nothing about entities; PostCache and UserCache build on it.
type Client struct {
	rdb     *redis.Client
	log     ports.Logger
	metrics ports.MetricsProvider
}

func NewClient(cfg config.Redis, log ports.Logger, metrics ports.MetricsProvider) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", addr, err)
	}

	log.Info("Connected to Redis", slog.String("addr", addr), slog.Int("db", cfg.DB))
	return &Client{rdb: rdb, log: log, metrics: metrics}, nil
}

// getJSON decodes the document at key into dest. A missing key is
// ErrCacheMiss; a document that no longer decodes is dropped and also
// reported as a miss.
func (c *Client) getJSON(ctx context.Context, key string, dest any) error {
	defer c.observe("get", time.Now())

	raw, err := c.rdb.Get(ctx, keyNamespace+key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return custom_errors.ErrCacheMiss
	case err != nil:
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Dropping undecodable cache entry", slog.String("key", key), slog.String("error", err.Error()))
		_ = c.rdb.Del(ctx, keyNamespace+key).Err()
		return custom_errors.ErrCacheMiss
	}
	return nil
}

func (c *Client) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	defer c.observe("set", time.Now())

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, keyNamespace+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *Client) del(ctx context.Context, keys ...string) error {
	defer c.observe("delete", time.Now())

	namespaced := make([]string, len(keys))
	for i, key := range keys {
		namespaced[i] = keyNamespace + key
	}
	if err := c.rdb.Del(ctx, namespaced...).Err(); err != nil {
		return fmt.Errorf("redis del %v: %w", keys, err)
	}
	return nil
}

func (c *Client) observe(operation string, start time.Time) {
	c.metrics.RecordCacheOperationDuration(operation, time.Since(start))
}

// Ping backs the /health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	if err := c.rdb.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	c.log.Info("Redis connection closed")
	return nil
}
