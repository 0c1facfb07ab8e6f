// Package cache provides a small Redis-backed JSON cache used by the
// analytics endpoints. When Redis is not configured the cache degrades
// to a no-op so the service keeps working without it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/akshat/campushub/internal/pkg/logger"
)

// ErrCacheMiss is returned when a key is absent or the cache is disabled.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores JSON-encoded values with a default TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and verifies the connection. An empty addr
// returns a disabled cache and no error.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return &Cache{ttl: ttl}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info().Str("addr", addr).Msg("Connected to Redis")
	return &Cache{client: client, ttl: ttl}, nil
}

// Enabled reports whether a Redis connection is active.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// Get unmarshals the cached value for key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	if c.client == nil {
		return ErrCacheMiss
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		logger.Warn().Err(err).Str("key", key).Msg("Redis get failed")
		return ErrCacheMiss
	}

	return json.Unmarshal(data, dest)
}

// Set stores value under key with the default TTL. Failures are logged
// and swallowed, a broken cache must not fail the request.
func (c *Cache) Set(ctx context.Context, key string, value any) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to marshal cache value")
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Redis set failed")
	}
}

// Invalidate removes keys after a write. Missing keys are not an error.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("Redis delete failed")
	}
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
