// Package cache wraps Redis for read-side response caching. Every failure
// path degrades to a cache miss so Redis outages never surface to callers.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/otabek/davomat/internal/pkg/logger"
)

// Cache stores JSON-encoded values under string keys with a fixed TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis. A nil client (empty addr) disables caching.
func New(addr, password string, ttl time.Duration) *Cache {
	if addr == "" {
		return &Cache{ttl: ttl}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, caching disabled")
		return &Cache{ttl: ttl}
	}
	return &Cache{client: client, ttl: ttl}
}

// Get unmarshals the cached value into dest. Returns false on miss,
// decode failure or disabled cache.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to decode cached value")
		return false
	}
	return true
}

// Set stores value under key for the configured TTL. Errors are logged
// and swallowed.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to encode value for cache")
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("Failed to write cache")
	}
}

// InvalidatePrefix drops every key under the given prefix
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn().Err(err).Str("key", iter.Val()).Msg("Failed to invalidate cache key")
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache scan failed")
	}
}

// Close releases the underlying connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
