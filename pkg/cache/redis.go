package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache implements the Cache interface on a shared Redis instance, so
// multiple app replicas see the same invalidations. Redis handles expiry
// itself; there is no janitor to run.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a RedisCache and verifies the connection.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCache{client: client}, nil
}

// Make sure we conform to the interface
var _ Cache = (*RedisCache)(nil)

// GetOrLoad returns the cached value or loads and stores a fresh one.
func (c *RedisCache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, redis.Nil) {
		// Redis being down should degrade to a cache miss, not an outage.
		return loader(ctx)
	}

	value, err = loader(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// The value is good even if caching it failed.
		return value, nil
	}
	return value, nil
}

// Invalidate removes one exact key.
func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate key %s: %w", key, err)
	}
	return nil
}

// InvalidatePrefix removes all keys sharing the prefix via SCAN, which keeps
// Redis responsive on large keyspaces where KEYS would not.
func (c *RedisCache) InvalidatePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys with prefix %s: %w", prefix, err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
