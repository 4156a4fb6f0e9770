// Package cache stores rendered tenant read paths in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/polkiloo/printshop/internal/domain/model"
)

const (
	keyPrefix = "printshop"
	scanBatch = 100
)

// Store caches JSON encoded views keyed by tenant and read path.
type Store interface {
	Get(ctx context.Context, companyID uuid.UUID, path model.ReadPath, dest any) (bool, error)
	Set(ctx context.Context, companyID uuid.UUID, path model.ReadPath, value any) error
	Invalidate(ctx context.Context, companyID uuid.UUID, paths ...model.ReadPath) error
	Purge(ctx context.Context, companyID uuid.UUID) error
}

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Key returns the Redis key of a tenant read path.
func Key(companyID uuid.UUID, path model.ReadPath) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, companyID, path)
}

// RedisCache implements Store on top of a Redis server.
type RedisCache struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisCache connects lazily to the server described by redisURL.
func NewRedisCache(redisURL string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return newRedisCache(redis.NewClient(opt), ttl), nil
}

func newRedisCache(client redisClient, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get decodes the cached value into dest. A miss returns false without error.
func (c *RedisCache) Get(ctx context.Context, companyID uuid.UUID, path model.ReadPath, dest any) (bool, error) {
	data, err := c.client.Get(ctx, Key(companyID, path)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", path, err)
	}
	return true, nil
}

// Set stores value for the configured TTL.
func (c *RedisCache) Set(ctx context.Context, companyID uuid.UUID, path model.ReadPath, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", path, err)
	}
	if err := c.client.Set(ctx, Key(companyID, path), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate deletes exactly the given read paths.
func (c *RedisCache) Invalidate(ctx context.Context, companyID uuid.UUID, paths ...model.ReadPath) error {
	if len(paths) == 0 {
		return nil
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = Key(companyID, p)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// Purge deletes every cached read path of a tenant.
func (c *RedisCache) Purge(ctx context.Context, companyID uuid.UUID) error {
	match := fmt.Sprintf("%s:%s:*", keyPrefix, companyID)
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache purge: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Ping checks server connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client connections.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NopCache never stores anything. It is used when no Redis URL is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, uuid.UUID, model.ReadPath, any) (bool, error) { return false, nil }

func (NopCache) Set(context.Context, uuid.UUID, model.ReadPath, any) error { return nil }

func (NopCache) Invalidate(context.Context, uuid.UUID, ...model.ReadPath) error { return nil }

func (NopCache) Purge(context.Context, uuid.UUID) error { return nil }

var (
	_ Store = (*RedisCache)(nil)
	_ Store = NopCache{}
)
