package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisLayer = "redis"

// DefaultKeyPrefix namespaces page entries in Redis.
const DefaultKeyPrefix = "fc25:page:"

// RedisStore persists page payloads in Redis, one key per offset.
// Useful when several runs share a cache host instead of a local disk.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore creates a Redis-backed page store.
// A ttl of 0 keeps entries forever, mirroring the disk backend.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisStore{
		client:    client,
		keyPrefix: DefaultKeyPrefix,
		ttl:       ttl,
	}
}

// Key returns the Redis key for an offset.
func (r *RedisStore) Key(offset int) string {
	return fmt.Sprintf("%s%d", r.keyPrefix, offset)
}

// Init verifies the Redis connection.
func (r *RedisStore) Init(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		CacheErrors.WithLabelValues(redisLayer, "init").Inc()
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Get retrieves the cached payload for offset.
// Returns ErrCacheMiss when the key does not exist.
func (r *RedisStore) Get(ctx context.Context, offset int) ([]byte, error) {
	data, err := r.client.Get(ctx, r.Key(offset)).Bytes()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.WithLabelValues(redisLayer).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues(redisLayer, "get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	CacheHits.WithLabelValues(redisLayer).Inc()
	return data, nil
}

// Set stores the payload for offset, overwriting any existing entry.
func (r *RedisStore) Set(ctx context.Context, offset int, data []byte) error {
	if err := r.client.Set(ctx, r.Key(offset), data, r.ttl).Err(); err != nil {
		CacheErrors.WithLabelValues(redisLayer, "set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
