package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a test Redis client. Unit tests use a local
// instance when available; the testcontainers-backed path lives in
// tests/integration.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewRedisStore_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewRedisStore should panic with nil client")
		}
	}()
	NewRedisStore(nil, 0)
}

func TestRedisStore_Key(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	store := NewRedisStore(client, 0)
	if got := store.Key(300); got != "fc25:page:300" {
		t.Errorf("Key(300) = %q, want fc25:page:300", got)
	}
}

func TestRedisStore_SetAndGet(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, 0)
	ctx := context.Background()

	payload := []byte(`{"items": [{"id": 7}]}`)
	if err := store.Set(ctx, 100, payload); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, 100)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get returned %s, want %s", got, payload)
	}
}

func TestRedisStore_Get_CacheMiss(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, 0)

	if _, err := store.Get(context.Background(), 900); err != ErrCacheMiss {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisStore_TTL(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	if err := store.Set(ctx, 0, []byte(`{}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	ttl, err := client.TTL(ctx, store.Key(0)).Result()
	if err != nil {
		t.Fatalf("TTL failed: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL = %v, want (0, 1h]", ttl)
	}
}
