package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "idem:order:checkout-1", Key("order", "checkout-1"))
	assert.NotEqual(t, Key("order", "k"), Key("plant-quantity", "k"))
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	s := NewIdempotencyStore(nil, 0)
	assert.Equal(t, defaultIdempotencyTTL, s.ttl)
}

func TestIdempotencyStore_Reserve_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	store := NewIdempotencyStore(client, time.Minute)
	ok, err := store.Reserve(context.Background(), "order", "k1")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "idempotency reserve")

	assert.ErrorContains(t, store.Release(context.Background(), "order", "k1"), "idempotency release")
}

func TestConnect_Unreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond})
	assert.ErrorContains(t, err, "redis ping")
}
