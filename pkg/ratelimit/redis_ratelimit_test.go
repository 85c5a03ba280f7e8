package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestRedisRateLimiterAllow(t *testing.T) {
	client := setupRedisClient(t)
	rl := NewRedisRateLimiter(client, "test", 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := rl.Allow(ctx, "kiosk-1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should pass", i+1)
	}

	allowed, err := rl.Allow(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Another key still has its full budget.
	allowed, err = rl.Allow(ctx, "kiosk-2")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiterRemaining(t *testing.T) {
	client := setupRedisClient(t)
	rl := NewRedisRateLimiter(client, "test", 5, time.Minute)
	ctx := context.Background()

	remaining, err := rl.Remaining(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), remaining)

	_, err = rl.Allow(ctx, "kiosk-1")
	require.NoError(t, err)

	remaining, err = rl.Remaining(ctx, "kiosk-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), remaining)
}
