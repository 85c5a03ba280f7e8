package distributed

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

func TestAcquireLock(t *testing.T) {
	client := setupRedisClient(t)
	manager := NewRedisLockManager(client)
	ctx := context.Background()

	lock, err := manager.AcquireLock(ctx, "match:lock:abc", "instance-1", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, lock)

	held, err := lock.IsHeld(ctx)
	require.NoError(t, err)
	assert.True(t, held)

	// A second holder must be refused while the first is live.
	_, err = manager.AcquireLock(ctx, "match:lock:abc", "instance-2", 5*time.Second)
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	require.NoError(t, lock.Release(ctx))

	held, err = lock.IsHeld(ctx)
	require.NoError(t, err)
	assert.False(t, held)
}

func TestReleaseNotHeld(t *testing.T) {
	client := setupRedisClient(t)
	manager := NewRedisLockManager(client)
	ctx := context.Background()

	lock, err := manager.AcquireLock(ctx, "match:lock:expired", "instance-1", 5*time.Second)
	require.NoError(t, err)

	// Simulate the lock expiring and someone else grabbing it.
	client.Set(ctx, "match:lock:expired", "instance-2", 5*time.Second)

	assert.ErrorIs(t, lock.Release(ctx), ErrLockNotHeld)
}

func TestTryLockWithRetry(t *testing.T) {
	client := setupRedisClient(t)
	manager := NewRedisLockManager(client)
	ctx := context.Background()

	first, err := manager.AcquireLock(ctx, "match:lock:retry", "instance-1", 200*time.Millisecond)
	require.NoError(t, err)
	_ = first

	// Retries should outlast the first holder's TTL and succeed.
	second, err := manager.TryLockWithRetry(ctx, "match:lock:retry", "instance-2", 5*time.Second, 10, 50*time.Millisecond)
	require.NoError(t, err)

	held, err := second.IsHeld(ctx)
	require.NoError(t, err)
	assert.True(t, held)
}

func TestExtend(t *testing.T) {
	client := setupRedisClient(t)
	manager := NewRedisLockManager(client)
	ctx := context.Background()

	lock, err := manager.AcquireLock(ctx, "match:lock:extend", "instance-1", time.Second)
	require.NoError(t, err)

	require.NoError(t, lock.Extend(ctx, 10*time.Second))

	ttl, err := client.TTL(ctx, "match:lock:extend").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 5*time.Second)
}
