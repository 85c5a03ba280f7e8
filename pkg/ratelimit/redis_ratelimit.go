package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter is a fixed-window limiter shared across instances.
// The kiosk order endpoint uses it so a stuck client cannot flood the
// bar queue no matter which instance it hits.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, prefix string, limit int64, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
	}
}

// Allow increments the counter for key in the current window and checks
// it against the limit. The INCR and EXPIRE run in a pipeline so the
// window key always carries a TTL.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s:%s:%d", rl.prefix, key, time.Now().Unix()/int64(rl.window.Seconds()))

	pipe := rl.client.Pipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.Expire(ctx, windowKey, rl.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= rl.limit, nil
}

// Remaining reports how many requests are left in the current window.
func (rl *RedisRateLimiter) Remaining(ctx context.Context, key string) (int64, error) {
	windowKey := fmt.Sprintf("%s:%s:%d", rl.prefix, key, time.Now().Unix()/int64(rl.window.Seconds()))

	count, err := rl.client.Get(ctx, windowKey).Int64()
	if err == redis.Nil {
		return rl.limit, nil
	}
	if err != nil {
		return 0, err
	}

	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
