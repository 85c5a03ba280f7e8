package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketAllow(t *testing.T) {
	tb := NewTokenBucket(3, 0)

	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestTokenBucketRefill(t *testing.T) {
	tb := NewTokenBucket(1, 20)

	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	time.Sleep(100 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestTokenBucketAllowN(t *testing.T) {
	tb := NewTokenBucket(5, 0)

	assert.True(t, tb.AllowN(3))
	assert.False(t, tb.AllowN(3))
	assert.True(t, tb.AllowN(2))
}

func TestLimiterPerKey(t *testing.T) {
	l := NewLimiter(1, 0)

	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))

	// A different key gets its own bucket.
	assert.True(t, l.Allow("10.0.0.2"))
}
