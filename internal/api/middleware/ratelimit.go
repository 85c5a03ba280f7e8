package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/ratelimit"
)

// IPKeyFunc keys a limiter by client IP, for endpoints hit before login.
func IPKeyFunc(c *gin.Context) string {
	return fmt.Sprintf("ip:%s", c.ClientIP())
}

// UserKeyFunc keys a limiter by authenticated user. Must run after Auth.
func UserKeyFunc(c *gin.Context) string {
	if userID, exists := c.Get("userId"); exists {
		return fmt.Sprintf("user:%v", userID)
	}
	return IPKeyFunc(c)
}

// RateLimit applies an in-process token bucket per key.
func RateLimit(limiter *ratelimit.Limiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(keyFunc(c)) {
			c.Header("Retry-After", "1")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthRateLimit slows password guessing: 5 attempts, refilling one every
// 12 seconds, per IP.
func AuthRateLimit() gin.HandlerFunc {
	return RateLimit(ratelimit.NewLimiter(5, 1.0/12), IPKeyFunc)
}

// RedisRateLimit applies a fixed-window limit shared across instances.
// Redis errors fail open: a broken limiter should not take the API down.
func RedisRateLimit(limiter *ratelimit.RedisRateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		allowed, err := limiter.Allow(ctx, keyFunc(c))
		if err != nil {
			logger.Warn("Rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", "60")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
