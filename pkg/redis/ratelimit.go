package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-key request counter backed by redis, so
// the limit holds across instances instead of living in one process's
// memory. The zero count and window expiry are managed entirely in redis.
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewRateLimiter builds a limiter allowing max requests per window per key.
func NewRateLimiter(client *redis.Client, max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		max:    int64(max),
		window: window,
	}
}

// Allow counts one request for the key (normally a client IP) and reports
// whether it is within the window's allowance. A redis failure is returned to
// the caller rather than silently letting traffic through.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("increment rate counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("set rate counter expiry: %w", err)
		}
	}

	return count <= l.max, nil
}
