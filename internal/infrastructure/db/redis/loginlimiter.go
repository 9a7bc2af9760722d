package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultWindow   = time.Minute
	defaultAttempts = 10
)

// LoginLimiter throttles credential-guessing by counting auth attempts per
// client key in a fixed Redis window.
// Key format: authlimit:<client_key>
type LoginLimiter struct {
	client   *redis.Client
	window   time.Duration
	attempts int64
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
// Non-positive window or attempts fall back to the defaults.
func NewLoginLimiter(client *redis.Client, window time.Duration, attempts int64) *LoginLimiter {
	if window <= 0 {
		window = defaultWindow
	}
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	return &LoginLimiter{client: client, window: window, attempts: attempts}
}

// Allow records one attempt for key and reports whether it is still within
// budget. The counter expires after the window, so a quiet client resets.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("authlimit:%s", key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("login limiter incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return count <= l.attempts, nil
}
