package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptsPrefix = "login_attempts:"

// LoginThrottle limits login attempts per key over a fixed window. Every
// attempt is counted; a successful login resets the counter. A nil throttle,
// or one without a client, allows everything.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle builds a Redis-backed throttle.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.client != nil && t.maxAttempts > 0
}

// Hit records an attempt for key and reports whether it is within the limit.
// The decision is taken from the incremented count, so concurrent attempts
// cannot all slip under the limit. The window starts at the first attempt.
// On Redis errors the attempt is allowed and the error returned.
func (t *LoginThrottle) Hit(ctx context.Context, key string) (bool, error) {
	if !t.enabled() {
		return true, nil
	}
	redisKey := loginAttemptsPrefix + key
	count, err := t.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := t.client.Expire(ctx, redisKey, t.window).Err(); err != nil {
			return true, err
		}
	}
	return count <= int64(t.maxAttempts), nil
}

// Reset clears the attempt counter for key.
func (t *LoginThrottle) Reset(ctx context.Context, key string) error {
	if !t.enabled() {
		return nil
	}
	return t.client.Del(ctx, loginAttemptsPrefix+key).Err()
}
