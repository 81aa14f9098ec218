package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trendmart/storefront-client/internal/config"
)

// Limiter throttles mutating actions per user with a Redis sliding window, so
// the guard holds across gateway replicas.
type Limiter struct {
	client *redis.Client
	cfg    *config.RateConfig
}

func New(client *redis.Client, cfg *config.RateConfig) *Limiter {
	return &Limiter{client: client, cfg: cfg}
}

// Allow records one action attempt and reports whether the user is within the
// window. Returns allowed, attempts remaining, and seconds until the window
// frees up when blocked.
func (l *Limiter) Allow(ctx context.Context, userID string) (bool, int64, int, error) {

	key := fmt.Sprintf("action_attempts:%s", userID)

	now := time.Now().UnixNano()
	windowStart := now - l.cfg.WindowSize.Nanoseconds()

	pipe := l.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.cfg.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, err
	}

	attempts := count.Val()
	remaining := l.cfg.MaxActions - attempts

	if attempts > l.cfg.MaxActions {

		oldest, err := l.client.ZRange(ctx, key, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, 0, int(l.cfg.WindowSize.Seconds()), err
		}

		var oldestNano int64

		fmt.Sscanf(oldest[0], "%d", &oldestNano)

		retryAfter := time.Duration(oldestNano-windowStart) * time.Nanosecond

		return false, 0, int(retryAfter.Seconds()) + 1, nil
	}

	if remaining < 0 {
		remaining = 0
	}

	return true, remaining, 0, nil
}
