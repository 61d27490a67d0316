package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	return &RedisRateLimiter{client: client}
}

// Allow records the request and checks the sliding window in one pipeline.
// Member scores are request timestamps in nanoseconds; entries older than the
// window are pruned on every call.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string, cfg Config) (bool, error) {
	if cfg.Limit <= 0 {
		return true, nil
	}

	now := time.Now()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, int64(cfg.Window.Seconds()))
	windowStart := now.Add(-cfg.Window).UnixNano()
	nowNano := now.UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	zcard := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(nowNano), Member: nowNano})
	pipe.Expire(ctx, redisKey, cfg.Window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	return zcard.Val() < int64(cfg.Limit), nil
}
