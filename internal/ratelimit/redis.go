package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultPrefix = "portal:login"

var slidingWindowScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", now - window)
local count = redis.call("ZCARD", KEYS[1])
if count < limit then
  redis.call("ZADD", KEYS[1], now, ARGV[4])
  redis.call("PEXPIRE", KEYS[1], window)
  return {1, 0}
end
local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
return {0, tonumber(oldest[2]) + window - now}
`)

// Redis is a rolling-window limiter shared by every replica. It fails open: when
// Redis is unreachable the attempt is allowed and the error is logged.
type Redis struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedis(client redis.UniversalClient, limit int, window time.Duration) *Redis {
	return &Redis{
		client: client,
		prefix: defaultPrefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// NewRedisFromURL parses a redis:// URL and builds a limiter over a fresh client.
func NewRedisFromURL(url string, limit int, window time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(url))
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opts), limit, window), nil
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	windowMs := r.window.Milliseconds()
	raw, err := slidingWindowScript.Run(ctx, r.client,
		[]string{r.prefix + ":" + key},
		r.now().UnixMilli(), windowMs, r.limit, uuid.NewString(),
	).Result()
	if err != nil {
		zap.L().Warn("rate limiter unavailable, allowing attempt", zap.Error(err))
		return true, 0, nil
	}

	allowed, retryAfterMs, err := parseResult(raw)
	if err != nil {
		zap.L().Warn("rate limiter returned unexpected result, allowing attempt", zap.Error(err))
		return true, 0, nil
	}
	return allowed, time.Duration(retryAfterMs) * time.Millisecond, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func parseResult(raw any) (bool, int64, error) {
	values, ok := raw.([]any)
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected redis limiter response shape: %T", raw)
	}
	flag, ok := values[0].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected redis limiter flag type: %T", values[0])
	}
	retryAfter, ok := values[1].(int64)
	if !ok {
		return false, 0, fmt.Errorf("unexpected redis limiter retry type: %T", values[1])
	}
	if retryAfter < 0 {
		retryAfter = 0
	}
	return flag == 1, retryAfter, nil
}
