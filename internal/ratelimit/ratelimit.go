// Package ratelimit implements fixed-window rate limiting backed by Redis.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Limiter admits or rejects one action by subject within scope.
type Limiter interface {
	Allow(ctx context.Context, scope, subject string) error
}

// Noop admits everything. It is used when Redis is not configured.
type Noop struct{}

// Allow always returns nil.
func (Noop) Allow(context.Context, string, string) error { return nil }

// RedisLimiter counts actions per scope and subject in fixed windows.
type RedisLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter allows limit actions per window for every subject.
func NewRedisLimiter(client redis.UniversalClient, prefix string, limit int, window time.Duration) *RedisLimiter {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "settlement:rate_limit"
	}

	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow consumes one slot and returns a rate_limited error once the window
// is exhausted. Redis failures are returned as service_unavailable so the
// caller decides whether to fail open.
func (r *RedisLimiter) Allow(ctx context.Context, scope, subject string) error {
	count, retryAfter, err := r.Consume(ctx, scope, subject)
	if err != nil {
		return apperror.Wrap(apperror.KindServiceUnavailable, err, "")
	}
	if count > r.limit {
		return apperror.Classify(apperror.KindRateLimited, apperror.Overrides{
			Context: map[string]any{
				"scope":      scope,
				"limit":      r.limit,
				"retryAfter": retryAfter,
			},
		})
	}
	return nil
}

// Consume increments the counter and returns the count in the current window
// and the seconds until the window resets.
func (r *RedisLimiter) Consume(ctx context.Context, scope, subject string) (count int, retryAfterSeconds int, err error) {
	if r == nil || r.client == nil || r.limit <= 0 || r.window <= 0 {
		return 0, 0, nil
	}

	key, ok := r.key(scope, subject)
	if !ok {
		return 0, 0, nil
	}

	windowMs := r.window.Milliseconds()
	if windowMs < 1000 {
		windowMs = 1000
	}

	raw, err := fixedWindowScript.Run(ctx, r.client, []string{key}, windowMs).Result()
	if err != nil {
		return 0, 0, err
	}
	return parseResult(raw, windowMs)
}

func (r *RedisLimiter) key(scope, subject string) (string, bool) {
	scope = strings.TrimSpace(scope)
	subject = strings.TrimSpace(subject)
	if scope == "" || subject == "" {
		return "", false
	}
	return fmt.Sprintf("%s:%s:%s", r.prefix, scope, subject), true
}

func parseResult(raw any, windowMs int64) (int, int, error) {
	values, ok := raw.([]any)
	if !ok || len(values) != 2 {
		return 0, 0, fmt.Errorf("unexpected redis limiter response shape: %T", raw)
	}

	count, ok := values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected redis limiter count type: %T", values[0])
	}

	ttlMs, ok := values[1].(int64)
	if !ok {
		return int(count), 0, fmt.Errorf("unexpected redis limiter ttl type: %T", values[1])
	}
	if ttlMs < 0 {
		ttlMs = windowMs
	}

	retryAfter := int(math.Ceil(float64(ttlMs) / 1000.0))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return int(count), retryAfter, nil
}

// NewClient parses a redis:// URL into a client.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
