package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// AttemptLimiter counts failed verification attempts per claim token
type AttemptLimiter interface {
	Exceeded(ctx context.Context, token string) (bool, error)
	RecordFailure(ctx context.Context, token string) error
	Reset(ctx context.Context, token string) error
}

// counterStore is the subset of the Redis client used for counting
type counterStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisAttemptLimiter allows max failures per token within window
type RedisAttemptLimiter struct {
	store  counterStore
	max    int
	window time.Duration
}

func NewRedisAttemptLimiter(client *redis.Client, max int, window time.Duration) *RedisAttemptLimiter {
	return newRedisAttemptLimiter(client, max, window)
}

func newRedisAttemptLimiter(store counterStore, max int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{store: store, max: max, window: window}
}

func attemptsKey(token string) string {
	return "verify_attempts:" + token
}

func (l *RedisAttemptLimiter) Exceeded(ctx context.Context, token string) (bool, error) {
	val, err := l.store.Get(ctx, attemptsKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	attempts, err := strconv.Atoi(val)
	if err != nil {
		return false, err
	}
	return attempts >= l.max, nil
}

func (l *RedisAttemptLimiter) RecordFailure(ctx context.Context, token string) error {
	key := attemptsKey(token)
	attempts, err := l.store.Incr(ctx, key).Result()
	if err != nil {
		return err
	}

	// Set expiry if first attempt
	if attempts == 1 {
		return l.store.Expire(ctx, key, l.window).Err()
	}
	return nil
}

func (l *RedisAttemptLimiter) Reset(ctx context.Context, token string) error {
	return l.store.Del(ctx, attemptsKey(token)).Err()
}

// NoopAttemptLimiter never limits
type NoopAttemptLimiter struct{}

func (NoopAttemptLimiter) Exceeded(context.Context, string) (bool, error) { return false, nil }
func (NoopAttemptLimiter) RecordFailure(context.Context, string) error   { return nil }
func (NoopAttemptLimiter) Reset(context.Context, string) error           { return nil }
