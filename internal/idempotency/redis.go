package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "idempotency:"
	lockPrefix = "idempotency-lock:"
)

// RedisStore keeps responses in redis and guards keys with redislock.
type RedisStore struct {
	client  *redis.Client
	locker  *redislock.Client
	ttl     time.Duration
	lockTTL time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		locker:  redislock.New(client),
		ttl:     ttl,
		lockTTL: 30 * time.Second,
	}
}

func (s *RedisStore) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := s.locker.Obtain(ctx, lockPrefix+key, s.lockTTL, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrInProgress
		}

		return nil, fmt.Errorf("obtaining idempotency lock: %w", err)
	}

	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("releasing idempotency lock: %w", err)
		}

		return nil
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Response, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("reading idempotent response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, false, fmt.Errorf("decoding idempotent response: %w", err)
	}

	return &resp, true, nil
}

func (s *RedisStore) Save(ctx context.Context, key string, resp *Response) error {
	val, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encoding idempotent response: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+key, val, s.ttl).Err(); err != nil {
		return fmt.Errorf("storing idempotent response: %w", err)
	}

	return nil
}
