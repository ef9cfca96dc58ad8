package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"amorlias/internal/port"
)

type redisLocker struct {
	client *redislock.Client
}

// NewLocker returns a Locker backed by Redis SET NX locks.
func NewLocker(client *redis.Client) port.Locker {
	return &redisLocker{client: redislock.New(client)}
}

func (l *redisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("obtain lock %s: %w", key, err)
	}
	return func() { _ = lock.Release(context.Background()) }, true, nil
}

// LocalLocker always grants the lock. Single-instance deployments without
// Redis use it.
type LocalLocker struct{}

func (LocalLocker) TryLock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
