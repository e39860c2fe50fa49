// Package lock provides the advisory per-table write lock backed by
// redis. The store has no row-level locking, so every table writer
// takes this lock first (single-writer rule).
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"rapport-backend/pkg/id"
)

const (
	keyPrefix     = "rapport:lock:"
	retryInterval = 100 * time.Millisecond
)

var ErrNotAcquired = errors.New("advisory lock not acquired")

type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

// Lock blocks until the named lock is acquired or ctx expires. The
// returned unlock releases only our own hold (owner token check).
func (l *RedisLocker) Lock(ctx context.Context, name string) (func(), error) {
	key := keyPrefix + name
	owner := id.NewID32()
	for {
		ok, err := l.rdb.SetNX(ctx, key, owner, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAcquired, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrNotAcquired, ctx.Err())
		case <-time.After(retryInterval):
		}
	}
	unlock := func() {
		// delete only if we still own the lock
		const script = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`
		_ = l.rdb.Eval(context.Background(), script, []string{key}, owner).Err()
	}
	return unlock, nil
}
