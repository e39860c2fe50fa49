package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLocker(rdb, 30*time.Second), s
}

func TestLockUnlock(t *testing.T) {
	l, s := newLocker(t)
	unlock, err := l.Lock(context.Background(), "Reports")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if !s.Exists("rapport:lock:Reports") {
		t.Fatal("lock key missing")
	}
	unlock()
	if s.Exists("rapport:lock:Reports") {
		t.Fatal("lock key survived unlock")
	}
}

func TestLock_BlocksUntilReleasedOrCtxDone(t *testing.T) {
	l, _ := newLocker(t)
	unlock, err := l.Lock(context.Background(), "Reports")
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, "Reports"); err == nil {
		t.Fatal("second Lock should fail while held")
	}

	unlock()
	unlock2, err := l.Lock(context.Background(), "Reports")
	if err != nil {
		t.Fatalf("Lock after release: %v", err)
	}
	unlock2()
}

func TestLock_DistinctNamesIndependent(t *testing.T) {
	l, _ := newLocker(t)
	u1, err := l.Lock(context.Background(), "Reports")
	if err != nil {
		t.Fatal(err)
	}
	defer u1()
	u2, err := l.Lock(context.Background(), "WeeklySignatures")
	if err != nil {
		t.Fatalf("independent lock blocked: %v", err)
	}
	u2()
}
