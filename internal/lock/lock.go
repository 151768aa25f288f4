package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the key stays held past the caller's wait budget.
var ErrNotObtained = errors.New("lock not obtained")

type Lock interface {
	Release(ctx context.Context) error
}

// Locker serializes work on a key across goroutines (and, for Redis, processes).
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}

// --- Redis ---

type RedisLocker struct {
	client  *redislock.Client
	backoff time.Duration
	retries int
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:  redislock.New(rdb),
		backoff: 100 * time.Millisecond,
		retries: 50,
	}
}

func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return lk, nil
}

// --- In-process ---

// LocalLocker is a per-key mutex for single-instance deployments and tests.
// The ttl argument is ignored: a holder keeps the key until Release. A key is
// forgotten once no holder or waiter references it.
type LocalLocker struct {
	mu   sync.Mutex
	keys map[string]*localSlot
}

type localSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{keys: make(map[string]*localSlot)}
}

func (l *LocalLocker) acquire(key string) *localSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.keys[key]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		l.keys[key] = slot
	}
	slot.refs++
	return slot
}

func (l *LocalLocker) drop(key string, slot *localSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.keys, key)
	}
}

func (l *LocalLocker) Obtain(ctx context.Context, key string, _ time.Duration) (Lock, error) {
	slot := l.acquire(key)
	select {
	case slot.ch <- struct{}{}:
		return &localLock{locker: l, key: key, slot: slot}, nil
	case <-ctx.Done():
		l.drop(key, slot)
		return nil, ErrNotObtained
	}
}

type localLock struct {
	once   sync.Once
	locker *LocalLocker
	key    string
	slot   *localSlot
}

func (l *localLock) Release(context.Context) error {
	l.once.Do(func() {
		<-l.slot.ch
		l.locker.drop(l.key, l.slot)
	})
	return nil
}
