package sessionguard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionBusy means another turn is already in flight for the session.
var ErrSessionBusy = errors.New("a turn is already in progress for this session")

// Locker serializes turns per session id. Different sessions never contend.
type Locker interface {
	// Acquire takes the lock for sessionId and returns a release func.
	Acquire(ctx context.Context, sessionId string) (func(), error)
}

// RedisLocker implements Locker with SETNX + TTL so locks survive across
// instances and cannot outlive a crashed turn.
type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, sessionId string) (func(), error) {
	key := "agent:turn-lock:" + sessionId
	ok, err := l.rdb.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	return func() {
		// Release on a fresh context: the turn context may already be done.
		l.rdb.Del(context.Background(), key)
	}, nil
}

// MemoryLocker is the in-process fallback when Redis is not configured.
type MemoryLocker struct {
	mu     sync.Mutex
	locked map[string]bool
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locked: make(map[string]bool)}
}

func (l *MemoryLocker) Acquire(ctx context.Context, sessionId string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked[sessionId] {
		return nil, ErrSessionBusy
	}
	l.locked[sessionId] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.locked, sessionId)
	}, nil
}
