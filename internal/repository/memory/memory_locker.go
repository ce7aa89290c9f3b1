package memory

import (
	"context"
	"sync"
	"time"

	"ai-schoolplay-be/pkg/redislock"
)

// MemoryLocker is a single-process implementation of the document lock
// contract. It backs tests and the no-Redis development setup; deployments
// with more than one instance must use the Redis locker.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{
		locks: make(map[string]struct{}),
	}
}

func (l *MemoryLocker) tryAcquire(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locks[key]; held {
		return false
	}
	l.locks[key] = struct{}{}
	return true
}

func (l *MemoryLocker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, key)
}

// WithLock runs fn while holding the named lock, polling up to wait before
// giving up with redislock.ErrLockTimeout. The ttl parameter is ignored
// here; an in-process lock cannot leak past the process.
func (l *MemoryLocker) WithLock(ctx context.Context, key string, ttl, wait time.Duration, fn func() error) error {
	deadline := time.Now().Add(wait)
	for !l.tryAcquire(key) {
		if time.Now().After(deadline) {
			return redislock.ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	defer l.release(key)
	return fn()
}
