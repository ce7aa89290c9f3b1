package redislock

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockTimeout is returned when the lock could not be acquired within the
// caller's wait budget. Callers surface it as a conflict, never a retry loop.
var ErrLockTimeout = errors.New("redislock: timed out waiting for lock")

const pollInterval = 50 * time.Millisecond

// releaseScript deletes the key only if we still own it, so an expired lock
// re-acquired by someone else is never released from under them.
const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`

// Locker hands out short-lived mutual-exclusion locks via Redis SET NX.
type Locker struct {
	rdb *redis.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{rdb: rdb}
}

// WithLock acquires the named lock (polling up to wait, held at most ttl),
// runs fn, and releases. ErrLockTimeout when the wait budget runs out.
func (l *Locker) WithLock(ctx context.Context, key string, ttl, wait time.Duration, fn func() error) error {
	token := uuid.NewString()

	deadline := time.Now().Add(wait)
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			return err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}

	defer func() {
		// Best effort: on failure the ttl still reaps the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.rdb.Eval(releaseCtx, releaseScript, []string{key}, token).Err()
	}()

	return fn()
}
