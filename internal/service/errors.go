package service

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrPackNotReady     = errors.New("learning pack not generated yet")
	ErrRescanNotAllowed = errors.New("rescan not allowed in the current state")
)

// DocumentLocker serializes concurrent human actions (confirm/rescan) on one
// document. Implementations: redislock.Locker in production, an in-process
// locker in tests. A bounded wait that elapses yields
// redislock.ErrLockTimeout without running fn.
type DocumentLocker interface {
	WithLock(ctx context.Context, key string, ttl, wait time.Duration, fn func() error) error
}
