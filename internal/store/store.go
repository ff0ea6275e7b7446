// Package store holds the canonical in-memory state of every entity
// collection. Each store owns one observable collection, mutates it
// copy-on-write, persists every mutation to the local cache, and for
// the shared collections writes remote-first with a local fallback
// when the remote document database is unreachable.
package store

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title must not be empty")
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNotAuthenticated = errors.New("you must be signed in to do that")
)

// KeyValue is the local durable cache a store serializes its collection
// into after every mutation.
type KeyValue interface {
	Save(ctx context.Context, key string, v any) error
	Load(ctx context.Context, key string, dest any) error
}

func newID() string {
	return uuid.NewString()
}

// touch returns the current time, bumped to stay strictly after prev so
// updatedAt always advances even under a coarse clock.
func touch(prev time.Time) time.Time {
	now := time.Now()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

// saver returns a subscription callback that snapshots the collection
// into the cache under key. Cache errors are logged, never surfaced: a
// failed snapshot must not block a mutation that already happened.
func saver[T any](cache KeyValue, key string, logger *log.Logger) func(T) {
	return func(v T) {
		if cache == nil {
			return
		}
		if err := cache.Save(context.Background(), key, v); err != nil {
			logger.Printf("⚠️  failed to cache %s: %v", key, err)
		}
	}
}

func ensureLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
