// Package state implements the observable single-value containers the
// stores are built on: a Cell holds one value and pushes updates to
// subscribers, a Derived view recomputes lazily when its source changes.
package state

import (
	"sync"
)

// Cell is an observable state container. Reads return the current value,
// writes replace it and notify subscribers synchronously. Values are
// treated as immutable: Update must return a fresh value rather than
// mutate the old one in place.
type Cell[T any] struct {
	mu      sync.RWMutex
	value   T
	version uint64
	subs    map[int]func(T)
	nextSub int
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial, version: 1}
}

func (c *Cell[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Version increases on every write. Derived views use it to decide
// whether their cached result is stale.
func (c *Cell[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

func (c *Cell[T]) snapshot() (T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.version
}

func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.version++
	subs := make([]func(T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies a copy-on-write transformation under the write lock.
func (c *Cell[T]) Update(fn func(T) T) {
	c.mu.Lock()
	c.value = fn(c.value)
	c.version++
	v := c.value
	subs := make([]func(T), 0, len(c.subs))
	for _, s := range c.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	for _, s := range subs {
		s(v)
	}
}

// Subscribe registers fn to run after every write. The returned func
// removes the subscription.
func (c *Cell[T]) Subscribe(fn func(T)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.subs == nil {
		c.subs = make(map[int]func(T))
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
