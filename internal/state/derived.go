package state

import (
	"sync"
)

// Derived is a memoized projection over a Cell. Get recomputes only when
// the source version has advanced since the last computation, so reads
// between mutations are cache hits.
type Derived[S, R any] struct {
	source  *Cell[S]
	compute func(S) R

	mu     sync.Mutex
	cached R
	seen   uint64
}

func Derive[S, R any](source *Cell[S], compute func(S) R) *Derived[S, R] {
	return &Derived[S, R]{source: source, compute: compute}
}

func (d *Derived[S, R]) Get() R {
	src, v := d.source.snapshot()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen != v {
		d.cached = d.compute(src)
		d.seen = v
	}
	return d.cached
}
