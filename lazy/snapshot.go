package lazy

import (
	"sync"
	"sync/atomic"

	"github.com/amp-labs/amp-try/try"
)

// OfTry is a memoizing snapshot of a try.Try. The first Get forces the
// wrapped Try exactly once and caches the resulting terminal outcome,
// success and failure alike. Later calls return the cached terminal without
// touching the computation again.
//
// This is the layered memoization for deferred Tries: try.Lazy itself
// re-runs its computation on every force, and code that wants a
// point-in-time snapshot wraps it here instead.
type OfTry[T any] struct {
	source try.Try[T]
	result try.Try[T]

	mu    sync.Mutex
	taken atomic.Bool
}

// NewTry wraps a Try without forcing it. An already resolved Try is simply
// snapshotted as itself on first Get.
func NewTry[T any](t try.Try[T]) *OfTry[T] {
	return &OfTry[T]{source: t}
}

// Get returns the snapshot, forcing the wrapped Try on first use. A fatal
// panic during forcing propagates without memoizing anything, so a later
// Get retries the capture.
func (t *OfTry[T]) Get() try.Try[T] {
	if t.taken.Load() {
		return t.result
	}

	return t.capture()
}

func (t *OfTry[T]) capture() try.Try[T] {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.taken.Load() {
		return t.result
	}

	t.result = t.source.Run()
	t.taken.Store(true)

	return t.result
}

// Taken reports whether the snapshot has been captured. Intended for tests
// and debugging rather than normal control flow.
func (t *OfTry[T]) Taken() bool {
	return t.taken.Load()
}
