// Package lazy provides at-most-once initialization wrappers: a value that
// is computed the first time it is needed and cached from then on. This is
// the memoizing counterpart to the try package's call-by-name Lazy variant,
// which deliberately re-runs its computation on every force.
package lazy

import (
	"sync"
	"sync/atomic"
)

// Of holds a value that is initialized at most once, on first access.
//
// Initialization uses double-checked locking rather than sync.Once: done is
// only flipped after the initializer returns, so a panicking initializer
// leaves the wrapper untouched and a later Get retries it.
type Of[T any] struct {
	create func() T
	value  T

	mu   sync.Mutex
	done atomic.Bool
}

// New wraps an initializer. It is not called until the first Get.
func New[T any](f func() T) *Of[T] {
	return &Of[T]{create: f}
}

// Get returns the value, running the initializer first if it has not run
// yet. A panic from the initializer propagates and nothing is memoized.
func (t *Of[T]) Get() T { //nolint:ireturn
	if t.done.Load() {
		return t.value
	}

	return t.initialize()
}

func (t *Of[T]) initialize() T { //nolint:ireturn
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done.Load() {
		return t.value
	}

	if t.create != nil {
		t.value = t.create()
		t.create = nil
	}

	t.done.Store(true)

	return t.value
}

// Set overwrites the value directly, skipping the initializer. Prefer the
// Get + callback pattern; this exists for the few cases that need it.
func (t *Of[T]) Set(value T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.create = nil
	t.value = value
	t.done.Store(true)
}

// Initialized reports whether the value has been computed. Intended for
// tests and debugging rather than normal control flow.
func (t *Of[T]) Initialized() bool {
	return t.done.Load()
}
