package lazy

import (
	"sync"
	"sync/atomic"
)

// OfErr holds a value whose initializer can fail. Successful results are
// memoized; errors are not, so a failed initialization is retried on the
// next Get.
//
// It shares Of's double-checked locking shape: done flips only after a
// successful run, which makes error and panic retry fall out of the
// structure instead of needing any state reset.
type OfErr[T any] struct {
	create func() (T, error)
	value  T

	mu   sync.Mutex
	done atomic.Bool
}

// NewErr wraps a fallible initializer. It is not called until the first Get.
func NewErr[T any](f func() (T, error)) *OfErr[T] {
	return &OfErr[T]{create: f}
}

// Get returns the value, running the initializer first if no successful run
// has happened yet. An error from the initializer is returned to the caller
// and nothing is memoized; a panic likewise propagates without changing the
// wrapper, so both are retried on the next Get.
func (t *OfErr[T]) Get() (T, error) { //nolint:ireturn
	if t.done.Load() {
		return t.value, nil
	}

	return t.initialize()
}

func (t *OfErr[T]) initialize() (T, error) { //nolint:ireturn
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done.Load() {
		return t.value, nil
	}

	if t.create != nil {
		value, err := t.create()
		if err != nil {
			var zero T

			return zero, err
		}

		t.value = value
		t.create = nil
	}

	t.done.Store(true)

	return t.value, nil
}

// Set overwrites the value directly, skipping the initializer.
func (t *OfErr[T]) Set(value T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.create = nil
	t.value = value
	t.done.Store(true)
}

// Initialized reports whether a successful initialization has happened.
// Intended for tests and debugging rather than normal control flow.
func (t *OfErr[T]) Initialized() bool {
	return t.done.Load()
}
