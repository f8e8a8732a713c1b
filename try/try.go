// Package try provides a Try type representing the outcome of a fallible
// computation: a Success carrying a value, a Failure carrying the error the
// computation raised, or a Lazy computation that has not been attempted yet.
// It lets callers chain fallible operations (Map, FlatMap, Filter, Recover)
// without branching on errors at every step.
//
// A computation raises a fault either by returning a non-nil error or by
// panicking. Classification happens at the moment the fault is raised:
// returned errors and panics whose payload implements error are recoverable
// and are captured as Failure values; a panic carrying anything else (a
// string, an int, ...) is fatal and re-panics unmodified out of every
// constructor and combinator. Faults the Go runtime refuses to recover at
// all (out of memory, stack exhaustion) remain fatal by construction.
//
// Success and Failure are terminal: they never change after construction,
// and every combinator returns a fresh value. A Lazy is forced anew by every
// operation invoked on it, so a computation with side effects repeats them
// once per call. If at-most-once evaluation is wanted, layer it on top with
// the lazy package instead.
package try

import (
	"errors"
	"fmt"

	"github.com/amp-labs/amp-try/optional"
)

// ErrPredicateNotSatisfied is carried by the Failure that Filter produces
// when the predicate rejects a Success value. The rejected value is included
// in the message; use errors.Is to detect the rejection.
var ErrPredicateNotSatisfied = errors.New("predicate not satisfied")

// Try holds the outcome of a computation that can fail. Exactly one of the
// three states is active at any time: Success, Failure, or Lazy. The zero
// value is a Success holding the zero value of T.
//
// Instances are immutable and safe to copy. A resolved Try may be read from
// multiple goroutines; a Lazy is only as safe to force concurrently as its
// underlying computation is to invoke concurrently.
type Try[T any] struct {
	value T
	err   error
	thunk func() (T, error)
}

// Success returns a resolved Try holding the given value.
func Success[T any](value T) Try[T] {
	return Try[T]{value: value}
}

// Failure returns a resolved Try holding the given error.
// A nil error is constructor misuse and panics.
func Failure[T any](err error) Try[T] {
	if err == nil {
		panic("try: Failure called with a nil error")
	}

	return Try[T]{err: err}
}

// New builds a resolved Try from a (value, error) pair, following Go's usual
// return convention: a non-nil error produces a Failure, otherwise a Success.
func New[T any](value T, err error) Try[T] {
	if err != nil {
		return Failure[T](err)
	}

	return Success(value)
}

// Of runs the computation immediately, on the caller's own stack, and
// classifies its outcome: a Success for a returned value, a Failure for a
// recoverable fault, and a re-panic for a fatal one.
// A nil computation is constructor misuse and panics.
func Of[T any](f func() (T, error)) Try[T] {
	if f == nil {
		panic("try: Of called with a nil computation")
	}

	return evaluate(f)
}

// Lazy wraps the computation without running it. No work happens and no
// fault can be raised until the Try is forced, either via Run or implicitly
// by any other operation. Forcing re-runs the computation every single time;
// outcomes are never cached, so observable side effects repeat once per
// operation call.
// A nil computation is constructor misuse and panics.
func Lazy[T any](f func() (T, error)) Try[T] {
	if f == nil {
		panic("try: Lazy called with a nil computation")
	}

	return Try[T]{thunk: f}
}

// evaluate is the single classification point. Every path that invokes a
// caller-supplied computation goes through here (or through join, its
// Try-returning sibling), so the fatal/recoverable decision is made exactly
// once, uniformly, at the moment a fault is raised.
func evaluate[T any](f func() (T, error)) (out Try[T]) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				// Fatal: not an error value, propagate untouched.
				panic(r)
			}

			out = Try[T]{err: err}
		}
	}()

	value, err := f()
	if err != nil {
		return Try[T]{err: err}
	}

	return Try[T]{value: value}
}

// join invokes a callback that returns a Try of its own. The returned Try is
// passed through without re-wrapping; only faults raised by the callback
// itself are classified.
func join[T any](f func() Try[T]) (out Try[T]) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				panic(r)
			}

			out = Try[T]{err: err}
		}
	}()

	return f()
}

// Run resolves the Try. Success and Failure return themselves unchanged; a
// Lazy runs its computation and classifies the outcome.
func (t Try[T]) Run() Try[T] {
	if t.thunk != nil {
		return evaluate(t.thunk)
	}

	return t
}

// IsSuccess reports whether the computation produced a value.
// A Lazy is forced first.
func (t Try[T]) IsSuccess() bool {
	return t.Run().err == nil
}

// IsFailure reports whether the computation raised a recoverable fault.
// A Lazy is forced first.
func (t Try[T]) IsFailure() bool {
	return !t.IsSuccess()
}

// Get returns the value of a Success, or the original captured error of a
// Failure with the zero value of T.
func (t Try[T]) Get() (T, error) { //nolint:ireturn
	resolved := t.Run()
	if resolved.err != nil {
		var zero T

		return zero, resolved.err
	}

	return resolved.value, nil
}

// MustGet returns the value of a Success, or panics with the captured error
// of a Failure. Use this only when a Failure would be a programming mistake.
func (t Try[T]) MustGet() T { //nolint:ireturn
	resolved := t.Run()
	if resolved.err != nil {
		panic(resolved.err)
	}

	return resolved.value
}

// GetOrElse returns the value of a Success, or defaultValue for a Failure.
func (t Try[T]) GetOrElse(defaultValue T) T { //nolint:ireturn
	resolved := t.Run()
	if resolved.err != nil {
		return defaultValue
	}

	return resolved.value
}

// GetOrElseFunc returns the value of a Success, or calls defaultFunc for a
// Failure. Useful when the default is expensive to build.
func (t Try[T]) GetOrElseFunc(defaultFunc func() T) T { //nolint:ireturn
	resolved := t.Run()
	if resolved.err != nil {
		return defaultFunc()
	}

	return resolved.value
}

// OrElse returns the resolved Try if it is a Success, or alternative for a
// Failure. The alternative is returned as-is and is not forced here.
func (t Try[T]) OrElse(alternative Try[T]) Try[T] {
	resolved := t.Run()
	if resolved.err != nil {
		return alternative
	}

	return resolved
}

// ForEach invokes f with the value of a Success, purely for its side effect.
// A Failure is ignored and f is never invoked. Faults raised by f are not
// classified and propagate to the caller.
func (t Try[T]) ForEach(f func(T)) {
	resolved := t.Run()
	if resolved.err == nil {
		f(resolved.value)
	}
}

// Filter keeps a Success whose value satisfies the predicate. Rejection
// produces a Failure wrapping ErrPredicateNotSatisfied. A predicate that
// raises a recoverable fault produces a Failure of that fault instead, the
// same way Of would. A Failure passes through unchanged.
func (t Try[T]) Filter(predicate func(T) bool) Try[T] {
	resolved := t.Run()
	if resolved.err != nil {
		return resolved
	}

	return evaluate(func() (T, error) {
		if !predicate(resolved.value) {
			var zero T

			return zero, fmt.Errorf("%w: %v", ErrPredicateNotSatisfied, resolved.value)
		}

		return resolved.value, nil
	})
}

// Recover turns a Failure back into a Try by running f through the
// classifying path, exactly as Of would: returned errors and recoverable
// panics become a new Failure. A Success is returned unchanged and f is
// never invoked.
func (t Try[T]) Recover(f func(error) (T, error)) Try[T] {
	resolved := t.Run()
	if resolved.err == nil {
		return resolved
	}

	return evaluate(func() (T, error) {
		return f(resolved.err)
	})
}

// RecoverWith turns a Failure into whatever Try f returns, without
// re-wrapping it. Only faults raised by f itself are classified. A Success
// is returned unchanged and f is never invoked.
func (t Try[T]) RecoverWith(f func(error) Try[T]) Try[T] {
	resolved := t.Run()
	if resolved.err == nil {
		return resolved
	}

	return join(func() Try[T] {
		return f(resolved.err)
	})
}

// ToOptional converts a Success into Some and a Failure into None,
// discarding the error.
func (t Try[T]) ToOptional() optional.Value[T] {
	resolved := t.Run()
	if resolved.err != nil {
		return optional.None[T]()
	}

	return optional.Some(resolved.value)
}

// Failed inverts the Try: a Failure becomes a Success holding its error as
// an ordinary value, and a Success becomes a Failure wrapping
// errors.ErrUnsupported.
func (t Try[T]) Failed() Try[error] {
	resolved := t.Run()
	if resolved.err != nil {
		return Success(resolved.err)
	}

	return Failure[error](fmt.Errorf("%w: Failed called on a Success", errors.ErrUnsupported))
}

// String renders the Try for debugging as "Success(v)", "Failure(err)" or
// "Lazy(<deferred>)". It deliberately does not force a Lazy, so printing a
// Try never runs the deferred computation or its side effects.
func (t Try[T]) String() string {
	switch {
	case t.thunk != nil:
		return "Lazy(<deferred>)"
	case t.err != nil:
		return fmt.Sprintf("Failure(%v)", t.err)
	default:
		return fmt.Sprintf("Success(%v)", t.value)
	}
}
