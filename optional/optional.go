// Package optional provides a type-safe container for a value that may be
// absent, modeling presence explicitly instead of leaning on nil pointers.
// A Value is conceptually a set of size zero or one.
package optional

import (
	"fmt"
	"iter"
)

// Value holds either one value of type T or nothing. Build one with
// Some(value) or None(); the zero value behaves like None.
type Value[T any] struct {
	value T
	isSet bool
}

// Some returns a Value holding the given value.
func Some[T any](value T) Value[T] {
	return Value[T]{value: value, isSet: true}
}

// None returns an empty Value.
func None[T any]() Value[T] {
	return Value[T]{}
}

// NonEmpty reports whether a value is present.
func (o Value[T]) NonEmpty() bool {
	return o.isSet
}

// Empty reports whether the Value holds nothing.
func (o Value[T]) Empty() bool {
	return !o.isSet
}

// Size returns the size of the Value viewed as a set: 1 when a value is
// present, 0 otherwise.
func (o Value[T]) Size() int {
	if o.isSet {
		return 1
	}

	return 0
}

// Get returns the value together with a flag reporting whether it was
// present. This is the safe extraction path.
func (o Value[T]) Get() (T, bool) { //nolint:ireturn
	return o.value, o.isSet
}

// GetOrPanic returns the value, panicking when the Value is empty.
// Only use this when absence would be a programming mistake.
func (o Value[T]) GetOrPanic() T { //nolint:ireturn
	if !o.isSet {
		panic("called GetOrPanic on None")
	}

	return o.value
}

// GetOrElse returns the value when present, or defaultValue otherwise.
func (o Value[T]) GetOrElse(defaultValue T) T { //nolint:ireturn
	if o.isSet {
		return o.value
	}

	return defaultValue
}

// GetOrElseFunc returns the value when present, or computes a default by
// calling defaultFunc. Useful when the default is expensive to build.
func (o Value[T]) GetOrElseFunc(defaultFunc func() T) T { //nolint:ireturn
	if o.isSet {
		return o.value
	}

	return defaultFunc()
}

// OrElse returns this Value when it holds a value, or alternative otherwise.
func (o Value[T]) OrElse(alternative Value[T]) Value[T] {
	if o.isSet {
		return o
	}

	return alternative
}

// OrElseFunc returns this Value when it holds a value, or computes an
// alternative by calling alternativeFunc.
func (o Value[T]) OrElseFunc(alternativeFunc func() Value[T]) Value[T] {
	if o.isSet {
		return o
	}

	return alternativeFunc()
}

// All returns an iterator yielding the value when present and nothing
// otherwise, so a Value can be used directly in a range loop.
func (o Value[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if o.isSet {
			yield(o.value)
		}
	}
}

// ForEach applies f to the value when present and does nothing otherwise.
func (o Value[T]) ForEach(f func(T)) {
	for v := range o.All() {
		f(v)
	}
}

// Filter keeps the Value when its value satisfies the predicate, and
// returns None otherwise.
func (o Value[T]) Filter(predicate func(T) bool) Value[T] {
	if o.isSet && predicate(o.value) {
		return o
	}

	return None[T]()
}

// Equals compares two Values with the given equality function. Two empty
// Values are equal; an empty and a non-empty Value never are.
func (o Value[T]) Equals(other Value[T], eq func(T, T) bool) bool {
	if o.isSet != other.isSet {
		return false
	}

	if !o.isSet {
		return true
	}

	return eq(o.value, other.value)
}

// String renders the Value as "Some(value)" or "None".
func (o Value[T]) String() string {
	if o.isSet {
		return fmt.Sprintf("Some(%v)", o.value)
	}

	return "None"
}

// Map transforms the contained value with f, producing Some(f(value)) when
// present and None otherwise. It lives at package level because methods
// cannot introduce new type parameters.
func Map[T any, U any](o Value[T], f func(T) U) Value[U] {
	if o.isSet {
		return Some(f(o.value))
	}

	return None[U]()
}

// FlatMap transforms the contained value with a function that itself
// returns a Value, avoiding nested optionals when chaining.
func FlatMap[T any, U any](o Value[T], f func(T) Value[U]) Value[U] {
	if o.isSet {
		return f(o.value)
	}

	return None[U]()
}
