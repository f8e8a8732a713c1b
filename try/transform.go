package try

// Methods cannot introduce new type parameters, so the type-changing
// combinators live at package level, mirroring the optional package.

// Map transforms the value of a Success through f, classifying any fault f
// raises: a returned error or a recoverable panic becomes a new Failure, a
// fatal panic propagates. A Failure passes through with its error intact and
// f is never invoked. A Lazy input is forced first.
func Map[T, U any](t Try[T], f func(T) (U, error)) Try[U] {
	resolved := t.Run()
	if resolved.err != nil {
		return Try[U]{err: resolved.err}
	}

	return evaluate(func() (U, error) {
		return f(resolved.value)
	})
}

// FlatMap transforms the value of a Success through f and returns the Try f
// produced, without re-wrapping it. Only faults raised by f itself are
// intercepted: a recoverable panic becomes a Failure, a fatal one
// propagates. A Failure passes through with its error intact and f is never
// invoked. A Lazy input is forced first.
func FlatMap[T, U any](t Try[T], f func(T) Try[U]) Try[U] {
	resolved := t.Run()
	if resolved.err != nil {
		return Try[U]{err: resolved.err}
	}

	return join(func() Try[U] {
		return f(resolved.value)
	})
}

// Sequence resolves each Try from left to right and collects the values.
// The first Failure wins and the remaining elements are not forced.
func Sequence[T any](ts []Try[T]) Try[[]T] {
	values := make([]T, 0, len(ts))

	for _, t := range ts {
		resolved := t.Run()
		if resolved.err != nil {
			return Try[[]T]{err: resolved.err}
		}

		values = append(values, resolved.value)
	}

	return Success(values)
}

// Traverse applies f to each input from left to right through the
// classifying path, collecting the outputs. Evaluation stops at the first
// Failure; the remaining inputs are not visited.
func Traverse[T, U any](values []T, f func(T) (U, error)) Try[[]U] {
	outputs := make([]U, 0, len(values))

	for _, value := range values {
		resolved := evaluate(func() (U, error) {
			return f(value)
		})
		if resolved.err != nil {
			return Try[[]U]{err: resolved.err}
		}

		outputs = append(outputs, resolved.value)
	}

	return Success(outputs)
}
