package future

import (
	"errors"
	"fmt"
)

// ErrPanicRecovered is wrapped around every panic captured at the goroutine
// boundary. Error payloads remain reachable through errors.Is and errors.As.
var ErrPanicRecovered = errors.New("recovered from panic")

// recoveredError converts a recovered panic value and stack trace into an
// error. Unlike the try package, which re-panics non-error payloads as
// fatal, a future captures everything: an unrecovered panic inside a
// goroutine kills the whole process instead of unwinding into the caller,
// so there is no safe way to let it propagate.
func recoveredError(r any, stack []byte) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w\nstack trace:\n%s", ErrPanicRecovered, err, stack)
	}

	return fmt.Errorf("%w: %v\nstack trace:\n%s", ErrPanicRecovered, r, stack)
}
