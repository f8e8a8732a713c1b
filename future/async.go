package future

import (
	"context"
	"log/slog"
)

// Async runs f in a goroutine without blocking and without handing back a
// future: fire and forget. Panics are recovered and logged as errors.
func Async(f func()) {
	fut := Go(func() (struct{}, error) {
		f()

		return struct{}{}, nil
	})

	fut.OnError(func(err error) {
		slog.Error("future.Async", "error", err)
	})
}

// AsyncWithError is Async for functions that can fail. Returned errors and
// recovered panics are logged; the caller never sees them.
func AsyncWithError(f func() error) {
	fut := Go(func() (struct{}, error) {
		return struct{}{}, f()
	})

	fut.OnError(func(err error) {
		slog.Error("future.AsyncWithError", "error", err)
	})
}

// AsyncContext is Async with a context handed to f, for background work
// that should respect cancellation and deadlines. Whether f actually stops
// early on cancellation is up to f.
func AsyncContext(ctx context.Context, f func(ctx context.Context)) {
	if ctx == nil {
		ctx = context.Background()
	}

	fut := GoContext(ctx, func(ctx context.Context) (struct{}, error) {
		f(ctx)

		return struct{}{}, nil
	})

	fut.OnError(func(err error) {
		slog.ErrorContext(ctx, "future.AsyncContext", "error", err)
	})
}

// AsyncContextWithError is AsyncContext for functions that can fail.
// Returned errors and recovered panics are logged; the caller never sees
// them.
func AsyncContextWithError(ctx context.Context, f func(ctx context.Context) error) {
	if ctx == nil {
		ctx = context.Background()
	}

	fut := GoContext(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, f(ctx)
	})

	fut.OnError(func(err error) {
		slog.ErrorContext(ctx, "future.AsyncContextWithError", "error", err)
	})
}
