package future

import (
	"context"
	"log/slog"
	"runtime/debug"
)

// invokeCallback runs a registered callback in its own goroutine so
// fulfillment never blocks on user code. Nil callbacks are ignored. Panics
// are recovered and logged; a bad callback must not take down the process
// or poison the future.
func invokeCallback[T any](kind string, callback func(T), value T) {
	if callback == nil {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in future."+kind+" callback",
					"error", recoveredError(r, debug.Stack()))
			}
		}()

		callback(value)
	}()
}

// invokeCallbackContext is invokeCallback for context-aware callbacks. The
// callback receives a child context that is canceled when it returns, so
// work it spawns cannot outlive it. A nil ctx is replaced with Background.
func invokeCallbackContext[T any](ctx context.Context, kind string, callback func(context.Context, T), value T) {
	if callback == nil {
		return
	}

	go func() {
		if ctx == nil {
			ctx = context.Background()
		}

		callbackCtx, cancel := context.WithCancel(ctx)
		defer cancel()

		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(callbackCtx, "panic in future."+kind+" callback",
					"error", recoveredError(r, debug.Stack()))
			}
		}()

		callback(callbackCtx, value)
	}()
}
