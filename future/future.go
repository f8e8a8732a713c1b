// Package future provides an asynchronous host for Try outcomes: a
// Future/Promise pair where the producer runs in its own goroutine and the
// consumer awaits, transforms or combines results. The terminal outcome of
// every future is stored as a try.Try, so the result container is the same
// one synchronous code composes with.
//
// Panic policy: anything that panics inside a future's goroutine is
// captured and converted into an error wrapping ErrPanicRecovered, fatal or
// not. This deliberately differs from the try package's synchronous
// classification, where non-error panics propagate: a goroutine has no
// caller to propagate to.
package future

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/amp-labs/amp-try/try"
	"go.uber.org/atomic"
)

// Sentinel errors for misuse of the package-level combinators.
var (
	ErrNilFuture   = errors.New("nil future")
	ErrNilFunction = errors.New("nil function")
)

// contextCallback pairs a callback with the context it was registered under.
type contextCallback[T any] struct {
	ctx      context.Context
	callback func(context.Context, T)
}

// Future is the read-only side of an asynchronous computation. It resolves
// exactly once to a try.Try terminal; all read paths (Await, callbacks,
// channels) are safe from any number of goroutines.
type Future[T any] struct {
	result      try.Try[T]
	resultReady chan struct{}
	once        sync.Once
	mu          sync.Mutex

	successCallbacks    []func(T)
	errorCallbacks      []func(error)
	resultCallbacks     []func(try.Try[T])
	successCtxCallbacks []contextCallback[T]
	errorCtxCallbacks   []contextCallback[error]
	resultCtxCallbacks  []contextCallback[try.Try[T]]
}

// New creates an unresolved Future together with the Promise that
// completes it.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
	}

	promise := &Promise[T]{
		future:   fut,
		canceled: atomic.NewBool(false),
	}

	return fut, promise
}

// NewError returns a future that has already failed with the given error.
func NewError[T any](err error) *Future[T] {
	fut, promise := New[T]()
	promise.Failure(err)

	return fut
}

// Go runs f in a new goroutine and returns a future for its outcome.
// Panics inside f are captured per the package panic policy.
func Go[T any](f func() (T, error)) *Future[T] {
	fut, promise := New[T]()

	go func() {
		defer guard(promise)

		promise.Complete(f())
	}()

	return fut
}

// GoContext runs f in a new goroutine with a context derived from ctx and
// returns a future for its outcome. If ctx ends before f completes, the
// future fails with the context's error, the promise is marked canceled and
// the derived context is canceled so f can stop early. A nil ctx behaves
// like context.Background.
func GoContext[T any](ctx context.Context, f func(context.Context) (T, error)) *Future[T] {
	if ctx == nil {
		ctx = context.Background()
	}

	fut, promise := New[T]()

	workCtx, cancel := context.WithCancel(ctx)
	promise.cancelFuncs = append(promise.cancelFuncs, cancel)

	go func() {
		defer guard(promise)

		promise.Complete(f(workCtx))
	}()

	go func() {
		select {
		case <-workCtx.Done():
			promise.cancel()
			promise.Failure(workCtx.Err())
		case <-fut.resultReady:
			cancel()
		}
	}()

	return fut
}

// Await blocks until the future resolves and returns its outcome.
// It is idempotent: every call observes the same terminal result.
func (f *Future[T]) Await() (T, error) { //nolint:ireturn
	<-f.resultReady

	return f.result.Get()
}

// AwaitContext blocks until the future resolves or ctx ends, whichever
// comes first. A context error abandons the wait but does not affect the
// future itself; other waiters still get the real outcome. A nil ctx
// behaves like Await.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) { //nolint:ireturn
	if ctx == nil {
		return f.Await()
	}

	select {
	case <-f.resultReady:
		return f.result.Get()
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	}
}

// ToChannel exposes the future as a buffered channel carrying its terminal
// try.Try. The channel receives exactly one value and is then closed, which
// makes futures usable in select statements.
func (f *Future[T]) ToChannel() <-chan try.Try[T] {
	ch := make(chan try.Try[T], 1)

	go func() {
		defer close(ch)

		<-f.resultReady
		ch <- f.result
	}()

	return ch
}

// ToChannelContext is ToChannel with a deadline: if ctx ends before the
// future resolves, the channel receives a Failure carrying the context's
// error instead. A nil ctx behaves like ToChannel.
func (f *Future[T]) ToChannelContext(ctx context.Context) <-chan try.Try[T] {
	ch := make(chan try.Try[T], 1)

	go func() {
		defer close(ch)

		ch <- try.New(f.AwaitContext(ctx))
	}()

	return ch
}

// OnSuccess registers a callback invoked with the value if the future
// succeeds. If the future is already resolved, the callback fires
// immediately. Callbacks run in their own goroutines with panic recovery.
func (f *Future[T]) OnSuccess(callback func(T)) {
	if resolved := f.register(func() {
		f.successCallbacks = append(f.successCallbacks, callback)
	}); resolved {
		if value, err := f.result.Get(); err == nil {
			invokeCallback("OnSuccess", callback, value)
		}
	}
}

// OnError registers a callback invoked with the error if the future fails.
func (f *Future[T]) OnError(callback func(error)) {
	if resolved := f.register(func() {
		f.errorCallbacks = append(f.errorCallbacks, callback)
	}); resolved {
		if _, err := f.result.Get(); err != nil {
			invokeCallback("OnError", callback, err)
		}
	}
}

// OnResult registers a callback invoked with the terminal try.Try whichever
// way the future resolves.
func (f *Future[T]) OnResult(callback func(try.Try[T])) {
	if resolved := f.register(func() {
		f.resultCallbacks = append(f.resultCallbacks, callback)
	}); resolved {
		invokeCallback("OnResult", callback, f.result)
	}
}

// OnSuccessContext is OnSuccess with a context handed to the callback.
func (f *Future[T]) OnSuccessContext(ctx context.Context, callback func(context.Context, T)) {
	if resolved := f.register(func() {
		f.successCtxCallbacks = append(f.successCtxCallbacks, contextCallback[T]{ctx: ctx, callback: callback})
	}); resolved {
		if value, err := f.result.Get(); err == nil {
			invokeCallbackContext(ctx, "OnSuccessContext", callback, value)
		}
	}
}

// OnErrorContext is OnError with a context handed to the callback.
func (f *Future[T]) OnErrorContext(ctx context.Context, callback func(context.Context, error)) {
	if resolved := f.register(func() {
		f.errorCtxCallbacks = append(f.errorCtxCallbacks, contextCallback[error]{ctx: ctx, callback: callback})
	}); resolved {
		if _, err := f.result.Get(); err != nil {
			invokeCallbackContext(ctx, "OnErrorContext", callback, err)
		}
	}
}

// OnResultContext is OnResult with a context handed to the callback.
func (f *Future[T]) OnResultContext(ctx context.Context, callback func(context.Context, try.Try[T])) {
	if resolved := f.register(func() {
		f.resultCtxCallbacks = append(f.resultCtxCallbacks, contextCallback[try.Try[T]]{ctx: ctx, callback: callback})
	}); resolved {
		invokeCallbackContext(ctx, "OnResultContext", callback, f.result)
	}
}

// register appends a callback under the mutex unless the future is already
// resolved, in which case it reports true so the caller can invoke the
// callback directly. Fulfillment closes resultReady while holding the same
// mutex, so a registration either lands before collection or observes the
// resolved state.
func (f *Future[T]) register(add func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	select {
	case <-f.resultReady:
		return true
	default:
		add()

		return false
	}
}

// guard is the goroutine boundary backstop: it converts any panic into a
// failed promise.
func guard[T any](p *Promise[T]) {
	if r := recover(); r != nil {
		p.Failure(recoveredError(r, debug.Stack()))
	}
}

// Map derives a future whose value is f applied to the source future's
// value. Errors from the source pass through untouched; errors from f fail
// the derived future.
func Map[T, U any](fut *Future[T], f func(T) (U, error)) *Future[U] {
	switch {
	case fut == nil:
		return NewError[U](fmt.Errorf("%w provided to Map", ErrNilFuture))
	case f == nil:
		return NewError[U](fmt.Errorf("%w provided to Map", ErrNilFunction))
	}

	out, promise := New[U]()

	go func() {
		defer guard(promise)

		value, err := fut.Await()
		if err != nil {
			promise.Failure(err)

			return
		}

		promise.Complete(f(value))
	}()

	return out
}

// MapContext is Map with a context: waiting on the source and the
// transformation itself both respect ctx.
func MapContext[T, U any](ctx context.Context, fut *Future[T], f func(context.Context, T) (U, error)) *Future[U] {
	switch {
	case fut == nil:
		return NewError[U](fmt.Errorf("%w provided to MapContext", ErrNilFuture))
	case f == nil:
		return NewError[U](fmt.Errorf("%w provided to MapContext", ErrNilFunction))
	}

	if ctx == nil {
		ctx = context.Background()
	}

	out, promise := New[U]()

	go func() {
		defer guard(promise)

		value, err := fut.AwaitContext(ctx)
		if err != nil {
			promise.Failure(err)

			return
		}

		promise.Complete(f(ctx, value))
	}()

	return out
}

// FlatMap derives a future from a function that itself returns a future,
// avoiding nested futures when chaining asynchronous steps. Errors from the
// source pass through; the inner future's outcome becomes the result.
func FlatMap[T, U any](fut *Future[T], f func(T) *Future[U]) *Future[U] {
	switch {
	case fut == nil:
		return NewError[U](fmt.Errorf("%w provided to FlatMap", ErrNilFuture))
	case f == nil:
		return NewError[U](fmt.Errorf("%w provided to FlatMap", ErrNilFunction))
	}

	out, promise := New[U]()

	go func() {
		defer guard(promise)

		value, err := fut.Await()
		if err != nil {
			promise.Failure(err)

			return
		}

		inner := f(value)
		if inner == nil {
			promise.Failure(fmt.Errorf("%w returned from FlatMap function", ErrNilFuture))

			return
		}

		promise.Complete(inner.Await())
	}()

	return out
}

// FlatMapContext is FlatMap with a context: both waits respect ctx.
func FlatMapContext[T, U any](ctx context.Context, fut *Future[T], f func(T) *Future[U]) *Future[U] {
	switch {
	case fut == nil:
		return NewError[U](fmt.Errorf("%w provided to FlatMapContext", ErrNilFuture))
	case f == nil:
		return NewError[U](fmt.Errorf("%w provided to FlatMapContext", ErrNilFunction))
	}

	if ctx == nil {
		ctx = context.Background()
	}

	out, promise := New[U]()

	go func() {
		defer guard(promise)

		value, err := fut.AwaitContext(ctx)
		if err != nil {
			promise.Failure(err)

			return
		}

		inner := f(value)
		if inner == nil {
			promise.Failure(fmt.Errorf("%w returned from FlatMapContext function", ErrNilFuture))

			return
		}

		promise.Complete(inner.AwaitContext(ctx))
	}()

	return out
}

// Combine waits for all futures and collects their values in input order.
// The first error encountered fails the combined future and the values are
// discarded.
func Combine[T any](futures ...*Future[T]) *Future[[]T] {
	return CombineContext(context.Background(), futures...)
}

// CombineContext is Combine with a context: an ended ctx fails the combined
// future with the context's error.
func CombineContext[T any](ctx context.Context, futures ...*Future[T]) *Future[[]T] {
	if ctx == nil {
		ctx = context.Background()
	}

	out, promise := New[[]T]()

	go func() {
		defer guard(promise)

		if len(futures) == 0 {
			promise.Success(nil)

			return
		}

		values := make([]T, len(futures))

		for idx, fut := range futures {
			if fut == nil {
				promise.Failure(fmt.Errorf("%w provided to CombineContext", ErrNilFuture))

				return
			}

			value, err := fut.AwaitContext(ctx)
			if err != nil {
				promise.Failure(err)

				return
			}

			values[idx] = value
		}

		promise.Success(values)
	}()

	return out
}

// CombineNoShortCircuit waits for every future regardless of failures and
// fails with the joined errors if any occurred. Use this when all side
// effects should finish before the batch is judged.
func CombineNoShortCircuit[T any](futures ...*Future[T]) *Future[[]T] {
	return CombineContextNoShortCircuit(context.Background(), futures...)
}

// CombineContextNoShortCircuit is CombineNoShortCircuit with a context. A
// context error counts as a per-future failure and gets joined with the rest.
func CombineContextNoShortCircuit[T any](ctx context.Context, futures ...*Future[T]) *Future[[]T] {
	if ctx == nil {
		ctx = context.Background()
	}

	out, promise := New[[]T]()

	go func() {
		defer guard(promise)

		if len(futures) == 0 {
			promise.Success(nil)

			return
		}

		values := make([]T, len(futures))

		var errs []error

		for idx, fut := range futures {
			if fut == nil {
				errs = append(errs, fmt.Errorf("%w provided to CombineContextNoShortCircuit", ErrNilFuture))

				continue
			}

			value, err := fut.AwaitContext(ctx)
			if err != nil {
				errs = append(errs, err)

				continue
			}

			values[idx] = value
		}

		if len(errs) > 0 {
			promise.Failure(errors.Join(errs...))

			return
		}

		promise.Success(values)
	}()

	return out
}
