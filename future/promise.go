package future

import (
	"github.com/amp-labs/amp-try/try"
	"go.uber.org/atomic"
)

// Promise is the write-only side of an asynchronous computation: the
// producer completes it, while consumers hold the associated Future.
//
// A promise can only be fulfilled once; later calls to Success, Failure or
// Complete are ignored. Fulfillment is safe from any goroutine and unblocks
// every waiter on the future. The promise holds a reference to the future
// rather than the other way around, so futures can be handed out freely
// without exposing the ability to complete them.
type Promise[T any] struct {
	future      *Future[T]
	canceled    *atomic.Bool
	cancelFuncs []func()
}

// Success fulfills the promise with a value.
func (p *Promise[T]) Success(value T) {
	p.fulfill(try.Success(value))
}

// Failure fulfills the promise with an error.
func (p *Promise[T]) Failure(err error) {
	p.fulfill(try.Failure[T](err))
}

// Complete fulfills the promise from a (value, error) pair following Go's
// usual return convention: a non-nil error wins. This is what Go and
// GoContext use internally.
func (p *Promise[T]) Complete(value T, err error) {
	p.fulfill(try.New(value, err))
}

// IsCancelled reports whether the promise has been canceled. Once canceled
// it stays canceled.
func (p *Promise[T]) IsCancelled() bool {
	return p.canceled.Load()
}

// cancel marks the promise as canceled and runs the registered cancel
// functions exactly once. Used for cancellation propagation by GoContext.
func (p *Promise[T]) cancel() {
	if p.canceled.CompareAndSwap(false, true) {
		for _, cancelFunc := range p.cancelFuncs {
			cancelFunc()
		}
	}
}

// fulfill stores the terminal outcome, broadcasts completion by closing the
// resultReady channel, and fires the registered callbacks. Only the first
// call takes effect. The future's mutex is held while closing the channel so
// callback registration cannot race with callback collection.
func (p *Promise[T]) fulfill(result try.Try[T]) {
	p.future.once.Do(func() {
		p.future.result = result

		p.future.mu.Lock()

		close(p.future.resultReady)

		successCallbacks := p.future.successCallbacks
		errorCallbacks := p.future.errorCallbacks
		resultCallbacks := p.future.resultCallbacks
		successCtxCallbacks := p.future.successCtxCallbacks
		errorCtxCallbacks := p.future.errorCtxCallbacks
		resultCtxCallbacks := p.future.resultCtxCallbacks

		// Callbacks fire once; dropping the slices also lets the GC reclaim them.
		p.future.successCallbacks = nil
		p.future.errorCallbacks = nil
		p.future.resultCallbacks = nil
		p.future.successCtxCallbacks = nil
		p.future.errorCtxCallbacks = nil
		p.future.resultCtxCallbacks = nil

		p.future.mu.Unlock()

		for _, callback := range resultCallbacks {
			invokeCallback("OnResult", callback, result)
		}

		for _, cb := range resultCtxCallbacks {
			invokeCallbackContext(cb.ctx, "OnResultContext", cb.callback, result)
		}

		value, err := result.Get()
		if err == nil {
			for _, callback := range successCallbacks {
				invokeCallback("OnSuccess", callback, value)
			}

			for _, cb := range successCtxCallbacks {
				invokeCallbackContext(cb.ctx, "OnSuccessContext", cb.callback, value)
			}
		} else {
			for _, callback := range errorCallbacks {
				invokeCallback("OnError", callback, err)
			}

			for _, cb := range errorCtxCallbacks {
				invokeCallbackContext(cb.ctx, "OnErrorContext", cb.callback, err)
			}
		}
	})
}
