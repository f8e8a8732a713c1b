// Package parallel evaluates batches of independent fallible computations
// concurrently, resolving each one to a try.Try terminal. Unlike an
// all-or-nothing gather, every item gets its own outcome: one failing
// computation never discards or cancels its siblings' results.
//
// Panic policy at the worker boundary: recoverable faults are already
// Failures by the time they leave the try classifier, and anything that
// still panics inside a worker (including faults the try package treats as
// fatal) is captured and converted into a Failure wrapping
// ErrPanicRecovered. An unrecovered panic in a worker goroutine would kill
// the whole process, which is never an acceptable outcome for one poisoned
// batch item.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/amp-try/try"
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// ErrPanicRecovered is the base error for panics captured at the worker
// boundary.
var ErrPanicRecovered = errors.New("panic recovered")

type options struct {
	name          string
	maxConcurrent int
	logger        *slog.Logger
}

// Option configures a batch evaluation.
type Option func(*options)

// WithName sets the batch name used as the metric label and in log lines.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMaxConcurrent limits how many computations run at the same time.
// A value below 1 runs everything at once.
func WithMaxConcurrent(n int) Option {
	return func(o *options) {
		o.maxConcurrent = n
	}
}

// WithLogger routes the batch's log lines through the given logger instead
// of the process default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		name: "parallel",
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return o
}

// Evaluate resolves every Try concurrently and returns the terminal
// outcomes in input order. Deferred computations are forced on worker
// goroutines; already resolved ones pass through. Items not yet started
// when ctx ends resolve to a Failure carrying the context's error.
func Evaluate[T any](ctx context.Context, ts []try.Try[T], opts ...Option) []try.Try[T] {
	return run(ctx, ts, func(_ context.Context, t try.Try[T]) try.Try[T] {
		return t.Run()
	}, opts)
}

// Map applies f to every value concurrently through the classifying path
// and returns one try.Try per input, in input order.
func Map[In, Out any](
	ctx context.Context,
	values []In,
	f func(context.Context, In) (Out, error),
	opts ...Option,
) []try.Try[Out] {
	return run(ctx, values, func(ctx context.Context, value In) try.Try[Out] {
		return try.Of(func() (Out, error) {
			return f(ctx, value)
		})
	}, opts)
}

// run fans the items out over a worker pool and gathers per-item outcomes.
// Each worker writes only its own slot, so no result locking is needed; the
// pool's StopAndWait provides the final synchronization point.
func run[In, Out any](
	ctx context.Context,
	items []In,
	eval func(context.Context, In) try.Try[Out],
	opts []Option,
) []try.Try[Out] {
	results := make([]try.Try[Out], len(items))
	if len(items) == 0 {
		return results
	}

	o := newOptions(opts)

	workers := o.maxConcurrent
	if workers < 1 {
		workers = len(items)
	}

	batchID := uuid.New().String()
	failures := atomic.NewInt64(0)

	batchesTotal.WithLabelValues(o.name).Inc()
	o.logger.DebugContext(ctx, "parallel batch starting",
		"batch_name", o.name, "batch_id", batchID, "items", len(items), "workers", workers)

	pool := pond.NewPool(workers)

	for idx, item := range items {
		pool.Submit(func() {
			evaluationsInFlight.WithLabelValues(o.name).Inc()
			defer evaluationsInFlight.WithLabelValues(o.name).Dec()

			defer func() {
				if r := recover(); r != nil {
					panicsRecovered.WithLabelValues(o.name).Inc()
					failures.Inc()

					err := recoveredError(r, debug.Stack())
					results[idx] = try.Failure[Out](err)

					o.logger.WarnContext(ctx, "panic recovered during parallel evaluation",
						"batch_name", o.name, "batch_id", batchID, "error", err)
				}
			}()

			// Unstarted work after cancellation resolves to the context error.
			if err := ctx.Err(); err != nil {
				failures.Inc()
				results[idx] = try.Failure[Out](err)

				return
			}

			outcome := eval(ctx, item)

			evaluationsTotal.WithLabelValues(o.name).Inc()

			if outcome.IsFailure() {
				evaluationFailures.WithLabelValues(o.name).Inc()
				failures.Inc()
			}

			results[idx] = outcome
		})
	}

	pool.StopAndWait()

	o.logger.DebugContext(ctx, "parallel batch finished",
		"batch_name", o.name, "batch_id", batchID, "items", len(items), "failures", failures.Load())

	return results
}

// recoveredError converts a recovered panic value and stack trace into an
// error wrapping ErrPanicRecovered. Error payloads stay reachable through
// errors.Is and errors.As.
func recoveredError(r any, stack []byte) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w\n%s", ErrPanicRecovered, err, stack)
	}

	return fmt.Errorf("%w: %v\n%s", ErrPanicRecovered, r, stack)
}
