package parallel_test

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amp-labs/amp-try/parallel"
	"github.com/amp-labs/amp-try/try"
)

// ExampleEvaluate demonstrates forcing a batch of deferred computations
// concurrently, with one outcome per item.
func ExampleEvaluate() {
	batch := []try.Try[int]{
		try.Lazy(func() (int, error) {
			return 1, nil
		}),
		try.Lazy(func() (int, error) {
			return 0, strconv.ErrRange
		}),
		try.Success(3),
	}

	results := parallel.Evaluate(context.Background(), batch, parallel.WithName("example"))

	for _, result := range results {
		fmt.Println(result)
	}

	// Output:
	// Success(1)
	// Failure(value out of range)
	// Success(3)
}

// ExampleMap demonstrates evaluating a function over inputs concurrently
// through the classifying path.
func ExampleMap() {
	results := parallel.Map(context.Background(), []string{"1", "2", "x"},
		func(_ context.Context, s string) (int, error) {
			return strconv.Atoi(s)
		},
		parallel.WithMaxConcurrent(2),
	)

	ok := 0

	for _, result := range results {
		if result.IsSuccess() {
			ok++
		}
	}

	fmt.Printf("%d of %d parsed\n", ok, len(results))
	// Output: 2 of 3 parsed
}
