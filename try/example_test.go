package try_test

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/amp-labs/amp-try/try"
)

// ExampleOf demonstrates running a fallible computation and branching on the
// outcome once, at the end of a chain.
func ExampleOf() {
	result := try.Of(func() (int, error) {
		return strconv.Atoi("42")
	})

	value, err := result.Get()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(value)
	// Output: 42
}

// ExampleLazy demonstrates that a deferred computation runs again on every
// operation that forces it.
func ExampleLazy() {
	calls := 0

	deferred := try.Lazy(func() (int, error) {
		calls++

		return calls, nil
	})

	deferred.Run()
	deferred.Run()

	fmt.Printf("calls: %d\n", calls)
	// Output: calls: 2
}

// ExampleMap demonstrates chaining transformations without branching on
// errors between the steps.
func ExampleMap() {
	parsed := try.Of(func() (int, error) {
		return strconv.Atoi("21")
	})

	doubled := try.Map(parsed, func(n int) (string, error) {
		return fmt.Sprintf("doubled to %d", n*2), nil
	})

	fmt.Println(doubled.GetOrElse("parse failed"))
	// Output: doubled to 42
}

// ExampleTry_Recover demonstrates substituting a fallback value when the
// computation failed.
func ExampleTry_Recover() {
	result := try.Failure[string](errors.New("upstream unavailable"))

	recovered := result.Recover(func(err error) (string, error) {
		return "cached value", nil
	})

	fmt.Println(recovered.GetOrElse(""))
	// Output: cached value
}

// ExampleTry_Filter demonstrates turning an unwanted value into a Failure.
func ExampleTry_Filter() {
	result := try.Success(-5).Filter(func(n int) bool {
		return n >= 0
	})

	_, err := result.Get()
	fmt.Println(errors.Is(err, try.ErrPredicateNotSatisfied))
	// Output: true
}
