package lazy

import (
	"errors"
	"testing"

	"github.com/amp-labs/amp-try/try"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSnapshot = errors.New("snapshot error")

func TestOfTry_ForcesExactlyOnce(t *testing.T) {
	t.Parallel()

	calls := 0

	snap := NewTry(try.Lazy(func() (int, error) {
		calls++

		return calls, nil
	}))

	assert.Equal(t, 0, calls)
	assert.False(t, snap.Taken())

	first := snap.Get()
	assert.Equal(t, 1, first.MustGet())
	assert.True(t, snap.Taken())

	// The raw try.Lazy would re-run here; the snapshot must not.
	second := snap.Get()
	assert.Equal(t, 1, second.MustGet())
	assert.Equal(t, 1, calls)
}

func TestOfTry_FailuresAreMemoizedToo(t *testing.T) {
	t.Parallel()

	calls := 0

	snap := NewTry(try.Lazy(func() (int, error) {
		calls++

		return 0, errSnapshot
	}))

	for range 3 {
		result := snap.Get()
		require.True(t, result.IsFailure())

		_, err := result.Get()
		require.ErrorIs(t, err, errSnapshot)
	}

	assert.Equal(t, 1, calls, "a failed snapshot is a snapshot all the same")
}

func TestOfTry_ResolvedInput(t *testing.T) {
	t.Parallel()

	snap := NewTry(try.Success(42))

	assert.Equal(t, 42, snap.Get().MustGet())
	assert.True(t, snap.Taken())
}

func TestOfTry_FatalPanicDoesNotMemoize(t *testing.T) {
	t.Parallel()

	attempts := 0

	snap := NewTry(try.Lazy(func() (int, error) {
		attempts++
		if attempts == 1 {
			panic("fatal during snapshot")
		}

		return 7, nil
	}))

	assert.PanicsWithValue(t, "fatal during snapshot", func() {
		snap.Get()
	})
	assert.False(t, snap.Taken())

	// Nothing was memoized, so the retry captures a snapshot.
	assert.Equal(t, 7, snap.Get().MustGet())
	assert.True(t, snap.Taken())
}
