package optional

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSome(t *testing.T) {
	t.Parallel()

	opt := Some("primary")

	assert.True(t, opt.NonEmpty())
	assert.False(t, opt.Empty())
	assert.Equal(t, 1, opt.Size())

	value, ok := opt.Get()
	require.True(t, ok)
	assert.Equal(t, "primary", value)
}

func TestNone(t *testing.T) {
	t.Parallel()

	opt := None[string]()

	assert.True(t, opt.Empty())
	assert.False(t, opt.NonEmpty())
	assert.Equal(t, 0, opt.Size())

	value, ok := opt.Get()
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestZeroValueIsNone(t *testing.T) {
	t.Parallel()

	var opt Value[int]

	assert.True(t, opt.Empty())
	assert.Equal(t, 7, opt.GetOrElse(7))
}

func TestGetOrPanic(t *testing.T) {
	t.Parallel()

	t.Run("value present", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 42, Some(42).GetOrPanic())
	})

	t.Run("empty panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			None[int]().GetOrPanic()
		})
	})
}

func TestGetOrElse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "primary", Some("primary").GetOrElse("backup"))
	assert.Equal(t, "backup", None[string]().GetOrElse("backup"))
}

func TestGetOrElseFunc(t *testing.T) {
	t.Parallel()

	t.Run("default not computed when present", func(t *testing.T) {
		t.Parallel()

		value := Some(10).GetOrElseFunc(func() int {
			t.Fatal("default must not be computed")

			return 0
		})
		assert.Equal(t, 10, value)
	})

	t.Run("default computed when empty", func(t *testing.T) {
		t.Parallel()

		value := None[int]().GetOrElseFunc(func() int {
			return 99
		})
		assert.Equal(t, 99, value)
	})
}

func TestOrElse(t *testing.T) {
	t.Parallel()

	backup := Some("backup")

	assert.Equal(t, Some("primary"), Some("primary").OrElse(backup))
	assert.Equal(t, backup, None[string]().OrElse(backup))
	assert.True(t, None[string]().OrElse(None[string]()).Empty())
}

func TestOrElseFunc(t *testing.T) {
	t.Parallel()

	t.Run("alternative not built when present", func(t *testing.T) {
		t.Parallel()

		result := Some(1).OrElseFunc(func() Value[int] {
			t.Fatal("alternative must not be built")

			return None[int]()
		})
		assert.Equal(t, Some(1), result)
	})

	t.Run("alternative built when empty", func(t *testing.T) {
		t.Parallel()

		result := None[int]().OrElseFunc(func() Value[int] {
			return Some(2)
		})
		assert.Equal(t, Some(2), result)
	})
}

func TestFilter(t *testing.T) {
	t.Parallel()

	nonBlank := func(s string) bool { return strings.TrimSpace(s) != "" }

	assert.Equal(t, Some("ok"), Some("ok").Filter(nonBlank))
	assert.True(t, Some("   ").Filter(nonBlank).Empty())
	assert.True(t, None[string]().Filter(nonBlank).Empty())
}

func TestEquals(t *testing.T) {
	t.Parallel()

	eq := func(a, b int) bool { return a == b }

	cases := []struct {
		name  string
		left  Value[int]
		right Value[int]
		want  bool
	}{
		{name: "same values", left: Some(1), right: Some(1), want: true},
		{name: "different values", left: Some(1), right: Some(2), want: false},
		{name: "present versus empty", left: Some(1), right: None[int](), want: false},
		{name: "empty versus present", left: None[int](), right: Some(1), want: false},
		{name: "both empty", left: None[int](), right: None[int](), want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.left.Equals(tc.right, eq))
		})
	}
}

func TestAll(t *testing.T) {
	t.Parallel()

	var seen []string

	for v := range Some("only").All() {
		seen = append(seen, v)
	}

	assert.Equal(t, []string{"only"}, seen)

	for range None[string]().All() {
		t.Fatal("empty value must yield nothing")
	}
}

func TestForEach(t *testing.T) {
	t.Parallel()

	total := 0

	Some(5).ForEach(func(v int) {
		total += v
	})
	assert.Equal(t, 5, total)

	None[int]().ForEach(func(int) {
		t.Fatal("callback must not run for an empty value")
	})
}

func TestValueString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   interface{ String() string }
		want string
	}{
		{name: "int", in: Some(42), want: "Some(42)"},
		{name: "string", in: Some("hello"), want: "Some(hello)"},
		{name: "empty", in: None[int](), want: "None"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestMap(t *testing.T) {
	t.Parallel()

	length := func(s string) int { return len(s) }

	assert.Equal(t, Some(5), Map(Some("hello"), length))
	assert.True(t, Map(None[string](), length).Empty())
}

func TestFlatMap(t *testing.T) {
	t.Parallel()

	firstLine := func(s string) Value[string] {
		line, _, found := strings.Cut(s, "\n")
		if !found {
			return None[string]()
		}

		return Some(line)
	}

	assert.Equal(t, Some("head"), FlatMap(Some("head\ntail"), firstLine))
	assert.True(t, FlatMap(Some("no newline"), firstLine).Empty())
	assert.True(t, FlatMap(None[string](), firstLine).Empty())
}
