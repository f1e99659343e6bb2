package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchInRangeLiteral(t *testing.T) {
	m := NewMemory("foo bar foo baz foo")

	got, ok := m.SearchInRange(0, m.Len(), "foo", false).Get()
	require.True(t, ok)
	assert.Equal(t, Match{Start: 0, End: 3}, got)

	got, ok = m.SearchInRange(1, m.Len(), "foo", false).Get()
	require.True(t, ok)
	assert.Equal(t, Match{Start: 8, End: 11}, got)

	got, ok = m.SearchInRange(m.Len(), 0, "foo", false).Get()
	require.True(t, ok, "backward search")
	assert.Equal(t, Match{Start: 16, End: 19}, got)

	got, ok = m.SearchInRange(15, 0, "foo", false).Get()
	require.True(t, ok)
	assert.Equal(t, Match{Start: 8, End: 11}, got)

	assert.False(t, m.SearchInRange(0, m.Len(), "qux", false).IsPresent())
	assert.False(t, m.SearchInRange(0, m.Len(), "", false).IsPresent())
}

func TestSearchInRangeRegex(t *testing.T) {
	m := NewMemory("alpha beta\ngamma delta")

	got, ok := m.SearchInRange(0, m.Len(), `^g\w+`, true).Get()
	require.True(t, ok)
	assert.Equal(t, Match{Start: 11, End: 16}, got)

	got, ok = m.SearchInRange(m.Len(), 0, `[a-z]+a\b`, true).Get()
	require.True(t, ok)
	assert.Equal(t, "delta", m.Text(got.Start, got.End))

	assert.False(t, m.SearchInRange(0, m.Len(), `(`, true).IsPresent(), "bad pattern is not a match")
	assert.False(t, m.SearchInRange(0, m.Len(), `x*`, true).IsPresent(), "empty matches are skipped")
}

func TestSearchRegexMultibyte(t *testing.T) {
	m := NewMemory("héllo wörld")
	got, ok := m.SearchInRange(0, m.Len(), `w\S+`, true).Get()
	require.True(t, ok)
	assert.Equal(t, "wörld", m.Text(got.Start, got.End))
}

func TestSearcherCompileCaches(t *testing.T) {
	s := NewSearcher(0)
	a, err := s.Compile(`a+`, false)
	require.NoError(t, err)
	b, err := s.Compile(`a+`, false)
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = s.Compile(`(`, false)
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestReplaceLine(t *testing.T) {
	s := NewSearcher(0)
	tests := []struct {
		name      string
		line      string
		pattern   string
		repl      string
		literal   bool
		ignore    bool
		all       bool
		want      string
		wantCount int
	}{
		{"first only", "a a a", "a", "b", false, false, false, "b a a", 1},
		{"global", "a a a", "a", "b", false, false, true, "b b b", 3},
		{"groups", "key=value", `(\w+)=(\w+)`, "$2=$1", false, false, false, "value=key", 1},
		{"literal", "1+1=2", "1+1", "$x", true, false, false, "$x=2", 1},
		{"ignore case", "Foo foo", "foo", "bar", false, true, true, "bar bar", 2},
		{"no match", "abc", "z", "y", false, false, true, "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := s.ReplaceLine(tt.line, tt.pattern, tt.repl, tt.literal, tt.ignore, tt.all)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}
