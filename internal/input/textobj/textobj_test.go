package textobj

import (
	"testing"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	k, ok := KindFor('b')
	require.True(t, ok)
	assert.Equal(t, KindParen, k)
	assert.Equal(t, "paren", k.String())

	_, ok = KindFor('z')
	assert.False(t, ok)
	assert.Equal(t, "none", KindNone.String())
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		pos   int
		key   rune
		inner bool
		count int
		want  string
	}{
		{"iw", "foo bar baz", 5, 'w', true, 1, "bar"},
		{"aw trailing", "foo bar baz", 5, 'w', false, 1, "bar "},
		{"aw leading at end", "foo bar", 5, 'w', false, 1, " bar"},
		{"iw punctuation", "foo.bar", 3, 'w', true, 1, "."},
		{"iW", "foo.bar baz", 1, 'W', true, 1, "foo.bar"},
		{"iw on space uses next word", "foo bar", 3, 'w', true, 1, "bar"},
		{"2iw", "one two three", 0, 'w', true, 2, "one two"},
		{"i(", "foo(bar, baz)\n", 4, '(', true, 1, "bar, baz"},
		{"a(", "foo(bar, baz)\n", 4, ')', false, 1, "(bar, baz)"},
		{"ib on open", "f(x)", 1, 'b', true, 1, "x"},
		{"ib on close", "f(x)", 3, 'b', true, 1, "x"},
		{"i( nested", "((a) b)", 5, '(', true, 1, "(a) b"},
		{"2i(", "((a) b)", 2, '(', true, 2, "(a) b"},
		{"i( before pair", "call (x)", 0, '(', true, 1, "x"},
		{"i{ multiline", "{\n  x\n}", 4, '{', true, 1, "\n  x\n"},
		{"i[", "a[1][2]", 5, '[', true, 1, "2"},
		{"i<", "<div>", 2, '<', true, 1, "div"},
		{"i\"", `say "hi there" ok`, 7, '"', true, 1, "hi there"},
		{"a\"", `say "hi" ok`, 5, '"', false, 1, `"hi"`},
		{"i\" before quotes", `x = "v"`, 0, '"', true, 1, "v"},
		{"i' escaped", `'it\'s'`, 2, '\'', true, 1, `it\'s`},
		{"is", "first line\nsecond", 3, 's', true, 1, "first line"},
		{"as", "first line\nsecond", 3, 's', false, 1, "first line\n"},
		{"ip", "a\nb\n\nc", 0, 'p', true, 1, "a\nb\n"},
		{"ap", "a\nb\n\nc", 0, 'p', false, 1, "a\nb\n\n"},
		{"it", "<b>bold</b>", 4, 't', true, 1, "bold"},
		{"at", "<b>bold</b>", 4, 't', false, 1, "<b>bold</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := surface.NewMemory(tt.text)
			k, ok := KindFor(tt.key)
			require.True(t, ok)
			span, err := Resolve(s, tt.pos, k, tt.inner, tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Text(span.Start, span.End))
		})
	}
}

func TestResolveScenarioParens(t *testing.T) {
	s := surface.NewMemory("foo(bar, baz)\n")
	span, err := Resolve(s, 4, KindParen, true, 1)
	require.NoError(t, err)
	assert.Equal(t, surface.Span{Start: 4, End: 12}, span)
}

func TestResolveEmptyQuotes(t *testing.T) {
	s := surface.NewMemory(`x = ""`)
	span, err := Resolve(s, 4, KindDoubleQuote, true, 1)
	require.NoError(t, err)
	assert.True(t, span.Empty())
}

func TestResolveNotFound(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
		kind Kind
	}{
		{"no parens", "plain text", 2, KindParen},
		{"unclosed paren", "f(x", 2, KindParen},
		{"unclosed quote", `say "hi`, 5, KindDoubleQuote},
		{"quote on other line", "\"a\"\nb", 5, KindDoubleQuote},
		{"between strings", `"a" b "c"`, 4, KindDoubleQuote},
		{"no tag", "text", 1, KindTag},
		{"word on blank", "a  \n", 2, KindWord},
		{"unknown kind", "x", 0, KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(surface.NewMemory(tt.text), tt.pos, tt.kind, true, 1)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}
