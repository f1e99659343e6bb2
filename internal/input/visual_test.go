package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/mode"
)

func TestVisualOperators(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int
		keys  string
		want  string
	}{
		{"charwise delete", "hello world", 0, "ved", " world"},
		{"x deletes", "abc", 0, "vlx", "c"},
		{"backward selection", "abcd", 3, "vhhd", "a"},
		{"linewise delete", "one\ntwo\nthree", 4, "Vd", "one\nthree"},
		{"D deletes lines", "one\ntwo", 1, "vD", "two"},
		{"indent", "a\nb\nc", 0, "Vj>", "\ta\n\tb\nc"},
		{"toggle case", "abc", 0, "vl~", "ABc"},
		{"join", "a\nb\nc", 0, "VjJ", "a b\nc"},
		{"inner word object", "one two", 4, "viwd", "one "},
		{"around parens object", "f(a, b) c", 3, "va(d", "f c"},
		{"other end", "abcdef", 2, "vlohd", "aef"},
		{"counted motion", "a b c d", 0, "v2ed", " d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, surf := newTestEngine(t, tt.text)
			surf.SetSelection(tt.caret, tt.caret)

			send(t, eng, tt.keys)

			assert.Equal(t, tt.want, surf.String())
			assert.Equal(t, mode.Normal, eng.Mode())
		})
	}
}

func TestVisualLineDeleteAll(t *testing.T) {
	eng, surf := newTestEngine(t, "one\ntwo\nthree")

	send(t, eng, "VGd")

	assert.Equal(t, "", surf.String())
	assert.Equal(t, mode.Normal, eng.Mode())
	assert.Equal(t, 0, surf.Caret())
	assert.Equal(t, "3 fewer lines", eng.Status())

	text, linewise := eng.State().Registers.Get('"')
	assert.Equal(t, "one\ntwo\nthree\n", text)
	assert.True(t, linewise)
}

func TestVisualModeState(t *testing.T) {
	eng, surf := newTestEngine(t, "abc\nabc")

	send(t, eng, "vl")
	assert.Equal(t, "-- VISUAL --", eng.Status())
	assert.Equal(t, []surface.Span{{Start: 0, End: 2}}, eng.Selection())
	assert.Equal(t, 0, surf.Anchor())
	assert.Equal(t, 2, surf.Caret())

	send(t, eng, "V")
	assert.Equal(t, "-- VISUAL LINE --", eng.Status())
	assert.Equal(t, []surface.Span{{Start: 0, End: 4}}, eng.Selection())

	send(t, eng, "<C-v>j")
	assert.Equal(t, "-- VISUAL BLOCK --", eng.Status())
	assert.Equal(t, []surface.Span{{Start: 0, End: 2}, {Start: 4, End: 6}}, eng.Selection())

	send(t, eng, "<C-v>")
	assert.Equal(t, mode.Normal, eng.Mode())
	assert.Empty(t, eng.Selection())
}

func TestVisualEscapeKeepsCursor(t *testing.T) {
	eng, surf := newTestEngine(t, "abcd")

	send(t, eng, "vll<Esc>")

	assert.Equal(t, mode.Normal, eng.Mode())
	assert.Equal(t, 2, surf.Caret())
	assert.Equal(t, 2, surf.Anchor())
}

func TestVisualYank(t *testing.T) {
	eng, surf := newTestEngine(t, "hello")
	surf.SetSelection(1, 1)

	send(t, eng, "vly")

	text, _ := eng.State().Registers.Get('"')
	assert.Equal(t, "el", text)
	assert.Equal(t, "el", surf.Copied())
	assert.Equal(t, 1, surf.Caret())
	assert.Equal(t, mode.Normal, eng.Mode())
}

func TestVisualPaste(t *testing.T) {
	eng, surf := newTestEngine(t, "foo bar")

	send(t, eng, "yiwwviwp")

	assert.Equal(t, "foo foo", surf.String())
	text, _ := eng.State().Registers.Get('"')
	assert.Equal(t, "bar", text)
}

func TestVisualChange(t *testing.T) {
	eng, surf := newTestEngine(t, "one two")

	send(t, eng, "veczero<Esc>")

	assert.Equal(t, "zero two", surf.String())
	assert.Equal(t, mode.Normal, eng.Mode())
}

func TestVisualSearchExtends(t *testing.T) {
	eng, surf := newTestEngine(t, "abcd")

	send(t, eng, "v/c<CR>")
	require.Equal(t, mode.Visual, eng.Mode())
	assert.Equal(t, []surface.Span{{Start: 0, End: 3}}, eng.Selection())

	send(t, eng, "d")
	assert.Equal(t, "d", surf.String())
}

func TestVisualSearchEscapeReturnsToNormal(t *testing.T) {
	eng, surf := newTestEngine(t, "abcd")

	send(t, eng, "vl/c")
	require.Equal(t, mode.Command, eng.Mode())

	send(t, eng, "<Esc>")
	assert.Equal(t, mode.Normal, eng.Mode())
	assert.Equal(t, "abcd", surf.String())
	assert.Equal(t, 1, surf.Caret())
	assert.Equal(t, 1, surf.Anchor())
	assert.False(t, eng.State().Pending.Active())
}

func TestBlockInsert(t *testing.T) {
	eng, surf := newTestEngine(t, "abc\nabc\nabc")

	send(t, eng, "<C-v>jjI#")
	assert.Equal(t, mode.Insert, eng.Mode())
	assert.Equal(t, []int{6, 10}, eng.InsertCarets())

	send(t, eng, "<Esc>")
	assert.Equal(t, "#abc\n#abc\n#abc", surf.String())
	assert.Equal(t, mode.Normal, eng.Mode())
	assert.Empty(t, eng.InsertCarets())
}

func TestBlockAppendAtLineEnds(t *testing.T) {
	eng, surf := newTestEngine(t, "ab\nabcd")

	send(t, eng, "<C-v>j$A!<Esc>")

	assert.Equal(t, "ab!\nabcd!", surf.String())
}

func TestBlockOperators(t *testing.T) {
	tests := []struct {
		name string
		text string
		keys string
		want string
	}{
		{"delete", "abc\nabc", "<C-v>jld", "c\nc"},
		{"change", "abc\nabc", "<C-v>jcX<Esc>", "Xbc\nXbc"},
		{"short line", "abc\na\nabc", "<C-v>jjlld", "\n\n"},
		{"toggle case", "abc\nabc", "<C-v>jl~", "ABc\nABc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, surf := newTestEngine(t, tt.text)
			send(t, eng, tt.keys)
			assert.Equal(t, tt.want, surf.String())
			assert.Equal(t, mode.Normal, eng.Mode())
		})
	}
}

func TestBlockYank(t *testing.T) {
	eng, surf := newTestEngine(t, "abc\nxyz")

	send(t, eng, "l<C-v>jly")

	text, linewise := eng.State().Registers.Get('"')
	assert.Equal(t, "bc\nyz", text)
	assert.False(t, linewise)
	assert.Equal(t, 1, surf.Caret())
}
