package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type recordingClipboard struct {
	last string
}

func (c *recordingClipboard) Set(text string) error {
	c.last = text
	return nil
}

func TestMemoryLines(t *testing.T) {
	m := NewMemory("one\r\ntwo\n\nfour")

	require.Equal(t, 4, m.LineCount())

	tests := []struct {
		line       int
		start, end int
		text       string
	}{
		{0, 0, 3, "one"},
		{1, 5, 8, "two"},
		{2, 9, 9, ""},
		{3, 10, 14, "four"},
		{9, 10, 14, "four"},
		{-1, 0, 3, "one"},
	}
	for _, tt := range tests {
		start, end := m.LineRange(tt.line)
		assert.Equal(t, tt.start, start, "line %d start", tt.line)
		assert.Equal(t, tt.end, end, "line %d end", tt.line)
		assert.Equal(t, tt.text, LineText(m, tt.line))
	}

	assert.Equal(t, 0, m.LineOf(0))
	assert.Equal(t, 0, m.LineOf(4))
	assert.Equal(t, 1, m.LineOf(5))
	assert.Equal(t, 2, m.LineOf(9))
	assert.Equal(t, 3, m.LineOf(100))
}

func TestMemoryClampsEverything(t *testing.T) {
	m := NewMemory("abc")
	m.SetSelection(-5, 99)
	assert.Equal(t, 0, m.Anchor())
	assert.Equal(t, 3, m.Caret())
	assert.Equal(t, byte(0), m.CharAt(-1))
	assert.Equal(t, byte(0), m.CharAt(3))
	assert.Equal(t, "abc", m.Text(10, -10))

	m.Clear(2, 100)
	assert.Equal(t, "ab", m.String())
	assert.Equal(t, 2, m.Caret())
}

func TestMemoryEditsAndUndo(t *testing.T) {
	m := NewMemory("hello world")

	func() {
		defer UndoScope(m).End()
		m.Clear(0, 6)
		m.Insert(0, "big ")
	}()
	require.Equal(t, "big world", m.String())
	assert.Equal(t, 4, m.Caret())

	require.True(t, m.Undo())
	assert.Equal(t, "hello world", m.String())
	assert.Equal(t, 0, m.Caret())

	require.True(t, m.Redo())
	assert.Equal(t, "big world", m.String())
	assert.False(t, m.Redo())
}

func TestMemoryReadOnly(t *testing.T) {
	m := NewMemory("abc", WithReadOnly())
	m.Insert(0, "x")
	m.Clear(0, 1)
	assert.Equal(t, "abc", m.String())
	assert.False(t, m.Undo())
}

func TestMemoryCopy(t *testing.T) {
	cb := &recordingClipboard{}
	m := NewMemory("abcdef", WithClipboard(cb))
	m.Copy(4, 1)
	assert.Equal(t, "bcd", m.Copied())
	assert.Equal(t, "bcd", cb.last)
}

func TestHelpers(t *testing.T) {
	m := NewMemory("ab\ncd")
	assert.Equal(t, 3, LineEndWithTerminator(m, 0))
	assert.Equal(t, 5, LineEndWithTerminator(m, 1))
	assert.Equal(t, 1, Column(m, 4))
	assert.Equal(t, Span{Start: 1, End: 4}, Ordered(4, 1))
	assert.ErrorIs(t, CheckRange(m, 3, 1), ErrRangeInvalid)
	assert.ErrorIs(t, CheckRange(m, 0, 9), ErrOffsetOutOfRange)
	assert.NoError(t, CheckRange(m, 0, 5))
}

func TestProperty_UndoRestoresText(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.StringMatching(`[a-z \n]{0,30}`).Draw(t, "initial")
		m := NewMemory(initial)

		n := rapid.IntRange(1, 8).Draw(t, "edits")
		for i := 0; i < n; i++ {
			pos := rapid.IntRange(0, m.Len()).Draw(t, "pos")
			if rapid.Bool().Draw(t, "insert") {
				m.Insert(pos, rapid.StringMatching(`[a-z\n]{1,4}`).Draw(t, "text"))
			} else {
				m.Clear(pos, pos+rapid.IntRange(0, 4).Draw(t, "len"))
			}
		}
		for m.Undo() {
		}
		if m.String() != initial {
			t.Fatalf("undo all: got %q want %q", m.String(), initial)
		}
	})
}
