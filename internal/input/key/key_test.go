package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
		vim   string
	}{
		{Rune('a'), "a", "a"},
		{Rune('A'), "A", "A"},
		{Rune(' '), " ", "<Space>"},
		{Rune('<'), "<", "<lt>"},
		{Ctrl('R'), "C-r", "<C-r>"},
		{Escape, "Esc", "<Esc>"},
		{Special(KeyEnter, ModNone), "CR", "<CR>"},
		{Special(KeyUp, ModShift), "S-Up", "<S-Up>"},
		{Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}, "A-x", "<A-x>"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.String())
			assert.Equal(t, tt.vim, tt.event.VimString())
		})
	}
}

func TestEventPredicates(t *testing.T) {
	assert.True(t, Rune('x').IsChar())
	assert.False(t, Ctrl('x').IsChar())
	assert.True(t, Escape.IsEscape())
	assert.True(t, Ctrl('[').IsEscape())
	assert.False(t, Rune('[').IsEscape())
	assert.True(t, KeyLeft.IsArrow())
	assert.False(t, KeyRune.IsSpecial())
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", Rune('a')},
		{"<Esc>", Escape},
		{"<esc>", Escape},
		{"<CR>", Special(KeyEnter, ModNone)},
		{"<C-s>", Ctrl('s')},
		{"<C-S>", Ctrl('s')},
		{"<lt>", Rune('<')},
		{"<Space>", Rune(' ')},
		{"<S-Tab>", Special(KeyTab, ModShift)},
		{"<BS>", Special(KeyBackspace, ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Parse("")
	assert.ErrorIs(t, err, ErrEmptySpec)
	_, err = Parse("<Nope>")
	assert.ErrorIs(t, err, ErrInvalidSpec)
	_, err = Parse("ab")
	assert.ErrorIs(t, err, ErrInvalidSpec)
	_, err = Parse("<x>")
	assert.ErrorIs(t, err, ErrInvalidSpec, "a bare character is not a key name")
	got, err := Parse("<A-x>")
	require.NoError(t, err)
	assert.Equal(t, Event{Key: KeyRune, Rune: 'x', Modifiers: ModAlt}, got)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("<Bogus>") })
	assert.NotPanics(t, func() { MustParse("<C-o>") })
}

func TestParseSequence(t *testing.T) {
	events, err := ParseSequence(":w<CR>")
	require.NoError(t, err)
	assert.Equal(t, []Event{Rune(':'), Rune('w'), Special(KeyEnter, ModNone)}, events)

	events, err = ParseSequence("a<b")
	require.NoError(t, err)
	assert.Equal(t, []Event{Rune('a'), Rune('<'), Rune('b')}, events, "unterminated '<' is literal")

	events, err = ParseSequence("<x>")
	require.NoError(t, err)
	assert.Equal(t, []Event{Rune('<'), Rune('x'), Rune('>')}, events, "unknown name is literal")

	_, err = ParseSequence("")
	assert.ErrorIs(t, err, ErrEmptySpec)
}

func TestFormatSequenceRoundTrip(t *testing.T) {
	for _, spec := range []string{"dw", "ihello<Esc>", "<Space>w", "<C-r><lt>x", "qa3j@a"} {
		events, err := ParseSequence(spec)
		require.NoError(t, err)
		assert.Equal(t, spec, FormatSequence(events))
	}
}
