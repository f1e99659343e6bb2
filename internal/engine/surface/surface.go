package surface

import "github.com/samber/mo"

// Span is a half-open [Start, End) byte range.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Empty returns true if the span covers nothing.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Match is a search hit.
type Match = Span

// Surface is the host text buffer as seen by the modal engine.
type Surface interface {
	// Caret returns the caret offset.
	Caret() int

	// Anchor returns the fixed end of the selection. It equals Caret
	// when nothing is selected.
	Anchor() int

	// SetSelection places the anchor and caret. Equal values collapse
	// the selection.
	SetSelection(anchor, caret int)

	// LineOf returns the zero-based line containing offset.
	LineOf(offset int) int

	// LineRange returns the start of line and the offset of its line
	// terminator (or of the end of text on the last line).
	LineRange(line int) (start, end int)

	// LineCount returns the number of lines. It is always at least 1.
	LineCount() int

	// CharAt returns the byte at offset, or 0 outside the text.
	CharAt(offset int) byte

	// Len returns the text length in bytes.
	Len() int

	// Text returns the text in [start, end).
	Text(start, end int) string

	// Clear deletes [start, end) and collapses the caret to start.
	Clear(start, end int)

	// Insert inserts text at offset and places the caret after it.
	Insert(at int, text string)

	// Copy hands [start, end) to the host clipboard.
	Copy(start, end int)

	// BeginUndoGroup and EndUndoGroup bracket edits that undo as one
	// unit. Groups nest.
	BeginUndoGroup()
	EndUndoGroup()

	// Undo and Redo report whether anything changed.
	Undo() bool
	Redo() bool

	// SearchInRange finds needle between start and end. When start > end
	// the search runs backward and returns the last match in [end, start).
	SearchInRange(start, end int, needle string, regex bool) mo.Option[Match]
}

// UndoGroup is an open undo group on a surface.
type UndoGroup struct {
	s      Surface
	active bool
}

// UndoScope opens an undo group; defer End to close it on every return path.
//
//	defer surface.UndoScope(s).End()
func UndoScope(s Surface) *UndoGroup {
	s.BeginUndoGroup()
	return &UndoGroup{s: s, active: true}
}

// End closes the group. Calling it more than once is harmless.
func (g *UndoGroup) End() {
	if g.active {
		g.s.EndUndoGroup()
		g.active = false
	}
}

// Clamp limits offset to [0, s.Len()].
func Clamp(s Surface, offset int) int {
	if offset < 0 {
		return 0
	}
	if n := s.Len(); offset > n {
		return n
	}
	return offset
}

// Ordered returns a and b as a span with Start <= End.
func Ordered(a, b int) Span {
	if a > b {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

// LineText returns the content of line without its terminator.
func LineText(s Surface, line int) string {
	start, end := s.LineRange(line)
	return s.Text(start, end)
}

// LineEndWithTerminator returns the offset just past line's terminator, or
// the end of text on the last line.
func LineEndWithTerminator(s Surface, line int) int {
	if line+1 < s.LineCount() {
		start, _ := s.LineRange(line + 1)
		return start
	}
	return s.Len()
}

// Column returns offset's distance from the start of its line.
func Column(s Surface, offset int) int {
	start, _ := s.LineRange(s.LineOf(offset))
	return offset - start
}

// CheckRange validates a range against s without clamping.
func CheckRange(s Surface, start, end int) error {
	if start < 0 || end > s.Len() {
		return ErrOffsetOutOfRange
	}
	if end < start {
		return ErrRangeInvalid
	}
	return nil
}
