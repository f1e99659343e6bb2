package motion

import "github.com/dshills/vimcore/internal/engine/surface"

// Info describes how a motion behaves when composed with an operator.
type Info struct {
	// Key is the motion key, e.g. 'w'.
	Key rune

	// Name is the motion identifier.
	Name string

	// Inclusive indicates the operator range includes the character at
	// the destination, e.g. 'e' is inclusive, 'w' is exclusive.
	Inclusive bool

	// Linewise indicates operators act on whole lines.
	Linewise bool

	// Jump indicates the motion is recorded in the jump list.
	Jump bool
}

// motions maps motion keys to their definitions.
var motions = map[rune]Info{
	'h': {Key: 'h', Name: "left"},
	'l': {Key: 'l', Name: "right"},
	'j': {Key: 'j', Name: "down", Linewise: true},
	'k': {Key: 'k', Name: "up", Linewise: true},
	'w': {Key: 'w', Name: "wordForward"},
	'W': {Key: 'W', Name: "WORDForward"},
	'b': {Key: 'b', Name: "wordBackward"},
	'B': {Key: 'B', Name: "WORDBackward"},
	'e': {Key: 'e', Name: "wordEnd", Inclusive: true},
	'E': {Key: 'E', Name: "WORDEnd", Inclusive: true},
	'0': {Key: '0', Name: "lineStart"},
	'^': {Key: '^', Name: "firstNonBlank"},
	'$': {Key: '$', Name: "lineEnd"},
	'G': {Key: 'G', Name: "documentEnd", Linewise: true, Jump: true},
	'g': {Key: 'g', Name: "documentStart", Linewise: true, Jump: true},
	'{': {Key: '{', Name: "paragraphBackward", Jump: true},
	'}': {Key: '}', Name: "paragraphForward", Jump: true},
	'%': {Key: '%', Name: "matchPair", Inclusive: true, Jump: true},
	'-': {Key: '-', Name: "lineUpFirstNonBlank", Linewise: true},
	'+': {Key: '+', Name: "lineDownFirstNonBlank", Linewise: true},
	'H': {Key: 'H', Name: "pageUp", Linewise: true},
	'L': {Key: 'L', Name: "pageDown", Linewise: true},
	'f': {Key: 'f', Name: "findChar", Inclusive: true},
	'F': {Key: 'F', Name: "findCharBack"},
	't': {Key: 't', Name: "tillChar", Inclusive: true},
	'T': {Key: 'T', Name: "tillCharBack"},
}

// Lookup returns the definition of a motion key.
func Lookup(r rune) (Info, bool) {
	info, ok := motions[r]
	return info, ok
}

// IsComposable reports whether r completes an operator directly, as in
// "dw" or "y$". Character searches need a target and 'g' needs a second
// key, so they are excluded.
func IsComposable(r rune) bool {
	switch r {
	case 'f', 'F', 't', 'T', 'g':
		return false
	}
	_, ok := motions[r]
	return ok
}

// IsCharSearch returns true if the motion requires a character argument.
func IsCharSearch(r rune) bool {
	return r == 'f' || r == 'F' || r == 't' || r == 'T'
}

// Request is a fully specified motion.
type Request struct {
	Key rune

	// Count is the repeat count, at least 1.
	Count int

	// Explicit is true when the count was typed. It only matters for
	// 'G' and 'g', which are absolute.
	Explicit bool

	// Char is the target of a character search.
	Char byte

	// Column is the desired column for vertical motions; -1 uses the
	// caret's column.
	Column int

	// PageLines is the distance moved by 'H' and 'L'.
	PageLines int
}

// Target computes the destination of r starting at from. ok is false for
// unknown keys and for searches that found nothing.
func Target(s surface.Surface, from int, r Request) (int, bool) {
	n := r.Count
	if n < 1 {
		n = 1
	}
	from = surface.Clamp(s, from)
	col := r.Column
	if col < 0 {
		col = surface.Column(s, from)
	}
	page := r.PageLines
	if page < 1 {
		page = DefaultPageLines
	}

	switch r.Key {
	case 'h':
		return Left(s, from, n), true
	case 'l':
		return Right(s, from, n), true
	case 'j':
		return Down(s, from, n, col), true
	case 'k':
		return Up(s, from, n, col), true
	case 'w':
		return WordForward(s, from, n, false), true
	case 'W':
		return WordForward(s, from, n, true), true
	case 'b':
		return WordBackward(s, from, n, false), true
	case 'B':
		return WordBackward(s, from, n, true), true
	case 'e':
		return WordEnd(s, from, n, false), true
	case 'E':
		return WordEnd(s, from, n, true), true
	case '0':
		return LineStart(s, from), true
	case '^':
		return FirstNonBlank(s, s.LineOf(from)), true
	case '$':
		return LineEnd(s, from), true
	case 'G':
		if r.Explicit {
			return GotoLine(s, n), true
		}
		return DocumentEnd(s), true
	case 'g':
		if r.Explicit {
			return GotoLine(s, n), true
		}
		return DocumentStart(s), true
	case '{':
		return ParagraphBackward(s, from, n), true
	case '}':
		return ParagraphForward(s, from, n), true
	case '%':
		return MatchPair(s, from)
	case '-':
		return FirstNonBlank(s, s.LineOf(Up(s, from, n, 0))), true
	case '+':
		return FirstNonBlank(s, s.LineOf(Down(s, from, n, 0))), true
	case 'H':
		return Up(s, from, n*page, col), true
	case 'L':
		return Down(s, from, n*page, col), true
	case 'f':
		return FindChar(s, from, n, r.Char)
	case 'F':
		return FindCharBack(s, from, n, r.Char)
	case 't':
		return TillChar(s, from, n, r.Char)
	case 'T':
		return TillCharBack(s, from, n, r.Char)
	}
	return from, false
}

// DefaultPageLines is the 'H'/'L' distance when none is configured.
const DefaultPageLines = 20

// Move computes r and applies it to the surface. With extend set the
// anchor stays fixed and only the caret moves.
func Move(s surface.Surface, r Request, extend bool) bool {
	to, ok := Target(s, s.Caret(), r)
	if !ok {
		return false
	}
	Apply(s, to, extend)
	return true
}

// Apply places the caret at to, extending the selection when asked.
func Apply(s surface.Surface, to int, extend bool) {
	to = surface.Clamp(s, to)
	if extend {
		s.SetSelection(s.Anchor(), to)
		return
	}
	s.SetSelection(to, to)
}
