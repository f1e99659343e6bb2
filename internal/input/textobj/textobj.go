package textobj

import (
	"errors"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/motion"
)

// ErrNotFound is returned when no object surrounds the caret.
var ErrNotFound = errors.New("text object not found")

// Kind identifies a text object.
type Kind uint8

const (
	KindNone Kind = iota
	KindWord
	KindBigWord
	KindSentence
	KindParagraph
	KindParen
	KindBracket
	KindBrace
	KindAngle
	KindSingleQuote
	KindDoubleQuote
	KindBackQuote
	KindTag
)

var kindNames = map[Kind]string{
	KindWord:        "word",
	KindBigWord:     "WORD",
	KindSentence:    "sentence",
	KindParagraph:   "paragraph",
	KindParen:       "paren",
	KindBracket:     "bracket",
	KindBrace:       "brace",
	KindAngle:       "angle",
	KindSingleQuote: "singleQuote",
	KindDoubleQuote: "doubleQuote",
	KindBackQuote:   "backQuote",
	KindTag:         "tag",
}

// String returns the object name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "none"
}

// kinds maps object keys to kinds.
var kinds = map[rune]Kind{
	'w':  KindWord,
	'W':  KindBigWord,
	's':  KindSentence,
	'p':  KindParagraph,
	'(':  KindParen,
	')':  KindParen,
	'b':  KindParen,
	'[':  KindBracket,
	']':  KindBracket,
	'{':  KindBrace,
	'}':  KindBrace,
	'B':  KindBrace,
	'<':  KindAngle,
	'>':  KindAngle,
	'\'': KindSingleQuote,
	'"':  KindDoubleQuote,
	'`':  KindBackQuote,
	't':  KindTag,
}

// KindFor returns the object identified by key r.
func KindFor(r rune) (Kind, bool) {
	k, ok := kinds[r]
	return k, ok
}

// delimiters returns the open and close characters of a delimited kind.
func (k Kind) delimiters() (open, close byte) {
	switch k {
	case KindParen:
		return '(', ')'
	case KindBracket:
		return '[', ']'
	case KindBrace:
		return '{', '}'
	case KindAngle:
		return '<', '>'
	case KindSingleQuote:
		return '\'', '\''
	case KindDoubleQuote:
		return '"', '"'
	case KindBackQuote:
		return '`', '`'
	}
	return 0, 0
}

// Resolve returns the span of object k around pos. An inner object may be
// empty, as in di" on "", which callers treat as a no-op.
func Resolve(s surface.Surface, pos int, k Kind, inner bool, count int) (surface.Span, error) {
	if count < 1 {
		count = 1
	}
	pos = surface.Clamp(s, pos)

	switch k {
	case KindWord:
		return word(s, pos, inner, count, false)
	case KindBigWord:
		return word(s, pos, inner, count, true)
	case KindSentence:
		return sentence(s, pos, inner), nil
	case KindParagraph:
		return paragraph(s, pos, inner, count), nil
	case KindParen, KindBracket, KindBrace, KindAngle:
		open, close := k.delimiters()
		return bracket(s, pos, open, close, inner, count)
	case KindSingleQuote, KindDoubleQuote, KindBackQuote:
		q, _ := k.delimiters()
		return quote(s, pos, q, inner)
	case KindTag:
		return tag(s, pos, inner)
	}
	return surface.Span{}, ErrNotFound
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// word selects the word at pos. On whitespace the word after it is used.
// around adds trailing blanks, or leading blanks when there are none.
func word(s surface.Surface, pos int, inner bool, count int, big bool) (surface.Span, error) {
	n := s.Len()
	if pos < n && motion.IsSpace(s.CharAt(pos)) {
		pos++
	}
	if pos >= n || motion.IsSpace(s.CharAt(pos)) {
		return surface.Span{}, ErrNotFound
	}

	class := motion.Class(s.CharAt(pos), big)
	start, end := pos, pos
	for start > 0 && motion.Class(s.CharAt(start-1), big) == class {
		start--
	}
	for end < n && motion.Class(s.CharAt(end), big) == class {
		end++
	}
	// Additional words for a count.
	for i := 1; i < count && end < n; i++ {
		for end < n && isBlank(s.CharAt(end)) {
			end++
		}
		if end >= n || motion.IsSpace(s.CharAt(end)) {
			break
		}
		c := motion.Class(s.CharAt(end), big)
		for end < n && motion.Class(s.CharAt(end), big) == c {
			end++
		}
	}
	if inner {
		return surface.Span{Start: start, End: end}, nil
	}

	trail := end
	for trail < n && isBlank(s.CharAt(trail)) {
		trail++
	}
	if trail > end {
		return surface.Span{Start: start, End: trail}, nil
	}
	lead := start
	for lead > 0 && isBlank(s.CharAt(lead-1)) {
		lead--
	}
	return surface.Span{Start: lead, End: end}, nil
}

// sentence is the line containing pos; around includes its terminator.
func sentence(s surface.Surface, pos int, inner bool) surface.Span {
	line := s.LineOf(pos)
	start, end := s.LineRange(line)
	if !inner {
		end = surface.LineEndWithTerminator(s, line)
	}
	return surface.Span{Start: start, End: end}
}

// paragraph selects the run of lines around pos up to blank lines. around
// also takes the blank lines that follow, or those that precede when the
// paragraph ends the document.
func paragraph(s surface.Surface, pos int, inner bool, count int) surface.Span {
	last := s.LineCount() - 1
	line := s.LineOf(pos)
	blank := motion.IsBlankLine(s, line)

	first := line
	for first > 0 && motion.IsBlankLine(s, first-1) == blank {
		first--
	}
	end := line
	for i := 0; i < count; i++ {
		for end < last && motion.IsBlankLine(s, end+1) == blank {
			end++
		}
		if i+1 < count && end < last {
			end++
			blank = motion.IsBlankLine(s, end)
		}
	}

	if !inner {
		if end < last {
			next := motion.IsBlankLine(s, end+1)
			end++
			for end < last && motion.IsBlankLine(s, end+1) == next {
				end++
			}
		} else {
			for first > 0 && motion.IsBlankLine(s, first-1) != blank {
				first--
			}
		}
	}

	start, _ := s.LineRange(first)
	return surface.Span{Start: start, End: surface.LineEndWithTerminator(s, end)}
}

// bracket finds the count'th enclosing open/close pair around pos. When
// pos is not inside a pair the first opener after pos on its line is used.
func bracket(s surface.Surface, pos int, open, close byte, inner bool, count int) (surface.Span, error) {
	openAt, ok := pos, s.CharAt(pos) == open
	if !ok {
		openAt, ok = findOpen(s, pos-1, open, close)
	}
	for i := 1; ok && i < count; i++ {
		openAt, ok = findOpen(s, openAt-1, open, close)
	}
	if !ok {
		_, lineEnd := s.LineRange(s.LineOf(pos))
		for i := pos; i < lineEnd; i++ {
			if s.CharAt(i) == open {
				openAt, ok = i, true
				break
			}
		}
		if !ok {
			return surface.Span{}, ErrNotFound
		}
	}

	closeAt, ok := findClose(s, openAt+1, open, close)
	if !ok {
		return surface.Span{}, ErrNotFound
	}
	if inner {
		return surface.Span{Start: openAt + 1, End: closeAt}, nil
	}
	return surface.Span{Start: openAt, End: closeAt + 1}, nil
}

// findOpen scans backward from pos for an unmatched open.
func findOpen(s surface.Surface, pos int, open, close byte) (int, bool) {
	depth := 0
	for i := pos; i >= 0; i-- {
		switch s.CharAt(i) {
		case close:
			depth++
		case open:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// findClose scans forward from pos for an unmatched close.
func findClose(s surface.Surface, pos int, open, close byte) (int, bool) {
	depth := 0
	for i := pos; i < s.Len(); i++ {
		switch s.CharAt(i) {
		case open:
			depth++
		case close:
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// quote pairs the quote characters of the current line in order, skipping
// backslash-escaped ones, and selects the pair containing pos. When pos
// lies before the first pair that pair is used.
func quote(s surface.Surface, pos int, q byte, inner bool) (surface.Span, error) {
	start, end := s.LineRange(s.LineOf(pos))
	var quotes []int
	for i := start; i < end; i++ {
		if s.CharAt(i) == q && (i == start || s.CharAt(i-1) != '\\') {
			quotes = append(quotes, i)
		}
	}

	for i := 0; i+1 < len(quotes); i += 2 {
		openAt, closeAt := quotes[i], quotes[i+1]
		if pos > closeAt {
			continue
		}
		if pos < openAt && i > 0 {
			break
		}
		if inner {
			return surface.Span{Start: openAt + 1, End: closeAt}, nil
		}
		return surface.Span{Start: openAt, End: closeAt + 1}, nil
	}
	return surface.Span{}, ErrNotFound
}

// tag selects between the '>' closing the nearest tag before pos and the
// '<' opening the nearest tag after it. Nested tags are not tracked.
func tag(s surface.Surface, pos int, inner bool) (surface.Span, error) {
	gt := -1
	for i := pos - 1; i >= 0; i-- {
		if s.CharAt(i) == '>' {
			gt = i
			break
		}
	}
	if gt < 0 {
		return surface.Span{}, ErrNotFound
	}
	lt := -1
	for i := gt - 1; i >= 0; i-- {
		if s.CharAt(i) == '<' {
			lt = i
			break
		}
	}

	n := s.Len()
	lt2 := -1
	for i := pos; i < n; i++ {
		if s.CharAt(i) == '<' {
			lt2 = i
			break
		}
	}
	if lt < 0 || lt2 < 0 {
		return surface.Span{}, ErrNotFound
	}
	gt2 := -1
	for i := lt2 + 1; i < n; i++ {
		if s.CharAt(i) == '>' {
			gt2 = i
			break
		}
	}
	if gt2 < 0 {
		return surface.Span{}, ErrNotFound
	}
	if inner {
		return surface.Span{Start: gt + 1, End: lt2}, nil
	}
	return surface.Span{Start: lt, End: gt2 + 1}, nil
}
