package motion

import "github.com/dshills/vimcore/internal/engine/surface"

var pairs = map[byte]byte{
	'(': ')', '[': ']', '{': '}',
	')': '(', ']': '[', '}': '{',
}

func isOpener(c byte) bool {
	return c == '(' || c == '[' || c == '{'
}

// MatchPair finds the first bracket at or after from on the current line
// and returns the position of its partner, honoring nesting.
func MatchPair(s surface.Surface, from int) (int, bool) {
	_, end := s.LineRange(s.LineOf(from))
	pos := from
	for pos < end {
		if _, ok := pairs[s.CharAt(pos)]; ok {
			break
		}
		pos++
	}
	if pos >= end {
		return from, false
	}
	return MatchBracket(s, pos)
}

// MatchBracket returns the partner of the bracket at pos.
func MatchBracket(s surface.Surface, pos int) (int, bool) {
	c := s.CharAt(pos)
	partner, ok := pairs[c]
	if !ok {
		return pos, false
	}
	depth := 1
	if isOpener(c) {
		for i := pos + 1; i < s.Len(); i++ {
			switch s.CharAt(i) {
			case c:
				depth++
			case partner:
				if depth--; depth == 0 {
					return i, true
				}
			}
		}
		return pos, false
	}
	for i := pos - 1; i >= 0; i-- {
		switch s.CharAt(i) {
		case c:
			depth++
		case partner:
			if depth--; depth == 0 {
				return i, true
			}
		}
	}
	return pos, false
}

// FindChar moves to the count'th occurrence of c after from on the line.
// Nothing moves unless all count occurrences exist.
func FindChar(s surface.Surface, from, count int, c byte) (int, bool) {
	_, end := s.LineRange(s.LineOf(from))
	pos := from
	for i := 0; i < count; i++ {
		next, ok := scanForward(s, pos+1, end, c)
		if !ok {
			return from, false
		}
		pos = next
	}
	return pos, true
}

// FindCharBack moves to the count'th occurrence of c before from on the
// line.
func FindCharBack(s surface.Surface, from, count int, c byte) (int, bool) {
	start, _ := s.LineRange(s.LineOf(from))
	pos := from
	for i := 0; i < count; i++ {
		prev, ok := scanBackward(s, pos-1, start, c)
		if !ok {
			return from, false
		}
		pos = prev
	}
	return pos, true
}

// TillChar stops just before the count'th occurrence of c after from. An
// occurrence directly after the caret is skipped so repeating the motion
// advances.
func TillChar(s surface.Surface, from, count int, c byte) (int, bool) {
	_, end := s.LineRange(s.LineOf(from))
	pos := from
	for i := 0; i < count; i++ {
		begin := pos + 1
		if s.CharAt(begin) == c {
			begin++
		}
		next, ok := scanForward(s, begin, end, c)
		if !ok {
			return from, false
		}
		pos = next - 1
	}
	return pos, true
}

// TillCharBack stops just after the count'th occurrence of c before from,
// skipping an occurrence directly before the caret.
func TillCharBack(s surface.Surface, from, count int, c byte) (int, bool) {
	start, _ := s.LineRange(s.LineOf(from))
	pos := from
	for i := 0; i < count; i++ {
		begin := pos - 1
		if begin >= start && s.CharAt(begin) == c {
			begin--
		}
		prev, ok := scanBackward(s, begin, start, c)
		if !ok {
			return from, false
		}
		pos = prev + 1
	}
	return pos, true
}

func scanForward(s surface.Surface, from, end int, c byte) (int, bool) {
	for i := from; i < end; i++ {
		if s.CharAt(i) == c {
			return i, true
		}
	}
	return 0, false
}

func scanBackward(s surface.Surface, from, start int, c byte) (int, bool) {
	for i := from; i >= start; i-- {
		if s.CharAt(i) == c {
			return i, true
		}
	}
	return 0, false
}
