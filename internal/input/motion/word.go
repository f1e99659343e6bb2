package motion

import "github.com/dshills/vimcore/internal/engine/surface"

// Character classes for word motions.
const (
	classSpace = iota
	classWord
	classPunct
)

// IsSpace reports whether c is whitespace, including line terminators.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// IsWordChar reports whether c belongs to a keyword. Bytes of multi-byte
// UTF-8 sequences count as keyword characters.
func IsWordChar(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// Class returns the word-motion class of c. BIG-word motions only
// distinguish whitespace from everything else.
func Class(c byte, big bool) int {
	switch {
	case IsSpace(c):
		return classSpace
	case big, IsWordChar(c):
		return classWord
	default:
		return classPunct
	}
}

func classAt(s surface.Surface, pos int, big bool) int {
	return Class(s.CharAt(pos), big)
}

// WordForward moves to the start of the count'th next word.
func WordForward(s surface.Surface, from, count int, big bool) int {
	n := s.Len()
	pos := surface.Clamp(s, from)
	for i := 0; i < count && pos < n; i++ {
		if c := classAt(s, pos, big); c != classSpace {
			for pos < n && classAt(s, pos, big) == c {
				pos++
			}
		}
		for pos < n && classAt(s, pos, big) == classSpace {
			pos++
		}
	}
	return pos
}

// WordBackward moves to the start of the count'th previous word.
func WordBackward(s surface.Surface, from, count int, big bool) int {
	pos := surface.Clamp(s, from)
	for i := 0; i < count && pos > 0; i++ {
		pos--
		for pos > 0 && classAt(s, pos, big) == classSpace {
			pos--
		}
		c := classAt(s, pos, big)
		if c == classSpace {
			break
		}
		for pos > 0 && classAt(s, pos-1, big) == c {
			pos--
		}
	}
	return pos
}

// WordEnd moves to the last character of the count'th next word end.
func WordEnd(s surface.Surface, from, count int, big bool) int {
	n := s.Len()
	pos := surface.Clamp(s, from)
	for i := 0; i < count && pos < n-1; i++ {
		pos++
		for pos < n && classAt(s, pos, big) == classSpace {
			pos++
		}
		if pos >= n {
			return n
		}
		c := classAt(s, pos, big)
		for pos+1 < n && classAt(s, pos+1, big) == c {
			pos++
		}
	}
	return pos
}

// WordBounds returns the keyword run containing pos. The span is empty
// when pos is not on a keyword character.
func WordBounds(s surface.Surface, pos int) surface.Span {
	n := s.Len()
	if pos < 0 || pos >= n || !IsWordChar(s.CharAt(pos)) {
		return surface.Span{Start: pos, End: pos}
	}
	start, end := pos, pos
	for start > 0 && IsWordChar(s.CharAt(start-1)) {
		start--
	}
	for end < n && IsWordChar(s.CharAt(end)) {
		end++
	}
	return surface.Span{Start: start, End: end}
}
