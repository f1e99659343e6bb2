package motion

import (
	"strings"

	"github.com/dshills/vimcore/internal/engine/surface"
)

func isContinuation(c byte) bool {
	return c&0xC0 == 0x80
}

// Left moves count characters left without leaving the line.
func Left(s surface.Surface, from, count int) int {
	start, _ := s.LineRange(s.LineOf(from))
	pos := from
	for i := 0; i < count && pos > start; i++ {
		pos--
		for pos > start && isContinuation(s.CharAt(pos)) {
			pos--
		}
	}
	return pos
}

// Right moves count characters right, stopping at the line end.
func Right(s surface.Surface, from, count int) int {
	_, end := s.LineRange(s.LineOf(from))
	pos := from
	for i := 0; i < count && pos < end; i++ {
		pos++
		for pos < end && isContinuation(s.CharAt(pos)) {
			pos++
		}
	}
	return pos
}

// Down moves count lines down to column col, clamped to the line length.
func Down(s surface.Surface, from, count, col int) int {
	line := s.LineOf(from) + count
	if last := s.LineCount() - 1; line > last {
		line = last
	}
	return atColumn(s, line, col)
}

// Up moves count lines up to column col, clamped to the line length.
func Up(s surface.Surface, from, count, col int) int {
	line := s.LineOf(from) - count
	if line < 0 {
		line = 0
	}
	return atColumn(s, line, col)
}

func atColumn(s surface.Surface, line, col int) int {
	start, end := s.LineRange(line)
	pos := start + col
	if col < 0 || pos > end {
		pos = end
	}
	for pos > start && pos < end && isContinuation(s.CharAt(pos)) {
		pos--
	}
	return pos
}

// LineStart returns the first column of from's line.
func LineStart(s surface.Surface, from int) int {
	start, _ := s.LineRange(s.LineOf(from))
	return start
}

// LineEnd returns the end of from's line, before its terminator.
func LineEnd(s surface.Surface, from int) int {
	_, end := s.LineRange(s.LineOf(from))
	return end
}

// FirstNonBlank returns the first non-blank column of line, or the line
// end when the line is blank.
func FirstNonBlank(s surface.Surface, line int) int {
	start, end := s.LineRange(line)
	pos := start
	for pos < end {
		if c := s.CharAt(pos); c != ' ' && c != '\t' {
			break
		}
		pos++
	}
	return pos
}

// GotoLine returns the first non-blank of the 1-based line number,
// clamped to the document.
func GotoLine(s surface.Surface, lineNum int) int {
	line := lineNum - 1
	if line < 0 {
		line = 0
	}
	if last := s.LineCount() - 1; line > last {
		line = last
	}
	return FirstNonBlank(s, line)
}

// DocumentStart returns the first non-blank of the first line.
func DocumentStart(s surface.Surface) int {
	return FirstNonBlank(s, 0)
}

// DocumentEnd returns the first non-blank of the last line.
func DocumentEnd(s surface.Surface) int {
	return FirstNonBlank(s, s.LineCount()-1)
}

// IsBlankLine reports whether line holds only spaces and tabs.
func IsBlankLine(s surface.Surface, line int) bool {
	return strings.Trim(surface.LineText(s, line), " \t") == ""
}

// ParagraphForward moves to the blank line after the count'th paragraph,
// or to the end of the document.
func ParagraphForward(s surface.Surface, from, count int) int {
	last := s.LineCount() - 1
	line := s.LineOf(from)
	for i := 0; i < count; i++ {
		if line >= last {
			return s.Len()
		}
		for line < last && IsBlankLine(s, line) {
			line++
		}
		for line < last && !IsBlankLine(s, line) {
			line++
		}
		if !IsBlankLine(s, line) {
			return s.Len()
		}
	}
	start, _ := s.LineRange(line)
	return start
}

// ParagraphBackward moves to the blank line before the count'th previous
// paragraph, or to the start of the document.
func ParagraphBackward(s surface.Surface, from, count int) int {
	line := s.LineOf(from)
	for i := 0; i < count; i++ {
		if line <= 0 {
			return 0
		}
		for line > 0 && IsBlankLine(s, line) {
			line--
		}
		for line > 0 && !IsBlankLine(s, line) {
			line--
		}
	}
	start, _ := s.LineRange(line)
	return start
}
