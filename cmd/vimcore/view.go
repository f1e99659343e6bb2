package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input"
	"github.com/dshills/vimcore/internal/input/mode"
)

const tabWidth = 4

var (
	textStyle      = tcell.StyleDefault
	selectionStyle = tcell.StyleDefault.Reverse(true)
	matchStyle     = tcell.StyleDefault.Background(tcell.ColorOlive).Foreground(tcell.ColorBlack)
	fillerStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	statusStyle    = tcell.StyleDefault.Bold(true)
)

// view draws the engine's surface onto a screen and keeps the caret
// line visible.
type view struct {
	top int
}

func (v *view) draw(s tcell.Screen, eng *input.Engine) {
	s.Clear()
	w, h := s.Size()
	rows := max(h-1, 1)

	surf := eng.Surface()
	caret := surf.Caret()
	caretLine := surf.LineOf(caret)
	v.scroll(caretLine, rows, eng.ScrollRequest())

	selection := eng.Selection()
	matches := eng.Highlights()
	cx, cy := 0, 0

	for row := 0; row < rows; row++ {
		line := v.top + row
		if line >= surf.LineCount() {
			s.SetContent(0, row, '~', nil, fillerStyle)
			continue
		}
		start, end := surf.LineRange(line)
		x := 0
		g := uniseg.NewGraphemes(surf.Text(start, end))
		for g.Next() && x < w {
			from, _ := g.Positions()
			off := start + from
			style := textStyle
			switch {
			case inSpans(selection, off):
				style = selectionStyle
			case inSpans(matches, off):
				style = matchStyle
			}
			if off == caret {
				cx, cy = x, row
			}

			runes := g.Runes()
			width := g.Width()
			if runes[0] == '\t' {
				width = tabWidth - x%tabWidth
				for i := 0; i < width; i++ {
					s.SetContent(x+i, row, ' ', nil, style)
				}
			} else {
				s.SetContent(x, row, runes[0], runes[1:], style)
			}
			x += max(width, 1)
		}
		if line == caretLine && caret >= end {
			cx, cy = min(x, w-1), row
		}
	}

	status := eng.Status()
	drawText(s, 0, h-1, w, status, statusStyle)
	if eng.Mode() == mode.Command {
		cx, cy = min(uniseg.StringWidth(eng.CommandLine()), w-1), h-1
	}

	s.SetCursorStyle(cursorStyle(eng.CursorStyle()))
	s.ShowCursor(cx, cy)
	s.Show()
}

// scroll moves the first visible line so that line is on screen.
func (v *view) scroll(line, rows int, req input.ScrollRequest) {
	if req == input.ScrollCenter {
		v.top = line - rows/2
	}
	if line < v.top {
		v.top = line
	}
	if line >= v.top+rows {
		v.top = line - rows + 1
	}
	v.top = max(v.top, 0)
}

func drawText(s tcell.Screen, x, y, w int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() && x < w {
		runes := g.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += max(g.Width(), 1)
	}
}

func inSpans(spans []surface.Span, off int) bool {
	for _, sp := range spans {
		if off >= sp.Start && off < sp.End {
			return true
		}
	}
	return false
}
