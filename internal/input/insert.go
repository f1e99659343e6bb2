package input

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/log"
)

// insertSession is the state of one Insert mode visit.
type insertSession struct {
	// group keeps the whole visit a single undo step.
	group *surface.UndoGroup

	// change is set when the typed text completes the last operation,
	// as after "cw".
	change bool

	// block is the fan-out of a Visual block I, A or c.
	block *blockInsert
}

// blockInsert repeats the typed text on the lines below the caret line.
type blockInsert struct {
	first, last int
	col         int
}

// enterInsert switches to Insert mode. group is an undo group already
// opened by a change operator, or nil to open a new one.
func (e *Engine) enterInsert(group *surface.UndoGroup, overtype bool) {
	if group == nil {
		group = surface.UndoScope(e.surf)
	}
	e.insert = insertSession{group: group}
	e.capture.Begin()
	e.escape.reset()
	e.state.Modes.Switch(mode.State{Mode: mode.Insert, Overtype: overtype})
}

// leaveInsert ends the Insert visit. strip is the number of trailing
// typed characters that belonged to a soft escape.
func (e *Engine) leaveInsert(strip int) {
	s := e.surf
	text := e.capture.Finish(strip)
	block := e.insert.block != nil

	if b := e.insert.block; b != nil && text != "" && !strings.Contains(text, "\n") {
		for line := b.first + 1; line <= b.last && line < s.LineCount(); line++ {
			start, end := s.LineRange(line)
			at := start + b.col
			if at > end {
				at = end
			}
			s.Insert(at, text)
		}
		start, end := s.LineRange(b.first)
		at := start + b.col
		if at > end {
			at = end
		}
		s.SetSelection(at, at)
	}

	if text != "" {
		e.state.Registers.SetLastInserted(text)
		e.markChange(s.Caret())
	}
	if e.insert.change {
		e.state.Last.Text = text
	}
	if e.insert.group != nil {
		e.insert.group.End()
	}
	e.insert = insertSession{}
	e.escape.reset()

	if c := s.Caret(); !block && c > motion.LineStart(s, c) {
		pos := motion.Left(s, c, 1)
		s.SetSelection(pos, pos)
	}
	e.state.Modes.Switch(mode.NormalState)
}

// insertKey handles a key in Insert mode.
func (e *Engine) insertKey(ev key.Event) Result {
	s := e.surf
	if ev.IsEscape() {
		e.leaveInsert(0)
		return Consumed
	}

	if ev.IsChar() {
		if e.softEscapeKey(ev.Rune, s.Caret()) {
			return Consumed
		}
		e.typeRune(ev.Rune)
		return Consumed
	}
	e.escape.reset()

	if ev.Key == key.KeyRune && ev.Modifiers.HasCtrl() {
		switch ev.Rune {
		case 'w':
			e.deleteWordBefore()
			return Consumed
		case 'h':
			e.backspace()
			return Consumed
		case 'j', 'm':
			e.typeRune('\n')
			return Consumed
		}
		return PassThrough
	}

	caret := s.Caret()
	switch ev.Key {
	case key.KeyEnter:
		e.typeRune('\n')
	case key.KeyTab:
		e.typeRune('\t')
	case key.KeyBackspace:
		e.backspace()
	case key.KeyDelete:
		if caret < s.Len() {
			_, size := utf8.DecodeRuneInString(s.Text(caret, caret+utf8.UTFMax))
			s.Clear(caret, caret+size)
		}
	case key.KeyLeft:
		e.moveInsert(motion.Left(s, caret, 1))
	case key.KeyRight:
		e.moveInsert(motion.Right(s, caret, 1))
	case key.KeyUp:
		e.moveInsert(motion.Up(s, caret, 1, surface.Column(s, caret)))
	case key.KeyDown:
		e.moveInsert(motion.Down(s, caret, 1, surface.Column(s, caret)))
	case key.KeyHome:
		e.moveInsert(motion.LineStart(s, caret))
	case key.KeyEnd:
		e.moveInsert(motion.LineEnd(s, caret))
	default:
		return PassThrough
	}
	return Consumed
}

// typeRune inserts r at the caret, overwriting the character under it in
// replace mode.
func (e *Engine) typeRune(r rune) {
	s := e.surf
	caret := s.Caret()
	if e.state.Modes.Current().Overtype && r != '\n' {
		if _, end := s.LineRange(s.LineOf(caret)); caret < end {
			_, size := utf8.DecodeRuneInString(s.Text(caret, caret+utf8.UTFMax))
			s.Clear(caret, caret+size)
		}
	}
	s.Insert(caret, string(r))
	e.capture.Add(r)
}

func (e *Engine) backspace() {
	s := e.surf
	caret := s.Caret()
	if caret == 0 {
		return
	}
	prev := caret - 1
	for prev > 0 && s.CharAt(prev)&0xC0 == 0x80 {
		prev--
	}
	if prev > 0 && s.CharAt(prev) == '\n' && s.CharAt(prev-1) == '\r' {
		prev--
	}
	s.Clear(prev, caret)
	e.capture.Backspace()
}

// deleteWordBefore removes the word before the caret without crossing
// the line start (Ctrl-W).
func (e *Engine) deleteWordBefore() {
	s := e.surf
	caret := s.Caret()
	start := motion.LineStart(s, caret)
	if caret == start {
		e.backspace()
		return
	}
	to := motion.WordBackward(s, caret, 1, false)
	if to < start {
		to = start
	}
	n := utf8.RuneCountInString(s.Text(to, caret))
	s.Clear(to, caret)
	for i := 0; i < n; i++ {
		e.capture.Backspace()
	}
}

func (e *Engine) moveInsert(to int) {
	e.surf.SetSelection(to, to)
}

// InsertCarets returns the secondary caret offsets of a Visual block
// insert in progress, one per line below the primary caret.
func (e *Engine) InsertCarets() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	b := e.insert.block
	if b == nil {
		return nil
	}
	s := e.surf
	start, end := s.LineRange(b.first)
	origin := start + b.col
	if origin > end {
		origin = end
	}
	typed := s.Caret() - origin
	if typed < 0 {
		typed = 0
	}
	carets := make([]int, 0, b.last-b.first)
	for line := b.first + 1; line <= b.last && line < s.LineCount(); line++ {
		ls, le := s.LineRange(line)
		at := ls + b.col
		if at > le {
			at = le
		}
		carets = append(carets, at+typed)
	}
	return carets
}

// startBlockInsert places the caret on the first line of a block and
// enters Insert mode with the fan-out recorded.
func (e *Engine) startBlockInsert(first, last, col int, group *surface.UndoGroup) {
	s := e.surf
	start, end := s.LineRange(first)
	at := start + col
	if at > end {
		at = end
	}
	s.SetSelection(at, at)
	e.enterInsert(group, false)
	e.insert.block = &blockInsert{first: first, last: last, col: col}
	log.Debug("block insert", "first", first, "last", last, "col", col)
}
