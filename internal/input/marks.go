package input

import (
	"errors"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/input/vim"
	"github.com/dshills/vimcore/internal/log"
)

// markKey handles the mark name typed after m, ` or '.
func (e *Engine) markKey(name rune, purpose MarkPurpose) {
	s := e.surf
	if purpose == MarkSet {
		caret := s.Caret()
		if !vim.IsLocalMark(name) && !vim.IsGlobalMark(name) {
			e.notify("Invalid mark")
			return
		}
		if err := e.state.Marks.Set(name, s.LineOf(caret), surface.Column(s, caret), e.state.Document); err != nil {
			e.notify("Invalid mark")
		}
		return
	}

	exact := purpose == MarkJumpExact
	if name == '`' || name == '\'' {
		pos, ok := e.state.Jumps.SwapLast()
		if !ok {
			e.notify("Mark not set")
			return
		}
		to := surface.Clamp(s, pos.Offset)
		if !exact {
			to = motion.FirstNonBlank(s, s.LineOf(to))
		}
		s.SetSelection(to, to)
		return
	}

	info, err := e.state.Marks.Resolve(name, e.state.Document)
	switch {
	case errors.Is(err, vim.ErrMarkOtherDocument):
		e.notify("mark in different file")
		return
	case errors.Is(err, vim.ErrMarkNotSet):
		e.notify("Mark not set")
		return
	case err != nil:
		e.notify("Invalid mark")
		return
	}

	if info.Global && info.Document != e.state.Document {
		surf, err := e.host.SwitchDocument(info.Document)
		if err != nil {
			e.notify("Cannot switch to mark's document: " + err.Error())
			log.Warn("mark document switch failed", "mark", string(name), "document", info.Document, "error", err)
			return
		}
		e.attach(info.Document, surf)
	}
	e.gotoMark(info, exact)
}

// gotoMark moves to a mark: its exact column clamped to the line, or the
// line's first non-blank.
func (e *Engine) gotoMark(info vim.MarkInfo, exact bool) {
	s := e.surf
	line := min(max(info.Line, 0), s.LineCount()-1)
	start, end := s.LineRange(line)
	to := motion.FirstNonBlank(s, line)
	if exact {
		to = start + min(info.Column, end-start)
	}
	e.recordJump(s.Caret())
	s.SetSelection(to, to)
	e.recordJump(to)
}

// recordJump adds off to the jump list.
func (e *Engine) recordJump(off int) {
	s := e.surf
	off = surface.Clamp(s, off)
	e.state.Jumps.Record(off, s.LineOf(off))
}

// jumpOlder moves count entries back in the jump list (Ctrl-O).
func (e *Engine) jumpOlder(count int) {
	e.walkJumps(count, e.state.Jumps.Back)
}

// jumpNewer moves count entries forward in the jump list (Ctrl-I).
func (e *Engine) jumpNewer(count int) {
	e.walkJumps(count, e.state.Jumps.Forward)
}

func (e *Engine) walkJumps(count int, step func() (vim.JumpPosition, bool)) {
	var pos vim.JumpPosition
	moved := false
	for i := 0; i < max(count, 1); i++ {
		p, ok := step()
		if !ok {
			break
		}
		pos, moved = p, true
	}
	if !moved {
		return
	}
	to := surface.Clamp(e.surf, pos.Offset)
	e.surf.SetSelection(to, to)
}
