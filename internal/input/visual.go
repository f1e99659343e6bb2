package input

import (
	"math"
	"strings"

	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/log"
)

// toLineEnd is the block column after $, meaning each line's end.
const toLineEnd = math.MaxInt32

// visualTree builds the frozen Visual mode command table.
func (e *Engine) visualTree() *keymap.Tree {
	b := keymap.NewBuilder()
	bind := func(keys, desc string, action keymap.Action) {
		b.MustAdd(keymap.Binding{Keys: keys, Action: action, Description: desc})
	}

	for _, k := range normalMotionKeys {
		bind(string(k), motionName(k), func(n int) { e.visualMotion(k, n) })
	}
	for keys, k := range motionAliases {
		bind(keys, motionName(k), func(n int) { e.visualMotion(k, n) })
	}
	bind("gg", "go to first line or line N", func(n int) { e.visualMotion('g', n) })
	if e.cfg.Remap.CtrlFPageDown {
		bind("<C-f>", "page down", func(n int) { e.visualMotion('L', n) })
	}
	if e.cfg.Remap.CtrlBPageUp {
		bind("<C-b>", "page up", func(n int) { e.visualMotion('H', n) })
	}
	for _, k := range "fFtT" {
		bind(string(k), motionName(k), func(n int) { e.awaitFind(k, n) })
	}
	bind(";", "repeat find", func(n int) { e.repeatFind(false, 0, n) })
	bind(",", "repeat find reversed", func(n int) { e.repeatFind(true, 0, n) })

	bind("d", "delete selection", func(int) { e.visualOperator('d') })
	bind("x", "delete selection", func(int) { e.visualOperator('d') })
	bind("<Del>", "delete selection", func(int) { e.visualOperator('d') })
	bind("y", "yank selection", func(int) { e.visualOperator('y') })
	bind("c", "change selection", func(int) { e.visualOperator('c') })
	bind("s", "change selection", func(int) { e.visualOperator('c') })
	bind(">", "indent selection", func(int) { e.visualOperator('>') })
	bind("<lt>", "dedent selection", func(int) { e.visualOperator('<') })
	bind("~", "toggle case of selection", func(int) { e.visualOperator('~') })
	bind("D", "delete selected lines", func(int) { e.visualLinewise('d') })
	bind("X", "delete selected lines", func(int) { e.visualLinewise('d') })
	bind("Y", "yank selected lines", func(int) { e.visualLinewise('y') })
	bind("C", "change selected lines", func(int) { e.visualLinewise('c') })
	bind("S", "change selected lines", func(int) { e.visualLinewise('c') })
	bind("R", "change selected lines", func(int) { e.visualLinewise('c') })
	bind("J", "join selected lines", func(int) { e.visualJoin() })
	bind("p", "replace selection with register", func(int) { e.visualPaste() })
	bind("P", "replace selection with register", func(int) { e.visualPaste() })
	bind("I", "insert before selection", func(int) { e.visualInsert(false) })
	bind("A", "append after selection", func(int) { e.visualInsert(true) })

	bind("o", "other end of selection", func(int) { e.swapAnchor() })
	bind("O", "other end of selection", func(int) { e.swapAnchor() })
	bind("v", "charwise selection", func(int) { e.enterVisual(mode.VisualChar) })
	bind("V", "linewise selection", func(int) { e.enterVisual(mode.VisualLine) })
	bind("<C-v>", "block selection", func(int) { e.enterVisual(mode.VisualBlock) })
	bind("i", "select inner object", func(int) {
		e.await(PendingInput{Kind: PendingTextObject, Operator: 'v', Modifier: 'i'})
	})
	bind("a", "select object", func(int) {
		e.await(PendingInput{Kind: PendingTextObject, Operator: 'v', Modifier: 'a'})
	})

	bind(":", "command line on selected lines", func(int) { e.enterCommand(mode.CommandEx, "'<,'>") })
	bind("/", "extend to search match", func(int) { e.enterCommand(mode.CommandSearch, "") })
	bind("?", "extend to regex match backward", func(int) { e.enterCommand(mode.CommandSearchBack, "") })
	bind("n", "extend to next match", func(n int) { e.searchNext(e.state.Search.Forward, n) })
	bind("N", "extend to previous match", func(n int) { e.searchNext(!e.state.Search.Forward, n) })
	bind(`"`, "select register", func(int) { e.await(PendingInput{Kind: PendingRegister}) })

	e.addUserMappings(b, "visual")
	return b.Freeze()
}

// visualKey handles a key in Visual mode.
func (e *Engine) visualKey(ev key.Event) Result {
	if ev.IsEscape() {
		e.cancel()
		return Consumed
	}
	if e.state.Pending.Active() {
		e.pendingKey(ev)
		return Consumed
	}

	switch e.visual.Process(ev) {
	case keymap.Pending:
		e.notify("-- " + e.visual.PendingKeys() + " --")
	case keymap.Handled:
		if e.visual.Count() > 0 {
			e.notify("-- " + e.visual.PendingKeys() + " --")
		}
	case keymap.Unhandled:
		e.visual.Reset()
		if !ev.IsChar() {
			return PassThrough
		}
		log.Debug("unhandled key", "mode", "visual", "key", ev.VimString())
	}
	return Consumed
}

// enterVisual starts a selection of kind at the caret. In Visual mode the
// key of the active kind leaves Visual mode and any other switches kind
// around the same anchor.
func (e *Engine) enterVisual(kind mode.VisualKind) {
	st := e.state.Modes.Current()
	if st.Mode == mode.Visual {
		if st.Visual == kind {
			e.cancel()
			return
		}
		e.state.Modes.Switch(mode.State{Mode: mode.Visual, Visual: kind})
		e.syncSelection()
		return
	}

	s := e.surf
	caret := s.Caret()
	e.state.Visual = VisualState{
		Anchor:     caret,
		AnchorLine: s.LineOf(caret),
		Cursor:     caret,
		Column:     surface.Column(s, caret),
	}
	e.state.Modes.Switch(mode.State{Mode: mode.Visual, Visual: kind})
	e.syncSelection()
}

// visualLines returns the first and last selected lines.
func (e *Engine) visualLines() (int, int) {
	s := e.surf
	a, b := s.LineOf(e.state.Visual.Anchor), s.LineOf(e.state.Visual.Cursor)
	if a > b {
		a, b = b, a
	}
	return a, b
}

// visualSpan returns the selected text range. Charwise selections include
// the character under the cursor; linewise ones include the last line
// break. Block selections return their bounding range.
func (e *Engine) visualSpan() surface.Span {
	s := e.surf
	v := e.state.Visual
	switch e.state.Modes.Current().Visual {
	case mode.VisualLine:
		first, last := e.visualLines()
		return lineRange(s, first, last).span
	case mode.VisualBlock:
		spans := e.blockSpans()
		if len(spans) == 0 {
			return surface.Span{}
		}
		return surface.Span{Start: spans[0].Start, End: spans[len(spans)-1].End}
	}
	sp := surface.Ordered(v.Anchor, v.Cursor)
	sp.End = runeEnd(s, sp.End)
	return sp
}

// blockColumns returns the block's column range, end exclusive.
func (e *Engine) blockColumns() (int, int) {
	s := e.surf
	v := e.state.Visual
	a := surface.Column(s, v.Anchor)
	c := v.Column
	if c == toLineEnd {
		return min(a, surface.Column(s, v.Cursor)), toLineEnd
	}
	if a > c {
		a, c = c, a
	}
	return a, c + 1
}

// blockSpans returns one span per selected line of a block selection,
// each clamped to its line.
func (e *Engine) blockSpans() []surface.Span {
	s := e.surf
	first, last := e.visualLines()
	left, right := e.blockColumns()
	spans := make([]surface.Span, 0, last-first+1)
	for line := first; line <= last; line++ {
		start, end := s.LineRange(line)
		a := start + min(left, end-start)
		b := start + min(right, end-start)
		spans = append(spans, surface.Span{Start: a, End: b})
	}
	return spans
}

// syncSelection mirrors the visual state onto the surface selection.
func (e *Engine) syncSelection() {
	s := e.surf
	v := e.state.Visual
	sp := e.visualSpan()
	if v.Cursor < v.Anchor {
		s.SetSelection(sp.End, sp.Start)
	} else {
		s.SetSelection(sp.Start, sp.End)
	}
	first, last := e.visualLines()
	e.state.LastVisual = mo.Some(LineSpan{First: first, Last: last})
}

// visualMotion moves the selection cursor.
func (e *Engine) visualMotion(k rune, count int) {
	e.visualTo(e.request(k, count, e.visual.Explicit()))
}

// visualTo moves the selection cursor to the target of req; the anchor
// stays fixed.
func (e *Engine) visualTo(req motion.Request) {
	s := e.surf
	v := &e.state.Visual
	vertical := strings.ContainsRune("jkHL", req.Key)
	if vertical && v.Column != toLineEnd {
		req.Column = v.Column
	}
	from := v.Cursor
	to, ok := motion.Target(s, from, req)
	if !ok {
		return
	}
	info, _ := motion.Lookup(req.Key)
	if info.Jump {
		e.recordJump(from)
	}
	v.Cursor = to
	switch {
	case req.Key == '$':
		v.Column = toLineEnd
	case !vertical:
		v.Column = surface.Column(s, to)
	}
	if info.Jump {
		e.recordJump(to)
	}
	e.syncSelection()
}

// swapAnchor moves the cursor to the other end of the selection.
func (e *Engine) swapAnchor() {
	s := e.surf
	v := &e.state.Visual
	v.Anchor, v.Cursor = v.Cursor, v.Anchor
	v.AnchorLine = s.LineOf(v.Anchor)
	v.Column = surface.Column(s, v.Cursor)
	e.syncSelection()
}

// selectObject makes span the selection (v with i or a).
func (e *Engine) selectObject(span surface.Span) {
	s := e.surf
	v := &e.state.Visual
	v.Anchor = span.Start
	v.AnchorLine = s.LineOf(span.Start)
	v.Cursor = motion.Left(s, span.End, 1)
	if v.Cursor < span.Start {
		v.Cursor = span.Start
	}
	v.Column = surface.Column(s, v.Cursor)
	e.syncSelection()
}

// visualRange returns the operator range of a char or line selection.
func (e *Engine) visualRange() opRange {
	s := e.surf
	first, last := e.visualLines()
	if e.state.Modes.Current().Visual == mode.VisualLine {
		return lineRange(s, first, last)
	}
	return opRange{span: e.visualSpan(), first: first, last: last}
}

// leaveVisual returns to Normal mode after an operator unless the
// operator already switched modes.
func (e *Engine) leaveVisual() {
	if e.state.Modes.Is(mode.Visual) {
		e.state.Modes.Switch(mode.NormalState)
	}
}

// visualOperator applies op to the selection.
func (e *Engine) visualOperator(op rune) {
	if e.state.Modes.Current().Visual == mode.VisualBlock {
		e.blockOperator(op)
		return
	}
	e.applyOperator(op, e.visualRange())
	e.leaveVisual()
}

// visualLinewise applies op to every selected line, whatever the kind.
func (e *Engine) visualLinewise(op rune) {
	first, last := e.visualLines()
	e.applyOperator(op, lineRange(e.surf, first, last))
	e.leaveVisual()
}

// visualJoin joins the selected lines.
func (e *Engine) visualJoin() {
	s := e.surf
	first, last := e.visualLines()
	start, _ := s.LineRange(first)
	s.SetSelection(start, start)
	e.state.Modes.Switch(mode.NormalState)
	e.joinLines(max(last-first+1, 2))
}

// visualPaste replaces the selection with a register. The replaced text
// goes to the unnamed register afterwards.
func (e *Engine) visualPaste() {
	s := e.surf
	reg := e.takeRegister()
	if reg == 0 {
		reg = '"'
	}
	text, linewise := e.state.Registers.Get(reg)
	if text == "" {
		e.notify("Nothing in register " + string(reg))
		e.cancel()
		return
	}

	lineMode := e.state.Modes.Current().Visual == mode.VisualLine
	r := e.visualRange()
	old := s.Text(r.span.Start, r.span.End)
	if lineMode {
		old = lineText(s, r)
	}

	if lineMode {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		if _, end := s.LineRange(r.last); r.span.End == end {
			// The last selected line has no terminator to replace.
			text = strings.TrimSuffix(text, "\n")
		}
	} else if linewise {
		text = "\n" + text
	}

	group := surface.UndoScope(s)
	s.Clear(r.span.Start, r.span.End)
	s.Insert(r.span.Start, text)
	group.End()

	e.state.Registers.SetDelete(0, old, lineMode)
	s.SetSelection(r.span.Start, r.span.Start)
	e.markChange(r.span.Start)
	e.state.Modes.Switch(mode.NormalState)
}

// visualInsert starts Insert mode at the start (I) or end (A) of the
// selection. Block selections insert on every line.
func (e *Engine) visualInsert(after bool) {
	s := e.surf
	first, last := e.visualLines()
	if e.state.Modes.Current().Visual == mode.VisualBlock {
		left, right := e.blockColumns()
		col := left
		if after {
			col = right
		}
		e.startBlockInsert(first, last, col, nil)
		return
	}

	sp := e.visualSpan()
	at := sp.Start
	if after {
		at = sp.End
		if e.state.Modes.Current().Visual == mode.VisualLine {
			_, at = s.LineRange(last)
		}
	}
	s.SetSelection(at, at)
	e.enterInsert(nil, false)
}

// blockOperator applies op to each line of a block selection.
func (e *Engine) blockOperator(op rune) {
	s := e.surf
	spans := e.blockSpans()
	first, last := e.visualLines()
	left, _ := e.blockColumns()
	reg := e.takeRegister()

	texts := make([]string, len(spans))
	for i, sp := range spans {
		texts[i] = s.Text(sp.Start, sp.End)
	}
	joined := strings.Join(texts, "\n")
	origin := spans[0].Start

	switch op {
	case 'y':
		e.state.Registers.SetYank(reg, joined, false)
		s.Copy(origin, spans[len(spans)-1].End)
		s.SetSelection(origin, origin)

	case 'd', 'c':
		group := surface.UndoScope(s)
		for i := len(spans) - 1; i >= 0; i-- {
			if !spans[i].Empty() {
				s.Clear(spans[i].Start, spans[i].End)
			}
		}
		e.state.Registers.SetDelete(reg, joined, false)
		e.markChange(origin)
		if op == 'c' {
			e.startBlockInsert(first, last, left, group)
			return
		}
		group.End()
		s.SetSelection(origin, origin)

	case '>', '<':
		e.indent(op == '>', first, last)

	case '~':
		group := surface.UndoScope(s)
		for _, sp := range spans {
			e.toggleCase(sp)
		}
		group.End()
		s.SetSelection(origin, origin)
		e.markChange(origin)
	}
	e.leaveVisual()
}
