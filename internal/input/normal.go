package input

import (
	"strconv"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/log"
)

// normalMotionKeys are the motions bound directly in Normal and Visual mode.
const normalMotionKeys = "hjklwWbBeE0^${}%-+GHL"

// motionAliases binds special keys to the motion they stand for.
var motionAliases = map[string]rune{
	"<Left>":     'h',
	"<Right>":    'l',
	"<Up>":       'k',
	"<Down>":     'j',
	"<Home>":     '0',
	"<End>":      '$',
	"<BS>":       'h',
	"<Space>":    'l',
	"<CR>":       '+',
	"<PageUp>":   'H',
	"<PageDown>": 'L',
}

// normalTree builds the frozen Normal mode command table.
func (e *Engine) normalTree() *keymap.Tree {
	b := keymap.NewBuilder()
	bind := func(keys, desc string, action keymap.Action) {
		b.MustAdd(keymap.Binding{Keys: keys, Action: action, Description: desc})
	}
	tagged := func(keys string, tag rune, desc string, action keymap.Action) {
		b.MustAdd(keymap.Binding{Keys: keys, Action: action, Motion: tag, Description: desc})
	}

	for _, k := range normalMotionKeys {
		info, _ := motion.Lookup(k)
		bind(string(k), info.Name, func(n int) { e.normalMotion(k, n) })
	}
	for keys, k := range motionAliases {
		info, _ := motion.Lookup(k)
		bind(keys, info.Name, func(n int) { e.normalMotion(k, n) })
	}
	bind("gg", "go to first line or line N", func(n int) { e.normalMotion('g', n) })
	if e.cfg.Remap.CtrlFPageDown {
		bind("<C-f>", "page down", func(n int) { e.normalMotion('L', n) })
	}
	if e.cfg.Remap.CtrlBPageUp {
		bind("<C-b>", "page up", func(n int) { e.normalMotion('H', n) })
	}

	// Operators wait for a motion or text object.
	for _, op := range "dyc><" {
		bind(opKeys(op), operatorNames[op], func(n int) { e.beginOperator(op, n) })
	}

	tagged("x", 'x', "delete character", func(n int) { e.deleteChars(false, n) })
	tagged("<Del>", 'x', "delete character", func(n int) { e.deleteChars(false, n) })
	tagged("X", 'X', "delete character before caret", func(n int) { e.deleteChars(true, n) })
	tagged("~", '~', "toggle case", func(n int) { e.toggleCaseChars(n) })
	bind("D", "delete to end of line", func(n int) { e.composeKeys('d', '$', n) })
	bind("C", "change to end of line", func(n int) { e.composeKeys('c', '$', n) })
	bind("s", "substitute character", func(n int) { e.composeKeys('c', 'l', n) })
	bind("S", "substitute line", func(n int) { e.linewiseOperator('c', n) })
	bind("Y", "yank line", func(n int) { e.linewiseOperator('y', n) })
	bind("J", "join lines", func(n int) { e.joinLines(n) })
	bind("p", "paste after", func(n int) { e.paste(true, n) })
	bind("P", "paste before", func(n int) { e.paste(false, n) })
	bind("r", "replace character", func(n int) { e.await(PendingInput{Kind: PendingReplaceChar, Count: n}) })
	bind("R", "replace mode", func(int) { e.enterInsert(nil, true) })
	bind(".", "repeat last change", func(n int) { e.repeatLast(n, e.normal.Explicit()) })

	bind("u", "undo", func(n int) { e.undo(n) })
	if e.cfg.Remap.CtrlRRedo {
		bind("<C-r>", "redo", func(n int) { e.redo(n) })
	}

	bind("i", "insert before caret", func(int) { e.insertAt(e.surf.Caret()) })
	bind("a", "append after caret", func(int) { e.insertAt(motion.Right(e.surf, e.surf.Caret(), 1)) })
	bind("I", "insert at first non-blank", func(int) {
		e.insertAt(motion.FirstNonBlank(e.surf, e.surf.LineOf(e.surf.Caret())))
	})
	bind("A", "append at end of line", func(int) { e.insertAt(motion.LineEnd(e.surf, e.surf.Caret())) })
	bind("o", "open line below", func(int) { e.openLine(true) })
	bind("O", "open line above", func(int) { e.openLine(false) })

	bind("v", "visual mode", func(int) { e.enterVisual(mode.VisualChar) })
	bind("V", "visual line mode", func(int) { e.enterVisual(mode.VisualLine) })
	bind("<C-v>", "visual block mode", func(int) { e.enterVisual(mode.VisualBlock) })

	bind(":", "command line", func(int) { e.enterCommand(mode.CommandEx, "") })
	bind("/", "search forward", func(int) { e.enterCommand(mode.CommandSearch, "") })
	bind("?", "search backward with a regex", func(int) { e.enterCommand(mode.CommandSearchBack, "") })
	bind("n", "next match", func(n int) { e.searchNext(e.state.Search.Forward, n) })
	bind("N", "previous match", func(n int) { e.searchNext(!e.state.Search.Forward, n) })
	bind("*", "search word forward", func(n int) { e.searchWord(true, n) })
	bind("#", "search word backward", func(n int) { e.searchWord(false, n) })

	for _, k := range "fFtT" {
		bind(string(k), motionName(k), func(n int) { e.awaitFind(k, n) })
	}
	bind(";", "repeat find", func(n int) { e.repeatFind(false, 0, n) })
	bind(",", "repeat find reversed", func(n int) { e.repeatFind(true, 0, n) })

	bind("m", "set mark", func(int) { e.await(PendingInput{Kind: PendingMarkName, Purpose: MarkSet}) })
	bind("`", "jump to mark", func(int) { e.await(PendingInput{Kind: PendingMarkName, Purpose: MarkJumpExact}) })
	bind("'", "jump to mark line", func(int) { e.await(PendingInput{Kind: PendingMarkName, Purpose: MarkJumpLine}) })
	bind("<C-o>", "older jump", func(n int) { e.jumpOlder(n) })
	bind("<C-i>", "newer jump", func(n int) { e.jumpNewer(n) })
	bind("<Tab>", "newer jump", func(n int) { e.jumpNewer(n) })

	bind("zz", "center caret line", func(int) { e.scroll = ScrollCenter })
	bind(`"`, "select register", func(int) { e.await(PendingInput{Kind: PendingRegister}) })
	bind("q", "record macro", func(int) { e.toggleRecording() })
	bind("@", "play macro", func(n int) { e.await(PendingInput{Kind: PendingMacroPlay, Count: n}) })

	e.addUserMappings(b, "normal")
	return b.Freeze()
}

// addUserMappings binds configured mappings whose rhs is replayed as keys.
func (e *Engine) addUserMappings(b *keymap.Builder, modeName string) {
	for _, m := range e.cfg.Map {
		if m.Mode != modeName {
			continue
		}
		rhs, err := key.ParseSequence(m.Rhs)
		if err != nil {
			log.Warn("invalid mapping", "lhs", m.Lhs, "rhs", m.Rhs, "error", err)
			continue
		}
		err = b.Add(keymap.Binding{
			Keys:        m.Lhs,
			Description: "map " + m.Rhs,
			Action:      func(int) { e.enqueue(rhs) },
		})
		if err != nil {
			log.Warn("invalid mapping", "lhs", m.Lhs, "error", err)
		}
	}
}

var operatorNames = map[rune]string{
	'd': "delete",
	'y': "yank",
	'c': "change",
	'>': "indent",
	'<': "dedent",
}

// opKeys returns the binding notation for an operator key.
func opKeys(op rune) string {
	if op == '<' {
		return "<lt>"
	}
	return string(op)
}

func motionName(k rune) string {
	info, _ := motion.Lookup(k)
	return info.Name
}

// normalKey handles a key in Normal mode.
func (e *Engine) normalKey(ev key.Event) Result {
	if ev.IsEscape() {
		e.cancel()
		return Consumed
	}
	if e.state.Pending.Active() {
		e.pendingKey(ev)
		return Consumed
	}

	switch e.normal.Process(ev) {
	case keymap.Pending:
		e.notify("-- " + e.normal.PendingKeys() + " --")
	case keymap.Handled:
		if e.normal.Count() > 0 {
			e.notify("-- " + e.normal.PendingKeys() + " --")
		}
	case keymap.Unhandled:
		e.normal.Reset()
		if !ev.IsChar() {
			return PassThrough
		}
		log.Debug("unhandled key", "mode", "normal", "key", ev.VimString())
	}
	return Consumed
}

// normalMotion moves the caret in Normal mode.
func (e *Engine) normalMotion(k rune, count int) {
	s := e.surf
	req := e.request(k, count, e.normal.Explicit())
	from := s.Caret()
	to, ok := motion.Target(s, from, req)
	if !ok {
		return
	}
	to = normalCaret(s, to)
	info, _ := motion.Lookup(k)
	if info.Jump {
		e.recordJump(from)
	}
	motion.Apply(s, to, false)
	if info.Jump {
		e.recordJump(to)
	}
}

// request builds a motion request with the configured page size.
func (e *Engine) request(k rune, count int, explicit bool) motion.Request {
	return motion.Request{
		Key:       k,
		Count:     count,
		Explicit:  explicit,
		Column:    -1,
		PageLines: e.cfg.PageLines,
	}
}

// await enters a pending state and shows it.
func (e *Engine) await(p PendingInput) {
	e.state.Pending = p
	e.notify(e.pendingText())
}

// pendingText renders the partial command, e.g. "-- 2d --".
func (e *Engine) pendingText() string {
	p := e.state.Pending
	var keys []rune
	if p.Count > 0 && p.Kind != PendingMarkName && p.Kind != PendingRegister {
		keys = append(keys, []rune(strconv.Itoa(p.Count))...)
	}
	if e.state.Register != 0 {
		keys = append([]rune{'"', e.state.Register}, keys...)
	}
	switch p.Kind {
	case PendingOperator, PendingOperatorG, PendingTextObject:
		keys = append(keys, p.Operator)
		if p.MotionCount > 0 {
			keys = append(keys, []rune(strconv.Itoa(p.MotionCount))...)
		}
		if p.Kind == PendingOperatorG {
			keys = append(keys, 'g')
		}
		if p.Kind == PendingTextObject {
			keys = append(keys, p.Modifier)
		}
	case PendingFindChar:
		if p.Operator != 0 {
			keys = append(keys, p.Operator)
		}
		keys = append(keys, FindState{Forward: p.Forward, Till: p.Till}.Key())
	case PendingReplaceChar:
		return "-- REPLACE CHAR --"
	case PendingMarkName:
		keys = append(keys, []rune{'m', '`', '\''}[p.Purpose])
	case PendingRegister:
		keys = append(keys, '"')
	case PendingMacroRegister:
		keys = append(keys, 'q')
	case PendingMacroPlay:
		keys = append(keys, '@')
	}
	return "-- " + string(keys) + " --"
}

func (e *Engine) insertAt(pos int) {
	e.surf.SetSelection(pos, pos)
	e.enterInsert(nil, false)
}

// openLine adds an empty line below or above the caret line and enters
// Insert mode on it.
func (e *Engine) openLine(below bool) {
	s := e.surf
	line := s.LineOf(s.Caret())
	group := surface.UndoScope(s)
	if below {
		s.Insert(motion.LineEnd(s, s.Caret()), "\n")
	} else {
		start, _ := s.LineRange(line)
		s.Insert(start, "\n")
		s.SetSelection(start, start)
	}
	e.enterInsert(group, false)
}

func (e *Engine) undo(n int) {
	for i := 0; i < n; i++ {
		if !e.surf.Undo() {
			if i == 0 {
				e.notify("Already at oldest change")
			}
			return
		}
	}
	e.markChange(e.surf.Caret())
}

func (e *Engine) redo(n int) {
	for i := 0; i < n; i++ {
		if !e.surf.Redo() {
			if i == 0 {
				e.notify("Already at newest change")
			}
			return
		}
	}
	e.markChange(e.surf.Caret())
}

// recordMotion stores a motion-tagged binding as the last operation.
func (e *Engine) recordMotion(m rune, count int) {
	e.recordOp(LastOperation{Kind: OpMotion, Motion: m, Count: count})
}

// recordOp replaces the last operation. A repeat keeps the text typed
// by the original change.
func (e *Engine) recordOp(op LastOperation) {
	if e.repeating {
		op.Text = e.state.Last.Text
	}
	e.state.Last = op
}
