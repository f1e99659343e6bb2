package input

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/input/textobj"
	"github.com/dshills/vimcore/internal/log"
)

// opRange is the text an operator acts on. Linewise ranges cover whole
// lines first..last; span is then derived from them.
type opRange struct {
	span     surface.Span
	linewise bool
	first    int
	last     int
}

// lineRange builds a linewise range over lines first..last.
func lineRange(s surface.Surface, first, last int) opRange {
	if first > last {
		first, last = last, first
	}
	if last >= s.LineCount() {
		last = s.LineCount() - 1
	}
	start, _ := s.LineRange(first)
	return opRange{
		span:     surface.Span{Start: start, End: surface.LineEndWithTerminator(s, last)},
		linewise: true,
		first:    first,
		last:     last,
	}
}

// lineText returns the register content of a linewise range, which
// always ends with a line break.
func lineText(s surface.Surface, r opRange) string {
	start, _ := s.LineRange(r.first)
	_, end := s.LineRange(r.last)
	return s.Text(start, end) + "\n"
}

// deletionSpan widens a linewise span that ends at the end of text so
// the line break before it goes too, leaving no empty trailing line.
func deletionSpan(s surface.Surface, r opRange) surface.Span {
	sp := r.span
	if !r.linewise || r.first == 0 {
		return sp
	}
	if _, end := s.LineRange(r.last); end == s.Len() && sp.End == end {
		sp.Start--
		if sp.Start > 0 && s.CharAt(sp.Start-1) == '\r' {
			sp.Start--
		}
	}
	return sp
}

// runeEnd returns the offset just past the character at pos.
func runeEnd(s surface.Surface, pos int) int {
	if pos >= s.Len() {
		return s.Len()
	}
	_, size := utf8.DecodeRuneInString(s.Text(pos, pos+utf8.UTFMax))
	return pos + size
}

// composeMotion applies op over the range from the caret to the motion
// target. A motion that cannot move cancels the command.
func (e *Engine) composeMotion(op rune, req motion.Request) {
	s := e.surf
	from := s.Caret()
	r, ok := e.motionRange(op, from, req)
	if !ok {
		log.Debug("operator motion failed", "operator", string(op), "motion", string(req.Key))
		e.state.Register = 0
		return
	}
	if op != 'y' {
		e.recordOp(LastOperation{
			Kind:     OpMotion,
			Motion:   req.Key,
			Operator: op,
			Count:    req.Count,
			Char:     req.Char,
			Register: e.state.Register,
		})
	}
	e.applyOperator(op, r)
}

// motionRange computes the range an operator covers for a motion.
func (e *Engine) motionRange(op rune, from int, req motion.Request) (opRange, bool) {
	s := e.surf
	info, ok := motion.Lookup(req.Key)
	if !ok {
		return opRange{}, false
	}

	if op == 'c' && (req.Key == 'w' || req.Key == 'W') && !motion.IsSpace(s.CharAt(from)) && from < s.Len() {
		// cw changes to the end of the word, like ce.
		to := wordChangeEnd(s, from, max(req.Count, 1), req.Key == 'W')
		return opRange{span: surface.Span{Start: from, End: runeEnd(s, to)}}, true
	}

	to, ok := motion.Target(s, from, req)
	if !ok {
		return opRange{}, false
	}

	if info.Linewise {
		a, b := s.LineOf(from), s.LineOf(to)
		if a == b && strings.ContainsRune("jk+-", req.Key) {
			return opRange{}, false
		}
		return lineRange(s, a, b), true
	}

	if (req.Key == 'w' || req.Key == 'W') && s.LineOf(to) > s.LineOf(from) {
		line := s.LineOf(to)
		if to <= motion.FirstNonBlank(s, line) {
			_, to = s.LineRange(line - 1)
		}
	}

	span := surface.Ordered(from, to)
	if info.Inclusive {
		span.End = runeEnd(s, span.End)
	}
	if span.Empty() {
		return opRange{}, false
	}
	return opRange{span: span}, true
}

// wordChangeEnd returns the last character changed by cw with count n.
func wordChangeEnd(s surface.Surface, from, n int, big bool) int {
	_, lineEnd := s.LineRange(s.LineOf(from))
	next := runeEnd(s, from)
	if next >= lineEnd || motion.Class(s.CharAt(next), big) != motion.Class(s.CharAt(from), big) {
		n--
	}
	if n <= 0 {
		return from
	}
	return motion.WordEnd(s, from, n, big)
}

// linewiseOperator applies op to count lines starting at the caret line,
// as in dd, yy, cc, >> and <<.
func (e *Engine) linewiseOperator(op rune, count int) {
	s := e.surf
	first := s.LineOf(s.Caret())
	r := lineRange(s, first, first+max(count, 1)-1)

	last := LastOperation{Count: count, Register: e.state.Register}
	switch op {
	case 'd':
		last.Kind = OpDeleteLine
	case 'y':
		last.Kind = OpYankLine
	default:
		last.Kind = OpMotion
		last.Motion = op
		last.Operator = op
	}
	e.recordOp(last)
	e.applyOperator(op, r)
}

// operatorObject applies op to a text object such as "i(" or "aw".
func (e *Engine) operatorObject(op, modifier, obj rune, count int) {
	kind, ok := textobj.KindFor(obj)
	if !ok {
		e.cancelPending()
		return
	}
	s := e.surf
	pos := s.Caret()
	if e.state.Modes.Is(mode.Visual) {
		pos = e.state.Visual.Cursor
	}
	span, err := textobj.Resolve(s, pos, kind, modifier == 'i', count)
	if err != nil || span.Empty() {
		e.state.Register = 0
		e.notify("No text object found")
		log.Debug("text object not found", "object", string(obj), "inner", modifier == 'i')
		return
	}

	if op == 'v' {
		e.selectObject(span)
		return
	}
	if op != 'y' {
		e.recordOp(LastOperation{
			Kind:     OpMotion,
			Operator: op,
			Object:   obj,
			Inner:    modifier == 'i',
			Count:    count,
			Register: e.state.Register,
		})
	}
	e.applyOperator(op, opRange{span: span})
}

// applyOperator runs op over r.
func (e *Engine) applyOperator(op rune, r opRange) {
	s := e.surf
	reg := e.takeRegister()

	switch op {
	case 'd':
		sp := deletionSpan(s, r)
		text := s.Text(r.span.Start, r.span.End)
		if r.linewise {
			text = lineText(s, r)
		}
		e.state.Registers.SetDelete(reg, text, r.linewise)
		s.Clear(sp.Start, sp.End)
		e.finishLineOp(r, sp.Start)
		if n := r.last - r.first + 1; r.linewise && n > 2 {
			e.notify(strconv.Itoa(n) + " fewer lines")
		}

	case 'y':
		text := s.Text(r.span.Start, r.span.End)
		if r.linewise {
			text = lineText(s, r)
		}
		e.state.Registers.SetYank(reg, text, r.linewise)
		s.Copy(r.span.Start, r.span.End)
		if r.span.Start < s.Caret() || e.state.Modes.Is(mode.Visual) {
			s.SetSelection(r.span.Start, r.span.Start)
		}
		if n := r.last - r.first + 1; r.linewise && n > 2 {
			e.notify(strconv.Itoa(n) + " lines yanked")
		}

	case 'c':
		e.change(r, reg)

	case '>', '<':
		e.indent(op == '>', r.first, r.last)

	case '~':
		group := surface.UndoScope(s)
		e.toggleCase(r.span)
		group.End()
		s.SetSelection(r.span.Start, r.span.Start)
		e.markChange(r.span.Start)
	}
}

// finishLineOp places the caret after a deletion.
func (e *Engine) finishLineOp(r opRange, at int) {
	s := e.surf
	e.markChange(at)
	if !r.linewise {
		at = normalCaret(s, at)
		s.SetSelection(at, at)
		return
	}
	line := min(r.first, s.LineCount()-1)
	pos := motion.FirstNonBlank(s, line)
	s.SetSelection(pos, pos)
}

// change deletes r and starts Insert mode in the same undo group. When
// '.' replays a change, the previously typed text is inserted instead.
func (e *Engine) change(r opRange, reg rune) {
	s := e.surf
	group := surface.UndoScope(s)

	sp := r.span
	text := s.Text(sp.Start, sp.End)
	if r.linewise {
		text = lineText(s, r)
		_, end := s.LineRange(r.last)
		sp.End = end
	}
	e.state.Registers.SetDelete(reg, text, r.linewise)
	s.Clear(sp.Start, sp.End)
	s.SetSelection(sp.Start, sp.Start)

	if e.repeating {
		if t := e.state.Last.Text; t != "" {
			s.Insert(sp.Start, t)
			pos := motion.Left(s, s.Caret(), 1)
			s.SetSelection(pos, pos)
		}
		group.End()
		e.markChange(sp.Start)
		if e.state.Modes.Is(mode.Visual) {
			e.state.Modes.Switch(mode.NormalState)
		}
		return
	}
	e.enterInsert(group, false)
	e.insert.change = true
}

// takeRegister returns the selected register and clears the selection.
func (e *Engine) takeRegister() rune {
	r := e.state.Register
	e.state.Register = 0
	return r
}

// markChange records off as the last change position.
func (e *Engine) markChange(off int) {
	s := e.surf
	off = surface.Clamp(s, off)
	line := s.LineOf(off)
	if err := e.state.Marks.Set('.', line, surface.Column(s, off), e.state.Document); err != nil {
		log.Debug("last change mark not set", "error", err)
	}
}

// deleteChars deletes count characters at the caret (x) or before it
// (X) without leaving the line.
func (e *Engine) deleteChars(before bool, count int) {
	s := e.surf
	caret := s.Caret()
	start, end := s.LineRange(s.LineOf(caret))
	var sp surface.Span
	if before {
		from := caret
		for i := 0; i < count && from > start; i++ {
			from = motion.Left(s, from, 1)
		}
		sp = surface.Span{Start: from, End: caret}
	} else {
		to := caret
		for i := 0; i < count && to < end; i++ {
			to = runeEnd(s, to)
		}
		sp = surface.Span{Start: caret, End: min(to, end)}
	}
	if sp.Empty() {
		e.state.Register = 0
		return
	}
	reg := e.takeRegister()
	e.state.Registers.SetDelete(reg, s.Text(sp.Start, sp.End), false)
	s.Clear(sp.Start, sp.End)
	at := normalCaret(s, sp.Start)
	s.SetSelection(at, at)
	e.markChange(sp.Start)
}

// normalCaret keeps a Normal mode caret on a character: a caret left at
// the end of a non-empty line moves back onto its last character.
func normalCaret(s surface.Surface, pos int) int {
	start, end := s.LineRange(s.LineOf(pos))
	if pos >= end && end > start {
		return motion.Left(s, end, 1)
	}
	return pos
}

// toggleCaseChars switches the case of count characters and moves past them.
func (e *Engine) toggleCaseChars(count int) {
	s := e.surf
	caret := s.Caret()
	_, end := s.LineRange(s.LineOf(caret))
	to := caret
	for i := 0; i < count && to < end; i++ {
		to = runeEnd(s, to)
	}
	if to == caret {
		return
	}
	group := surface.UndoScope(s)
	e.toggleCase(surface.Span{Start: caret, End: to})
	group.End()
	e.markChange(caret)
	if to >= end {
		to = motion.Left(s, end, 1)
	}
	s.SetSelection(to, to)
}

// toggleCase swaps upper and lower case in sp.
func (e *Engine) toggleCase(sp surface.Span) {
	s := e.surf
	text := s.Text(sp.Start, sp.End)
	toggled := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, text)
	if toggled == text {
		return
	}
	s.Clear(sp.Start, sp.End)
	s.Insert(sp.Start, toggled)
}

// replaceChars replaces count characters under the caret with r (the r
// command). Nothing happens when the line has fewer characters left.
func (e *Engine) replaceChars(r rune, count int) {
	s := e.surf
	caret := s.Caret()
	_, end := s.LineRange(s.LineOf(caret))
	to := caret
	for i := 0; i < count; i++ {
		if to >= end {
			return
		}
		to = runeEnd(s, to)
	}
	group := surface.UndoScope(s)
	s.Clear(caret, to)
	s.Insert(caret, strings.Repeat(string(r), count))
	group.End()

	last := motion.Left(s, s.Caret(), 1)
	s.SetSelection(last, last)
	e.markChange(caret)
	e.recordOp(LastOperation{Kind: OpReplace, Count: count})
}

// joinLines joins count lines (at least two) into one, as J does.
func (e *Engine) joinLines(count int) {
	s := e.surf
	line := s.LineOf(s.Caret())
	joins := max(count-1, 1)
	if line+1 >= s.LineCount() {
		return
	}

	group := surface.UndoScope(s)
	defer group.End()
	at := s.Caret()
	for i := 0; i < joins && line+1 < s.LineCount(); i++ {
		_, end := s.LineRange(line)
		next, nextEnd := s.LineRange(line + 1)
		rest := next
		for rest < nextEnd && motion.IsSpace(s.CharAt(rest)) {
			rest++
		}
		sep := " "
		if rest == nextEnd || s.CharAt(rest) == ')' || (end > 0 && s.CharAt(end-1) == ' ') {
			sep = ""
		}
		s.Clear(end, rest)
		s.Insert(end, sep)
		at = end
	}
	s.SetSelection(at, at)
	e.markChange(at)
	e.recordOp(LastOperation{Kind: OpMotion, Motion: 'J', Count: count})
}

// maxPasteBytes bounds the text a counted paste may insert.
const maxPasteBytes = 1 << 24

// paste inserts a register after or before the caret count times.
func (e *Engine) paste(after bool, count int) {
	s := e.surf
	reg := e.takeRegister()
	name := reg
	if name == 0 {
		name = '"'
	}
	text, linewise := e.state.Registers.Get(name)
	if text == "" {
		e.notify("Nothing in register " + string(name))
		return
	}
	count = max(count, 1)
	if count > maxPasteBytes/len(text) {
		e.notify("Paste too large")
		return
	}

	k := 'P'
	if after {
		k = 'p'
	}
	kind := OpPasteChar
	if linewise {
		kind = OpPasteLine
	}
	e.recordOp(LastOperation{Kind: kind, Motion: k, Count: count, Register: reg})

	group := surface.UndoScope(s)
	defer group.End()

	caret := s.Caret()
	if linewise {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		block := strings.Repeat(text, count)
		line := s.LineOf(caret)
		target := line
		if after {
			target = line + 1
			at := surface.LineEndWithTerminator(s, line)
			if _, end := s.LineRange(line); at == end {
				// Last line without a terminator.
				s.Insert(at, "\n"+strings.TrimSuffix(block, "\n"))
			} else {
				s.Insert(at, block)
			}
		} else {
			start, _ := s.LineRange(line)
			s.Insert(start, block)
		}
		pos := motion.FirstNonBlank(s, target)
		s.SetSelection(pos, pos)
		e.markChange(pos)
		return
	}

	at := caret
	if _, end := s.LineRange(s.LineOf(caret)); after && caret < end {
		at = runeEnd(s, caret)
	}
	s.Insert(at, strings.Repeat(text, count))
	pos := motion.Left(s, s.Caret(), 1)
	s.SetSelection(pos, pos)
	e.markChange(at)
}

// indentUnit is the leading whitespace < may remove per level when a
// line is not indented with a tab.
const indentUnit = 4

// indent shifts lines first..last one level right or left.
func (e *Engine) indent(right bool, first, last int) {
	s := e.surf
	group := surface.UndoScope(s)
	for line := first; line <= last && line < s.LineCount(); line++ {
		start, end := s.LineRange(line)
		if right {
			if end > start {
				s.Insert(start, "\t")
			}
			continue
		}
		n := 0
		if s.CharAt(start) == '\t' {
			n = 1
		} else {
			for n < indentUnit && start+n < end && s.CharAt(start+n) == ' ' {
				n++
			}
		}
		if n > 0 {
			s.Clear(start, start+n)
		}
	}
	group.End()

	pos := motion.FirstNonBlank(s, first)
	s.SetSelection(pos, pos)
	e.markChange(pos)
	if n := last - first + 1; n > 2 {
		dir := ">"
		if !right {
			dir = "<"
		}
		e.notify(strconv.Itoa(n) + " lines " + dir + "ed 1 time")
	}
}
