package input

import (
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/log"
)

// repeatLast replays the last change ('.'). A typed count replaces the
// recorded one.
func (e *Engine) repeatLast(count int, explicit bool) {
	last := e.state.Last
	if last.Kind == OpNone {
		return
	}
	n := last.Count
	if explicit {
		n = count
	}
	n = max(n, 1)
	log.Debug("repeat", "kind", last.Kind.String(), "motion", string(last.Motion), "count", n)

	e.repeating = true
	defer func() { e.repeating = false }()
	e.state.Register = last.Register

	switch last.Kind {
	case OpDeleteLine:
		e.linewiseOperator('d', n)
	case OpYankLine:
		e.linewiseOperator('y', n)
	case OpPasteLine, OpPasteChar:
		e.paste(last.Motion == 'p', n)
	case OpReplace:
		e.state.Register = 0
		e.await(PendingInput{Kind: PendingReplaceChar, Count: n})
	case OpMotion:
		e.repeatMotion(last, n, explicit)
	}
}

// repeatMotion replays a motion-tagged operation.
func (e *Engine) repeatMotion(last LastOperation, n int, explicit bool) {
	op := last.Operator
	switch {
	case last.Motion == 'x':
		e.deleteChars(false, n)
	case last.Motion == 'X':
		e.deleteChars(true, n)
	case last.Motion == '~' && op == 0:
		e.toggleCaseChars(n)
	case last.Motion == 'J':
		e.joinLines(n)
	case last.Object != 0:
		modifier := 'a'
		if last.Inner {
			modifier = 'i'
		}
		e.operatorObject(op, modifier, last.Object, n)
	case op != 0 && last.Motion == op:
		e.linewiseOperator(op, n)
	case motion.IsCharSearch(last.Motion) && op == 0:
		req := e.request(last.Motion, n, false)
		req.Char = last.Char
		e.findMotion(req)
	default:
		if op == 0 {
			op = 'd'
		}
		req := e.request(last.Motion, n, explicit)
		req.Char = last.Char
		e.composeMotion(op, req)
	}
}
