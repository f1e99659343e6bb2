package input

import (
	"errors"
	"math"
	"unicode/utf8"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/macro"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/input/vim"
	"github.com/dshills/vimcore/internal/log"
)

// pendingKey completes or cancels a partially typed command.
func (e *Engine) pendingKey(ev key.Event) {
	p := e.state.Pending
	switch p.Kind {
	case PendingOperator:
		e.operatorKey(ev)

	case PendingOperatorG:
		if ev.IsChar() && ev.Rune == 'g' {
			n, explicit := p.Total()
			e.state.Pending = PendingInput{}
			e.composeMotion(p.Operator, e.request('g', n, explicit))
			return
		}
		e.cancelPending()

	case PendingTextObject:
		if !ev.IsChar() {
			e.cancelPending()
			return
		}
		n, _ := p.Total()
		e.state.Pending = PendingInput{}
		e.operatorObject(p.Operator, p.Modifier, ev.Rune, n)

	case PendingFindChar:
		c, ok := byteKey(ev)
		if !ok {
			e.cancelPending()
			return
		}
		n, _ := p.Total()
		e.state.Pending = PendingInput{}
		e.state.Find = FindState{Char: c, Forward: p.Forward, Till: p.Till, Valid: true}
		k := e.state.Find.Key()
		if p.Operator == 0 && !e.state.Modes.Is(mode.Visual) {
			e.recordOp(LastOperation{Kind: OpMotion, Motion: k, Char: c, Count: max(n, 1)})
		}
		e.findWith(p.Operator, k, c, n)

	case PendingReplaceChar:
		e.state.Pending = PendingInput{}
		if !ev.IsChar() {
			e.cancelPending()
			return
		}
		e.replaceChars(ev.Rune, max(p.Count, 1))

	case PendingMarkName:
		e.state.Pending = PendingInput{}
		if !ev.IsChar() {
			e.cancelPending()
			return
		}
		e.markKey(ev.Rune, p.Purpose)

	case PendingRegister:
		e.state.Pending = PendingInput{}
		if !ev.IsChar() || !vim.IsValidRegister(ev.Rune) {
			e.cancelPending()
			return
		}
		e.state.Register = ev.Rune
		e.notify(e.pendingText())

	case PendingMacroRegister:
		e.state.Pending = PendingInput{}
		if !ev.IsChar() {
			e.cancelPending()
			return
		}
		e.startRecording(ev.Rune)

	case PendingMacroPlay:
		e.state.Pending = PendingInput{}
		if !ev.IsChar() {
			e.cancelPending()
			return
		}
		e.playMacro(ev.Rune, max(p.Count, 1))
	}
}

// byteKey returns the single-byte character of a find target.
func byteKey(ev key.Event) (byte, bool) {
	if ev.IsEscape() {
		return 0, false
	}
	if ev.Key == key.KeyTab {
		return '\t', true
	}
	if !ev.IsChar() || ev.Rune >= utf8.RuneSelf {
		return 0, false
	}
	return byte(ev.Rune), true
}

// cancelPending silently drops a partial command.
func (e *Engine) cancelPending() {
	log.Debug("pending command cancelled", "kind", e.state.Pending.Kind.String())
	e.state.resetPending()
	e.normal.Reset()
	e.visual.Reset()
}

// beginOperator starts operator-pending state for d, y, c, > or <.
func (e *Engine) beginOperator(op rune, count int) {
	p := PendingInput{Kind: PendingOperator, Operator: op}
	if e.normal.Explicit() {
		p.Count = count
	}
	e.await(p)
}

// operatorAliases maps special keys typed after an operator to motions.
var operatorAliases = map[key.Key]rune{
	key.KeyLeft:  'h',
	key.KeyRight: 'l',
	key.KeyUp:    'k',
	key.KeyDown:  'j',
	key.KeyHome:  '0',
	key.KeyEnd:   '$',
}

// operatorKey interprets the key typed after an operator.
func (e *Engine) operatorKey(ev key.Event) {
	p := e.state.Pending
	r := ev.Rune
	if !ev.IsChar() {
		alias, ok := operatorAliases[ev.Key]
		if !ok {
			e.cancelPending()
			return
		}
		r = alias
	}

	switch {
	case r >= '1' && r <= '9', r == '0' && p.MotionCount > 0:
		digit := int(r - '0')
		if p.MotionCount > (math.MaxInt32-digit)/10 {
			e.state.Pending.MotionCount = math.MaxInt32
		} else {
			e.state.Pending.MotionCount = p.MotionCount*10 + digit
		}
		e.notify(e.pendingText())

	case r == p.Operator:
		n, _ := p.Total()
		e.state.Pending = PendingInput{}
		e.linewiseOperator(p.Operator, n)

	case r == 'i' || r == 'a':
		e.state.Pending.Kind = PendingTextObject
		e.state.Pending.Modifier = r
		e.notify(e.pendingText())

	case motion.IsCharSearch(r):
		e.state.Pending.Kind = PendingFindChar
		e.state.Pending.Forward = r == 'f' || r == 't'
		e.state.Pending.Till = r == 't' || r == 'T'
		e.notify(e.pendingText())

	case r == 'g':
		e.state.Pending.Kind = PendingOperatorG
		e.notify(e.pendingText())

	case r == ';' || r == ',':
		n, _ := p.Total()
		e.state.Pending = PendingInput{}
		e.repeatFind(r == ',', p.Operator, n)

	case motion.IsComposable(r):
		n, explicit := p.Total()
		e.state.Pending = PendingInput{}
		e.composeMotion(p.Operator, e.request(r, n, explicit))

	default:
		e.cancelPending()
	}
}

// composeKeys runs a fixed operator and motion pair such as D (d$).
func (e *Engine) composeKeys(op, m rune, count int) {
	e.composeMotion(op, e.request(m, count, e.normal.Explicit()))
}

// awaitFind starts a character search; the target is the next key.
func (e *Engine) awaitFind(k rune, count int) {
	p := PendingInput{
		Kind:    PendingFindChar,
		Forward: k == 'f' || k == 't',
		Till:    k == 't' || k == 'T',
	}
	if count > 1 {
		p.Count = count
	}
	e.await(p)
}

// findWith runs a character search as a motion or under an operator.
func (e *Engine) findWith(op rune, k rune, c byte, count int) {
	req := e.request(k, count, false)
	req.Char = c
	if op != 0 {
		e.composeMotion(op, req)
		return
	}
	e.findMotion(req)
}

// findMotion moves the caret, or the visual cursor, by a character search.
// A failed search leaves everything in place.
func (e *Engine) findMotion(req motion.Request) {
	if e.state.Modes.Is(mode.Visual) {
		e.visualTo(req)
		return
	}
	s := e.surf
	to, ok := motion.Target(s, s.Caret(), req)
	if !ok {
		return
	}
	motion.Apply(s, to, false)
}

// repeatFind repeats the last f/F/t/T. reverse runs it the other way
// and flips the stored direction, as in Vim; ';' never changes it.
func (e *Engine) repeatFind(reverse bool, op rune, count int) {
	f := e.state.Find
	if !f.Valid {
		return
	}
	if reverse {
		f.Forward = !f.Forward
		e.state.Find.Forward = f.Forward
	}
	e.findWith(op, f.Key(), f.Char, count)
}

// startRecording handles the register typed after q.
func (e *Engine) startRecording(r rune) {
	if err := e.state.Macros.StartRecording(r); err != nil {
		e.notify("Invalid register: " + string(r))
		log.Debug("macro record failed", "register", string(r), "error", err)
		return
	}
	log.Debug("macro recording started", "register", string(r))
}

// toggleRecording stops an active recording or waits for a register.
func (e *Engine) toggleRecording() {
	rec := e.state.Macros
	if !rec.IsRecording() {
		e.await(PendingInput{Kind: PendingMacroRegister})
		return
	}
	if !e.replaying {
		rec.Trim(1)
	}
	reg := rec.CurrentRegister()
	events := rec.StopRecording()
	log.Debug("macro recording stopped", "register", string(reg), "events", len(events))
}

// playMacro queues a register's keys count times.
func (e *Engine) playMacro(r rune, count int) {
	events, err := e.player.Expand(r, count)
	switch {
	case err == nil:
	case errors.Is(err, macro.ErrNoLastMacro):
		e.notify("No previously used register")
		return
	case errors.Is(err, macro.ErrEmptyRegister):
		e.notify("Register is empty: " + string(r))
		return
	case errors.Is(err, macro.ErrTooManyEvents):
		e.notify("Macro too long")
		return
	default:
		e.notify("Invalid register: " + string(r))
		return
	}
	e.enqueue(events)
}
