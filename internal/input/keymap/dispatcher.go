package keymap

import (
	"math"
	"strconv"
	"strings"

	"github.com/dshills/vimcore/internal/input/key"
)

// Outcome is the result of processing one key.
type Outcome uint8

const (
	// Unhandled means the key matched nothing; the caller should apply
	// its fallback handling.
	Unhandled Outcome = iota

	// Handled means a binding ran, or a count digit was consumed.
	Handled

	// Pending means the key extended a partial sequence.
	Pending
)

// String returns a readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Handled:
		return "handled"
	case Pending:
		return "pending"
	default:
		return "unhandled"
	}
}

// MotionRecorder receives the motion character of a completed binding.
type MotionRecorder func(motion rune, count int)

// Dispatcher walks a Tree one key at a time.
type Dispatcher struct {
	tree    *Tree
	current *node
	count   int
	pending []key.Event

	// explicit records whether the last completed binding was given a count.
	explicit bool

	onMotion MotionRecorder
}

// NewDispatcher creates a dispatcher positioned at the root of tree.
func NewDispatcher(tree *Tree) *Dispatcher {
	return &Dispatcher{tree: tree, current: tree.root}
}

// OnMotion installs the recorder called after motion-tagged bindings.
func (d *Dispatcher) OnMotion(fn MotionRecorder) {
	d.onMotion = fn
}

// Tree returns the tree being walked.
func (d *Dispatcher) Tree() *Tree {
	return d.tree
}

// Count returns the pending numeric count, 0 when unset.
func (d *Dispatcher) Count() int {
	return d.count
}

// SetCount replaces the pending count.
func (d *Dispatcher) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	d.count = n
}

// EffectiveCount returns the pending count or 1 when unset.
func (d *Dispatcher) EffectiveCount() int {
	if d.count > 0 {
		return d.count
	}
	return 1
}

// Explicit reports whether the binding that ran last was preceded by a
// typed count. Actions use it to tell "G" from "1G".
func (d *Dispatcher) Explicit() bool {
	return d.explicit
}

// HasPending reports whether a partial sequence has been typed.
func (d *Dispatcher) HasPending() bool {
	return len(d.pending) > 0
}

// PendingKeys returns the count and keys typed so far, e.g. "3g".
func (d *Dispatcher) PendingKeys() string {
	var b strings.Builder
	if d.count > 0 {
		b.WriteString(strconv.Itoa(d.count))
	}
	b.WriteString(key.FormatSequence(d.pending))
	return b.String()
}

// Reset returns to the root and clears the count and pending keys.
func (d *Dispatcher) Reset() {
	d.current = d.tree.root
	d.pending = d.pending[:0]
	d.count = 0
}

// Process consumes one key.
func (d *Dispatcher) Process(ev key.Event) Outcome {
	if ev.IsChar() && ev.Rune >= '0' && ev.Rune <= '9' && len(d.pending) == 0 {
		if !(ev.Rune == '0' && d.count == 0 && d.zeroIsBound()) {
			digit := int(ev.Rune - '0')
			if d.count > (math.MaxInt-digit)/10 {
				d.count = math.MaxInt / 10
			} else {
				d.count = d.count*10 + digit
			}
			return Handled
		}
	}

	next, ok := d.current.child(ev)
	if !ok {
		count := d.count
		d.Reset()
		next, ok = d.tree.root.child(ev)
		if !ok {
			// Keep the count for the caller's fallback handling.
			d.count = count
			return Unhandled
		}
		d.count = count
	}
	d.current = next
	d.pending = append(d.pending, ev)

	if next.isLeaf() {
		b := *next.binding
		count := d.EffectiveCount()
		d.explicit = d.count > 0
		d.Reset()
		b.Action(count)
		if b.Motion != 0 && d.onMotion != nil {
			d.onMotion(b.Motion, count)
		}
		return Handled
	}
	return Pending
}

func (d *Dispatcher) zeroIsBound() bool {
	n, ok := d.current.child(key.Rune('0'))
	return ok && n.isLeaf()
}
