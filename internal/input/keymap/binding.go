package keymap

import (
	"sort"

	"github.com/dshills/vimcore/internal/input/key"
)

// Action is invoked when a binding completes. count is the effective
// repeat count, at least 1.
type Action func(count int)

// Binding represents a single key-sequence-to-action mapping.
type Binding struct {
	// Keys is the key sequence in vim notation, e.g. "gg" or "<C-r>".
	Keys string

	// Action runs when the sequence is complete.
	Action Action

	// Motion, when non-zero, is recorded as the last operation after
	// Action runs so the repeat command can replay it.
	Motion rune

	// Description documents the binding for listings.
	Description string
}

// WithDescription sets the description for this binding.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// node is a single trie node. Children are keyed by key.Event.String().
type node struct {
	children map[string]*node
	binding  *Binding
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

func (n *node) child(ev key.Event) (*node, bool) {
	c, ok := n.children[ev.String()]
	return c, ok
}

// isLeaf reports whether the node carries a bound action.
func (n *node) isLeaf() bool {
	return n.binding != nil && n.binding.Action != nil
}

// collect appends every binding under n, sorted by key sequence.
func (n *node) collect(out []Binding) []Binding {
	if n.binding != nil {
		out = append(out, *n.binding)
	}
	keys := make([]string, 0, len(n.children))
	for k := range n.children {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = n.children[k].collect(out)
	}
	return out
}
