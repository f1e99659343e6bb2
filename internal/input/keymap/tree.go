package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/vimcore/internal/input/key"
)

// ErrFrozen is returned when a binding is added after Freeze.
var ErrFrozen = errors.New("keymap is frozen")

// ErrNoAction is returned for a binding without an action.
var ErrNoAction = errors.New("binding has no action")

// Builder collects bindings before they are frozen into a Tree.
// A Builder is not safe for concurrent use.
type Builder struct {
	root   *node
	size   int
	frozen bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{root: newNode()}
}

// Bind maps keys to action.
func (b *Builder) Bind(keys string, action Action) error {
	return b.Add(Binding{Keys: keys, Action: action})
}

// Motion maps keys to action and tags the binding with a motion character
// so the dispatcher records it for repeat.
func (b *Builder) Motion(keys string, motion rune, action Action) error {
	return b.Add(Binding{Keys: keys, Action: action, Motion: motion})
}

// Add inserts a fully configured binding. Insertion is case-sensitive and
// a later binding for the same sequence replaces the earlier one.
func (b *Builder) Add(binding Binding) error {
	if b.frozen {
		return fmt.Errorf("binding %q: %w", binding.Keys, ErrFrozen)
	}
	if binding.Action == nil {
		return fmt.Errorf("binding %q: %w", binding.Keys, ErrNoAction)
	}
	events, err := key.ParseSequence(binding.Keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", binding.Keys, err)
	}

	n := b.root
	for _, ev := range events {
		child, ok := n.children[ev.String()]
		if !ok {
			child = newNode()
			n.children[ev.String()] = child
		}
		n = child
	}
	if n.binding == nil {
		b.size++
	}
	bound := binding
	n.binding = &bound
	return nil
}

// MustAdd is Add for built-in tables; it panics on error.
func (b *Builder) MustAdd(binding Binding) *Builder {
	if err := b.Add(binding); err != nil {
		panic(err)
	}
	return b
}

// Freeze finalizes the builder. Further insertions fail with ErrFrozen.
func (b *Builder) Freeze() *Tree {
	b.frozen = true
	return &Tree{root: b.root, size: b.size}
}

// Tree is an immutable prefix tree of bindings. It is safe to share
// between dispatchers.
type Tree struct {
	root *node
	size int
}

// Len returns the number of bindings.
func (t *Tree) Len() int {
	return t.size
}

// Lookup returns the binding for an exact sequence.
func (t *Tree) Lookup(keys string) (Binding, bool) {
	n, ok := t.walk(keys)
	if !ok || !n.isLeaf() {
		return Binding{}, false
	}
	return *n.binding, true
}

// HasPrefix reports whether any binding starts with keys.
func (t *Tree) HasPrefix(keys string) bool {
	n, ok := t.walk(keys)
	return ok && (len(n.children) > 0 || n.isLeaf())
}

// Bindings returns every binding sorted by key sequence.
func (t *Tree) Bindings() []Binding {
	return t.root.collect(make([]Binding, 0, t.size))
}

func (t *Tree) walk(keys string) (*node, bool) {
	events, err := key.ParseSequence(keys)
	if err != nil {
		return nil, false
	}
	n := t.root
	for _, ev := range events {
		child, ok := n.child(ev)
		if !ok {
			return nil, false
		}
		n = child
	}
	return n, true
}
