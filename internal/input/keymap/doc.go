// Package keymap resolves key sequences to actions for the modal engine.
//
// Bindings are inserted into a Builder and frozen into an immutable Tree.
// A Dispatcher walks the tree one key at a time, accumulating a numeric
// repeat count and the keys typed so far, and invokes the bound Action
// once a leaf is reached.
//
// # Key Sequences
//
// Sequences use vim mapping notation (see package key):
//
//	"j"        - Single character
//	"gg"       - Multi-key sequence
//	"<C-r>"    - Ctrl+R
//	"<Space>w" - Space followed by w
//
// # Usage
//
//	b := keymap.NewBuilder()
//	b.Motion("w", 'w', func(count int) { ... })
//	b.Bind("gg", func(count int) { ... })
//	tree := b.Freeze()
//
//	d := keymap.NewDispatcher(tree)
//	switch d.Process(ev) {
//	case keymap.Unhandled:
//	    // fall back to mode-specific handling
//	case keymap.Pending:
//	    // show d.PendingKeys()
//	}
package keymap
