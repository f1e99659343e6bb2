// Package input implements vi-style modal editing over a text surface.
//
// An Engine interprets keystrokes against a surface.Surface, the minimal
// editing interface a host widget provides. It owns everything that lives
// between keys: the mode, partially typed commands, registers, marks, the
// jump list, macros and the last repeatable change.
//
// # Architecture
//
// The engine is built from several cooperating packages:
//
//   - key: normalized key events and key-sequence notation
//   - mode: the Normal, Insert, Visual and Command modes
//   - keymap: prefix trees of bindings with count accumulation
//   - motion: cursor motions and their inclusive/linewise properties
//   - textobj: word, sentence, paragraph, bracket, quote and tag objects
//   - vim: registers, marks and the jump list
//   - macro: recording and replay of key events
//
// Operators (d, y, c, <, >, ~) compose with motions and text objects.
// Every change made by one command is one undo step on the surface.
//
// # Modal Editing
//
//   - Normal mode: navigation, operators and commands
//   - Insert mode: text entry, left with Esc or a two-key alias
//   - Visual mode: character, line or block selection
//   - Command mode: search prompts and ex commands
//
// # Usage
//
//	surf := surface.NewMemory("hello world\n")
//	eng := input.New(surf, input.WithHost(host))
//
//	for _, r := range "dw" {
//	    eng.HandleKey(r)
//	}
//	fmt.Println(eng.Status())
//
// HandleKey returns PassThrough when the engine did not use a key, so the
// host can apply its own default handling.
package input
