// Package vim holds the stores behind registers, marks and the jump list.
//
// # Registers
//
// RegisterStore keeps the unnamed register ("), named registers a-z
// (uppercase names append), numbered registers 0-9 with delete rotation,
// the small delete register (-), the black hole (_), read-only registers
// for the last insert (.), command (:) and search (/), and the clipboard
// registers (+ and *) backed by a ClipboardProvider.
//
// # Marks
//
// MarkStore maps a mark name to a line, column and owning document.
// Lowercase marks are local to the document they were set in, uppercase
// marks are global and '.' is the last change.
//
// # Jump List
//
// JumpList is a bounded history of positions visited by jump motions
// with back/forward navigation.
package vim
