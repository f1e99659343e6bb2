// Package history records text edits so they can be undone and redone.
//
// An Operation captures a single replacement: the text removed at an offset,
// the text inserted in its place, and the caret before and after.
//
// # History Stack
//
//	h := NewHistory(1000) // keep at most 1000 undo entries
//	h.Record(op)
//	caret, err := h.Undo(target)
//
// # Grouping
//
// Operations recorded while a group is open become one undo unit. Groups
// nest: only the outermost End closes the unit, so callers can open a group
// without knowing whether one is already active.
//
//	defer h.GroupScope("delete line").End()
package history
