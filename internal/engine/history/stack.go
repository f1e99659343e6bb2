package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// undoEntry is one undo unit.
type undoEntry struct {
	name      string
	ops       []Operation
	timestamp time.Time
}

// History manages undo/redo state for a text.
type History struct {
	mu sync.Mutex

	undoStack []*undoEntry
	redoStack []*undoEntry

	// Grouping state. depth counts nested BeginGroup calls.
	depth     int
	groupName string
	groupOps  []Operation

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record adds an operation to the undo stack and clears the redo stack.
func (h *History) Record(op Operation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth > 0 {
		h.groupOps = append(h.groupOps, op)
		return
	}
	h.pushLocked("", []Operation{op})
}

func (h *History) pushLocked(name string, ops []Operation) {
	h.undoStack = append(h.undoStack, &undoEntry{
		name:      name,
		ops:       ops,
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the last undo unit against t and returns the caret
// position from before the unit was recorded.
func (h *History) Undo(t Target) (int, error) {
	h.mu.Lock()
	h.flushLocked()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToUndo
	}
	entry := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, entry)
	h.mu.Unlock()

	for i := len(entry.ops) - 1; i >= 0; i-- {
		t.Replay(entry.ops[i].Invert())
	}
	return entry.ops[0].CaretBefore, nil
}

// Redo reapplies the last undone unit against t and returns the caret
// position from after the unit.
func (h *History) Redo(t Target) (int, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToRedo
	}
	entry := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, entry)
	h.mu.Unlock()

	for _, op := range entry.ops {
		t.Replay(op)
	}
	return entry.ops[len(entry.ops)-1].CaretAfter, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0 || len(h.groupOps) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo units available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// BeginGroup opens a group. Nested calls only increase the depth;
// the name of the outermost group is kept.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.depth++
	if h.depth == 1 {
		h.groupName = name
		h.groupOps = nil
	}
}

// EndGroup closes one level of grouping. When the outermost group
// closes, its operations become a single undo unit.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.flushLocked()
	}
}

// flushLocked commits pending group operations.
func (h *History) flushLocked() {
	if len(h.groupOps) == 0 {
		return
	}
	h.pushLocked(h.groupName, h.groupOps)
	h.groupOps = nil
}

// IsGrouping returns true if a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.depth = 0
	h.groupOps = nil
}
