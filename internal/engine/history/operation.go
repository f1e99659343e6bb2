package history

import "time"

// Operation represents a single undoable edit.
// Deleted was removed at Offset and Inserted was put in its place.
type Operation struct {
	Offset   int
	Deleted  string
	Inserted string

	// Caret state for restore
	CaretBefore int
	CaretAfter  int

	Timestamp time.Time
}

// NewInsertOperation creates an operation for an insertion.
func NewInsertOperation(offset int, text string, caretBefore int) Operation {
	return Operation{
		Offset:      offset,
		Inserted:    text,
		CaretBefore: caretBefore,
		CaretAfter:  offset + len(text),
		Timestamp:   time.Now(),
	}
}

// NewDeleteOperation creates an operation for a deletion.
func NewDeleteOperation(offset int, deleted string, caretBefore int) Operation {
	return Operation{
		Offset:      offset,
		Deleted:     deleted,
		CaretBefore: caretBefore,
		CaretAfter:  offset,
		Timestamp:   time.Now(),
	}
}

// IsInsert returns true if the operation only inserted text.
func (op Operation) IsInsert() bool {
	return op.Deleted == "" && op.Inserted != ""
}

// IsDelete returns true if the operation only deleted text.
func (op Operation) IsDelete() bool {
	return op.Deleted != "" && op.Inserted == ""
}

// Invert returns the operation that reverses op.
func (op Operation) Invert() Operation {
	return Operation{
		Offset:      op.Offset,
		Deleted:     op.Inserted,
		Inserted:    op.Deleted,
		CaretBefore: op.CaretAfter,
		CaretAfter:  op.CaretBefore,
		Timestamp:   op.Timestamp,
	}
}

// Target is the text that undo and redo replay operations against.
type Target interface {
	// Replay performs op without recording it.
	Replay(op Operation)
}
