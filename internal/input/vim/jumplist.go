package vim

// DefaultJumpCapacity is the default number of jump list entries.
const DefaultJumpCapacity = 100

// jumpMergeDistance is how close, in bytes on the same line, a new jump
// must be to the newest entry to be merged into it.
const jumpMergeDistance = 5

// JumpPosition is an entry in the jump list.
type JumpPosition struct {
	Offset int
	Line   int
}

// JumpList is a bounded, most-recent-last history of jump positions.
type JumpList struct {
	entries  []JumpPosition
	index    int
	capacity int
}

// NewJumpList creates a jump list. A capacity below 1 uses
// DefaultJumpCapacity.
func NewJumpList(capacity int) *JumpList {
	if capacity < 1 {
		capacity = DefaultJumpCapacity
	}
	return &JumpList{capacity: capacity, index: -1}
}

// Record appends a position. Entries after the current index are dropped
// first. A position within jumpMergeDistance of the newest entry on the
// same line is not added.
func (j *JumpList) Record(offset, line int) {
	if j.index >= 0 && j.index < len(j.entries)-1 {
		j.entries = j.entries[:j.index+1]
	}

	if n := len(j.entries); n > 0 {
		last := j.entries[n-1]
		d := offset - last.Offset
		if d < 0 {
			d = -d
		}
		if last.Line == line && d <= jumpMergeDistance {
			j.index = n - 1
			return
		}
	}

	j.entries = append(j.entries, JumpPosition{Offset: offset, Line: line})
	if len(j.entries) > j.capacity {
		j.entries = j.entries[len(j.entries)-j.capacity:]
	}
	j.index = len(j.entries) - 1
}

// Back moves to the previous entry.
func (j *JumpList) Back() (JumpPosition, bool) {
	if j.index <= 0 {
		return JumpPosition{}, false
	}
	j.index--
	return j.entries[j.index], true
}

// Forward moves to the next entry.
func (j *JumpList) Forward() (JumpPosition, bool) {
	if j.index >= len(j.entries)-1 {
		return JumpPosition{}, false
	}
	j.index++
	return j.entries[j.index], true
}

// Last returns the entry before the newest one: the position the most
// recent jump started from.
func (j *JumpList) Last() (JumpPosition, bool) {
	if len(j.entries) < 2 {
		return JumpPosition{}, false
	}
	return j.entries[len(j.entries)-2], true
}

// SwapLast exchanges the two newest entries and returns the new newest
// one. It backs `` and ''.
func (j *JumpList) SwapLast() (JumpPosition, bool) {
	n := len(j.entries)
	if n < 2 {
		return JumpPosition{}, false
	}
	j.entries[n-1], j.entries[n-2] = j.entries[n-2], j.entries[n-1]
	j.index = n - 1
	return j.entries[n-1], true
}

// Size returns the number of entries.
func (j *JumpList) Size() int {
	return len(j.entries)
}

// Index returns the current position in the list, or -1 when empty.
func (j *JumpList) Index() int {
	return j.index
}

// Clear removes all entries.
func (j *JumpList) Clear() {
	j.entries = j.entries[:0]
	j.index = -1
}
