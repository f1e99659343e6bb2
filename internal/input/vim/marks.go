package vim

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Mark errors.
var (
	// ErrInvalidMark is returned for names that are not marks.
	ErrInvalidMark = errors.New("invalid mark")

	// ErrMarkNotSet is returned when the mark has no position.
	ErrMarkNotSet = errors.New("mark not set")

	// ErrMarkOtherDocument is returned when a local mark belongs to a
	// document other than the current one.
	ErrMarkOtherDocument = errors.New("mark in different file")
)

// LastChangeMark is the name of the mark updated after every change.
const LastChangeMark = '.'

// MarkInfo is a stored mark position.
type MarkInfo struct {
	Line     int
	Column   int
	Document string
	Global   bool
}

// IsValidMark reports whether name can be set or jumped to.
func IsValidMark(name rune) bool {
	return IsLocalMark(name) || IsGlobalMark(name) || name == LastChangeMark
}

// IsLocalMark reports whether name is a document-local mark (a-z).
func IsLocalMark(name rune) bool {
	return name >= 'a' && name <= 'z'
}

// IsGlobalMark reports whether name is a global mark (A-Z).
func IsGlobalMark(name rune) bool {
	return name >= 'A' && name <= 'Z'
}

// MarkStore holds marks by name. A name has at most one position; setting
// a local mark in another document moves it there.
type MarkStore struct {
	marks map[rune]MarkInfo
}

// NewMarkStore creates an empty mark store.
func NewMarkStore() *MarkStore {
	return &MarkStore{marks: make(map[rune]MarkInfo)}
}

// Set records a mark.
func (ms *MarkStore) Set(name rune, line, column int, document string) error {
	if !IsValidMark(name) {
		return fmt.Errorf("%w: %q", ErrInvalidMark, name)
	}
	ms.marks[name] = MarkInfo{
		Line:     line,
		Column:   column,
		Document: document,
		Global:   IsGlobalMark(name),
	}
	return nil
}

// Get returns a mark regardless of its document.
func (ms *MarkStore) Get(name rune) (MarkInfo, bool) {
	info, ok := ms.marks[name]
	return info, ok
}

// Resolve returns the mark for a jump from document. Local marks and the
// last-change mark must belong to document; a global mark from another
// document is returned as is and the caller switches documents.
func (ms *MarkStore) Resolve(name rune, document string) (MarkInfo, error) {
	if !IsValidMark(name) {
		return MarkInfo{}, fmt.Errorf("%w: %q", ErrInvalidMark, name)
	}
	info, ok := ms.marks[name]
	if !ok {
		return MarkInfo{}, fmt.Errorf("%w: %q", ErrMarkNotSet, name)
	}
	if !info.Global && info.Document != document {
		return MarkInfo{}, fmt.Errorf("%w: %q", ErrMarkOtherDocument, name)
	}
	return info, nil
}

// Delete removes a mark. It reports whether the mark existed.
func (ms *MarkStore) Delete(name rune) bool {
	_, ok := ms.marks[name]
	delete(ms.marks, name)
	return ok
}

// ClearLocal removes the local marks and last-change mark of document.
func (ms *MarkStore) ClearLocal(document string) {
	for name, info := range ms.marks {
		if !info.Global && info.Document == document {
			delete(ms.marks, name)
		}
	}
}

// Clear removes all marks.
func (ms *MarkStore) Clear() {
	clear(ms.marks)
}

// Len returns the number of stored marks.
func (ms *MarkStore) Len() int {
	return len(ms.marks)
}

// Globals returns a copy of the global marks.
func (ms *MarkStore) Globals() map[rune]MarkInfo {
	out := make(map[rune]MarkInfo)
	for name, info := range ms.marks {
		if info.Global {
			out[name] = info
		}
	}
	return out
}

// Names returns the mark names in listing order: local, global, '.'.
func (ms *MarkStore) Names() []rune {
	names := make([]rune, 0, len(ms.marks))
	for name := range ms.marks {
		names = append(names, name)
	}
	rank := func(r rune) int {
		switch {
		case IsLocalMark(r):
			return 0
		case IsGlobalMark(r):
			return 1
		default:
			return 2
		}
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}

// Format renders the marks visible from document the way :marks lists
// them. Lines and columns are shown 1-based.
func (ms *MarkStore) Format(document string) string {
	var local, global, last strings.Builder
	for _, name := range ms.Names() {
		info := ms.marks[name]
		switch {
		case IsLocalMark(name):
			if info.Document == document {
				fmt.Fprintf(&local, "  %c : line %d, col %d\n", name, info.Line+1, info.Column+1)
			}
		case IsGlobalMark(name):
			fmt.Fprintf(&global, "  %c : line %d, col %d [%s]\n", name, info.Line+1, info.Column+1, info.Document)
		default:
			if info.Document == document {
				fmt.Fprintf(&last, "  %c : line %d, col %d\n", name, info.Line+1, info.Column+1)
			}
		}
	}

	if local.Len() == 0 && global.Len() == 0 && last.Len() == 0 {
		return "No marks set\n"
	}

	var b strings.Builder
	b.WriteString("Marks:\n-----\n")
	if local.Len() > 0 {
		b.WriteString("Local marks (a-z):\n")
		b.WriteString(local.String())
	}
	if global.Len() > 0 {
		b.WriteString("\nGlobal marks (A-Z):\n")
		b.WriteString(global.String())
	}
	if last.Len() > 0 {
		b.WriteString("\nLast change position:\n")
		b.WriteString(last.String())
	}
	return b.String()
}
