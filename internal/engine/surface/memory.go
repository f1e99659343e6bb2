package surface

import (
	"sort"
	"sync"

	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/engine/history"
)

// Clipboard receives text copied from a surface.
type Clipboard interface {
	Set(text string) error
}

// Option configures a Memory surface.
type Option func(*Memory)

// WithClipboard routes Copy to c.
func WithClipboard(c Clipboard) Option {
	return func(m *Memory) {
		m.clipboard = c
	}
}

// WithHistoryLimit caps the number of undo units kept.
func WithHistoryLimit(n int) Option {
	return func(m *Memory) {
		m.history = history.NewHistory(n)
	}
}

// WithSearcher shares a searcher (and its compiled pattern cache).
func WithSearcher(s *Searcher) Option {
	return func(m *Memory) {
		if s != nil {
			m.searcher = s
		}
	}
}

// WithReadOnly rejects edits.
func WithReadOnly() Option {
	return func(m *Memory) {
		m.readOnly = true
	}
}

// Memory is an in-memory Surface with undo history.
// It is safe for concurrent readers, though the engine drives it from a
// single goroutine.
type Memory struct {
	mu sync.RWMutex

	text       []byte
	lineStarts []int

	anchor int
	caret  int

	history   *history.History
	searcher  *Searcher
	clipboard Clipboard
	copied    string
	readOnly  bool
}

// NewMemory creates a surface holding text with the caret at 0.
func NewMemory(text string, opts ...Option) *Memory {
	m := &Memory{
		text:     []byte(text),
		history:  history.NewHistory(0),
		searcher: NewSearcher(DefaultPatternTTL),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reindexLocked()
	return m
}

// reindexLocked recomputes line start offsets.
func (m *Memory) reindexLocked() {
	m.lineStarts = m.lineStarts[:0]
	m.lineStarts = append(m.lineStarts, 0)
	for i, b := range m.text {
		if b == '\n' {
			m.lineStarts = append(m.lineStarts, i+1)
		}
	}
}

func (m *Memory) clampLocked(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > len(m.text) {
		return len(m.text)
	}
	return offset
}

// String returns the full text.
func (m *Memory) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.text)
}

// ReadOnly reports whether edits are rejected.
func (m *Memory) ReadOnly() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readOnly
}

// SetReadOnly toggles edit rejection.
func (m *Memory) SetReadOnly(ro bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readOnly = ro
}

// Copied returns the text most recently passed to Copy.
func (m *Memory) Copied() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.copied
}

// Caret implements Surface.
func (m *Memory) Caret() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.caret
}

// Anchor implements Surface.
func (m *Memory) Anchor() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.anchor
}

// SetSelection implements Surface.
func (m *Memory) SetSelection(anchor, caret int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.anchor = m.clampLocked(anchor)
	m.caret = m.clampLocked(caret)
}

// LineOf implements Surface.
func (m *Memory) LineOf(offset int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	offset = m.clampLocked(offset)
	// index of the last line start <= offset
	return sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
}

// LineRange implements Surface.
func (m *Memory) LineRange(line int) (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lineRangeLocked(line)
}

func (m *Memory) lineRangeLocked(line int) (int, int) {
	if line < 0 {
		line = 0
	}
	if line >= len(m.lineStarts) {
		line = len(m.lineStarts) - 1
	}
	start := m.lineStarts[line]
	end := len(m.text)
	if line+1 < len(m.lineStarts) {
		end = m.lineStarts[line+1] - 1
		if end > start && m.text[end-1] == '\r' {
			end--
		}
	}
	return start, end
}

// LineCount implements Surface.
func (m *Memory) LineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lineStarts)
}

// CharAt implements Surface.
func (m *Memory) CharAt(offset int) byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if offset < 0 || offset >= len(m.text) {
		return 0
	}
	return m.text[offset]
}

// Len implements Surface.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.text)
}

// Text implements Surface.
func (m *Memory) Text(start, end int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	start, end = m.clampLocked(start), m.clampLocked(end)
	if start > end {
		start, end = end, start
	}
	return string(m.text[start:end])
}

// Clear implements Surface.
func (m *Memory) Clear(start, end int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return
	}
	start, end = m.clampLocked(start), m.clampLocked(end)
	if start > end {
		start, end = end, start
	}
	if start == end {
		m.anchor, m.caret = start, start
		return
	}
	deleted := string(m.text[start:end])
	m.history.Record(history.NewDeleteOperation(start, deleted, m.caret))
	m.replaceLocked(start, end, "")
	m.anchor, m.caret = start, start
}

// Insert implements Surface.
func (m *Memory) Insert(at int, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly || text == "" {
		return
	}
	at = m.clampLocked(at)
	m.history.Record(history.NewInsertOperation(at, text, m.caret))
	m.replaceLocked(at, at, text)
	m.caret = at + len(text)
	m.anchor = m.caret
}

// replaceLocked swaps [start, end) for text without recording history.
func (m *Memory) replaceLocked(start, end int, text string) {
	tail := append([]byte(text), m.text[end:]...)
	m.text = append(m.text[:start], tail...)
	m.reindexLocked()
	m.caret = m.clampLocked(m.caret)
	m.anchor = m.clampLocked(m.anchor)
}

// Copy implements Surface.
func (m *Memory) Copy(start, end int) {
	text := m.Text(start, end)
	m.mu.Lock()
	m.copied = text
	cb := m.clipboard
	m.mu.Unlock()
	if cb != nil {
		_ = cb.Set(text)
	}
}

// BeginUndoGroup implements Surface.
func (m *Memory) BeginUndoGroup() {
	m.history.BeginGroup("")
}

// EndUndoGroup implements Surface.
func (m *Memory) EndUndoGroup() {
	m.history.EndGroup()
}

// replayTarget applies history operations while Memory's lock is held.
type replayTarget struct {
	m *Memory
}

func (t replayTarget) Replay(op history.Operation) {
	t.m.replaceLocked(op.Offset, op.Offset+len(op.Deleted), op.Inserted)
}

// Undo implements Surface.
func (m *Memory) Undo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return false
	}
	caret, err := m.history.Undo(replayTarget{m})
	if err != nil {
		return false
	}
	m.caret = m.clampLocked(caret)
	m.anchor = m.caret
	return true
}

// Redo implements Surface.
func (m *Memory) Redo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readOnly {
		return false
	}
	caret, err := m.history.Redo(replayTarget{m})
	if err != nil {
		return false
	}
	m.caret = m.clampLocked(caret)
	m.anchor = m.caret
	return true
}

// SearchInRange implements Surface.
func (m *Memory) SearchInRange(start, end int, needle string, regex bool) mo.Option[Match] {
	m.mu.RLock()
	text := string(m.text)
	m.mu.RUnlock()
	return m.searcher.Find(text, start, end, needle, regex)
}

var _ Surface = (*Memory)(nil)
