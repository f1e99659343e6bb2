package input

import (
	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/macro"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/vim"
)

// PendingKind identifies what a partially typed command is waiting for.
type PendingKind uint8

const (
	// PendingNone means no command is in progress.
	PendingNone PendingKind = iota

	// PendingOperator waits for a motion, the operator again, or i/a.
	PendingOperator

	// PendingOperatorG waits for the second g of an operator+gg.
	PendingOperatorG

	// PendingTextObject waits for the object key after i or a.
	PendingTextObject

	// PendingFindChar waits for the target of f, F, t or T.
	PendingFindChar

	// PendingReplaceChar waits for the character typed after r.
	PendingReplaceChar

	// PendingMarkName waits for a mark name after m, ` or '.
	PendingMarkName

	// PendingRegister waits for a register name after ".
	PendingRegister

	// PendingMacroRegister waits for the register after q.
	PendingMacroRegister

	// PendingMacroPlay waits for the register after @.
	PendingMacroPlay
)

var pendingNames = map[PendingKind]string{
	PendingNone:          "none",
	PendingOperator:      "operator",
	PendingOperatorG:     "operator-g",
	PendingTextObject:    "text-object",
	PendingFindChar:      "find-char",
	PendingReplaceChar:   "replace-char",
	PendingMarkName:      "mark-name",
	PendingRegister:      "register",
	PendingMacroRegister: "macro-register",
	PendingMacroPlay:     "macro-play",
}

// String returns the pending kind name.
func (k PendingKind) String() string {
	if name, ok := pendingNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarkPurpose says what a typed mark name is used for.
type MarkPurpose uint8

const (
	// MarkSet stores the caret position (m).
	MarkSet MarkPurpose = iota

	// MarkJumpExact jumps to the stored line and column (`).
	MarkJumpExact

	// MarkJumpLine jumps to the first non-blank of the stored line (').
	MarkJumpLine
)

// PendingInput is the "awaiting next key" state of Normal and Visual mode.
// Only the fields relevant to Kind are meaningful.
type PendingInput struct {
	Kind PendingKind

	// Operator is d, y, c, > or <. Visual mode uses v for object selection.
	Operator rune

	// Count is the count typed before the operator, 0 when none.
	Count int

	// MotionCount is the count typed after the operator, as in "d3w".
	MotionCount int

	// Modifier is i or a for text objects.
	Modifier rune

	// Forward and Till describe a pending character search.
	Forward bool
	Till    bool

	// Purpose applies to PendingMarkName.
	Purpose MarkPurpose
}

// Active reports whether a command is partially typed.
func (p PendingInput) Active() bool {
	return p.Kind != PendingNone
}

// Total returns the operator count multiplied by the motion count, so
// "2d3w" acts on six words, and whether any count was typed.
func (p PendingInput) Total() (int, bool) {
	n, m := p.Count, p.MotionCount
	explicit := n > 0 || m > 0
	if n < 1 {
		n = 1
	}
	if m < 1 {
		m = 1
	}
	return n * m, explicit
}

// OpKind tags a LastOperation.
type OpKind uint8

const (
	OpNone OpKind = iota
	OpDeleteLine
	OpYankLine
	OpPasteLine
	OpMotion
	OpReplace
	OpPasteChar
)

var opKindNames = map[OpKind]string{
	OpNone:       "none",
	OpDeleteLine: "delete-line",
	OpYankLine:   "yank-line",
	OpPasteLine:  "paste-line",
	OpMotion:     "motion",
	OpReplace:    "replace",
	OpPasteChar:  "paste-char",
}

// String returns the operation kind name.
func (k OpKind) String() string {
	if name, ok := opKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// LastOperation is the most recent repeatable command, replayed by '.'.
type LastOperation struct {
	Kind  OpKind
	Count int

	// Motion is the motion token, e.g. 'w', 'x' or 'f'. When it equals
	// Operator the command was the linewise form, as in "cc" or ">>".
	Motion rune

	// Operator is the composed operator for OpMotion; 0 means delete.
	Operator rune

	// Char is the f/F/t/T target or the r replacement.
	Char byte

	// Object and Inner describe an operator applied to a text object.
	Object rune
	Inner  bool

	// Text is what was typed after a change operator.
	Text string

	// Register is the register the command used, 0 for the default.
	Register rune
}

// FindState is the last f/F/t/T search, repeated by ; and ,.
type FindState struct {
	Char    byte
	Forward bool
	Till    bool
	Valid   bool
}

// Key returns the motion key equivalent to the stored search.
func (f FindState) Key() rune {
	switch {
	case f.Forward && f.Till:
		return 't'
	case f.Forward:
		return 'f'
	case f.Till:
		return 'T'
	default:
		return 'F'
	}
}

// SearchState is the last completed search.
type SearchState struct {
	Term    string
	Regex   bool
	Forward bool

	// Matches is the match count of the last search, -1 when unknown.
	Matches int
}

// VisualState is the selection tracked while in Visual mode. Cursor is
// the logical caret; the surface selection is derived from both ends.
type VisualState struct {
	Anchor     int
	AnchorLine int
	Cursor     int

	// Column is the block-mode column the cursor keeps across lines.
	Column int
}

// LineSpan is an inclusive range of zero-based lines.
type LineSpan struct {
	First int
	Last  int
}

// EditorState is everything the engine knows between keystrokes. It is
// owned by a single Engine.
type EditorState struct {
	Modes *mode.Manager

	Pending  PendingInput
	Register rune

	Search SearchState
	Find   FindState
	Last   LastOperation
	Visual VisualState

	// LastVisual holds the lines of the most recent selection, the
	// range named by '<,'> on the command line.
	LastVisual mo.Option[LineSpan]

	Jumps     *vim.JumpList
	Registers *vim.RegisterStore
	Marks     *vim.MarkStore
	Macros    *macro.Recorder

	// Document identifies the surface for marks.
	Document string

	// CommandLine holds the command-mode buffer, trigger included.
	CommandLine []rune

	Highlights []surface.Span
	Status     string
}

func newEditorState(document string) *EditorState {
	return &EditorState{
		Modes:     mode.NewManager(),
		Search:    SearchState{Matches: -1, Forward: true},
		Jumps:     vim.NewJumpList(vim.DefaultJumpCapacity),
		Registers: vim.NewRegisterStore(),
		Marks:     vim.NewMarkStore(),
		Macros:    macro.NewRecorder(),
		Document:  document,
	}
}

// resetPending clears the transient command state.
func (st *EditorState) resetPending() {
	st.Pending = PendingInput{}
	st.Register = 0
}
