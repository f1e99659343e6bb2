package mode

// Mode is a top-level editor mode.
type Mode uint8

const (
	// Normal is the command mode for navigation and operators.
	Normal Mode = iota

	// Insert is text input.
	Insert

	// Visual is selection.
	Visual

	// Command is the command line, for searches and ex commands.
	Command
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Visual:
		return "visual"
	case Command:
		return "command"
	default:
		return "unknown"
	}
}

// VisualKind is the selection shape of Visual mode.
type VisualKind uint8

const (
	// VisualNone means Visual mode is not active.
	VisualNone VisualKind = iota

	// VisualChar selects characters (v).
	VisualChar

	// VisualLine selects whole lines (V).
	VisualLine

	// VisualBlock selects a rectangle (Ctrl-V).
	VisualBlock
)

// String returns the visual kind name.
func (v VisualKind) String() string {
	switch v {
	case VisualChar:
		return "char"
	case VisualLine:
		return "line"
	case VisualBlock:
		return "block"
	default:
		return "none"
	}
}

// CommandKind is the purpose of the command line.
type CommandKind uint8

const (
	// CommandNone means Command mode is not active.
	CommandNone CommandKind = iota

	// CommandSearch is a forward search (/).
	CommandSearch

	// CommandSearchBack is a backward search (?).
	CommandSearchBack

	// CommandEx is an ex command (:).
	CommandEx
)

// Trigger returns the character that opens the command line.
func (c CommandKind) Trigger() rune {
	switch c {
	case CommandSearch:
		return '/'
	case CommandSearchBack:
		return '?'
	case CommandEx:
		return ':'
	default:
		return 0
	}
}

// CommandKindFor returns the kind opened by trigger.
func CommandKindFor(trigger rune) (CommandKind, bool) {
	switch trigger {
	case '/':
		return CommandSearch, true
	case '?':
		return CommandSearchBack, true
	case ':':
		return CommandEx, true
	}
	return CommandNone, false
}

// CursorStyle defines the visual appearance of the cursor.
type CursorStyle uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorStyle = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor (replace).
	CursorUnderline
)

// String returns a human-readable cursor style name.
func (c CursorStyle) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// State is a mode together with its sub-kind.
type State struct {
	Mode    Mode
	Visual  VisualKind
	Command CommandKind

	// Overtype is set for Insert entered with R.
	Overtype bool
}

// NormalState is the Normal mode state.
var NormalState = State{Mode: Normal}

// Normalize clears sub-kinds that do not belong to the mode.
func (s State) Normalize() State {
	if s.Mode != Visual {
		s.Visual = VisualNone
	} else if s.Visual == VisualNone {
		s.Visual = VisualChar
	}
	if s.Mode != Command {
		s.Command = CommandNone
	} else if s.Command == CommandNone {
		s.Command = CommandEx
	}
	if s.Mode != Insert {
		s.Overtype = false
	}
	return s
}

// CursorStyle returns the caret style for the state.
func (s State) CursorStyle() CursorStyle {
	switch s.Mode {
	case Insert:
		if s.Overtype {
			return CursorUnderline
		}
		return CursorBar
	case Command:
		return CursorBar
	default:
		return CursorBlock
	}
}

// StatusText returns the status line label for the state. Command mode
// shows its buffer instead, so it has no label.
func (s State) StatusText() string {
	switch s.Mode {
	case Normal:
		return "-- NORMAL --"
	case Insert:
		if s.Overtype {
			return "-- REPLACE --"
		}
		return "-- INSERT --"
	case Visual:
		switch s.Visual {
		case VisualLine:
			return "-- VISUAL LINE --"
		case VisualBlock:
			return "-- VISUAL BLOCK --"
		}
		return "-- VISUAL --"
	}
	return ""
}

// String returns a compact name such as "visual-line".
func (s State) String() string {
	switch s.Mode {
	case Visual:
		if s.Visual == VisualChar || s.Visual == VisualNone {
			return "visual"
		}
		return "visual-" + s.Visual.String()
	case Insert:
		if s.Overtype {
			return "replace"
		}
	}
	return s.Mode.String()
}
