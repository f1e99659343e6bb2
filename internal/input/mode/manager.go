package mode

// EnterFunc is the entry action of a mode. from is the state being left.
type EnterFunc func(from State)

// ChangeCallback is called when the state changes.
type ChangeCallback func(from, to State)

// Manager holds the current mode state and runs transitions.
type Manager struct {
	current  State
	previous State

	enter     map[Mode]EnterFunc
	callbacks []ChangeCallback
}

// NewManager creates a manager in Normal mode.
func NewManager() *Manager {
	return &Manager{
		current:  NormalState,
		previous: NormalState,
		enter:    make(map[Mode]EnterFunc),
	}
}

// SetEnter installs the entry action for a mode.
func (m *Manager) SetEnter(mode Mode, fn EnterFunc) {
	m.enter[mode] = fn
}

// OnChange registers a callback for state changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Mode returns the current top-level mode.
func (m *Manager) Mode() Mode {
	return m.current.Mode
}

// Previous returns the state before the last change.
func (m *Manager) Previous() State {
	return m.previous
}

// Is returns true if the current mode is any of modes.
func (m *Manager) Is(modes ...Mode) bool {
	for _, mode := range modes {
		if m.current.Mode == mode {
			return true
		}
	}
	return false
}

// Switch enters to. It reports whether the state changed.
func (m *Manager) Switch(to State) bool {
	to = to.Normalize()
	from := m.current

	m.current = to
	if fn := m.enter[to.Mode]; fn != nil {
		fn(from)
	}

	if from == to {
		return false
	}
	m.previous = from
	for _, cb := range m.callbacks {
		if cb != nil {
			cb(from, to)
		}
	}
	return true
}

// SwitchMode enters mode with its default sub-kind.
func (m *Manager) SwitchMode(mode Mode) bool {
	return m.Switch(State{Mode: mode})
}
