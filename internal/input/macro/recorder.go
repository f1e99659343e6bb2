package macro

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/vimcore/internal/input/key"
)

// Recorder errors.
var (
	// ErrInvalidRegister is returned for names that cannot hold a macro.
	ErrInvalidRegister = errors.New("invalid macro register")

	// ErrAlreadyRecording is returned when recording is already active.
	ErrAlreadyRecording = errors.New("already recording")
)

// Recorder records key sequences for macro playback.
type Recorder struct {
	mu         sync.Mutex
	recording  bool
	appending  bool
	register   rune
	events     []key.Event
	registers  map[rune][]key.Event
	lastPlayed rune
}

// NewRecorder creates a new macro recorder with empty registers.
func NewRecorder() *Recorder {
	return &Recorder{
		registers: make(map[rune][]key.Event),
	}
}

// StartRecording begins recording to the specified register. An
// uppercase register appends to the existing macro when recording stops.
func (r *Recorder) StartRecording(register rune) error {
	name := NormalizeRegister(register)
	if name == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w to register %c", ErrAlreadyRecording, r.register)
	}

	r.recording = true
	r.appending = IsAppendRegister(register)
	r.register = name
	r.events = nil
	return nil
}

// StopRecording ends the current recording and saves it to the register.
// It returns the recorded events, or nil if not recording.
func (r *Recorder) StopRecording() []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}
	r.recording = false

	saved := make([]key.Event, len(r.events))
	copy(saved, r.events)
	if r.appending {
		r.registers[r.register] = append(r.registers[r.register], saved...)
	} else if len(saved) > 0 {
		r.registers[r.register] = saved
	} else {
		delete(r.registers, r.register)
	}

	result := r.events
	r.events = nil
	return result
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// CurrentRegister returns the register being recorded to, or 0.
func (r *Recorder) CurrentRegister() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return r.register
	}
	return 0
}

// Record adds a key event to the current recording.
// Does nothing if not recording.
func (r *Recorder) Record(event key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		r.events = append(r.events, event)
	}
}

// Trim drops the last n recorded events.
func (r *Recorder) Trim(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording || n <= 0 {
		return
	}
	if n > len(r.events) {
		n = len(r.events)
	}
	r.events = r.events[:len(r.events)-n]
}

// Get retrieves a copy of the macro stored in a register.
func (r *Recorder) Get(register rune) []key.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := r.registers[NormalizeRegister(register)]
	result := make([]key.Event, len(events))
	copy(result, events)
	return result
}

// Set stores a macro in a register, replacing any existing content.
func (r *Recorder) Set(register rune, events []key.Event) error {
	name := NormalizeRegister(register)
	if name == 0 {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, register)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(events) == 0 {
		delete(r.registers, name)
		return nil
	}
	saved := make([]key.Event, len(events))
	copy(saved, events)
	r.registers[name] = saved
	return nil
}

// HasMacro returns true if the register contains a macro.
func (r *Recorder) HasMacro(register rune) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.registers[NormalizeRegister(register)]) > 0
}

// ListRegisters returns the registers that contain macros, sorted.
func (r *Recorder) ListRegisters() []rune {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]rune, 0, len(r.registers))
	for reg, events := range r.registers {
		if len(events) > 0 {
			result = append(result, reg)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// SetLastPlayed sets the register replayed by @@.
func (r *Recorder) SetLastPlayed(register rune) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPlayed = register
}

// LastPlayed returns the register replayed by @@, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

// ClearAll removes all macros.
func (r *Recorder) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registers = make(map[rune][]key.Event)
}
