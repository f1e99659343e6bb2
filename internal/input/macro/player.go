package macro

import (
	"errors"
	"fmt"

	"github.com/dshills/vimcore/internal/input/key"
)

// DefaultMaxEvents bounds the events a single playback may produce.
const DefaultMaxEvents = 10000

// Player errors.
var (
	// ErrEmptyRegister is returned when the register holds no macro.
	ErrEmptyRegister = errors.New("register is empty")

	// ErrNoLastMacro is returned by @@ before any macro was played.
	ErrNoLastMacro = errors.New("no previously used register")

	// ErrTooManyEvents is returned when playback exceeds the limit,
	// which happens when a macro calls itself.
	ErrTooManyEvents = errors.New("macro playback limit reached")
)

// Player expands macros into event sequences for replay.
type Player struct {
	recorder  *Recorder
	maxEvents int
	played    int
}

// NewPlayer creates a player for the recorder's registers.
func NewPlayer(recorder *Recorder) *Player {
	return &Player{recorder: recorder, maxEvents: DefaultMaxEvents}
}

// SetMaxEvents changes the playback budget.
func (p *Player) SetMaxEvents(n int) {
	if n > 0 {
		p.maxEvents = n
	}
}

// Expand returns the macro in register repeated count times and makes it
// the @@ register. '@' selects the last played register. Every expansion
// is charged against the budget until Done is called.
func (p *Player) Expand(register rune, count int) ([]key.Event, error) {
	if register == '@' {
		register = p.recorder.LastPlayed()
		if register == 0 {
			return nil, ErrNoLastMacro
		}
	}
	events := p.recorder.Get(register)
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: %c", ErrEmptyRegister, register)
	}
	if count < 1 {
		count = 1
	}
	total := len(events) * count
	if p.played+total > p.maxEvents {
		return nil, ErrTooManyEvents
	}
	p.played += total
	p.recorder.SetLastPlayed(NormalizeRegister(register))

	out := make([]key.Event, 0, total)
	for i := 0; i < count; i++ {
		out = append(out, events...)
	}
	return out, nil
}

// Done resets the budget once the caller's replay queue is drained.
func (p *Player) Done() {
	p.played = 0
}
