package input

import (
	"errors"
	"sync"
	"time"

	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/keymap"
	"github.com/dshills/vimcore/internal/input/macro"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/vim"
	"github.com/dshills/vimcore/internal/log"
)

// Result tells the host whether the engine used a key.
type Result uint8

const (
	// PassThrough means the host should apply its default handling.
	PassThrough Result = iota

	// Consumed means the engine handled the key.
	Consumed
)

// String returns the result name.
func (r Result) String() string {
	if r == Consumed {
		return "consumed"
	}
	return "pass-through"
}

// ScrollRequest asks the host to reposition its view.
type ScrollRequest uint8

const (
	ScrollNone ScrollRequest = iota

	// ScrollCenter centers the caret line (zz).
	ScrollCenter
)

// maxQueuedEvents bounds the events one key may expand into through
// mappings and macros.
const maxQueuedEvents = 100000

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, used for the soft escape timeout.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithHost installs the host callbacks.
func WithHost(h Host) Option {
	return func(e *Engine) {
		if h != nil {
			e.host = h
		}
	}
}

// WithConfig sets the input configuration, including user mappings.
func WithConfig(in config.Input) Option {
	return func(e *Engine) {
		e.cfg = in
	}
}

// WithDocument sets the identifier marks are recorded against.
func WithDocument(id string) Option {
	return func(e *Engine) {
		e.state.Document = id
	}
}

// WithClipboard connects the + and * registers to a clipboard.
func WithClipboard(p vim.ClipboardProvider) Option {
	return func(e *Engine) {
		e.state.Registers.SetClipboard(p)
	}
}

// WithSearcher shares a regex cache with the engine.
func WithSearcher(s *surface.Searcher) Option {
	return func(e *Engine) {
		if s != nil {
			e.searcher = s
		}
	}
}

// WithMetrics records key handling statistics into m.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// Engine is the modal command engine. Hosts feed it keys with HandleKey,
// HandleSpecialKey or HandleEvent and display Status.
type Engine struct {
	mu sync.Mutex

	surf     surface.Surface
	state    *EditorState
	cfg      config.Input
	host     Host
	clock    func() time.Time
	searcher *surface.Searcher

	normal *keymap.Dispatcher
	visual *keymap.Dispatcher

	player  *macro.Player
	capture macro.Capture
	escape  softEscape
	insert  insertSession

	// queue holds events expanded from macros and mappings.
	queue     []key.Event
	queued    int
	replaying bool

	// msgSet is true once a message was posted for the current key.
	msgSet bool

	// repeating is set while '.' replays the last operation.
	repeating bool

	// cmdReturn is the Visual state a search prompt returns to.
	cmdReturn mo.Option[mode.State]

	// completion cycles ex command names on repeated Tab.
	completion completion

	scroll  ScrollRequest
	hooks   *HookManager
	metrics *Metrics
}

// New creates an engine in Normal mode over surf.
func New(surf surface.Surface, opts ...Option) *Engine {
	e := &Engine{
		surf:     surf,
		state:    newEditorState(""),
		cfg:      config.Default().Input,
		host:     NopHost{},
		clock:    time.Now,
		searcher: surface.NewSearcher(surface.DefaultPatternTTL),
		hooks:    NewHookManager(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.player = macro.NewPlayer(e.state.Macros)
	e.state.Modes.SetEnter(mode.Normal, e.enterNormal)
	e.state.Modes.OnChange(func(from, to mode.State) {
		log.Debug("mode change", "from", from.String(), "to", to.String())
	})

	e.normal = keymap.NewDispatcher(e.normalTree())
	e.normal.OnMotion(e.recordMotion)
	e.visual = keymap.NewDispatcher(e.visualTree())

	e.state.Status = mode.NormalState.StatusText()
	return e
}

// HandleKey processes a typed character. Control characters are mapped to
// their keys, so a host may forward raw terminal input.
func (e *Engine) HandleKey(r rune) Result {
	return e.HandleEvent(eventForRune(r))
}

// HandleSpecialKey processes a non-character key.
func (e *Engine) HandleSpecialKey(k key.Key, mods key.Modifier) Result {
	return e.HandleEvent(key.Special(k, mods))
}

// HandleEvent processes one key event to completion, including any
// macro or mapping expansion it triggers.
func (e *Engine) HandleEvent(ev key.Event) Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	var started time.Time
	if e.metrics != nil {
		started = time.Now()
	}

	if e.hooks.RunPreKey(&ev, e.state) {
		if e.metrics != nil {
			e.metrics.RecordHookConsumption()
		}
		return Consumed
	}

	e.msgSet = false
	e.scroll = ScrollNone
	res := e.dispatch(ev)

	e.replaying = true
	for len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		e.dispatch(next)
	}
	e.replaying = false
	e.queued = 0
	e.player.Done()

	if !e.msgSet {
		e.state.Status = e.modeStatus()
	}

	e.hooks.RunPostKey(ev, res, e.state)
	if e.metrics != nil {
		e.metrics.RecordKeyEvent(time.Since(started), e.state.Modes.Mode(), res)
	}
	return res
}

// dispatch routes one event to the active mode.
func (e *Engine) dispatch(ev key.Event) Result {
	if !e.replaying && e.state.Macros.IsRecording() {
		e.state.Macros.Record(ev)
	}

	switch e.state.Modes.Mode() {
	case mode.Insert:
		return e.insertKey(ev)
	case mode.Command:
		return e.commandKey(ev)
	case mode.Visual:
		return e.visualKey(ev)
	default:
		return e.normalKey(ev)
	}
}

// enqueue schedules events to run after the current one.
func (e *Engine) enqueue(events []key.Event) bool {
	if e.queued+len(events) > maxQueuedEvents {
		e.notify("Too many keys queued")
		log.Warn("key queue overflow", "pending", e.queued, "adding", len(events))
		e.queue = e.queue[:0]
		if e.metrics != nil {
			e.metrics.RecordQueueOverflow()
		}
		return false
	}
	e.queued += len(events)
	e.queue = append(append([]key.Event(nil), events...), e.queue...)
	return true
}

// notify posts a status message for the current key.
func (e *Engine) notify(msg string) {
	e.state.Status = msg
	e.msgSet = true
}

func (e *Engine) modeStatus() string {
	st := e.state.Modes.Current()
	if st.Mode == mode.Command {
		return e.commandStatus()
	}
	text := st.StatusText()
	if e.state.Macros.IsRecording() {
		text += "recording @" + string(e.state.Macros.CurrentRegister())
	}
	return text
}

// enterNormal runs on every switch to Normal mode.
func (e *Engine) enterNormal(mode.State) {
	e.state.resetPending()
	e.state.CommandLine = e.state.CommandLine[:0]
	e.state.Highlights = nil
	e.cmdReturn = mo.None[mode.State]()
	if e.normal != nil {
		e.normal.Reset()
	}
	if e.visual != nil {
		e.visual.Reset()
	}
}

// cancel abandons any partial command and returns to Normal mode.
func (e *Engine) cancel() {
	if e.state.Pending.Active() {
		log.Debug("pending command cancelled", "kind", e.state.Pending.Kind.String())
	}
	if e.state.Modes.Is(mode.Visual) {
		c := e.state.Visual.Cursor
		e.surf.SetSelection(c, c)
	}
	e.state.Modes.Switch(mode.NormalState)
}

// Status returns the status line text.
func (e *Engine) Status() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Status
}

// Mode returns the active mode.
func (e *Engine) Mode() mode.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Modes.Mode()
}

// ModeState returns the active mode with its sub-kind.
func (e *Engine) ModeState() mode.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Modes.Current()
}

// CursorStyle returns the caret style for the active mode.
func (e *Engine) CursorStyle() mode.CursorStyle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Modes.Current().CursorStyle()
}

// Highlights returns the search match spans to draw.
func (e *Engine) Highlights() []surface.Span {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]surface.Span(nil), e.state.Highlights...)
}

// Selection returns the visual selection as one span per line in block
// mode and a single span otherwise. It is empty outside Visual mode.
func (e *Engine) Selection() []surface.Span {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.state.Modes.Is(mode.Visual) {
		return nil
	}
	if e.state.Modes.Current().Visual == mode.VisualBlock {
		return e.blockSpans()
	}
	return []surface.Span{e.visualSpan()}
}

// ScrollRequest returns the view change asked for by the last key.
func (e *Engine) ScrollRequest() ScrollRequest {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scroll
}

// CommandLine returns the command-line buffer, empty outside Command mode.
func (e *Engine) CommandLine() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.state.CommandLine)
}

// State exposes the editor state. Callers must not mutate it while keys
// are being handled.
func (e *Engine) State() *EditorState {
	return e.state
}

// Surface returns the surface being edited.
func (e *Engine) Surface() surface.Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.surf
}

// Hooks returns the hook manager.
func (e *Engine) Hooks() *HookManager {
	return e.hooks
}

// Bindings lists the Normal and Visual key bindings.
func (e *Engine) Bindings() (normal, visual []keymap.Binding) {
	return e.normal.Tree().Bindings(), e.visual.Tree().Bindings()
}

// AttachDocument replaces the surface, as after a host document switch.
// Any partial command is abandoned.
func (e *Engine) AttachDocument(id string, s surface.Surface) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.attach(id, s)
}

func (e *Engine) attach(id string, s surface.Surface) {
	if e.state.Modes.Is(mode.Insert) {
		e.leaveInsert(0)
	}
	e.cancel()
	e.surf = s
	e.state.Document = id
	e.state.Highlights = nil
	e.state.Search.Matches = -1
	e.escape.reset()
}

// ApplyConfig swaps in new input settings between keys. Key tables are
// built once, so mapping and remap changes apply to new engines only.
func (e *Engine) ApplyConfig(in config.Input) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg.EscapeSequence = in.EscapeSequence
	e.cfg.EscapeTimeoutMS = in.EscapeTimeoutMS
	e.cfg.PageLines = in.PageLines
	e.escape.reset()
	log.Debug("input config applied", "escape", in.EscapeSequence, "timeout_ms", in.EscapeTimeoutMS)
}

// Config returns the input settings in use.
func (e *Engine) Config() config.Input {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// eventForRune maps raw control characters to key events.
func eventForRune(r rune) key.Event {
	switch {
	case r == 0x1b:
		return key.Escape
	case r == '\r' || r == '\n':
		return key.Special(key.KeyEnter, key.ModNone)
	case r == '\t':
		return key.Special(key.KeyTab, key.ModNone)
	case r == 0x08 || r == 0x7f:
		return key.Special(key.KeyBackspace, key.ModNone)
	case r > 0 && r < 0x20:
		return key.Ctrl('a' + r - 1)
	}
	return key.Rune(r)
}

// ErrNoDocument is returned by hosts that cannot switch documents.
var ErrNoDocument = errors.New("document not available")
