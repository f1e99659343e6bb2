package input

import (
	"sort"
	"sync"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/log"
)

// Hook observes or intercepts keys around the engine. Hooks run with the
// engine locked and must not call back into it.
type Hook interface {
	// PreKey runs before a key is dispatched. It may rewrite ev.
	// Returning true consumes the key; the engine then ignores it.
	PreKey(ev *key.Event, st *EditorState) bool

	// PostKey runs after a key and everything it expanded into.
	PostKey(ev key.Event, res Result, st *EditorState)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager manages key hooks with priorities and named registration.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	sorted  bool
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{sorted: true, enabled: true}
}

// Register adds a hook with default priority and no name.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterWithPriority adds a hook with specified priority.
func (m *HookManager) RegisterWithPriority(hook Hook, priority HookPriority) HookID {
	return m.RegisterWithOptions(hook, "", priority)
}

// RegisterNamed adds a hook with a name for later reference. A hook
// already registered under name is replaced.
func (m *HookManager) RegisterNamed(hook Hook, name string) HookID {
	return m.RegisterWithOptions(hook, name, HookPriorityNormal)
}

// RegisterWithOptions adds a hook with all options specified.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name != "" {
		m.removeLocked(func(r HookRegistration) bool { return r.Name == name })
	}

	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	m.sorted = false
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(func(r HookRegistration) bool { return r.ID == id })
}

// UnregisterByName removes a hook by name.
func (m *HookManager) UnregisterByName(name string) bool {
	if name == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(func(r HookRegistration) bool { return r.Name == name })
}

func (m *HookManager) removeLocked(match func(HookRegistration) bool) bool {
	for i := range m.hooks {
		if match(m.hooks[i]) {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// GetByName returns a hook registration by name.
func (m *HookManager) GetByName(name string) (HookRegistration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.hooks {
		if r.Name == name && name != "" {
			return r, true
		}
	}
	return HookRegistration{}, false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// IsEnabled returns whether hooks are enabled.
func (m *HookManager) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSorted()
	return append([]HookRegistration(nil), m.hooks...)
}

// Clear removes all hooks.
func (m *HookManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = nil
	m.sorted = true
}

func (m *HookManager) ensureSorted() {
	if m.sorted {
		return
	}
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	m.sorted = true
}

// snapshot copies the hooks so they run outside the manager lock.
func (m *HookManager) snapshot() []Hook {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.enabled || len(m.hooks) == 0 {
		return nil
	}
	m.ensureSorted()
	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	return hooks
}

// RunPreKey runs all PreKey hooks in priority order.
// Returns true if any hook consumed the key.
func (m *HookManager) RunPreKey(ev *key.Event, st *EditorState) bool {
	for _, hook := range m.snapshot() {
		if hook.PreKey(ev, st) {
			return true
		}
	}
	return false
}

// RunPostKey runs all PostKey hooks in priority order.
func (m *HookManager) RunPostKey(ev key.Event, res Result, st *EditorState) {
	for _, hook := range m.snapshot() {
		hook.PostKey(ev, res, st)
	}
}

// BaseHook provides a default implementation of the Hook interface.
// Embed this in custom hooks to only implement the methods you need.
type BaseHook struct{}

// PreKey is a no-op that does not consume keys.
func (BaseHook) PreKey(*key.Event, *EditorState) bool {
	return false
}

// PostKey is a no-op.
func (BaseHook) PostKey(key.Event, Result, *EditorState) {}

// FuncHook wraps functions into a Hook interface implementation.
type FuncHook struct {
	PreKeyFunc  func(*key.Event, *EditorState) bool
	PostKeyFunc func(key.Event, Result, *EditorState)
}

// PreKey calls PreKeyFunc if set.
func (h FuncHook) PreKey(ev *key.Event, st *EditorState) bool {
	if h.PreKeyFunc != nil {
		return h.PreKeyFunc(ev, st)
	}
	return false
}

// PostKey calls PostKeyFunc if set.
func (h FuncHook) PostKey(ev key.Event, res Result, st *EditorState) {
	if h.PostKeyFunc != nil {
		h.PostKeyFunc(ev, res, st)
	}
}

// LoggingHook logs every key and its outcome at debug level.
type LoggingHook struct {
	BaseHook
}

// PreKey logs the key.
func (LoggingHook) PreKey(ev *key.Event, st *EditorState) bool {
	log.Debug("key", "key", ev.VimString(), "mode", st.Modes.Current().String())
	return false
}

// PostKey logs the result.
func (LoggingHook) PostKey(ev key.Event, res Result, st *EditorState) {
	log.Debug("key handled", "key", ev.VimString(), "result", res.String(), "status", st.Status)
}

// FilterHook consumes keys matching a predicate.
type FilterHook struct {
	BaseHook

	// Filter returns true to consume a key.
	Filter func(*key.Event, *EditorState) bool
}

// PreKey applies the filter.
func (h FilterHook) PreKey(ev *key.Event, st *EditorState) bool {
	if h.Filter != nil {
		return h.Filter(ev, st)
	}
	return false
}
