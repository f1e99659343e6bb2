package input

import (
	"sync"
	"testing"

	"github.com/dshills/vimcore/internal/input/key"
)

func TestHookManagerRegister(t *testing.T) {
	m := NewHookManager()

	id := m.Register(BaseHook{})
	if id == 0 {
		t.Error("expected non-zero hook ID")
	}
	if m.Count() != 1 {
		t.Errorf("Count() = %d, want 1", m.Count())
	}
	if !m.Unregister(id) {
		t.Error("expected Unregister to return true")
	}
	if m.Unregister(id) {
		t.Error("second Unregister should return false")
	}
}

func TestHookManagerPriority(t *testing.T) {
	m := NewHookManager()

	m.RegisterWithPriority(BaseHook{}, HookPriorityLow)
	m.RegisterWithPriority(BaseHook{}, HookPriorityHigh)
	m.RegisterWithPriority(BaseHook{}, HookPriorityNormal)

	hooks := m.List()
	if len(hooks) != 3 {
		t.Fatalf("expected 3 hooks, got %d", len(hooks))
	}
	want := []HookPriority{HookPriorityHigh, HookPriorityNormal, HookPriorityLow}
	for i, p := range want {
		if hooks[i].Priority != p {
			t.Errorf("hook %d priority = %d, want %d", i, hooks[i].Priority, p)
		}
	}
}

func TestHookManagerRunOrder(t *testing.T) {
	m := NewHookManager()
	var order []string
	record := func(name string) FuncHook {
		return FuncHook{PreKeyFunc: func(*key.Event, *EditorState) bool {
			order = append(order, name)
			return false
		}}
	}
	m.RegisterWithPriority(record("low"), HookPriorityLowest)
	m.RegisterWithPriority(record("high"), HookPriorityHighest)

	ev := key.Rune('a')
	m.RunPreKey(&ev, newEditorState(""))

	if len(order) != 2 || order[0] != "high" || order[1] != "low" {
		t.Errorf("run order = %v, want [high low]", order)
	}
}

func TestHookManagerNamed(t *testing.T) {
	m := NewHookManager()

	first := m.RegisterNamed(BaseHook{}, "myHook")
	id := m.RegisterNamed(LoggingHook{}, "myHook")
	if id == first {
		t.Error("re-registering a name should issue a new ID")
	}
	if m.Count() != 1 {
		t.Errorf("a name holds one hook, got %d", m.Count())
	}

	reg, ok := m.GetByName("myHook")
	if !ok {
		t.Fatal("expected to find hook by name")
	}
	if reg.ID != id {
		t.Errorf("ID mismatch: got %d, want %d", reg.ID, id)
	}

	if !m.UnregisterByName("myHook") {
		t.Error("expected UnregisterByName to return true")
	}
	if m.Count() != 0 {
		t.Errorf("expected 0 hooks after unregister, got %d", m.Count())
	}
}

func TestHookManagerEnable(t *testing.T) {
	m := NewHookManager()

	consumed := false
	m.Register(FuncHook{
		PreKeyFunc: func(*key.Event, *EditorState) bool {
			consumed = true
			return true
		},
	})

	m.SetEnabled(false)
	ev := key.Rune('a')
	if m.RunPreKey(&ev, newEditorState("")) {
		t.Error("disabled manager should not consume")
	}
	if consumed {
		t.Error("hook should not run when disabled")
	}

	m.SetEnabled(true)
	if !m.RunPreKey(&ev, newEditorState("")) {
		t.Error("hook should consume when enabled")
	}
}

func TestFilterHookBlocksKeys(t *testing.T) {
	eng, surf := newTestEngine(t, "abc")

	eng.Hooks().Register(FilterHook{Filter: func(ev *key.Event, _ *EditorState) bool {
		return ev.IsChar() && ev.Rune == 'x'
	}})

	if res := eng.HandleKey('x'); res != Consumed {
		t.Errorf("filtered key result = %v, want consumed", res)
	}
	if surf.String() != "abc" {
		t.Errorf("filtered x edited the text: %q", surf.String())
	}

	eng.Hooks().Clear()
	eng.HandleKey('x')
	if surf.String() != "bc" {
		t.Errorf("x after clearing hooks = %q, want %q", surf.String(), "bc")
	}
}

func TestHookCanRewriteKey(t *testing.T) {
	eng, surf := newTestEngine(t, "abc")
	eng.Hooks().Register(FuncHook{PreKeyFunc: func(ev *key.Event, _ *EditorState) bool {
		if ev.IsChar() && ev.Rune == 'Q' {
			*ev = key.Rune('x')
		}
		return false
	}})

	eng.HandleKey('Q')
	if got := surf.String(); got != "bc" {
		t.Errorf("rewritten key gave %q, want %q", got, "bc")
	}
}

func TestPostKeySeesResult(t *testing.T) {
	eng, _ := newTestEngine(t, "abc")
	var results []Result
	eng.Hooks().Register(FuncHook{PostKeyFunc: func(_ key.Event, res Result, _ *EditorState) {
		results = append(results, res)
	}})

	eng.HandleKey('l')
	eng.HandleSpecialKey(key.KeyPageUp, key.ModCtrl)

	if len(results) != 2 {
		t.Fatalf("PostKey ran %d times, want 2", len(results))
	}
	if results[0] != Consumed || results[1] != PassThrough {
		t.Errorf("results = %v, want [consumed pass-through]", results)
	}
}

func TestHookManagerConcurrent(t *testing.T) {
	m := NewHookManager()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := m.Register(BaseHook{})
				ev := key.Rune('a')
				m.RunPreKey(&ev, newEditorState(""))
				m.Unregister(id)
			}
		}()
	}
	wg.Wait()

	if m.Count() != 0 {
		t.Errorf("Count() = %d after concurrent register/unregister, want 0", m.Count())
	}
}
