package lua

import (
	"context"
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func TestStateDoString(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(context.Background(), `x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	num, ok := state.GetGlobal("x").(glua.LNumber)
	if !ok {
		t.Fatalf("x is %T, want a number", state.GetGlobal("x"))
	}
	if float64(num) != 2 {
		t.Errorf("x = %v, want 2", num)
	}
}

func TestStateSyntaxError(t *testing.T) {
	state := NewState()
	defer state.Close()

	if err := state.DoString(context.Background(), `invalid lua code !!!`); err == nil {
		t.Error("DoString() should fail on invalid code")
	}
}

func TestStateTimeout(t *testing.T) {
	state := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer state.Close()

	err := state.DoString(context.Background(), `while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Errorf("DoString() error = %v, want ErrExecutionTimeout", err)
	}
}

func TestStateCancelledContext(t *testing.T) {
	state := NewState(WithExecutionTimeout(0))
	defer state.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := state.DoString(ctx, `for i = 1, 1000000 do end`); err == nil {
		t.Error("DoString() with a cancelled context should fail")
	}
}

func TestStateClosed(t *testing.T) {
	state := NewState()
	state.Close()
	state.Close()

	if err := state.DoString(context.Background(), `x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close error = %v, want ErrStateClosed", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal() after Close = %v, want nil", v)
	}
}

func TestStateRegisterModule(t *testing.T) {
	state := NewState()
	defer state.Close()

	var got string
	state.RegisterModule("m", map[string]glua.LGFunction{
		"echo": func(L *glua.LState) int {
			got = L.CheckString(1)
			return 0
		},
	})

	if err := state.DoString(context.Background(), `m.echo("hi")`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if got != "hi" {
		t.Errorf("echo received %q, want %q", got, "hi")
	}
}
