package lua

import (
	"context"
	"testing"
)

func TestSandboxRemovesLoaders(t *testing.T) {
	state := NewState()
	defer state.Close()

	for _, name := range unsafeGlobals {
		if v := state.GetGlobal(name); v.String() != "nil" {
			t.Errorf("%s should be removed, got %s", name, v.Type())
		}
	}
}

func TestSandboxLibraries(t *testing.T) {
	state := NewState()
	defer state.Close()

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"string library", `assert(string.upper("a") == "A")`, false},
		{"table library", `local t = {} table.insert(t, 1) assert(#t == 1)`, false},
		{"math library", `assert(math.max(1, 2) == 2)`, false},
		{"require string", `local s = require("string") assert(s.len("ab") == 2)`, false},
		{"no io", `io.write("x")`, true},
		{"no os", `os.exit(1)`, true},
		{"require io", `require("io")`, true},
		{"require unknown", `require("socket")`, true},
		{"no dofile", `dofile("/etc/passwd")`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := state.DoString(context.Background(), tt.code)
			if (err != nil) != tt.wantErr {
				t.Errorf("DoString(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestSandboxPrint(t *testing.T) {
	var lines []string
	state := NewState(WithPrint(func(s string) { lines = append(lines, s) }))
	defer state.Close()

	if err := state.DoString(context.Background(), `print("a", 1, true)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if len(lines) != 1 || lines[0] != "a\t1\ttrue" {
		t.Errorf("print output = %q, want [\"a\\t1\\ttrue\"]", lines)
	}
}
