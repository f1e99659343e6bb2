package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// unsafeGlobals load code from outside the script.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring"}

// requirable are the modules require may return.
var requirable = map[string]bool{"string": true, "table": true, "math": true}

// Sandbox strips a state down to what an init script needs.
type Sandbox struct {
	L     *lua.LState
	print func(string)
}

// NewSandbox creates a sandbox for L. Install applies it.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{L: L}
}

// Install removes the loaders, restricts require and replaces print.
func (s *Sandbox) Install() {
	for _, name := range unsafeGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installRequire()
	if s.print != nil {
		s.installPrint()
	}
}

// installRequire clears the search paths so nothing is read from disk and
// only lets the whitelisted modules through.
func (s *Sandbox) installRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	original := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !requirable[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(original)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}

func (s *Sandbox) installPrint() {
	out := s.print
	s.L.SetGlobal("print", s.L.NewFunction(func(L *lua.LState) int {
		parts := make([]string, L.GetTop())
		for i := range parts {
			parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
		}
		out(strings.Join(parts, "\t"))
		return 0
	}))
}
