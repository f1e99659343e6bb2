package history

// GroupScope closes a group opened by History.GroupScope. It is meant to
// be deferred:
//
//	defer h.GroupScope("put").End()
type GroupScope struct {
	h    *History
	done bool
}

// GroupScope opens a group named name.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{h: h}
}

// End closes the group. Later calls do nothing.
func (g *GroupScope) End() {
	if g.done {
		return
	}
	g.done = true
	g.h.EndGroup()
}

// Transaction runs fn inside a group that is closed however fn returns.
func (h *History) Transaction(name string, fn func() error) error {
	defer h.GroupScope(name).End()
	return fn()
}
