package key

// Modifier is a set of modifier keys held with a key.
type Modifier uint8

// Modifier bits. Notation order is Ctrl, Alt, Shift: "<C-A-x>".
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
)

// Has reports whether any bit of mod is set in m.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

func (m Modifier) HasCtrl() bool  { return m.Has(ModCtrl) }
func (m Modifier) HasAlt() bool   { return m.Has(ModAlt) }
func (m Modifier) HasShift() bool { return m.Has(ModShift) }

func (m Modifier) prefix() string {
	var s string
	for _, p := range []struct {
		mod  Modifier
		text string
	}{{ModCtrl, "C-"}, {ModAlt, "A-"}, {ModShift, "S-"}} {
		if m.Has(p.mod) {
			s += p.text
		}
	}
	return s
}
