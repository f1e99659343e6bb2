package key

import "unicode"

// Event represents a single key press.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune creates an event for a typed character.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Special creates an event for a special key.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// Ctrl creates a Ctrl chord such as Ctrl-R. Letters are stored lowercase.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Modifiers: ModCtrl}
}

// Escape is the Escape key event.
var Escape = Special(KeyEscape, ModNone)

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true for a printable character with no Ctrl or Alt.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.HasCtrl() && !e.Modifiers.HasAlt() && unicode.IsPrint(e.Rune)
}

// IsEscape returns true for the Escape key and for Ctrl-[.
func (e Event) IsEscape() bool {
	if e.Key == KeyEscape {
		return true
	}
	return e.Key == KeyRune && e.Rune == '[' && e.Modifiers.HasCtrl()
}

// String returns the canonical trie key for the event: the character
// itself for plain characters and vim notation without brackets otherwise,
// e.g. "a", "C-r", "Esc".
func (e Event) String() string {
	if e.Key == KeyRune {
		if e.Modifiers.HasCtrl() || e.Modifiers.HasAlt() {
			return e.Modifiers.prefix() + string(e.Rune)
		}
		return string(e.Rune)
	}
	return e.Modifiers.prefix() + e.Key.String()
}

// VimString returns the event in vim mapping notation: plain characters
// as themselves and everything else in angle brackets, e.g. "<C-r>".
func (e Event) VimString() string {
	if e.Key == KeyRune && !e.Modifiers.HasCtrl() && !e.Modifiers.HasAlt() {
		switch e.Rune {
		case '<':
			return "<lt>"
		case ' ':
			return "<Space>"
		}
		return string(e.Rune)
	}
	return "<" + e.String() + ">"
}
