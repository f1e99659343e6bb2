package key

import "strings"

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys.
	KeyRune
)

var keyNames = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "CR",
	KeyTab:       "Tab",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
}

// String returns the vim name of the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "Rune"
	}
	return "None"
}

// IsSpecial returns true for keys other than KeyRune and KeyNone.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsArrow returns true for the four arrow keys.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

// KeyFromName returns the key for a vim key name, or KeyNone.
// Names are case-insensitive.
func KeyFromName(name string) Key {
	switch strings.ToLower(name) {
	case "esc", "escape":
		return KeyEscape
	case "cr", "enter", "return":
		return KeyEnter
	case "tab":
		return KeyTab
	case "bs", "backspace":
		return KeyBackspace
	case "del", "delete":
		return KeyDelete
	case "home":
		return KeyHome
	case "end":
		return KeyEnd
	case "pageup", "pgup":
		return KeyPageUp
	case "pagedown", "pgdn":
		return KeyPageDown
	case "up":
		return KeyUp
	case "down":
		return KeyDown
	case "left":
		return KeyLeft
	case "right":
		return KeyRight
	}
	return KeyNone
}
