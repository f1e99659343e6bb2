package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a single key specification: one character or a vim-style
// name in angle brackets such as "<C-s>", "<CR>", "<Esc>" or "<lt>".
func Parse(spec string) (Event, error) {
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseVimStyle(spec[1 : len(spec)-1])
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Rune(r), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseVimStyle parses notation like "C-s", "A-x", "CR", "Esc".
func parseVimStyle(inner string) (Event, error) {
	var mods Modifier
	keyPart := inner

	// Modifiers are single letters followed by '-'. "C--" is Ctrl and '-'.
	for len(keyPart) > 2 && keyPart[1] == '-' {
		switch keyPart[0] {
		case 'c', 'C':
			mods |= ModCtrl
		case 'a', 'A', 'm', 'M':
			mods |= ModAlt
		case 's', 'S':
			mods |= ModShift
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier in %q", ErrInvalidSpec, inner)
		}
		keyPart = keyPart[2:]
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return Event{Key: KeyRune, Rune: ' ', Modifiers: mods}, nil
	case "lt":
		return Event{Key: KeyRune, Rune: '<', Modifiers: mods}, nil
	case "gt":
		return Event{Key: KeyRune, Rune: '>', Modifiers: mods}, nil
	case "bar":
		return Event{Key: KeyRune, Rune: '|', Modifiers: mods}, nil
	case "bslash":
		return Event{Key: KeyRune, Rune: '\\', Modifiers: mods}, nil
	}
	if k := KeyFromName(keyPart); k != KeyNone {
		return Special(k, mods), nil
	}
	// A bare character needs a modifier: "<x>" is not a key name.
	if mods != ModNone && utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		if mods.HasCtrl() {
			return Event{Key: KeyRune, Rune: Ctrl(r).Rune, Modifiers: mods}, nil
		}
		return Event{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}

// ParseSequence parses a mapping string such as ":w<CR>" into events.
// A '<' that does not start a valid name is taken literally.
func ParseSequence(spec string) ([]Event, error) {
	if spec == "" {
		return nil, ErrEmptySpec
	}
	var events []Event
	for i := 0; i < len(spec); {
		if spec[i] == '<' {
			if end := strings.IndexByte(spec[i:], '>'); end > 1 {
				if ev, err := Parse(spec[i : i+end+1]); err == nil {
					events = append(events, ev)
					i += end + 1
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(spec[i:])
		events = append(events, Rune(r))
		i += size
	}
	return events, nil
}

// FormatSequence renders events in the notation ParseSequence reads.
func FormatSequence(events []Event) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(e.VimString())
	}
	return b.String()
}
