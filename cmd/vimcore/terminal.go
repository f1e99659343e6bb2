package main

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// convertKey translates a tcell key event. Keys the engine has no name
// for report false.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if mods&key.ModCtrl != 0 {
			return key.Ctrl(r), true
		}
		return key.Event{Key: key.KeyRune, Rune: r, Modifiers: mods &^ key.ModShift}, true
	}
	if k, ok := specialKeys[ev.Key()]; ok {
		return key.Special(k, mods&^key.ModCtrl), true
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return key.Ctrl(rune('a' + ev.Key() - tcell.KeyCtrlA)), true
	}
	return key.Event{}, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	return mods
}

// toTcellKey is the reverse of convertKey, used to inject key sequences.
func toTcellKey(ev key.Event) *tcell.EventKey {
	if ev.Key == key.KeyRune {
		if ev.Modifiers&key.ModCtrl != 0 {
			r := unicode.ToLower(ev.Rune)
			if r >= 'a' && r <= 'z' {
				return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(r-'a'), r, tcell.ModCtrl)
			}
		}
		return tcell.NewEventKey(tcell.KeyRune, ev.Rune, tcell.ModNone)
	}
	for tk, k := range specialKeys {
		if k == ev.Key && tk != tcell.KeyBackspace {
			return tcell.NewEventKey(tk, 0, tcell.ModNone)
		}
	}
	return tcell.NewEventKey(tcell.KeyRune, ev.Rune, tcell.ModNone)
}

func cursorStyle(c mode.CursorStyle) tcell.CursorStyle {
	switch c {
	case mode.CursorBar:
		return tcell.CursorStyleSteadyBar
	case mode.CursorUnderline:
		return tcell.CursorStyleSteadyUnderline
	default:
		return tcell.CursorStyleSteadyBlock
	}
}
