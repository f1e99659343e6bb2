package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want key.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), key.Rune('x')},
		{"shifted rune", tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModShift), key.Rune('X')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), key.Escape},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.Special(key.KeyEnter, 0)},
		{"backspace2", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.Special(key.KeyBackspace, 0)},
		{"page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), key.Special(key.KeyPageDown, 0)},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlR, 0, tcell.ModCtrl), key.Ctrl('r')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			if !ok {
				t.Fatalf("convertKey(%v) not converted", tt.ev.Name())
			}
			if got != tt.want {
				t.Errorf("convertKey(%v) = %v, want %v", tt.ev.Name(), got.VimString(), tt.want.VimString())
			}
		})
	}
}

func TestConvertKeyUnknown(t *testing.T) {
	if _, ok := convertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)); ok {
		t.Error("F5 should not convert")
	}
}

func TestToTcellKeyRoundTrip(t *testing.T) {
	events, err := key.ParseSequence("a<Esc><CR><BS><C-v><C-r><Up>")
	if err != nil {
		t.Fatal(err)
	}
	for _, ev := range events {
		got, ok := convertKey(toTcellKey(ev))
		if !ok || got != ev {
			t.Errorf("round trip of %s = %s (%v)", ev.VimString(), got.VimString(), ok)
		}
	}
}

func TestCursorStyle(t *testing.T) {
	if got := cursorStyle(mode.CursorBar); got != tcell.CursorStyleSteadyBar {
		t.Errorf("bar cursor = %v", got)
	}
	if got := cursorStyle(mode.CursorBlock); got != tcell.CursorStyleSteadyBlock {
		t.Errorf("block cursor = %v", got)
	}
}
