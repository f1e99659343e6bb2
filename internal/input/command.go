package input

import (
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/input/mode"
)

// statusWidth is the column the live match count is aligned to.
const statusWidth = 60

// enterCommand opens the command line for kind with prefill after the
// trigger. Search prompts opened from Visual mode return to it.
func (e *Engine) enterCommand(kind mode.CommandKind, prefill string) {
	e.cmdReturn = mo.None[mode.State]()
	if st := e.state.Modes.Current(); st.Mode == mode.Visual {
		if kind == mode.CommandEx {
			c := e.state.Visual.Cursor
			e.surf.SetSelection(c, c)
		} else {
			e.cmdReturn = mo.Some(st)
		}
	}
	e.state.CommandLine = append(e.state.CommandLine[:0], kind.Trigger())
	e.state.CommandLine = append(e.state.CommandLine, []rune(prefill)...)
	e.state.Search.Matches = -1
	e.completion = completion{}
	e.state.Modes.Switch(mode.State{Mode: mode.Command, Command: kind})
}

// commandKey handles a key in Command mode.
func (e *Engine) commandKey(ev key.Event) Result {
	if ev.Key != key.KeyTab {
		e.completion = completion{}
	}
	ctrl := ev.Key == key.KeyRune && ev.Modifiers.HasCtrl()
	switch {
	case ev.IsEscape():
		e.leaveCommand()

	case ev.Key == key.KeyEnter, ctrl && (ev.Rune == 'j' || ev.Rune == 'm'):
		e.commitCommand()

	case ev.Key == key.KeyBackspace, ctrl && ev.Rune == 'h':
		if len(e.state.CommandLine) <= 1 {
			e.leaveCommand()
			return Consumed
		}
		e.state.CommandLine = e.state.CommandLine[:len(e.state.CommandLine)-1]
		e.preview()

	case ctrl && ev.Rune == 'u':
		e.state.CommandLine = e.state.CommandLine[:1]
		e.preview()

	case ev.Key == key.KeyTab:
		if e.completeEx() {
			return Consumed
		}
		e.state.CommandLine = append(e.state.CommandLine, '\t')
		e.preview()

	case ev.IsChar():
		e.state.CommandLine = append(e.state.CommandLine, ev.Rune)
		e.preview()

	default:
		return PassThrough
	}
	return Consumed
}

// leaveCommand abandons the command line and returns to Normal mode,
// dropping a selection the prompt was opened from.
func (e *Engine) leaveCommand() {
	if e.cmdReturn.IsPresent() {
		c := e.state.Visual.Cursor
		e.surf.SetSelection(c, c)
		e.state.Highlights = nil
	}
	e.cmdReturn = mo.None[mode.State]()
	e.state.CommandLine = e.state.CommandLine[:0]
	e.state.Modes.Switch(mode.NormalState)
}

// commitCommand runs the command line. The mode is left first so the
// command's own status and highlights survive.
func (e *Engine) commitCommand() {
	line := e.state.CommandLine
	kind := e.state.Modes.Current().Command
	body := ""
	if len(line) > 1 {
		body = string(line[1:])
	}

	ret, visual := e.cmdReturn.Get()
	e.cmdReturn = mo.None[mode.State]()
	if visual {
		e.state.CommandLine = e.state.CommandLine[:0]
		e.state.Modes.Switch(ret)
	} else {
		e.state.Modes.Switch(mode.NormalState)
	}

	switch kind {
	case mode.CommandSearch:
		if body == "" {
			e.notify("No search pattern")
			return
		}
		e.performSearch(body, false, true)
	case mode.CommandSearchBack:
		if body == "" {
			e.notify("No regex pattern")
			return
		}
		e.performSearch(body, true, false)
	case mode.CommandEx:
		e.state.Registers.SetLastCommand(body)
		e.runEx(body)
	}
}

// previewPattern returns the pattern being typed on a search line or
// after ":s ", if any.
func previewPattern(line []rune) (string, bool, bool) {
	if len(line) < 2 {
		return "", false, false
	}
	body := string(line[1:])
	switch line[0] {
	case '/':
		return body, false, true
	case '?':
		return body, true, true
	case ':':
		if p, ok := strings.CutPrefix(body, "s "); ok && p != "" {
			return p, true, true
		}
	}
	return "", false, false
}

// preview highlights the matches of the pattern being typed.
func (e *Engine) preview() {
	pattern, regex, ok := previewPattern(e.state.CommandLine)
	if !ok {
		e.state.Highlights = nil
		e.state.Search.Matches = -1
		return
	}
	matches := e.findAll(pattern, regex)
	e.state.Highlights = matches
	e.state.Search.Matches = len(matches)
}

// commandStatus renders the command line with the live match count
// right-aligned after it.
func (e *Engine) commandStatus() string {
	display := string(e.state.CommandLine)
	n := e.state.Search.Matches
	if n < 0 {
		return display
	}
	info := "[Pattern not found]"
	if n > 0 {
		info = "[" + strconv.Itoa(n) + " matches]"
	}
	if pad := statusWidth - len([]rune(display)) - len(info); pad > 0 {
		display += strings.Repeat(" ", pad)
	}
	return display + info
}
