package input

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/input/vim"
	"github.com/dshills/vimcore/internal/log"
)

// exHelp lists the command-line commands for :help.
var exHelp = []struct{ name, desc string }{
	{"N", "go to line N"},
	{"s <pattern>", "search for a regex"},
	{"[range]s/pat/rep/[gilI]", "substitute; % is every line, '<,'> the last selection"},
	{"[range]sort[!] [n]", "sort lines, ! descending, n numeric"},
	{"marks", "list marks"},
	{"delm {marks}", "delete marks; delm! deletes all local marks"},
	{"reg", "list registers"},
	{"noh", "clear search highlight"},
	{"w", "save the document"},
	{"q", "close the document"},
	{"wq, x", "save and close"},
	{"tutor", "open the tutorial"},
	{"help", "this list"},
}

// errRange is reported for malformed or out-of-range line ranges.
var errRange = errors.New("Invalid range")

// exRange is the line range typed before a command.
type exRange struct {
	lines LineSpan
	set   bool
}

// runEx executes a command-line command.
func (e *Engine) runEx(cmd string) {
	cmd = strings.TrimSpace(cmd)
	log.Debug("ex command", "cmd", cmd)
	if cmd == "" {
		return
	}

	rng, rest, err := e.parseRange(cmd)
	if err != nil {
		e.notify(err.Error())
		return
	}

	if rest == "" {
		if rng.set {
			e.gotoLine(rng.lines.Last + 1)
		}
		return
	}

	if rest[0] == 's' && len(rest) > 1 && !isAlnum(rest[1]) {
		if rest[1] == ' ' && !rng.set {
			pattern := strings.TrimSpace(rest[2:])
			if pattern == "" {
				e.notify("No regex pattern")
				return
			}
			e.performSearch(pattern, true, true)
			return
		}
		e.substitute(rest, rng)
		return
	}

	name, args := splitEx(rest)
	switch name {
	case "w", "write":
		e.hostCall("File saved", e.host.Save)
	case "q", "quit", "q!", "quit!":
		e.hostCall("", e.host.Close)
	case "wq", "x", "wq!", "x!":
		if err := e.host.Save(); err != nil {
			e.notify("Save failed: " + err.Error())
			return
		}
		e.hostCall("", e.host.Close)
	case "noh", "nohlsearch":
		e.state.Highlights = nil
		e.notify("Search highlight cleared")
	case "marks", "m":
		e.openText("marks", e.state.Marks.Format(e.state.Document), "-- Marks list shown --")
	case "delm", "delmarks", "dm", "delm!", "delmarks!", "dm!":
		e.deleteMarks(strings.HasSuffix(name, "!"), args)
	case "reg", "registers", "di", "display":
		e.openText("registers", e.state.Registers.Format(), "-- Registers shown --")
	case "sort", "sort!":
		e.sortLines(rng, strings.HasSuffix(name, "!"), args)
	case "tutor":
		e.openText("tutor", tutorText, "-- TUTOR --")
	case "h", "help":
		e.openText("help", e.helpText(), "-- HELP --")
	default:
		e.notify("Not an editor command: " + cmd)
	}
}

func isAlnum(c byte) bool {
	return c < 0x80 && (unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)))
}

// splitEx splits "sort! n" into the command name, bang included, and
// its arguments.
func splitEx(s string) (string, string) {
	i := 0
	for i < len(s) && unicode.IsLetter(rune(s[i])) {
		i++
	}
	if i < len(s) && s[i] == '!' {
		i++
	}
	if i == 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// parseRange reads a leading line range: %, '<,'> or addr[,addr] where
// an address is a 1-based number, . or $.
func (e *Engine) parseRange(cmd string) (exRange, string, error) {
	s := e.surf
	last := s.LineCount() - 1

	switch {
	case strings.HasPrefix(cmd, "%"):
		return exRange{lines: LineSpan{First: 0, Last: last}, set: true}, cmd[1:], nil
	case strings.HasPrefix(cmd, "'<,'>"):
		v, ok := e.state.LastVisual.Get()
		if !ok {
			return exRange{}, "", errors.New("Mark not set")
		}
		v.Last = min(v.Last, last)
		v.First = min(v.First, v.Last)
		return exRange{lines: v, set: true}, cmd[len("'<,'>"):], nil
	}

	first, rest, ok, err := e.parseAddress(cmd)
	if err != nil || !ok {
		return exRange{}, cmd, err
	}
	end := first
	if strings.HasPrefix(rest, ",") {
		var found bool
		end, rest, found, err = e.parseAddress(rest[1:])
		if err != nil {
			return exRange{}, "", err
		}
		if !found {
			return exRange{}, "", errRange
		}
	}
	if first > end {
		first, end = end, first
	}
	return exRange{lines: LineSpan{First: first, Last: end}, set: true}, strings.TrimSpace(rest), nil
}

// parseAddress reads one line address and returns it zero-based.
func (e *Engine) parseAddress(s string) (int, string, bool, error) {
	lines := e.surf.LineCount()
	switch {
	case strings.HasPrefix(s, "."):
		return e.surf.LineOf(e.surf.Caret()), s[1:], true, nil
	case strings.HasPrefix(s, "$"):
		return lines - 1, s[1:], true, nil
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, false, nil
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil || n < 1 || n > lines {
		if s[i:] == "" {
			// A bare number is a goto, reported by gotoLine.
			return max(n-1, 0), "", true, nil
		}
		return 0, "", false, errRange
	}
	return n - 1, s[i:], true, nil
}

// gotoLine moves to the first non-blank of 1-based line n.
func (e *Engine) gotoLine(n int) {
	s := e.surf
	if n < 1 || n > s.LineCount() {
		e.notify("Line number out of range")
		return
	}
	from := s.Caret()
	to := motion.FirstNonBlank(s, n-1)
	e.recordJump(from)
	s.SetSelection(to, to)
	e.recordJump(to)
	e.notify("Jumped to line " + strconv.Itoa(n))
}

// substitute runs :s/pat/rep/flags over the range, or the caret line.
func (e *Engine) substitute(cmd string, rng exRange) {
	s := e.surf
	delim := cmd[1]
	body := cmd[2:]
	i := strings.IndexByte(body, delim)
	if i < 0 {
		e.notify("Missing pattern delimiter")
		return
	}
	pattern := body[:i]
	if pattern == "" {
		e.notify("Empty pattern")
		return
	}
	rest := body[i+1:]
	repl, flags := rest, ""
	if j := strings.IndexByte(rest, delim); j >= 0 {
		repl, flags = rest[:j], rest[j+1:]
	}

	var literal, ignoreCase, all bool
	for _, f := range flags {
		switch f {
		case 'g':
			all = true
		case 'i', 'I':
			ignoreCase = true
		case 'l':
			literal = true
		case 'c':
			log.Debug("substitute confirmation not supported", "cmd", cmd)
		}
	}

	lines := rng.lines
	if !rng.set {
		line := s.LineOf(s.Caret())
		lines = LineSpan{First: line, Last: line}
	}

	group := surface.UndoScope(s)
	defer group.End()
	total, lastLine := 0, -1
	for line := min(lines.Last, s.LineCount()-1); line >= lines.First; line-- {
		start, end := s.LineRange(line)
		out, n, err := e.searcher.ReplaceLine(s.Text(start, end), pattern, repl, literal, ignoreCase, all)
		if err != nil {
			e.notify("Invalid pattern: " + pattern)
			log.Debug("substitute failed", "pattern", pattern, "error", err)
			return
		}
		if n == 0 {
			continue
		}
		s.Clear(start, end)
		s.Insert(start, out)
		total += n
		lastLine = max(lastLine, line)
	}

	if total == 0 {
		e.notify("Pattern not found")
		return
	}
	pos := motion.FirstNonBlank(s, min(lastLine, s.LineCount()-1))
	s.SetSelection(pos, pos)
	e.markChange(pos)
	plural := "s"
	if total == 1 {
		plural = ""
	}
	e.notify(fmt.Sprintf("%d replacement%s made", total, plural))
}

// sortLines sorts the range, or the whole document.
func (e *Engine) sortLines(rng exRange, reverse bool, args string) {
	s := e.surf
	numeric := false
	switch args {
	case "":
	case "n":
		numeric = true
	default:
		e.notify("Use: sort, sort!, sort n, sort n!")
		return
	}

	lines := rng.lines
	if !rng.set {
		lines = LineSpan{First: 0, Last: s.LineCount() - 1}
	}
	start, _ := s.LineRange(lines.First)
	_, end := s.LineRange(lines.Last)
	text := s.Text(start, end)
	sep := "\n"
	if strings.Contains(text, "\r\n") {
		sep = "\r\n"
	}
	rows := strings.Split(text, sep)

	cmp := strings.Compare
	if numeric {
		cmp = func(a, b string) int {
			na, oka := leadingNumber(a)
			nb, okb := leadingNumber(b)
			switch {
			case !oka && !okb:
				return 0
			case !oka:
				return -1
			case !okb:
				return 1
			}
			return na - nb
		}
	}
	slices.SortStableFunc(rows, cmp)
	if reverse {
		slices.Reverse(rows)
	}

	group := surface.UndoScope(s)
	s.Clear(start, end)
	s.Insert(start, strings.Join(rows, sep))
	group.End()
	s.SetSelection(start, start)
	e.markChange(start)

	msg := "Lines sorted"
	switch {
	case numeric && reverse:
		msg += " (numeric descending)"
	case numeric:
		msg += " (numeric)"
	case reverse:
		msg += " (descending)"
	}
	e.notify(msg)
}

// leadingNumber returns the first integer in s, with an optional minus.
func leadingNumber(s string) (int, bool) {
	i := strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return 0, false
	}
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if i > 0 && s[i-1] == '-' {
		i--
	}
	n, err := strconv.Atoi(s[i:j])
	return n, err == nil
}

// deleteMarks runs :delm.
func (e *Engine) deleteMarks(all bool, args string) {
	if all {
		e.state.Marks.ClearLocal(e.state.Document)
		e.notify("-- All marks deleted --")
		return
	}
	if args == "" {
		e.notify("-- Specify marks to delete --")
		return
	}
	deleted := 0
	for _, r := range args {
		if r == ' ' || !vim.IsValidMark(r) {
			continue
		}
		e.state.Marks.Delete(r)
		deleted++
	}
	if deleted == 0 {
		e.notify("-- No valid marks specified --")
		return
	}
	e.notify("-- Marks deleted --")
}

// hostCall runs a host callback and reports its outcome.
func (e *Engine) hostCall(ok string, fn func() error) {
	if err := fn(); err != nil {
		e.notify("Error: " + err.Error())
		log.Warn("host command failed", "error", err)
		return
	}
	if ok != "" {
		e.notify(ok)
	}
}

// openText hands a listing to the host.
func (e *Engine) openText(title, text, status string) {
	if err := e.host.OpenText(title, text); err != nil {
		e.notify("Error: " + err.Error())
		log.Warn("open text failed", "title", title, "error", err)
		return
	}
	e.notify(status)
}

// helpText lists the command-line commands and key bindings.
func (e *Engine) helpText() string {
	var b strings.Builder
	b.WriteString("Command line\n============\n\n")
	for _, h := range exHelp {
		fmt.Fprintf(&b, ":%-24s %s\n", h.name, h.desc)
	}
	for _, section := range []struct {
		title string
		tree  []string
	}{
		{"Normal mode", bindingLines(e.normal.Tree().Bindings())},
		{"Visual mode", bindingLines(e.visual.Tree().Bindings())},
	} {
		fmt.Fprintf(&b, "\n%s\n%s\n\n", section.title, strings.Repeat("=", len(section.title)))
		for _, line := range section.tree {
			b.WriteString(line)
		}
	}
	return b.String()
}
