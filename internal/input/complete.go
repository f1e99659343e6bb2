package input

import (
	"github.com/dshills/vimcore/internal/input/fuzzy"
	"github.com/dshills/vimcore/internal/input/mode"
)

// exCommands are the names offered by command-line completion.
var exCommands = []string{
	"delmarks", "display", "help", "marks", "nohlsearch", "quit",
	"registers", "sort", "tutor", "wq", "write", "x",
}

type completion struct {
	matches []string
	next    int
}

// completeEx completes the ex command name being typed. Repeated Tab
// cycles through the other matches. It reports false when the line is
// not a bare command name, so Tab is inserted literally.
func (e *Engine) completeEx() bool {
	if e.state.Modes.Current().Command != mode.CommandEx {
		return false
	}
	if len(e.completion.matches) == 0 {
		word := string(e.state.CommandLine[1:])
		if word == "" || !isCommandWord(word) {
			return false
		}
		for _, m := range fuzzy.Rank(word, exCommands) {
			e.completion.matches = append(e.completion.matches, m.Text)
		}
		if len(e.completion.matches) == 0 {
			return false
		}
	}

	name := e.completion.matches[e.completion.next%len(e.completion.matches)]
	e.completion.next++
	e.state.CommandLine = append(e.state.CommandLine[:1], []rune(name)...)
	return true
}

func isCommandWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
