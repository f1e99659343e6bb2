package input

import (
	"fmt"
	"sort"

	"github.com/dshills/vimcore/internal/input/keymap"
)

// bindingLines formats bindings as "keys  description" lines sorted by keys.
func bindingLines(bindings []keymap.Binding) []string {
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Keys < bindings[j].Keys })
	lines := make([]string, 0, len(bindings))
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("%-12s %s\n", b.Keys, b.Description))
	}
	return lines
}

const tutorText = `vimcore tutorial
================

Moving
  h j k l     left, down, up, right
  w b e       next word, previous word, end of word (W B E for WORDs)
  0 ^ $       line start, first non-blank, line end
  gg G        first line, last line; 12G goes to line 12
  { } %       paragraph back and forward, matching bracket
  f t F T     find a character on the line; ; and , repeat

Editing
  i a I A     insert before, after, at line start, at line end
  o O         open a line below or above
  x X         delete characters
  dd yy cc    delete, yank, change a line
  dw d$ d2j   operators take a motion
  diw ci( da" operators take a text object: w W s p ( [ { < ' " ` + "`" + ` t
  p P         paste after or before
  .           repeat the last change
  u Ctrl-R    undo, redo

Selecting
  v V Ctrl-V  characters, lines, block
  o           jump to the other end
  I A         insert on every line of a block

Searching
  / ?         search forward (literal), backward (regex)
  n N * #     next, previous, word under the caret
  :%s/a/b/g   substitute on every line

Marks, registers and macros
  ma 'a ` + "`" + `a  set mark a, jump to its line or exact position
  "ayy "ap    yank into and paste from register a
  qa ... q    record a macro into a; @a plays it, @@ repeats

Leave Insert mode with Esc, or the two-key alias set by escape_sequence.
`
