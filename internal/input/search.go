package input

import (
	"strconv"

	"github.com/dlclark/regexp2"
	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/mode"
	"github.com/dshills/vimcore/internal/input/motion"
	"github.com/dshills/vimcore/internal/log"
)

// maxHighlights bounds the matches collected for one pattern.
const maxHighlights = 10000

// findAll returns the matches of term across the document.
func (e *Engine) findAll(term string, regex bool) []surface.Span {
	s := e.surf
	var out []surface.Span
	for pos := 0; pos <= s.Len() && len(out) < maxHighlights; {
		m, ok := s.SearchInRange(pos, s.Len(), term, regex).Get()
		if !ok {
			break
		}
		out = append(out, m)
		switch {
		case m.End > m.Start:
			pos = m.End
		case m.Start >= s.Len():
			return out
		default:
			pos = runeEnd(s, m.Start)
		}
	}
	return out
}

// searchOrigin is where searches start: the caret, or the selection
// cursor in Visual mode.
func (e *Engine) searchOrigin() int {
	if e.state.Modes.Is(mode.Visual) {
		return e.state.Visual.Cursor
	}
	return e.surf.Caret()
}

// searchFrom finds the next match after from, or the last one before it.
func (e *Engine) searchFrom(from int, forward bool) mo.Option[surface.Match] {
	s := e.surf
	st := e.state.Search
	if forward {
		return s.SearchInRange(runeEnd(s, from), s.Len(), st.Term, st.Regex)
	}
	return s.SearchInRange(from, 0, st.Term, st.Regex)
}

// performSearch makes term the last search, highlights every match and
// moves to the first one in the search direction. It does not wrap.
func (e *Engine) performSearch(term string, regex, forward bool) {
	e.state.Search = SearchState{Term: term, Regex: regex, Forward: forward, Matches: -1}
	e.state.Registers.SetLastSearch(term)
	matches := e.findAll(term, regex)
	e.state.Highlights = matches
	e.state.Search.Matches = len(matches)
	log.Debug("search", "term", term, "regex", regex, "forward", forward, "matches", len(matches))

	m, ok := e.searchFrom(e.searchOrigin(), forward).Get()
	if !ok {
		e.notify("Pattern not found")
		return
	}
	e.gotoMatch(m)
	e.notify(matchStatus(matches, m))
}

// searchNext moves count matches in a direction, wrapping around the
// document ends.
func (e *Engine) searchNext(forward bool, count int) {
	st := e.state.Search
	if st.Term == "" {
		e.notify("No previous search")
		return
	}
	s := e.surf
	matches := e.findAll(st.Term, st.Regex)
	count = max(count, 1)
	wrapped := false
	// Every len(matches) steps return to the same match.
	if n := len(matches); n > 0 && count > n {
		count = (count-1)%n + 1
		wrapped = true
	}
	var found surface.Match
	for i := 0; i < count; i++ {
		m, ok := e.searchFrom(e.searchOrigin(), forward).Get()
		if !ok {
			start, end := 0, s.Len()
			if !forward {
				start, end = end, start
			}
			m, ok = s.SearchInRange(start, end, st.Term, st.Regex).Get()
			if !ok {
				e.notify("Pattern not found")
				return
			}
			wrapped = true
		}
		found = m
		e.gotoMatch(m)
	}

	e.state.Highlights = matches
	e.state.Search.Matches = len(matches)
	switch {
	case wrapped && forward:
		e.notify("search hit BOTTOM, continuing at TOP")
	case wrapped:
		e.notify("search hit TOP, continuing at BOTTOM")
	default:
		e.notify(matchStatus(matches, found))
	}
}

// searchWord searches for the whole word under the caret (* and #).
func (e *Engine) searchWord(forward bool, count int) {
	s := e.surf
	caret := s.Caret()
	b := motion.WordBounds(s, caret)
	if b.Empty() || motion.IsSpace(s.CharAt(b.Start)) {
		e.notify("No string under cursor")
		return
	}
	word := s.Text(b.Start, b.End)
	term := regexp2.Escape(word)
	if motion.IsWordChar(s.CharAt(b.Start)) && motion.IsWordChar(s.CharAt(b.End-1)) {
		term = `\b` + term + `\b`
	}
	e.state.Search = SearchState{Term: term, Regex: true, Forward: forward, Matches: -1}
	e.state.Registers.SetLastSearch(term)
	s.SetSelection(b.Start, b.Start)
	e.searchNext(forward, count)
}

// gotoMatch moves to m. In Visual mode the selection is extended toward
// the match instead.
func (e *Engine) gotoMatch(m surface.Match) {
	s := e.surf
	if e.state.Modes.Is(mode.Visual) {
		v := &e.state.Visual
		if m.Start >= v.Anchor && m.End > m.Start {
			v.Cursor = motion.Left(s, m.End, 1)
			v.Cursor = max(v.Cursor, m.Start)
		} else {
			v.Cursor = m.Start
		}
		v.Column = surface.Column(s, v.Cursor)
		e.syncSelection()
		return
	}
	e.recordJump(s.Caret())
	s.SetSelection(m.Start, m.Start)
	e.recordJump(m.Start)
}

// matchStatus reports the position of m among matches.
func matchStatus(matches []surface.Span, m surface.Match) string {
	for i, x := range matches {
		if x.Start == m.Start {
			return "Match " + strconv.Itoa(i+1) + " of " + strconv.Itoa(len(matches))
		}
	}
	return "Match ? of " + strconv.Itoa(len(matches))
}
