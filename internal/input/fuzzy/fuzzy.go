// Package fuzzy ranks candidate strings against a typed abbreviation. The
// command line uses it to complete ex command names.
//
// A candidate matches when every query rune appears in it in order, case
// ignored. Matches score higher for a shared prefix, runs of consecutive
// runes and short candidates, and lower for gaps between matched runes.
package fuzzy

import (
	"sort"
	"strings"
)

const (
	baseScore         = 100
	consecutiveBonus  = 20
	prefixBonus       = 25
	exactPrefixBonus  = 50
	gapPenalty        = 2
	lengthBonusCutoff = 20
)

// Match is one ranked candidate.
type Match struct {
	Text  string
	Score int

	// Positions are the rune indices of the matched query runes.
	Positions []int
}

// Rank returns the candidates matching query, best first. Ties keep
// candidate order. An empty query matches everything with score zero.
func Rank(query string, candidates []string) []Match {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	out := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		if len(q) == 0 {
			out = append(out, Match{Text: c})
			continue
		}
		if pos, ok := positions(q, []rune(strings.ToLower(c))); ok {
			out = append(out, Match{Text: c, Score: score(q, []rune(strings.ToLower(c)), pos), Positions: pos})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Best returns the highest ranked candidate.
func Best(query string, candidates []string) (string, bool) {
	ranked := Rank(query, candidates)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Text, true
}

// positions finds query in text greedily from the left.
func positions(query, text []rune) ([]int, bool) {
	pos := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			pos = append(pos, i)
			qi++
		}
	}
	return pos, qi == len(query)
}

func score(query, text []rune, pos []int) int {
	s := baseScore
	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			s += consecutiveBonus
		}
	}
	if pos[0] == 0 {
		s += prefixBonus
	} else {
		s -= pos[0]
	}
	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		s -= gap * gapPenalty
	}
	if len(text) < lengthBonusCutoff {
		s += lengthBonusCutoff - len(text)
	}
	if len(text) >= len(query) && string(text[:len(query)]) == string(query) {
		s += exactPrefixBonus
	}
	return max(s, 1)
}
