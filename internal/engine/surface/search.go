package surface

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	gocache "github.com/patrickmn/go-cache"
	"github.com/samber/mo"
)

// DefaultPatternTTL is how long a compiled pattern stays cached.
const DefaultPatternTTL = time.Minute

// matchTimeout bounds a single regex evaluation.
const matchTimeout = 250 * time.Millisecond

// Searcher finds literal or regex matches in text. Compiled patterns are
// cached because incremental search recompiles on every keystroke.
type Searcher struct {
	cache *gocache.Cache
}

// NewSearcher creates a searcher whose compiled patterns expire after ttl.
func NewSearcher(ttl time.Duration) *Searcher {
	if ttl <= 0 {
		ttl = DefaultPatternTTL
	}
	return &Searcher{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Compile returns the cached compiled form of pattern.
func (s *Searcher) Compile(pattern string, ignoreCase bool) (*regexp2.Regexp, error) {
	key := pattern
	opts := regexp2.RegexOptions(regexp2.ECMAScript | regexp2.Multiline)
	if ignoreCase {
		key = "(?i)" + pattern
		opts |= regexp2.IgnoreCase
	}
	if v, ok := s.cache.Get(key); ok {
		if re, ok := v.(*regexp2.Regexp); ok {
			return re, nil
		}
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPattern, err)
	}
	re.MatchTimeout = matchTimeout
	s.cache.Set(key, re, gocache.DefaultExpiration)
	return re, nil
}

// Find searches text between start and end. When start > end the search
// runs backward and returns the last match in [end, start). Empty matches
// are ignored.
func (s *Searcher) Find(text string, start, end int, needle string, regex bool) mo.Option[Match] {
	if needle == "" {
		return mo.None[Match]()
	}
	backward := start > end
	lo, hi := clampRange(len(text), start, end)
	sub := text[lo:hi]

	if !regex {
		idx := -1
		if backward {
			idx = strings.LastIndex(sub, needle)
		} else {
			idx = strings.Index(sub, needle)
		}
		if idx < 0 {
			return mo.None[Match]()
		}
		return mo.Some(Match{Start: lo + idx, End: lo + idx + len(needle)})
	}

	re, err := s.Compile(needle, false)
	if err != nil {
		return mo.None[Match]()
	}
	var found mo.Option[Match]
	each(re, sub, func(m Match) bool {
		found = mo.Some(Match{Start: lo + m.Start, End: lo + m.End})
		return backward
	})
	return found
}

// ReplaceLine substitutes pattern in line. Without all, only the first
// match is replaced. It returns the new line and the replacement count.
func (s *Searcher) ReplaceLine(line, pattern, replacement string, literal, ignoreCase, all bool) (string, int, error) {
	if literal {
		pattern = regexp2.Escape(pattern)
		replacement = strings.ReplaceAll(replacement, "$", "$$")
	}
	re, err := s.Compile(pattern, ignoreCase)
	if err != nil {
		return line, 0, err
	}
	n := 0
	each(re, line, func(Match) bool {
		n++
		return all
	})
	if n == 0 {
		return line, 0, nil
	}
	count := 1
	if all {
		count = -1
	}
	out, err := re.Replace(line, replacement, -1, count)
	if err != nil {
		return line, 0, err
	}
	return out, n, nil
}

// each calls fn for every non-empty match of re in text, converted to byte
// offsets, until fn returns false.
func each(re *regexp2.Regexp, text string, fn func(Match) bool) {
	offsets := runeOffsets(text)
	m, err := re.FindStringMatch(text)
	for err == nil && m != nil {
		if m.Length > 0 {
			span := Match{Start: m.Index, End: m.Index + m.Length}
			if offsets != nil {
				span = Match{Start: offsets[span.Start], End: offsets[span.End]}
			}
			if !fn(span) {
				return
			}
		}
		m, err = re.FindNextMatch(m)
	}
}

// runeOffsets maps rune indexes to byte offsets, or returns nil when text
// is pure ASCII and the two coincide.
func runeOffsets(text string) []int {
	ascii := true
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return nil
	}
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}

func clampRange(n, a, b int) (int, int) {
	if a > b {
		a, b = b, a
	}
	if a < 0 {
		a = 0
	}
	if b > n {
		b = n
	}
	if a > b {
		a = b
	}
	return a, b
}
