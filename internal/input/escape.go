package input

import (
	"time"
	"unicode/utf8"

	"github.com/samber/mo"

	"github.com/dshills/vimcore/internal/input/key"
)

// pendingEscape is the first key of a soft escape alias, already inserted.
type pendingEscape struct {
	r      rune
	at     time.Time
	offset int
}

// softEscape detects a two-character alias such as "jj" typed quickly
// enough to mean Escape.
type softEscape struct {
	first mo.Option[pendingEscape]
}

func (s *softEscape) reset() {
	s.first = mo.None[pendingEscape]()
}

// softEscapeKey handles r in Insert mode when an alias is configured. It
// returns true when r completed the alias and Insert mode was left.
// Otherwise the caller inserts r; at is the caret offset r goes to.
func (e *Engine) softEscapeKey(r rune, at int) bool {
	seq := []rune(e.cfg.SoftEscape())
	if len(seq) != 2 || e.replaying {
		e.escape.reset()
		return false
	}

	if p, ok := e.escape.first.Get(); ok {
		within := e.clock().Sub(p.at) <= e.cfg.EscapeTimeout()
		if r == seq[1] && within && at == p.offset+utf8.RuneLen(p.r) {
			e.escape.reset()
			e.surf.Clear(p.offset, at)
			if rec := e.state.Macros; rec.IsRecording() {
				rec.Trim(2)
				rec.Record(key.Escape)
			}
			e.leaveInsert(1)
			return true
		}
	}

	if r == seq[0] {
		e.escape.first = mo.Some(pendingEscape{r: r, at: e.clock(), offset: at})
	} else {
		e.escape.reset()
	}
	return false
}
