package config

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/vimcore/internal/input/key"
)

// Escape timeout bounds in milliseconds.
const (
	MinEscapeTimeoutMS = 100
	MaxEscapeTimeoutMS = 1000
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var mappingModes = map[string]bool{"normal": true, "visual": true}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(path string, value any, code ValidationErrorCode, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Path:    path,
			Value:   value,
			Code:    code,
			Message: fmt.Sprintf(format, args...),
		})
	}

	in := c.Input
	if seq := in.EscapeSequence; seq != EscapeKey {
		if utf8.RuneCountInString(seq) != 2 {
			add("input.escape_sequence", seq, ErrCodePatternMismatch, "must be %q or two characters", EscapeKey)
		} else {
			for _, r := range seq {
				if !key.Rune(r).IsChar() || r == ' ' {
					add("input.escape_sequence", seq, ErrCodePatternMismatch, "must be printable characters")
					break
				}
			}
		}
	}
	if in.EscapeTimeoutMS < MinEscapeTimeoutMS || in.EscapeTimeoutMS > MaxEscapeTimeoutMS {
		add("input.escape_timeout_ms", in.EscapeTimeoutMS, ErrCodeOutOfRange,
			"must be between %d and %d", MinEscapeTimeoutMS, MaxEscapeTimeoutMS)
	}
	if in.PageLines < 1 || in.PageLines > 1000 {
		add("input.page_lines", in.PageLines, ErrCodeOutOfRange, "must be between 1 and 1000")
	}

	for i, m := range in.Map {
		path := fmt.Sprintf("input.map[%d]", i)
		if !mappingModes[m.Mode] {
			add(path+".mode", m.Mode, ErrCodeInvalidEnum, "must be normal or visual")
		}
		if m.Lhs == "" {
			add(path+".lhs", m.Lhs, ErrCodeRequiredMissing, "is required")
		} else if _, err := key.ParseSequence(m.Lhs); err != nil {
			add(path+".lhs", m.Lhs, ErrCodePatternMismatch, "%v", err)
		}
		if m.Rhs == "" {
			add(path+".rhs", m.Rhs, ErrCodeRequiredMissing, "is required")
		}
	}

	if c.Search.RegexCacheTTLSeconds < 0 {
		add("search.regex_cache_ttl_s", c.Search.RegexCacheTTLSeconds, ErrCodeOutOfRange, "must not be negative")
	}
	if !logLevels[c.Logging.Level] {
		add("logging.level", c.Logging.Level, ErrCodeInvalidEnum, "must be debug, info, warn or error")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
