package lua

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/input/key"
	"github.com/dshills/vimcore/internal/log"
)

// Message is a vim.notify or print call made by the script.
type Message struct {
	Level slog.Level
	Text  string
}

// Result is what an init script produced.
type Result struct {
	Config   *config.Config
	Messages []Message
}

type option struct {
	get func(*config.Config) any
	set func(*config.Config, any) error
}

func stringOption(field func(*config.Config) *string) option {
	return option{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("want a string, got %T", v)
			}
			*field(c) = s
			return nil
		},
	}
}

func intOption(field func(*config.Config) *int) option {
	return option{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v any) error {
			n, ok := v.(int64)
			if !ok {
				return fmt.Errorf("want an integer, got %T", v)
			}
			*field(c) = int(n)
			return nil
		},
	}
}

func boolOption(field func(*config.Config) *bool) option {
	return option{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v any) error {
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("want a boolean, got %T", v)
			}
			*field(c) = b
			return nil
		},
	}
}

var options = map[string]option{
	"escape_sequence":   stringOption(func(c *config.Config) *string { return &c.Input.EscapeSequence }),
	"escape_timeout_ms": intOption(func(c *config.Config) *int { return &c.Input.EscapeTimeoutMS }),
	"page_lines":        intOption(func(c *config.Config) *int { return &c.Input.PageLines }),
	"ctrl_f_page_down":  boolOption(func(c *config.Config) *bool { return &c.Input.Remap.CtrlFPageDown }),
	"ctrl_b_page_up":    boolOption(func(c *config.Config) *bool { return &c.Input.Remap.CtrlBPageUp }),
	"ctrl_r_redo":       boolOption(func(c *config.Config) *bool { return &c.Input.Remap.CtrlRRedo }),
	"regex_cache_ttl_s": intOption(func(c *config.Config) *int { return &c.Search.RegexCacheTTLSeconds }),
	"system_clipboard":  boolOption(func(c *config.Config) *bool { return &c.Clipboard.System }),
	"session":           boolOption(func(c *config.Config) *bool { return &c.Session.Enabled }),
	"log_level":         stringOption(func(c *config.Config) *string { return &c.Logging.Level }),
}

// OptionNames lists the names vim.set accepts.
func OptionNames() []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DefaultInitPath is init.lua next to the default configuration file.
func DefaultInitPath() string {
	return filepath.Join(filepath.Dir(config.DefaultPath()), "init.lua")
}

// script is the vim module bound to one configuration.
type script struct {
	cfg      *config.Config
	messages []Message
}

// RunInit runs the init script at path over a copy of base. A missing
// file leaves the configuration unchanged.
func RunInit(ctx context.Context, path string, base *config.Config) (Result, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Result{Config: base}, nil
	}
	return run(base, func(s *State) error { return s.DoFile(ctx, path) })
}

// RunInitString runs init code over a copy of base.
func RunInitString(ctx context.Context, code string, base *config.Config) (Result, error) {
	return run(base, func(s *State) error { return s.DoString(ctx, code) })
}

func run(base *config.Config, exec func(*State) error) (Result, error) {
	cfg := *base
	cfg.Input.Map = slices.Clone(base.Input.Map)
	sc := &script{cfg: &cfg}

	state := NewState(WithPrint(func(s string) { sc.notify(slog.LevelInfo, s) }))
	defer state.Close()
	state.RegisterModule("vim", map[string]lua.LGFunction{
		"set":    sc.set,
		"get":    sc.get,
		"map":    sc.mapKeys,
		"notify": sc.notifyFn,
	})

	if err := exec(state); err != nil {
		return Result{Messages: sc.messages}, fmt.Errorf("running init script: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Result{Messages: sc.messages}, fmt.Errorf("init script produced an invalid configuration: %w", err)
	}
	return Result{Config: &cfg, Messages: sc.messages}, nil
}

func (sc *script) set(L *lua.LState) int {
	name := L.CheckString(1)
	opt, ok := options[name]
	if !ok {
		L.RaiseError("%v: %s", ErrUnknownOption, name)
		return 0
	}
	if err := opt.set(sc.cfg, ToGoValue(L.CheckAny(2))); err != nil {
		L.RaiseError("vim.set %s: %v", name, err)
	}
	return 0
}

func (sc *script) get(L *lua.LState) int {
	name := L.CheckString(1)
	opt, ok := options[name]
	if !ok {
		L.RaiseError("%v: %s", ErrUnknownOption, name)
		return 0
	}
	L.Push(ToLuaValue(L, opt.get(sc.cfg)))
	return 1
}

func (sc *script) mapKeys(L *lua.LState) int {
	m := config.Mapping{
		Mode: L.CheckString(1),
		Lhs:  L.CheckString(2),
		Rhs:  L.CheckString(3),
	}
	if m.Mode != "normal" && m.Mode != "visual" {
		L.ArgError(1, "mode must be normal or visual")
		return 0
	}
	if _, err := key.ParseSequence(m.Lhs); err != nil {
		L.ArgError(2, err.Error())
		return 0
	}
	if m.Rhs == "" {
		L.ArgError(3, "rhs is required")
		return 0
	}
	sc.cfg.Input.Map = append(sc.cfg.Input.Map, m)
	return 0
}

func (sc *script) notifyFn(L *lua.LState) int {
	text := L.CheckString(1)
	level := slog.LevelInfo
	if L.GetTop() >= 2 {
		parsed, err := log.ParseLevel(L.CheckString(2))
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		level = parsed
	}
	sc.notify(level, text)
	return 0
}

func (sc *script) notify(level slog.Level, text string) {
	text = strings.TrimRight(text, "\n")
	sc.messages = append(sc.messages, Message{Level: level, Text: text})
	log.With("source", "init.lua").Log(context.Background(), level, text)
}
