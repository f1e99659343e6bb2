package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/vimcore/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "VIMCORE_"

// maxIncludeDepth limits nested @include directives.
const maxIncludeDepth = 8

// Config is the complete configuration.
type Config struct {
	Input     Input     `toml:"input" yaml:"input"`
	Search    Search    `toml:"search" yaml:"search"`
	Clipboard Clipboard `toml:"clipboard" yaml:"clipboard"`
	Session   Session   `toml:"session" yaml:"session"`
	Logging   Logging   `toml:"logging" yaml:"logging"`
}

// Input configures key handling.
type Input struct {
	// EscapeSequence is "esc" or a two-character alias such as "jj".
	EscapeSequence string `toml:"escape_sequence" yaml:"escape_sequence"`

	// EscapeTimeoutMS is the maximum delay between the two alias keys.
	EscapeTimeoutMS int `toml:"escape_timeout_ms" yaml:"escape_timeout_ms"`

	// PageLines is the distance of H, L, Ctrl-F and Ctrl-B.
	PageLines int `toml:"page_lines" yaml:"page_lines"`

	Remap Remap     `toml:"remap" yaml:"remap"`
	Map   []Mapping `toml:"map" yaml:"map"`
}

// EscapeTimeout returns EscapeTimeoutMS as a duration.
func (in Input) EscapeTimeout() time.Duration {
	return time.Duration(in.EscapeTimeoutMS) * time.Millisecond
}

// SoftEscape returns the escape alias, or "" when only Escape leaves
// Insert mode.
func (in Input) SoftEscape() string {
	if in.EscapeSequence == EscapeKey {
		return ""
	}
	return in.EscapeSequence
}

// Remap toggles the control chords the engine claims.
type Remap struct {
	CtrlFPageDown bool `toml:"ctrl_f_page_down" yaml:"ctrl_f_page_down"`
	CtrlBPageUp   bool `toml:"ctrl_b_page_up" yaml:"ctrl_b_page_up"`
	CtrlRRedo     bool `toml:"ctrl_r_redo" yaml:"ctrl_r_redo"`
}

// Mapping is a user key mapping. Rhs is replayed as keys when Lhs is typed.
type Mapping struct {
	Mode string `toml:"mode" yaml:"mode"`
	Lhs  string `toml:"lhs" yaml:"lhs"`
	Rhs  string `toml:"rhs" yaml:"rhs"`
}

// Search configures the regex engine.
type Search struct {
	RegexCacheTTLSeconds int `toml:"regex_cache_ttl_s" yaml:"regex_cache_ttl_s"`
}

// RegexCacheTTL returns the compiled pattern lifetime.
func (s Search) RegexCacheTTL() time.Duration {
	return time.Duration(s.RegexCacheTTLSeconds) * time.Second
}

// Clipboard configures the + and * registers.
type Clipboard struct {
	System bool `toml:"system" yaml:"system"`
}

// Session configures register and mark persistence.
type Session struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// Logging configures the package logger.
type Logging struct {
	Level string `toml:"level" yaml:"level"`
}

// EscapeKey is the EscapeSequence value that disables the alias.
const EscapeKey = "esc"

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Input: Input{
			EscapeSequence:  EscapeKey,
			EscapeTimeoutMS: 300,
			PageLines:       20,
			Remap: Remap{
				CtrlFPageDown: true,
				CtrlBPageUp:   true,
				CtrlRRedo:     true,
			},
		},
		Search:  Search{RegexCacheTTLSeconds: 60},
		Logging: Logging{Level: "warn"},
	}
}

// DefaultPath returns the user configuration file path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vimcore", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "vimcore", "config.toml")
}

// Load builds a configuration from the defaults, the file at path (TOML or
// YAML by extension, skipped when missing or empty) and VIMCORE_
// environment variables, then validates it.
func Load(path string) (*Config, error) {
	return LoadFS(loader.DefaultFS(), path)
}

// LoadFS is Load reading files from fsys.
func LoadFS(fsys loader.FileSystem, path string) (*Config, error) {
	merged := make(map[string]any)

	if path != "" {
		var (
			fileConfig map[string]any
			err        error
		)
		switch l := loader.ForPath(fsys, path).(type) {
		case *loader.TOMLLoader:
			fileConfig, err = l.LoadWithIncludes(path, maxIncludeDepth)
		default:
			fileConfig, err = l.Load()
		}
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileConfig)
	}

	envConfig, err := loader.NewEnvLoader(EnvPrefix).Load()
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	merged = loader.DeepMerge(merged, envConfig)

	cfg, err := decode(merged)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode applies a generic map over the defaults.
func decode(m map[string]any) (*Config, error) {
	cfg := Default()
	if len(m) == 0 {
		return cfg, nil
	}
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, &loader.ParseError{Path: "<merged>", Message: err.Error(), Err: err}
	}
	return cfg, nil
}
