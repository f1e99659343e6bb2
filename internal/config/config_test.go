package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/config/loader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 300*time.Millisecond, cfg.Input.EscapeTimeout())
	assert.Equal(t, "", cfg.Input.SoftEscape())
	assert.Equal(t, time.Minute, cfg.Search.RegexCacheTTL())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[input]
escape_sequence = "jk"
escape_timeout_ms = 500

[input.remap]
ctrl_r_redo = false

[[input.map]]
mode = "normal"
lhs = "<Space>w"
rhs = ":w<CR>"

[logging]
level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jk", cfg.Input.SoftEscape())
	assert.Equal(t, 500, cfg.Input.EscapeTimeoutMS)
	assert.Equal(t, 20, cfg.Input.PageLines, "unset keys keep defaults")
	assert.False(t, cfg.Input.Remap.CtrlRRedo)
	assert.True(t, cfg.Input.Remap.CtrlFPageDown)
	assert.Equal(t, []Mapping{{Mode: "normal", Lhs: "<Space>w", Rhs: ":w<CR>"}}, cfg.Input.Map)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
input:
  escape_sequence: jj
  page_lines: 10
clipboard:
  system: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jj", cfg.Input.EscapeSequence)
	assert.Equal(t, 10, cfg.Input.PageLines)
	assert.True(t, cfg.Clipboard.System)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[logging]\nlevel = \"info\"\n")
	t.Setenv("VIMCORE_LOG_LEVEL", "error")
	t.Setenv("VIMCORE_ESCAPE_SEQUENCE", "kj")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "kj", cfg.Input.EscapeSequence)
}

func TestLoadFSIncludes(t *testing.T) {
	fsys := memFS{
		"/c/main.toml": "\"@include\" = \"base.toml\"\n[input]\npage_lines = 5\n",
		"/c/base.toml": "[input]\npage_lines = 9\nescape_sequence = \"jj\"\n",
	}
	cfg, err := LoadFS(fsys, "/c/main.toml")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Input.PageLines)
	assert.Equal(t, "jj", cfg.Input.EscapeSequence)
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", "[input\n")
	_, err := Load(path)
	var pe *loader.ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Input.EscapeSequence = "jjj"
	cfg.Input.EscapeTimeoutMS = 50
	cfg.Input.PageLines = 0
	cfg.Input.Map = []Mapping{{Mode: "insert", Lhs: "", Rhs: ""}}
	cfg.Search.RegexCacheTTLSeconds = -1
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{
		"input.escape_sequence",
		"input.escape_timeout_ms",
		"input.page_lines",
		"input.map[0].mode",
		"input.map[0].lhs",
		"input.map[0].rhs",
		"search.regex_cache_ttl_s",
		"logging.level",
	}, paths)

	var one *ValidationError
	require.True(t, errors.As(err, &one))
	assert.Equal(t, ErrCodePatternMismatch, one.Code)
}

func TestValidateEscapeSequence(t *testing.T) {
	tests := []struct {
		seq   string
		valid bool
	}{
		{"esc", true},
		{"jj", true},
		{"jk", true},
		{"j", false},
		{"j ", false},
		{"", false},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Input.EscapeSequence = tt.seq
		assert.Equal(t, tt.valid, cfg.Validate() == nil, "sequence %q", tt.seq)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[input]\npage_lines = 10\n")

	reloaded := make(chan *Config, 4)
	w, err := watch(path, 10*time.Millisecond, Load, func(cfg *Config, err error) {
		if err == nil {
			reloaded <- cfg
		}
	})
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "other.toml", "ignored = true\n")
	writeFile(t, dir, "config.toml", "[input]\npage_lines = 42\n")

	select {
	case cfg := <-reloaded:
		assert.Equal(t, 42, cfg.Input.PageLines)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
