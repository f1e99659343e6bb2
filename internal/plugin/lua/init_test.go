package lua

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/config"
)

func TestRunInitString(t *testing.T) {
	base := config.Default()

	res, err := RunInitString(context.Background(), `
		vim.set("escape_sequence", "jk")
		vim.set("escape_timeout_ms", 250)
		vim.set("ctrl_r_redo", false)
		vim.set("system_clipboard", true)
		vim.map("normal", "<Space>w", ":w<CR>")
		vim.notify("loaded " .. vim.get("escape_sequence"))
	`, base)
	require.NoError(t, err)

	in := res.Config.Input
	assert.Equal(t, "jk", in.EscapeSequence)
	assert.Equal(t, 250, in.EscapeTimeoutMS)
	assert.False(t, in.Remap.CtrlRRedo)
	assert.True(t, res.Config.Clipboard.System)
	assert.Equal(t, []config.Mapping{{Mode: "normal", Lhs: "<Space>w", Rhs: ":w<CR>"}}, in.Map)
	assert.Equal(t, []Message{{Level: slog.LevelInfo, Text: "loaded jk"}}, res.Messages)

	assert.Equal(t, config.EscapeKey, base.Input.EscapeSequence)
	assert.Empty(t, base.Input.Map)
}

func TestRunInitErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"unknown option", `vim.set("colorscheme", "x")`},
		{"wrong type", `vim.set("page_lines", "many")`},
		{"bad mode", `vim.map("insert", "jj", "<Esc>")`},
		{"empty rhs", `vim.map("normal", "x", "")`},
		{"bad level", `vim.notify("x", "loud")`},
		{"invalid result", `vim.set("escape_timeout_ms", 5)`},
		{"lua error", `error("boom")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunInitString(context.Background(), tt.code, config.Default())
			assert.Error(t, err)
		})
	}
}

func TestRunInitPrintAndLevels(t *testing.T) {
	res, err := RunInitString(context.Background(), `
		print("hello")
		vim.notify("careful", "warn")
	`, config.Default())
	require.NoError(t, err)

	assert.Equal(t, []Message{
		{Level: slog.LevelInfo, Text: "hello"},
		{Level: slog.LevelWarn, Text: "careful"},
	}, res.Messages)
}

func TestRunInitFile(t *testing.T) {
	dir := t.TempDir()
	base := config.Default()

	res, err := RunInit(context.Background(), filepath.Join(dir, "missing.lua"), base)
	require.NoError(t, err)
	assert.Same(t, base, res.Config)

	path := filepath.Join(dir, "init.lua")
	require.NoError(t, os.WriteFile(path, []byte(`vim.set("page_lines", 42)`), 0o644))

	res, err = RunInit(context.Background(), path, base)
	require.NoError(t, err)
	assert.Equal(t, 42, res.Config.Input.PageLines)
}

func TestOptionNames(t *testing.T) {
	names := OptionNames()
	assert.Contains(t, names, "escape_sequence")
	assert.IsIncreasing(t, names)
}
