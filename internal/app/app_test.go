package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/vimcore/internal/config"
	"github.com/dshills/vimcore/internal/input/key"
)

func newTestApp(t *testing.T, cfg *config.Config, files ...string) *Application {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	a, err := New(context.Background(), Options{Config: cfg, Files: files})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })
	return a
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func send(t *testing.T, a *Application, keys string) {
	t.Helper()
	events, err := key.ParseSequence(keys)
	require.NoError(t, err)
	for _, ev := range events {
		a.HandleEvent(ev)
	}
}

func TestNewOpensScratch(t *testing.T) {
	a := newTestApp(t, nil)

	doc := a.Documents().Active()
	require.NotNil(t, doc)
	assert.True(t, doc.IsScratch())
	assert.Same(t, doc.Surface, a.Engine().Surface())

	send(t, a, "ihello<Esc>")
	assert.Equal(t, "hello", doc.Surface.String())
	assert.True(t, doc.IsModified())
}

func TestSaveWritesFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "one\n")
	a := newTestApp(t, nil, path)

	send(t, a, "Atwo<Esc>:w<CR>")

	assert.Equal(t, "File saved", a.Engine().Status())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "onetwo\n", string(data))
	assert.False(t, a.Documents().Active().IsModified())
}

func TestSaveScratchFails(t *testing.T) {
	a := newTestApp(t, nil)

	send(t, a, "ix<Esc>:w<CR>")
	assert.Equal(t, "Error: no file name", a.Engine().Status())
}

func TestQuitRefusesUnsavedChanges(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "abc")
	a := newTestApp(t, nil, path)

	send(t, a, "x:q<CR>")

	assert.Equal(t, "Error: no write since last change", a.Engine().Status())
	assert.Equal(t, 1, a.Documents().Count())
	select {
	case <-a.Done():
		t.Fatal("application quit with unsaved changes")
	default:
	}
}

func TestQuitLastDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "abc")
	a := newTestApp(t, nil, path)

	send(t, a, "x:wq<CR>")

	assert.Equal(t, 0, a.Documents().Count())
	select {
	case <-a.Done():
	default:
		t.Fatal("closing the last document should end the application")
	}
}

func TestTutorOpensReadOnlyDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "abc")
	a := newTestApp(t, nil, path)
	first := a.Documents().Active()

	send(t, a, ":tutor<CR>")

	tutor := a.Documents().Active()
	require.NotSame(t, first, tutor)
	assert.True(t, tutor.ReadOnly)
	assert.Same(t, tutor.Surface, a.Engine().Surface())
	assert.Equal(t, tutor.ID, a.Engine().State().Document)
	assert.Contains(t, tutor.Surface.String(), "Leave Insert mode")

	send(t, a, ":q<CR>")
	assert.Same(t, first, a.Documents().Active())
	assert.Same(t, first.Surface, a.Engine().Surface())
}

func TestGlobalMarkSwitchesDocument(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.txt", "aaa\nbbb")
	pathB := writeFile(t, dir, "b.txt", "ccc")
	a := newTestApp(t, nil, pathA, pathB)

	docA, ok := a.Documents().ByPath(pathA)
	require.True(t, ok)
	docB, ok := a.Documents().ByPath(pathB)
	require.True(t, ok)
	require.Same(t, docA, a.Documents().Active())

	send(t, a, "jlmA")

	require.NoError(t, a.Documents().SetActive(docB.ID))
	a.Engine().AttachDocument(docB.ID, docB.Surface)

	send(t, a, "`A")

	assert.Same(t, docA, a.Documents().Active())
	assert.Same(t, docA.Surface, a.Engine().Surface())
	assert.Equal(t, 5, docA.Surface.Caret())
}

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "first\nsecond")
	cfg := config.Default()
	cfg.Session.Enabled = true
	cfg.Session.Path = filepath.Join(dir, "state", "session.json")

	a, err := New(context.Background(), Options{Config: cfg, Files: []string{path}})
	require.NoError(t, err)
	send(t, a, "\"ayyjmAqqxq")
	require.NoError(t, a.Shutdown())
	require.FileExists(t, cfg.Session.Path)

	b := newTestApp(t, cfg, path)
	st := b.Engine().State()

	text, linewise := st.Registers.Get('a')
	assert.Equal(t, "first\n", text)
	assert.True(t, linewise)

	info, ok := st.Marks.Get('A')
	require.True(t, ok)
	assert.Equal(t, b.Documents().Active().ID, info.Document)
	assert.Equal(t, 1, info.Line)

	assert.True(t, st.Macros.HasMacro('q'))
}

func TestSessionDisabledWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Session.Path = filepath.Join(dir, "session.json")

	a := newTestApp(t, cfg)
	send(t, a, "ix<Esc>")
	require.NoError(t, a.Shutdown())

	assert.NoFileExists(t, cfg.Session.Path)
}

func TestApplyPendingConfig(t *testing.T) {
	a := newTestApp(t, nil)
	assert.False(t, a.ApplyPendingConfig())

	cfg := config.Default()
	cfg.Input.EscapeSequence = "jk"
	a.offerConfig(cfg)

	send(t, a, "iajk")

	assert.Equal(t, "jk", a.Engine().Config().EscapeSequence)
	assert.Same(t, cfg, a.Config())
	assert.Equal(t, "a", a.Documents().Active().Surface.String())
}

func TestWatchConfigReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[input]\npage_lines = 10\n")

	a, err := New(context.Background(), Options{ConfigPath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })
	require.Equal(t, 10, a.Config().Input.PageLines)
	require.NoError(t, a.WatchConfig())

	require.NoError(t, os.WriteFile(path, []byte("[input]\nescape_sequence = \"jj\"\n"), 0o644))

	require.Eventually(t, func() bool {
		a.ApplyPendingConfig()
		return a.Engine().Config().EscapeSequence == "jj"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestInitScriptApplied(t *testing.T) {
	dir := t.TempDir()
	initPath := writeFile(t, dir, "init.lua", `vim.set("page_lines", 7)`)

	a, err := New(context.Background(), Options{Config: config.Default(), InitPath: initPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	assert.Equal(t, 7, a.Config().Input.PageLines)
	assert.Equal(t, 7, a.Engine().Config().PageLines)
}

func TestInitScriptError(t *testing.T) {
	initPath := writeFile(t, t.TempDir(), "init.lua", `vim.set("nope", 1)`)

	_, err := New(context.Background(), Options{Config: config.Default(), InitPath: initPath})
	assert.Error(t, err)
}
