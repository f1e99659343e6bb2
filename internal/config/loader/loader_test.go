package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[input]
escape_sequence = "jk"
escape_timeout_ms = 250

[[input.map]]
mode = "normal"
lhs = "<Space>w"
rhs = ":w<CR>"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	require.NoError(t, err)

	input, ok := config["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jk", input["escape_sequence"])
	assert.Equal(t, int64(250), input["escape_timeout_ms"])

	maps, ok := input["map"].([]any)
	require.True(t, ok)
	require.Len(t, maps, 1)
	assert.Equal(t, ":w<CR>", maps[0].(map[string]any)["rhs"])
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	assert.NoError(t, err)
	assert.Nil(t, config)
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[input\nescape = 1\n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "/bad.toml", pe.Path)
	assert.Positive(t, pe.Line)
	assert.Contains(t, pe.Error(), "parse error in /bad.toml")
}

func TestTOMLLoader_Includes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/cfg/main.toml", `
"@include" = "base.toml"
[input]
page_lines = 30
`)
	memfs.AddFile("/cfg/base.toml", `
[input]
page_lines = 10
escape_sequence = "jj"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/cfg/main.toml").LoadWithIncludes("/cfg/main.toml", 3)
	require.NoError(t, err)
	input := config["input"].(map[string]any)
	assert.Equal(t, int64(30), input["page_lines"], "main file wins")
	assert.Equal(t, "jj", input["escape_sequence"])
	assert.NotContains(t, config, "@include")

	memfs.AddFile("/cfg/loop.toml", `"@include" = "loop.toml"`)
	_, err = NewTOMLLoaderWithFS(memfs, "/cfg/loop.toml").LoadWithIncludes("/cfg/loop.toml", 3)
	assert.ErrorIs(t, err, ErrIncludeDepthExceeded)
}

func TestYAMLLoader(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.yaml", `
input:
  escape_sequence: kj
  remap:
    ctrl_r_redo: false
logging:
  level: debug
`)

	config, err := ForPath(memfs, "/config.yaml").Load()
	require.NoError(t, err)
	input := config["input"].(map[string]any)
	assert.Equal(t, "kj", input["escape_sequence"])
	assert.Equal(t, false, input["remap"].(map[string]any)["ctrl_r_redo"])

	_, err = NewYAMLLoader("/definitely/missing.yml").Load()
	assert.NoError(t, err)

	_, err = NewYAMLLoader("").LoadFromReader(strings.NewReader("input: [unclosed"))
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestForPath(t *testing.T) {
	memfs := NewMemFS()
	assert.IsType(t, &YAMLLoader{}, ForPath(memfs, "a.YML"))
	assert.IsType(t, &TOMLLoader{}, ForPath(memfs, "a.toml"))
	assert.IsType(t, &TOMLLoader{}, ForPath(memfs, "config"))
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"input": map[string]any{"page_lines": 10, "escape_sequence": "esc"},
		"keep":  true,
	}
	src := map[string]any{
		"input": map[string]any{"page_lines": 40},
		"new":   "x",
	}
	got := DeepMerge(Clone(dst), src)
	assert.Equal(t, map[string]any{
		"input": map[string]any{"page_lines": 40, "escape_sequence": "esc"},
		"keep":  true,
		"new":   "x",
	}, got)
	assert.Equal(t, 10, dst["input"].(map[string]any)["page_lines"], "clone protects the source")
}

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("VIMCORE_LOG_LEVEL", "debug")
	t.Setenv("VIMCORE_ESCAPE_TIMEOUT_MS", "400")
	t.Setenv("VIMCORE_SYSTEM_CLIPBOARD", "yes")
	t.Setenv("VIMCORE_SEARCH_REGEX_CACHE_TTL_S", "5")

	config, err := NewEnvLoader("VIMCORE_").Load()
	require.NoError(t, err)

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"input.escape_timeout_ms", int64(400)},
		{"clipboard.system", true},
		{"search.regex_cache_ttl_s", int64(5)},
	}
	for _, tt := range tests {
		got, ok := getByPath(config, tt.path)
		assert.True(t, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("VIMCORE_")
	tests := []struct {
		env  string
		want string
	}{
		{"VIMCORE_INPUT_PAGE_LINES", "input.page_lines"},
		{"VIMCORE_LOGGING_LEVEL", "logging.level"},
		{"VIMCORE_SESSION", "session"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.envToPath(tt.env))
	}
}

func TestEnvLoader_parseValue(t *testing.T) {
	l := NewEnvLoader("VIMCORE_")
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"on", true},
		{"OFF", false},
		{"1", int64(1)},
		{"2.5", 2.5},
		{"300ms", 300 * time.Millisecond},
		{`["a","b"]`, []any{"a", "b"}},
		{"jk", "jk"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.parseValue(tt.in), tt.in)
	}
}

func getByPath(data map[string]any, path string) (any, bool) {
	current := data
	parts := strings.Split(path, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if current, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}
