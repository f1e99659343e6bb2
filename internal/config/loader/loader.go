// Package loader reads configuration sources into generic maps.
//
// TOML files are read with go-toml, YAML files with yaml.v3, and
// environment variables through a prefix mapping. The maps are merged by
// the config package before being decoded into typed settings.
package loader

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads one configuration source. A source that does not exist
// loads as nil without error.
type Loader interface {
	Load() (map[string]any, error)
}

// FileLoader is a Loader that can also read other paths in its format.
type FileLoader interface {
	Loader
	LoadFrom(path string) (map[string]any, error)
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// ForPath returns the file loader matching the extension of path:
// YAML for .yaml and .yml, TOML otherwise.
func ForPath(fsys FileSystem, path string) FileLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLLoaderWithFS(fsys, path)
	default:
		return NewTOMLLoaderWithFS(fsys, path)
	}
}

// FileSystem is the file access loaders need; tests substitute an
// in-memory one.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS is the operating system's file system.
type OSFS struct{}

func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns OSFS.
func DefaultFS() FileSystem {
	return OSFS{}
}
