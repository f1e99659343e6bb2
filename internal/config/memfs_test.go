package config

import (
	"io/fs"
	"testing/fstest"
)

// memFS is a loader.FileSystem over in-memory files.
type memFS map[string]string

func (m memFS) mapFS() fstest.MapFS {
	out := fstest.MapFS{}
	for name, data := range m {
		out[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return out
}

func (m memFS) Open(name string) (fs.File, error) {
	return m.mapFS().Open(name)
}

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Stat(path string) (fs.FileInfo, error) {
	return m.mapFS().Stat(path)
}
