// Package clipboard provides the text clipboards behind the + and *
// registers and surface copies.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input/vim"
	"github.com/dshills/vimcore/internal/log"
)

// Provider is a readable and writable clipboard.
type Provider interface {
	Get() (string, error)
	Set(content string) error
}

var (
	_ vim.ClipboardProvider = (*System)(nil)
	_ vim.ClipboardProvider = (*Memory)(nil)
	_ surface.Clipboard     = (*System)(nil)
	_ surface.Clipboard     = (*Memory)(nil)
)

// System is the operating system clipboard.
type System struct{}

// Get reads the clipboard.
func (*System) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set writes the clipboard.
func (*System) Set(content string) error {
	return clipboard.WriteAll(content)
}

// Memory is a process-local clipboard.
type Memory struct {
	mu      sync.Mutex
	content string
}

// Get returns the last content set.
func (m *Memory) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content, nil
}

// Set replaces the content.
func (m *Memory) Set(content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
	return nil
}

// New returns the system clipboard when system is true and the platform
// has one, and a Memory clipboard otherwise.
func New(system bool) Provider {
	if !system {
		return &Memory{}
	}
	if clipboard.Unsupported {
		log.Warn("system clipboard unavailable, using an in-process clipboard")
		return &Memory{}
	}
	return &System{}
}
