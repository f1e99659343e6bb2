package input

import "github.com/dshills/vimcore/internal/engine/surface"

// Host is the application embedding the engine. The engine calls it for
// the few commands that reach outside the current document.
type Host interface {
	// SwitchDocument makes id the current document and returns its
	// surface. It backs jumps to global marks.
	SwitchDocument(id string) (surface.Surface, error)

	// Save writes the current document (:w).
	Save() error

	// Close closes the current document (:q).
	Close() error

	// OpenText shows read-only text such as the tutorial (:tutor).
	OpenText(title, text string) error
}

// NopHost is the Host used when none is configured. Save and Close
// succeed without doing anything.
type NopHost struct{}

// SwitchDocument always fails.
func (NopHost) SwitchDocument(string) (surface.Surface, error) {
	return nil, ErrNoDocument
}

// Save does nothing.
func (NopHost) Save() error { return nil }

// Close does nothing.
func (NopHost) Close() error { return nil }

// OpenText does nothing.
func (NopHost) OpenText(string, string) error { return nil }

var _ Host = NopHost{}
