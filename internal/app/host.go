package app

import (
	"fmt"
	"os"

	"github.com/dshills/vimcore/internal/engine/surface"
	"github.com/dshills/vimcore/internal/input"
	"github.com/dshills/vimcore/internal/log"
)

// host answers the engine's callbacks. They run while the engine is
// handling a key, so document changes that need the engine are deferred
// through scheduleAttach.
type host struct {
	a *Application
}

var _ input.Host = host{}

// SwitchDocument activates id. An identifier that is not open but names
// a file, as global marks restored from a session do, opens that file.
func (h host) SwitchDocument(id string) (surface.Surface, error) {
	docs := h.a.documents
	if doc, ok := docs.Get(id); ok {
		_ = docs.SetActive(id)
		return doc.Surface, nil
	}
	if _, err := os.Stat(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	doc, err := docs.OpenWithID(id, id)
	if err != nil {
		return nil, err
	}
	if doc.ID != id {
		h.a.scheduleAttach(doc)
	}
	return doc.Surface, nil
}

func (h host) Save() error {
	doc := h.a.documents.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	if err := doc.Save(); err != nil {
		return err
	}
	log.Info("document saved", "path", doc.Path)
	return nil
}

// Close closes the active document. Closing the last one ends the
// application.
func (h host) Close() error {
	docs := h.a.documents
	doc := docs.Active()
	if doc == nil {
		return ErrNoActiveDocument
	}
	if doc.IsModified() {
		return ErrUnsavedChanges
	}
	if err := docs.Close(doc.ID); err != nil {
		return err
	}
	log.Debug("document closed", "name", doc.Name)

	if next := docs.Active(); next != nil {
		h.a.scheduleAttach(next)
		return nil
	}
	h.a.requestQuit()
	return nil
}

func (h host) OpenText(title, text string) error {
	doc := h.a.documents.OpenText(title, text)
	h.a.scheduleAttach(doc)
	return nil
}
