package app

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vimcore/internal/engine/surface"
)

// Document is an open text with its surface.
type Document struct {
	// ID identifies the document to the engine; marks record it.
	ID string

	// Path is the absolute file path, empty for scratch and text documents.
	Path string

	// Name is the display name.
	Name string

	Surface *surface.Memory

	ReadOnly bool

	saved string
}

// IsScratch reports whether the document has no file.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified reports whether the text differs from the last save.
func (d *Document) IsModified() bool {
	return !d.ReadOnly && d.Surface.String() != d.saved
}

// Save writes the document to its file.
func (d *Document) Save() error {
	switch {
	case d.ReadOnly:
		return ErrReadOnly
	case d.IsScratch():
		return ErrNoFilePath
	}
	text := d.Surface.String()
	if err := os.WriteFile(d.Path, []byte(text), 0o644); err != nil {
		return &FileError{Op: "save", Path: d.Path, Err: err}
	}
	d.saved = text
	return nil
}

// DocumentManager holds the open documents in open order.
type DocumentManager struct {
	mu     sync.RWMutex
	docs   map[string]*Document
	order  []string
	active *Document

	newSurface func(text string, readOnly bool) *surface.Memory
}

// NewDocumentManager creates an empty manager. newSurface builds the
// surface of each document.
func NewDocumentManager(newSurface func(text string, readOnly bool) *surface.Memory) *DocumentManager {
	if newSurface == nil {
		newSurface = func(text string, readOnly bool) *surface.Memory {
			if readOnly {
				return surface.NewMemory(text, surface.WithReadOnly())
			}
			return surface.NewMemory(text)
		}
	}
	return &DocumentManager{
		docs:       make(map[string]*Document),
		newSurface: newSurface,
	}
}

// Open opens the file at path, or activates it when already open. A
// missing file opens as an empty document that Save creates.
func (dm *DocumentManager) Open(path string) (*Document, error) {
	return dm.open(path, "")
}

// OpenWithID is Open that uses id for a newly opened document.
func (dm *DocumentManager) OpenWithID(path, id string) (*Document, error) {
	return dm.open(path, id)
}

func (dm *DocumentManager) open(path, id string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	if doc, ok := dm.ByPath(abs); ok {
		dm.SetActive(doc.ID)
		return doc, nil
	}

	content, err := os.ReadFile(abs)
	if err != nil && !os.IsNotExist(err) {
		return nil, &FileError{Op: "open", Path: abs, Err: err}
	}
	if id == "" {
		id = uuid.NewString()
	}
	doc := &Document{
		ID:      id,
		Path:    abs,
		Name:    filepath.Base(abs),
		Surface: dm.newSurface(string(content), false),
		saved:   string(content),
	}
	dm.add(doc)
	return doc, nil
}

// CreateScratch opens a document without a file, holding text.
func (dm *DocumentManager) CreateScratch(text string) *Document {
	doc := &Document{
		ID:      uuid.NewString(),
		Name:    "[No Name]",
		Surface: dm.newSurface(text, false),
		saved:   text,
	}
	dm.add(doc)
	return doc
}

// OpenText opens a read-only document showing text.
func (dm *DocumentManager) OpenText(title, text string) *Document {
	doc := &Document{
		ID:       uuid.NewString(),
		Name:     title,
		Surface:  dm.newSurface(text, true),
		ReadOnly: true,
		saved:    text,
	}
	dm.add(doc)
	return doc
}

func (dm *DocumentManager) add(doc *Document) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.docs[doc.ID] = doc
	dm.order = append(dm.order, doc.ID)
	dm.active = doc
}

// Close removes a document. The most recently opened remaining document
// becomes active.
func (dm *DocumentManager) Close(id string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	delete(dm.docs, id)
	for i, other := range dm.order {
		if other == id {
			dm.order = append(dm.order[:i], dm.order[i+1:]...)
			break
		}
	}
	if dm.active == doc {
		dm.active = nil
		if n := len(dm.order); n > 0 {
			dm.active = dm.docs[dm.order[n-1]]
		}
	}
	return nil
}

// Active returns the active document or nil.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// SetActive makes id the active document.
func (dm *DocumentManager) SetActive(id string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	doc, ok := dm.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	dm.active = doc
	return nil
}

// Get returns a document by identifier.
func (dm *DocumentManager) Get(id string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, ok := dm.docs[id]
	return doc, ok
}

// ByPath returns the open document for an absolute path.
func (dm *DocumentManager) ByPath(path string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	for _, doc := range dm.docs {
		if doc.Path != "" && doc.Path == path {
			return doc, true
		}
	}
	return nil, false
}

// All returns the documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	out := make([]*Document, 0, len(dm.order))
	for _, id := range dm.order {
		out = append(out, dm.docs[id])
	}
	return out
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.docs)
}

// HasModified reports whether any document has unsaved changes.
func (dm *DocumentManager) HasModified() bool {
	for _, doc := range dm.All() {
		if doc.IsModified() {
			return true
		}
	}
	return false
}
