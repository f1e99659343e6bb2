package app

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveDocument indicates no document is open.
	ErrNoActiveDocument = errors.New("no active document")

	// ErrDocumentNotFound indicates an unknown document identifier.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrUnsavedChanges is returned when closing a modified document.
	ErrUnsavedChanges = errors.New("no write since last change")

	// ErrNoFilePath is returned when saving a scratch document.
	ErrNoFilePath = errors.New("no file name")

	// ErrReadOnly is returned when saving a read-only document.
	ErrReadOnly = errors.New("document is read-only")
)

// FileError records a failed file operation.
type FileError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
