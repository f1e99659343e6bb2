// Package session saves and restores the editor state that outlives a
// single run: named and numbered registers, global marks and recorded
// macros. Snapshots are JSON documents built with sjson and read with
// gjson.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/vimcore/internal/input/macro"
	"github.com/dshills/vimcore/internal/input/vim"
)

// Version is the snapshot format written by Encode.
const Version = 1

// ErrInvalidSnapshot is returned when data is not a snapshot.
var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// ErrUnsupportedVersion is returned for snapshots newer than Version.
var ErrUnsupportedVersion = errors.New("unsupported session version")

// Mark is a saved global mark.
type Mark struct {
	Name     rune
	Line     int
	Column   int
	Document string
}

// Snapshot is the persisted state.
type Snapshot struct {
	SavedAt    time.Time
	Registers  []vim.Register
	Marks      []Mark
	Macros     map[rune]string
	LastPlayed rune
}

// Stores are the engine stores a snapshot is taken from and restored to.
type Stores struct {
	Registers *vim.RegisterStore
	Marks     *vim.MarkStore
	Macros    *macro.Recorder
}

// persisted reports whether a register survives restarts. Unnamed,
// read-only and clipboard registers are rebuilt at runtime.
func persisted(name rune) bool {
	switch vim.GetRegisterType(name) {
	case vim.RegisterNamed, vim.RegisterNumbered, vim.RegisterLastYank:
		return true
	}
	return false
}

// Capture copies the persistent state out of s. Mark documents are
// passed through docName so that runtime identifiers can be saved as
// stable names such as file paths; a nil docName keeps them.
func Capture(s Stores, docName func(id string) string) Snapshot {
	snap := Snapshot{
		SavedAt: time.Now(),
		Macros:  make(map[rune]string),
	}

	if s.Registers != nil {
		for _, reg := range s.Registers.All() {
			if persisted(reg.Name) {
				snap.Registers = append(snap.Registers, reg)
			}
		}
	}

	if s.Marks != nil {
		for _, name := range s.Marks.Names() {
			info, _ := s.Marks.Get(name)
			if !info.Global {
				continue
			}
			doc := info.Document
			if docName != nil {
				doc = docName(doc)
			}
			snap.Marks = append(snap.Marks, Mark{Name: name, Line: info.Line, Column: info.Column, Document: doc})
		}
	}

	if s.Macros != nil {
		for name, notation := range macro.Export(s.Macros) {
			snap.Macros[[]rune(name)[0]] = notation
		}
		snap.LastPlayed = s.Macros.LastPlayed()
	}
	return snap
}

// Restore loads the snapshot into s, replacing existing macros. Mark
// documents are passed through docID, the inverse of Capture's docName.
// Entries that no longer validate are skipped and reported together.
func (snap Snapshot) Restore(s Stores, docID func(name string) string) error {
	var errs []error

	if s.Registers != nil {
		for _, reg := range snap.Registers {
			if !persisted(reg.Name) {
				errs = append(errs, fmt.Errorf("register %q not restorable", reg.Name))
				continue
			}
			s.Registers.Set(reg.Name, reg.Content, reg.Linewise)
		}
	}

	if s.Marks != nil {
		for _, m := range snap.Marks {
			if !vim.IsGlobalMark(m.Name) {
				errs = append(errs, fmt.Errorf("%w: %q", vim.ErrInvalidMark, m.Name))
				continue
			}
			doc := m.Document
			if docID != nil {
				doc = docID(doc)
			}
			if err := s.Marks.Set(m.Name, m.Line, m.Column, doc); err != nil {
				errs = append(errs, err)
			}
		}
	}

	if s.Macros != nil {
		macros := make(map[string]string, len(snap.Macros))
		for name, notation := range snap.Macros {
			macros[string(name)] = notation
		}
		if err := macro.Import(s.Macros, macros, false); err != nil {
			errs = append(errs, err)
		}
		if macro.IsValidRegister(snap.LastPlayed) {
			s.Macros.SetLastPlayed(snap.LastPlayed)
		}
	}

	return errors.Join(errs...)
}

// Encode renders the snapshot as JSON.
func (snap Snapshot) Encode() ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		doc, err = sjson.SetBytes(doc, path, value)
	}

	set("version", Version)
	set("saved_at", snap.SavedAt.UTC().Format(time.RFC3339))
	set("registers", []any{})
	set("marks", []any{})
	set("macros", []any{})

	for i, reg := range snap.Registers {
		prefix := fmt.Sprintf("registers.%d.", i)
		set(prefix+"name", string(reg.Name))
		set(prefix+"content", reg.Content)
		set(prefix+"linewise", reg.Linewise)
	}
	for i, m := range snap.Marks {
		prefix := fmt.Sprintf("marks.%d.", i)
		set(prefix+"name", string(m.Name))
		set(prefix+"line", m.Line)
		set(prefix+"column", m.Column)
		set(prefix+"document", m.Document)
	}
	i := 0
	for _, name := range sortedRunes(snap.Macros) {
		prefix := fmt.Sprintf("macros.%d.", i)
		set(prefix+"register", string(name))
		set(prefix+"keys", snap.Macros[name])
		i++
	}
	if snap.LastPlayed != 0 {
		set("last_played", string(snap.LastPlayed))
	}

	if err != nil {
		return nil, fmt.Errorf("encoding session: %w", err)
	}
	return doc, nil
}

// Decode parses JSON produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	if !gjson.ValidBytes(data) {
		return Snapshot{}, ErrInvalidSnapshot
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Snapshot{}, ErrInvalidSnapshot
	}
	if v := root.Get("version").Int(); v > Version {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	snap := Snapshot{Macros: make(map[rune]string)}
	if t, err := time.Parse(time.RFC3339, root.Get("saved_at").String()); err == nil {
		snap.SavedAt = t
	}

	root.Get("registers").ForEach(func(_, r gjson.Result) bool {
		name, ok := single(r.Get("name").String())
		if ok {
			snap.Registers = append(snap.Registers, vim.Register{
				Name:     name,
				Content:  r.Get("content").String(),
				Linewise: r.Get("linewise").Bool(),
			})
		}
		return true
	})
	root.Get("marks").ForEach(func(_, m gjson.Result) bool {
		name, ok := single(m.Get("name").String())
		if ok {
			snap.Marks = append(snap.Marks, Mark{
				Name:     name,
				Line:     int(m.Get("line").Int()),
				Column:   int(m.Get("column").Int()),
				Document: m.Get("document").String(),
			})
		}
		return true
	})
	root.Get("macros").ForEach(func(_, m gjson.Result) bool {
		if name, ok := single(m.Get("register").String()); ok {
			snap.Macros[name] = m.Get("keys").String()
		}
		return true
	})
	if name, ok := single(root.Get("last_played").String()); ok {
		snap.LastPlayed = name
	}
	return snap, nil
}

// Save writes data to path atomically, creating the directory.
func Save(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}

// Load reads the session file at path. A missing file yields nil data
// and no error.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	return data, nil
}

// DefaultPath returns the session file used when none is configured.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "vimcore", "session.json"), nil
}

func single(s string) (rune, bool) {
	r := []rune(s)
	if len(r) != 1 {
		return 0, false
	}
	return r[0], true
}

func sortedRunes(m map[rune]string) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}
