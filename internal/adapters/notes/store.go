// Package notes persists what a user records about a design as small text
// files inside the design directory: notes.txt and representative.txt.
package notes

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.NotesStore = (*Store)(nil)

// Store implements ports.NotesStore with one file per design and concern.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Load returns the notes stored in dir, or an empty string if there are none.
func (s *Store) Load(dir string) (string, error) {
	text, err := readText(filepath.Join(dir, domain.NotesFileName))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrNotesReadFailed.Error()), "dir", dir)
	}
	return strings.TrimRight(text, "\n"), nil
}

// Save stores notes in dir. Blank notes remove notes.txt.
func (s *Store) Save(dir, notes string) error {
	if err := writeText(filepath.Join(dir, domain.NotesFileName), notes); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrNotesWriteFailed.Error()), "dir", dir)
	}
	return nil
}

// LoadRepresentative returns the model file name stored in dir.
func (s *Store) LoadRepresentative(dir string) (string, error) {
	text, err := readText(filepath.Join(dir, domain.RepresentativeFileName))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrRepresentativeReadFailed.Error()), "dir", dir)
	}
	return strings.TrimSpace(text), nil
}

// SaveRepresentative stores a model file name in dir. Only the base name is
// kept, so the choice survives moving the design directory.
func (s *Store) SaveRepresentative(dir, name string) error {
	if name != "" {
		name = filepath.Base(name)
	}
	if err := writeText(filepath.Join(dir, domain.RepresentativeFileName), name); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepresentativeWriteFailed.Error()), "dir", dir)
	}
	return nil
}

// readText returns the content of path, or an empty string if it does not exist.
func readText(path string) (string, error) {
	//nolint:gosec // Path is the design directory joined with a constant file name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// writeText stores text in path with a trailing newline. Blank text removes the file.
func writeText(path, text string) error {
	if strings.TrimSpace(text) == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return os.WriteFile(path, []byte(text+"\n"), domain.FilePerm)
}
