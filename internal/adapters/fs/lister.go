// Package fs provides file system adapters for enumerating and stating model files.
package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ModelLister = (*Lister)(nil)

// Lister enumerates the model files directly inside a design directory.
type Lister struct{}

// NewLister creates a new Lister.
func NewLister() *Lister {
	return &Lister{}
}

// ListModels returns the absolute, sorted paths of regular files in dir
// whose name matches glob. An empty glob selects domain.DefaultModelGlob.
// Subdirectories are not searched.
func (l *Lister) ListModels(dir, glob string) ([]string, error) {
	if glob == "" {
		glob = domain.DefaultModelGlob
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetAbsPath.Error()), "path", dir)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDirectoryUnreadable.Error()), "path", abs)
	}

	var paths []string
	for _, entry := range entries {
		if matched, _ := filepath.Match(glob, entry.Name()); !matched {
			continue
		}
		if !isRegular(abs, entry) {
			continue
		}
		paths = append(paths, filepath.Join(abs, entry.Name()))
	}

	slices.Sort(paths)
	return paths, nil
}

// isRegular reports whether entry is a regular file, following symlinks.
func isRegular(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
