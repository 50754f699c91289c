package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetricStore = (*JSONFiles)(nil)

// JSONFiles is a MetricStore that keeps one JSON file per model path. File
// names are the xxhash of the model path, so a put replaces the previous
// entry for that path.
type JSONFiles struct {
	dir string
}

// OpenJSONFiles opens or creates the entry directory.
func OpenJSONFiles(dir string) (*JSONFiles, error) {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", dir)
	}
	return &JSONFiles{dir: dir}, nil
}

// Get retrieves the entry for a model path.
func (s *JSONFiles) Get(_ context.Context, path string) (*domain.CacheEntry, error) {
	filename := s.getFilename(path)
	//nolint:gosec // Path is constructed from the store directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error())
	}

	// A hash collision resolves to a different path; treat it as a miss.
	if entry.Path != path {
		return nil, nil
	}
	return &entry, nil
}

// Put stores the entry, replacing any previous entry for the same path.
func (s *JSONFiles) Put(_ context.Context, entry domain.CacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	tmp, err := os.CreateTemp(s.dir, "entry-*.tmp")
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	// Readers never observe a partially written entry.
	if err := os.Rename(tmp.Name(), s.getFilename(entry.Path)); err != nil {
		return zerr.Wrap(err, domain.ErrCacheWriteFailed.Error())
	}

	return nil
}

// Delete removes the entry for a model path.
func (s *JSONFiles) Delete(_ context.Context, path string) error {
	err := os.Remove(s.getFilename(path))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error())
	}
	return nil
}

// Entries iterates over all stored entries in file name order.
func (s *JSONFiles) Entries(ctx context.Context) iter.Seq2[domain.CacheEntry, error] {
	return func(yield func(domain.CacheEntry, error) bool) {
		files, err := os.ReadDir(s.dir)
		if err != nil {
			yield(domain.CacheEntry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error()))
			return
		}

		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(domain.CacheEntry{}, err)
				return
			}

			//nolint:gosec // Path is constructed from the store directory and a listed filename
			data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
			if err != nil {
				if !yield(domain.CacheEntry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())) {
					return
				}
				continue
			}

			var entry domain.CacheEntry
			if err := json.Unmarshal(data, &entry); err != nil {
				if !yield(domain.CacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "file", f.Name())) {
					return
				}
				continue
			}

			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Close is a no-op; every write is already on disk.
func (s *JSONFiles) Close() error {
	return nil
}

func (s *JSONFiles) getFilename(path string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(path), 16)+".json")
}
