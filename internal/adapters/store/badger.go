package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"os"

	"github.com/dgraph-io/badger/v4"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetricStore = (*Badger)(nil)

// BadgerConfig configures the badger backend.
type BadgerConfig struct {
	// Path is the database directory. Required unless InMemory is set.
	Path string
	// InMemory keeps the database in memory only.
	InMemory bool
	// SyncWrites fsyncs every write.
	SyncWrites bool
	// Logger receives badger's warnings and errors. Nil disables badger logging.
	Logger ports.Logger
}

// badgerLogger adapts ports.Logger to badger.Logger.
type badgerLogger struct {
	logger ports.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Errorf("badger: "+format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf("badger: "+format, args...))
}

func (l *badgerLogger) Infof(string, ...any) {}

func (l *badgerLogger) Debugf(string, ...any) {}

// Badger is a MetricStore backed by a badger key-value database. Keys are
// model paths and values are JSON-encoded cache entries.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens or creates a badger database.
func OpenBadger(cfg BadgerConfig) (*Badger, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, zerr.Wrap(errors.New("path is required for persistent database"), domain.ErrCacheOpenFailed.Error())
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", cfg.Path)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithNumVersionsToKeep(1)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheOpenFailed.Error()), "path", cfg.Path)
	}

	return &Badger{db: db}, nil
}

// Get retrieves the entry for a model path.
func (b *Badger) Get(_ context.Context, path string) (*domain.CacheEntry, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "path", path)
	}
	return &entry, nil
}

// Put stores the entry, replacing any previous entry for the same path.
func (b *Badger) Put(_ context.Context, entry domain.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCacheMarshalFailed.Error())
	}

	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(entry.Path), raw)
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", entry.Path)
	}
	return nil
}

// Delete removes the entry for a model path.
func (b *Badger) Delete(_ context.Context, path string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(path))
	})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error()), "path", path)
	}
	return nil
}

// Entries iterates over all stored entries in key order.
func (b *Badger) Entries(ctx context.Context) iter.Seq2[domain.CacheEntry, error] {
	return func(yield func(domain.CacheEntry, error) bool) {
		var entries []domain.CacheEntry
		err := b.db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if err := ctx.Err(); err != nil {
					return err
				}
				raw, err := it.Item().ValueCopy(nil)
				if err != nil {
					return err
				}
				var entry domain.CacheEntry
				if err := json.Unmarshal(raw, &entry); err != nil {
					return zerr.With(zerr.Wrap(err, domain.ErrCacheUnmarshalFailed.Error()), "key", string(it.Item().Key()))
				}
				entries = append(entries, entry)
			}
			return nil
		})
		if err != nil {
			yield(domain.CacheEntry{}, zerr.Wrap(err, domain.ErrCacheReadFailed.Error()))
			return
		}

		for _, entry := range entries {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Close closes the database.
func (b *Badger) Close() error {
	return b.db.Close()
}
