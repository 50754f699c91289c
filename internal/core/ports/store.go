package ports

import (
	"context"
	"iter"

	"go.trai.ch/sho/internal/core/domain"
)

// MetricStore persists cache entries, one live entry per model path.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MetricStore interface {
	// Get retrieves the entry for a model path.
	// Returns nil, nil if not found.
	Get(ctx context.Context, path string) (*domain.CacheEntry, error)

	// Put stores the entry, replacing any previous entry for the same path.
	Put(ctx context.Context, entry domain.CacheEntry) error

	// Delete removes the entry for a model path. Deleting a missing entry is not an error.
	Delete(ctx context.Context, path string) error

	// Entries iterates over all stored entries.
	Entries(ctx context.Context) iter.Seq2[domain.CacheEntry, error]

	// Close flushes and releases the store.
	Close() error
}
