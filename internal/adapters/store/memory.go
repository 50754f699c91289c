// Package store implements persisted backends for the metric cache.
package store

import (
	"context"
	"iter"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
)

var _ ports.MetricStore = (*Memory)(nil)

// Memory is a MetricStore held in process memory. It does not survive restarts.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]domain.CacheEntry)}
}

// Get retrieves the entry for a model path.
func (m *Memory) Get(_ context.Context, path string) (*domain.CacheEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[path]
	if !ok {
		return nil, nil
	}
	entry.Metrics = entry.Metrics.Clone()
	return &entry, nil
}

// Put stores the entry, replacing any previous entry for the same path.
func (m *Memory) Put(_ context.Context, entry domain.CacheEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry.Metrics = entry.Metrics.Clone()
	m.entries[entry.Path] = entry
	return nil
}

// Delete removes the entry for a model path.
func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, path)
	return nil
}

// Entries iterates over a snapshot of the stored entries, ordered by path.
func (m *Memory) Entries(_ context.Context) iter.Seq2[domain.CacheEntry, error] {
	m.mu.RLock()
	paths := slices.Sorted(maps.Keys(m.entries))
	snapshot := make([]domain.CacheEntry, 0, len(paths))
	for _, p := range paths {
		snapshot = append(snapshot, m.entries[p])
	}
	m.mu.RUnlock()

	return func(yield func(domain.CacheEntry, error) bool) {
		for _, entry := range snapshot {
			if !yield(entry, nil) {
				return
			}
		}
	}
}

// Len returns the number of stored entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
