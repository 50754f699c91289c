package store

import (
	"context"
	"os"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory opens the metric store selected by the configuration.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory that reports backend warnings to logger.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// Open opens or creates the configured backend. An empty path selects the
// backend's default location.
func (f *Factory) Open(ctx context.Context, cfg domain.CacheConfig) (ports.MetricStore, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = domain.BackendSQLite
	}
	path := cfg.Path
	if path == "" {
		path = domain.DefaultCachePath(backend)
	}

	switch backend {
	case domain.BackendSQLite:
		return OpenSQLite(ctx, path)
	case domain.BackendBadger:
		return OpenBadger(BadgerConfig{Path: path, Logger: f.logger})
	case domain.BackendJSON:
		return OpenJSONFiles(path)
	case domain.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, zerr.With(domain.ErrUnknownCacheBackend, "backend", backend)
	}
}

// OpenOrFallback opens the configured backend and falls back to an
// in-memory store when it cannot be opened, so a broken cache location
// only costs recomputation.
func (f *Factory) OpenOrFallback(ctx context.Context, cfg domain.CacheConfig) ports.MetricStore {
	s, err := f.Open(ctx, cfg)
	if err == nil {
		return s
	}
	f.logger.Error(err)
	f.logger.Warn("metric cache unavailable, results will not be persisted")
	return NewMemory()
}

// Remove deletes the persisted cache of the configured backend.
func (f *Factory) Remove(cfg domain.CacheConfig) error {
	backend := cfg.Backend
	if backend == "" {
		backend = domain.BackendSQLite
	}
	path := cfg.Path
	if path == "" {
		path = domain.DefaultCachePath(backend)
	}
	if path == "" {
		return nil
	}

	targets := []string{path}
	if backend == domain.BackendSQLite {
		targets = append(targets, path+"-wal", path+"-shm")
	}
	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error()), "path", target)
		}
	}
	return nil
}
