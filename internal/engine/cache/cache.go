// Package cache memoizes metric extraction keyed by model path and modification time.
package cache

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

const tracerName = "go.trai.ch/sho/internal/engine/cache"

// Result is the outcome of a lookup for one model path.
type Result struct {
	Path    string
	ModTime int64
	// Metrics is nil when the file could not be read or extracted.
	Metrics domain.Metrics
	// Cached reports whether the metrics were served without extraction.
	Cached bool
	// Missing reports that the file could not be stat'ed, usually because it
	// was removed after listing.
	Missing bool
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits     int64
	Misses   int64
	Failures int64
}

// Cache serves extracted metrics from a MetricStore while the model's
// modification time is unchanged, and re-extracts otherwise.
type Cache struct {
	store  ports.MetricStore
	stater ports.Stater
	logger ports.Logger
	force  bool

	// writeMu serializes writes to the store.
	writeMu sync.Mutex

	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

// New creates a Cache over the given store.
func New(store ports.MetricStore, stater ports.Stater, logger ports.Logger) *Cache {
	return &Cache{
		store:  store,
		stater: stater,
		logger: logger,
	}
}

// WithForce makes every lookup a miss, so entries are recomputed and replaced.
func (c *Cache) WithForce(force bool) *Cache {
	c.force = force
	return c
}

// Stats returns the lookup counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Failures: c.failures.Load(),
	}
}

// GetOrCompute returns the metrics of a single model, extracting them on a miss.
func (c *Cache) GetOrCompute(
	ctx context.Context,
	path string,
	extractor ports.MetricExtractor,
) (domain.Metrics, error) {
	results, err := c.GetOrComputeMany(ctx, []string{path}, extractor)
	if err != nil {
		return nil, err
	}
	return results[0].Metrics, nil
}

// GetOrComputeMany resolves the metrics of many models. Paths whose stored
// entry matches the current modification time are served from the store;
// the rest are extracted in a single batch call and written back, replacing
// the previous entry for each path. Results follow the order of paths.
//
//nolint:cyclop,funlen // partition, extract and write-back in one pass
func (c *Cache) GetOrComputeMany(
	ctx context.Context,
	paths []string,
	extractor ports.MetricExtractor,
) ([]Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "cache.get_or_compute")
	defer span.End()
	span.SetAttributes(attribute.Int("paths", len(paths)))

	results := make([]Result, len(paths))
	var missIdx []int
	var missPaths []string

	for i, path := range paths {
		results[i].Path = path

		modTime, err := c.stater.ModTime(path)
		if err != nil {
			c.failures.Add(1)
			results[i].Missing = true
			c.logger.Warn(fmt.Sprintf("skipping %s: %v", path, zerr.Wrap(err, domain.ErrPathStatFailed.Error())))
			continue
		}
		results[i].ModTime = modTime

		if !c.force {
			entry, err := c.store.Get(ctx, path)
			if err != nil {
				c.logger.Warn(fmt.Sprintf("ignoring unreadable cache entry for %s: %v", path, err))
			}
			if entry.Valid(modTime) {
				c.hits.Add(1)
				results[i].Metrics = entry.Metrics.Clone()
				if results[i].Metrics == nil {
					results[i].Metrics = domain.Metrics{}
				}
				results[i].Cached = true
				continue
			}
		}

		missIdx = append(missIdx, i)
		missPaths = append(missPaths, path)
	}

	span.SetAttributes(
		attribute.Int("hits", len(paths)-len(missPaths)),
		attribute.Int("misses", len(missPaths)),
	)

	if len(missPaths) == 0 {
		return results, nil
	}

	extracted, err := extractor.ExtractMetrics(ctx, missPaths)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return nil, zerr.With(zerr.Wrap(err, domain.ErrExtractionFailed.Error()), "paths", len(missPaths))
	}
	if len(extracted) != len(missPaths) {
		err := zerr.With(domain.ErrExtractorOutputMismatch, "expected", len(missPaths))
		return nil, zerr.With(err, "got", len(extracted))
	}

	// Abandoned loads must not write back.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	for j, i := range missIdx {
		metrics := extracted[j]
		path := results[i].Path

		if metrics == nil {
			c.failures.Add(1)
			if err := c.store.Delete(ctx, path); err != nil {
				c.logger.Warn(fmt.Sprintf("failed to drop stale cache entry for %s: %v", path, err))
			}
			continue
		}

		c.misses.Add(1)
		results[i].Metrics = metrics.Clone()

		entry := domain.CacheEntry{
			Path:    path,
			ModTime: results[i].ModTime,
			Metrics: metrics.Clone(),
		}
		if err := c.store.Put(ctx, entry); err != nil {
			c.logger.Warn(fmt.Sprintf("failed to cache metrics for %s: %v", path, err))
		}
	}

	return results, nil
}

// Invalidate removes the entries for the given paths.
func (c *Cache) Invalidate(ctx context.Context, paths []string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	for _, path := range paths {
		if err := c.store.Delete(ctx, path); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrCacheDeleteFailed.Error()), "path", path)
		}
	}
	return nil
}

// Revalidate drops every stored entry whose file no longer exists or whose
// modification time differs from the stored one. It returns the number of
// entries kept and dropped.
func (c *Cache) Revalidate(ctx context.Context) (kept, dropped int, err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "cache.revalidate")
	defer span.End()

	var stale []string
	for entry, err := range c.store.Entries(ctx) {
		if err != nil {
			c.logger.Warn(fmt.Sprintf("skipping unreadable cache entry: %v", err))
			continue
		}
		modTime, statErr := c.stater.ModTime(entry.Path)
		if statErr != nil || !entry.Valid(modTime) {
			stale = append(stale, entry.Path)
			continue
		}
		kept++
	}

	if err := c.Invalidate(ctx, stale); err != nil {
		return kept, 0, err
	}

	span.SetAttributes(attribute.Int("kept", kept), attribute.Int("dropped", len(stale)))
	return kept, len(stale), nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	return c.store.Close()
}
