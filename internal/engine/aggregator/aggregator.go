// Package aggregator builds designs from directories of models and keeps
// them ranked by the primary metric.
package aggregator

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/sho/internal/engine/cache"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "go.trai.ch/sho/internal/engine/aggregator"

	// designConcurrency bounds how many directories are loaded at once.
	// Each load already parses its models in parallel.
	designConcurrency = 4
)

// Options configures an Aggregator.
type Options struct {
	// PrimaryMetric ranks models inside a design. Empty means total_score.
	PrimaryMetric string
	// ModelGlob selects model files. Empty means *.pdb*.
	ModelGlob string
}

// Aggregator owns the set of loaded designs.
type Aggregator struct {
	lister    ports.ModelLister
	cache     *cache.Cache
	extractor ports.MetricExtractor
	notes     ports.NotesStore
	logger    ports.Logger
	glob      string

	mu      sync.RWMutex
	primary string
	designs map[string]*domain.Design
}

// New creates an Aggregator.
func New(
	lister ports.ModelLister,
	c *cache.Cache,
	extractor ports.MetricExtractor,
	notes ports.NotesStore,
	logger ports.Logger,
	opts Options,
) *Aggregator {
	if opts.PrimaryMetric == "" {
		opts.PrimaryMetric = domain.MetricTotalScore
	}
	if opts.ModelGlob == "" {
		opts.ModelGlob = domain.DefaultModelGlob
	}
	return &Aggregator{
		lister:    lister,
		cache:     c,
		extractor: extractor,
		notes:     notes,
		logger:    logger,
		glob:      opts.ModelGlob,
		primary:   opts.PrimaryMetric,
		designs:   make(map[string]*domain.Design),
	}
}

// NormalizeDirs makes every directory absolute and clean, dropping later
// duplicates so the first occurrence keeps its position.
func NormalizeDirs(dirs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(dirs))
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrFailedToGetAbsPath.Error()), "dir", dir)
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		out = append(out, abs)
	}
	return out, nil
}

// Load loads every directory, replaces the stored designs for them and
// returns the designs in argument order. A directory that cannot be read
// yields a failed design and does not abort the others.
func (a *Aggregator) Load(ctx context.Context, dirs []string) ([]*domain.Design, error) {
	if len(dirs) == 0 {
		return nil, domain.ErrNoDirectories
	}

	dirs, err := NormalizeDirs(dirs)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "aggregator.load",
		trace.WithAttributes(attribute.Int("designs", len(dirs))))
	defer span.End()

	loaded := make([]*domain.Design, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(designConcurrency)
	for i, dir := range dirs {
		g.Go(func() error {
			design, err := a.LoadDesign(gctx, dir)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				a.logger.Error(err)
			}
			loaded[i] = design
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load cancelled")
		return nil, err
	}

	for _, design := range loaded {
		a.Put(design)
	}
	return loaded, nil
}

// LoadDesign builds a fresh design for one directory without storing it.
// On failure the returned design is in StateFailed and carries the error.
func (a *Aggregator) LoadDesign(ctx context.Context, dir string) (*domain.Design, error) {
	design := domain.NewDesign(dir)

	paths, err := a.lister.ListModels(design.Dir, a.glob)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrDirectoryUnreadable.Error()), "dir", design.Dir)
		design.State = domain.StateFailed
		design.Err = err
		return design, err
	}

	results, err := a.cache.GetOrComputeMany(ctx, paths, a.extractor)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return design, ctxErr
		}
		err = zerr.With(err, "dir", design.Dir)
		design.State = domain.StateFailed
		design.Err = err
		return design, err
	}

	models := make([]domain.Model, 0, len(results))
	for _, r := range results {
		if r.Missing {
			continue
		}
		metrics := r.Metrics
		if metrics == nil {
			metrics = domain.Metrics{}
		}
		models = append(models, domain.Model{Path: r.Path, ModTime: r.ModTime, Metrics: metrics})
	}

	notes, err := a.notes.Load(design.Dir)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("ignoring notes of %s: %v", design.Dir, err))
	}
	design.Notes = notes

	rep, err := a.notes.LoadRepresentative(design.Dir)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("ignoring representative of %s: %v", design.Dir, err))
	}
	design.Representative = rep

	design.SetModels(models, a.PrimaryMetric())
	design.State = domain.StateReady

	if design.Empty() {
		a.logger.Warn(fmt.Sprintf("%s: %s", domain.ErrEmptyDesign.Error(), design.Dir))
	}

	return design, nil
}

// Put stores a design, replacing any previous design with the same id, and
// ranks it by the current primary metric.
func (a *Aggregator) Put(design *domain.Design) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if design.State == domain.StateReady {
		design.Rerank(a.primary)
	}
	a.designs[design.ID()] = design
}

// MarkPending stores a pending design for dir in place of any known one, so
// models from before a reload are not shown while it runs. The notes and
// representative of the replaced design are kept.
func (a *Aggregator) MarkPending(dir string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pending := domain.NewDesign(dir)
	if old, ok := a.designs[pending.ID()]; ok {
		pending.Notes = old.Notes
		pending.Representative = old.Representative
	}
	a.designs[pending.ID()] = pending
}

// Retain drops every design whose id is not in ids.
func (a *Aggregator) Retain(ids []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id := range a.designs {
		if !slices.Contains(ids, id) {
			delete(a.designs, id)
		}
	}
}

// Designs returns the stored designs ordered by id.
func (a *Aggregator) Designs() []*domain.Design {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*domain.Design, 0, len(a.designs))
	for _, d := range a.designs {
		out = append(out, d)
	}
	slices.SortFunc(out, func(x, y *domain.Design) int {
		return strings.Compare(x.ID(), y.ID())
	})
	return out
}

// Design returns the stored design with the given id.
func (a *Aggregator) Design(id string) (*domain.Design, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	d, ok := a.designs[id]
	return d, ok
}

// PrimaryMetric returns the metric models are ranked by.
func (a *Aggregator) PrimaryMetric() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.primary
}

// SetPrimaryMetric changes the ranking metric and re-ranks every ready design.
func (a *Aggregator) SetPrimaryMetric(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.primary = name
	for _, d := range a.designs {
		if d.State == domain.StateReady {
			d.Rerank(name)
		}
	}
}

// DefinedMetrics returns the sorted metric names present in every ready,
// non-empty design.
func (a *Aggregator) DefinedMetrics() []string {
	return DefinedMetrics(a.Designs())
}

// DefinedMetrics returns the sorted intersection of the metric names of the
// ready, non-empty designs.
func DefinedMetrics(designs []*domain.Design) []string {
	var defined []string
	first := true
	for _, d := range designs {
		if d.State != domain.StateReady || d.Empty() {
			continue
		}
		names := d.MetricNames()
		if first {
			defined = names
			first = false
			continue
		}
		defined = slices.DeleteFunc(defined, func(n string) bool {
			_, found := slices.BinarySearch(names, n)
			return !found
		})
	}
	return defined
}

// SaveNotes persists the description of a design and updates the stored copy.
func (a *Aggregator) SaveNotes(id, notes string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, ok := a.designs[id]
	if !ok {
		return zerr.With(domain.ErrDesignNotFound, "design", id)
	}
	if err := a.notes.Save(d.Dir, notes); err != nil {
		return err
	}
	d.Notes = notes
	return nil
}

// SetRepresentative makes the model at path stand for design id in place of
// the ranked best model and persists the choice. An empty path resets it.
func (a *Aggregator) SetRepresentative(id, path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, ok := a.designs[id]
	if !ok {
		return zerr.With(domain.ErrDesignNotFound, "design", id)
	}
	name := ""
	if path != "" {
		if _, ok := d.Model(path); !ok {
			return zerr.With(zerr.With(domain.ErrModelNotFound, "design", id), "model", path)
		}
		name = filepath.Base(path)
	}
	if err := a.notes.SaveRepresentative(d.Dir, name); err != nil {
		return err
	}
	d.Representative = name
	return nil
}
