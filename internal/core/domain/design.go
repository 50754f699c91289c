package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// LoadState describes how far a design's models have been loaded.
type LoadState uint8

const (
	// StatePending means extraction for the design is still in flight.
	StatePending LoadState = iota
	// StateReady means the design's models and metrics are loaded.
	StateReady
	// StateFailed means the design directory could not be loaded.
	StateFailed
)

// String returns a short label for the state.
func (s LoadState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Design groups the models found directly inside one directory.
type Design struct {
	// Dir is the absolute, cleaned directory path. It identifies the design.
	Dir string
	// Models are ordered by path.
	Models []Model
	// Notes is the free-text description of the design.
	Notes string
	// Representative is the file name of a model chosen by hand to stand for
	// the design. Empty means the best-ranked model does.
	Representative string
	// State is the load state of the design.
	State LoadState
	// Err holds the load failure when State is StateFailed.
	Err error

	best int
}

// NewDesign creates a pending design for the given directory.
func NewDesign(dir string) *Design {
	return &Design{
		Dir:   filepath.Clean(dir),
		State: StatePending,
		best:  -1,
	}
}

// ID returns the design's identity.
func (d *Design) ID() string {
	return d.Dir
}

// Name returns the last element of the design directory.
func (d *Design) Name() string {
	return filepath.Base(d.Dir)
}

// SetModels replaces the design's models and re-ranks them by the primary metric.
func (d *Design) SetModels(models []Model, primary string) {
	d.Models = slices.Clone(models)
	slices.SortFunc(d.Models, func(a, b Model) int {
		return strings.Compare(a.Path, b.Path)
	})
	d.Rerank(primary)
}

// Rerank recomputes the best model: the lowest value of the primary metric,
// ties broken by path. Models without the primary metric are not candidates.
func (d *Design) Rerank(primary string) {
	d.best = -1
	var bestScore float64
	for i, m := range d.Models {
		v, ok := m.Metrics.Get(primary)
		if !ok {
			continue
		}
		// Models are sorted by path, so a strict comparison keeps the first path on ties.
		if d.best < 0 || v < bestScore {
			d.best = i
			bestScore = v
		}
	}
}

// Best returns the model that stands for the design: the representative when
// one is set and still present, else the ranked best model. The second result
// is false when neither exists.
func (d *Design) Best() (Model, bool) {
	if m, ok := d.representative(); ok {
		return m, true
	}
	return d.Ranked()
}

// Ranked returns the lowest-scoring model by the primary metric, ignoring any
// representative. The second result is false when no model carries the metric.
func (d *Design) Ranked() (Model, bool) {
	if d.best < 0 || d.best >= len(d.Models) {
		return Model{}, false
	}
	return d.Models[d.best], true
}

// IsRepresentative reports whether path is the hand-picked representative.
func (d *Design) IsRepresentative(path string) bool {
	m, ok := d.representative()
	return ok && m.Path == path
}

func (d *Design) representative() (Model, bool) {
	if d.Representative == "" {
		return Model{}, false
	}
	return d.Model(filepath.Join(d.Dir, d.Representative))
}

// Empty reports whether the design has no models.
func (d *Design) Empty() bool {
	return len(d.Models) == 0
}

// Model returns the model with the given path.
func (d *Design) Model(path string) (Model, bool) {
	i, found := slices.BinarySearchFunc(d.Models, path, func(m Model, p string) int {
		return strings.Compare(m.Path, p)
	})
	if !found {
		return Model{}, false
	}
	return d.Models[i], true
}

// MetricNames returns the metric names present on at least one model, sorted.
func (d *Design) MetricNames() []string {
	seen := make(map[string]struct{})
	for _, m := range d.Models {
		for name := range m.Metrics {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
