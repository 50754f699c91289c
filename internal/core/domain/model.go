package domain

import (
	"maps"
	"math"
	"path/filepath"
	"slices"
)

// Well-known metric names produced by the default extractor.
const (
	MetricTotalScore   = "total_score"
	MetricLoopRMSD     = "loop_rmsd"
	MetricBuriedUnsats = "delta_buried_unsats"
)

// Metrics maps a metric name to its value. A metric that could not be
// extracted is an absent key, never zero.
type Metrics map[string]float64

// Get returns the value of a metric. NaN values count as absent.
func (m Metrics) Get(name string) (float64, bool) {
	v, ok := m[name]
	if !ok || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Has reports whether all of the named metrics are present.
func (m Metrics) Has(names ...string) bool {
	for _, name := range names {
		if _, ok := m.Get(name); !ok {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no storage with m.
func (m Metrics) Clone() Metrics {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// Names returns the metric names in sorted order.
func (m Metrics) Names() []string {
	return slices.Sorted(maps.Keys(m))
}

// Model is one structural model file and its extracted metrics.
type Model struct {
	// Path is the absolute path of the model file. It identifies the model.
	Path string
	// ModTime is the file's modification time in UnixNano.
	ModTime int64
	// Metrics holds the extracted metric values.
	Metrics Metrics
}

// Name returns the model's file name.
func (m Model) Name() string {
	return filepath.Base(m.Path)
}
