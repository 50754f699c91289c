package domain

// DefaultTolerance is the default nearest-point radius in plot cells.
const DefaultTolerance = 2.0

// Config holds the resolved settings for a session.
type Config struct {
	// Source is the config file the settings were read from, empty for defaults.
	Source string

	PrimaryMetric string
	XMetric       string
	YMetric       string
	Tolerance     float64
	ModelGlob     string

	Cache     CacheConfig
	Extractor ExtractorConfig
	Viewers   []string
	Metrics   MetricTable
}

// CacheConfig selects and locates the persisted metric cache.
type CacheConfig struct {
	Backend string
	Path    string
}

// ExtractorConfig selects the metric extractor. An empty command means the
// built-in PDB extractor.
type ExtractorConfig struct {
	Command []string
}

// DefaultConfig returns the settings used when no config file is found.
func DefaultConfig() Config {
	return Config{
		PrimaryMetric: MetricTotalScore,
		Tolerance:     DefaultTolerance,
		ModelGlob:     DefaultModelGlob,
		Cache: CacheConfig{
			Backend: BackendSQLite,
			Path:    DefaultCachePath(BackendSQLite),
		},
		Viewers: []string{"pymol", "chimera"},
		Metrics: DefaultMetricTable(),
	}
}
