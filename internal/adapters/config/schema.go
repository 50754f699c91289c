package config

// Shofile represents the structure of the sho.yaml configuration file.
type Shofile struct {
	PrimaryMetric string                `yaml:"primary_metric"`
	XMetric       string                `yaml:"x_metric"`
	YMetric       string                `yaml:"y_metric"`
	Tolerance     *float64              `yaml:"tolerance"`
	ModelGlob     string                `yaml:"model_glob"`
	Cache         CacheDTO              `yaml:"cache"`
	Extractor     ExtractorDTO          `yaml:"extractor"`
	Viewers       []string              `yaml:"viewers"`
	Metrics       map[string]*MetricDTO `yaml:"metrics"`
}

// CacheDTO represents the cache section.
type CacheDTO struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}

// ExtractorDTO represents the extractor section.
type ExtractorDTO struct {
	Command []string `yaml:"command"`
}

// MetricDTO represents the presentation of one metric.
type MetricDTO struct {
	Title  string   `yaml:"title"`
	Limits string   `yaml:"limits"`
	Guide  *float64 `yaml:"guide"`
}
