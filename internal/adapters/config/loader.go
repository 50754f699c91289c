// Package config provides the sho.yaml configuration loader.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load resolves the session configuration. An explicit path must exist.
// Without one, the nearest sho.yaml at or above cwd is used, and defaults
// apply when there is none.
func (l *Loader) Load(path, cwd string) (domain.Config, error) {
	if path == "" {
		path = findConfiguration(cwd)
		if path == "" {
			return domain.DefaultConfig(), nil
		}
	}

	var shofile Shofile
	if err := readAndUnmarshalYAML(path, &shofile); err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}

	cfg, err := l.build(path, &shofile)
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func findConfiguration(cwd string) string {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

func (l *Loader) build(path string, f *Shofile) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	cfg.Source = path

	if f.PrimaryMetric != "" {
		cfg.PrimaryMetric = f.PrimaryMetric
	}
	cfg.XMetric = f.XMetric
	cfg.YMetric = f.YMetric
	if f.ModelGlob != "" {
		if _, err := filepath.Match(f.ModelGlob, ""); err != nil {
			return domain.Config{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "model_glob", f.ModelGlob)
		}
		cfg.ModelGlob = f.ModelGlob
	}

	if f.Tolerance != nil {
		if *f.Tolerance <= 0 {
			return domain.Config{}, zerr.With(domain.ErrConfigParseFailed, "tolerance", *f.Tolerance)
		}
		cfg.Tolerance = *f.Tolerance
	}

	cache, err := resolveCache(filepath.Dir(path), f.Cache)
	if err != nil {
		return domain.Config{}, err
	}
	cfg.Cache = cache

	cfg.Extractor.Command = f.Extractor.Command
	if f.Viewers != nil {
		cfg.Viewers = f.Viewers
	}

	for name, dto := range f.Metrics {
		if dto == nil {
			continue
		}
		policy := domain.LimitPolicy(dto.Limits)
		if !policy.Valid() {
			err := zerr.With(domain.ErrInvalidLimitPolicy, "metric", name)
			return domain.Config{}, zerr.With(err, "limits", dto.Limits)
		}

		spec := cfg.Metrics.Lookup(name)
		if dto.Title != "" {
			spec.Title = dto.Title
		}
		if policy != "" {
			spec.Limits = policy
		}
		if dto.Guide != nil {
			spec.Guide = dto.Guide
		}
		cfg.Metrics[name] = spec
	}

	if l.Logger != nil && cfg.XMetric != "" && cfg.XMetric == cfg.YMetric {
		l.Logger.Warn("x_metric and y_metric are both " + cfg.XMetric + " in " + path)
	}

	return cfg, nil
}

// ResolveCache validates a backend name and resolves its path, filling the
// backend default when path is empty. Relative paths are taken from base.
func ResolveCache(base, backend, path string) (domain.CacheConfig, error) {
	return resolveCache(base, CacheDTO{Backend: backend, Path: path})
}

func resolveCache(base string, dto CacheDTO) (domain.CacheConfig, error) {
	backend := dto.Backend
	if backend == "" {
		backend = domain.BackendSQLite
	}

	switch backend {
	case domain.BackendSQLite, domain.BackendBadger, domain.BackendJSON, domain.BackendMemory:
	default:
		return domain.CacheConfig{}, zerr.With(domain.ErrUnknownCacheBackend, "backend", backend)
	}

	if backend == domain.BackendMemory {
		return domain.CacheConfig{Backend: backend}, nil
	}

	path := dto.Path
	if path == "" {
		return domain.CacheConfig{Backend: backend, Path: domain.DefaultCachePath(backend)}, nil
	}

	path = expandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	return domain.CacheConfig{Backend: backend, Path: filepath.Clean(path)}, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// An empty file leaves target untouched.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is a user supplied or discovered config file
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
