// Package app implements the application layer for sho.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sho/internal/adapters/config"
	"go.trai.ch/sho/internal/adapters/detector"
	"go.trai.ch/sho/internal/adapters/export"
	"go.trai.ch/sho/internal/adapters/extractor"
	"go.trai.ch/sho/internal/adapters/logger"
	"go.trai.ch/sho/internal/adapters/shell"
	"go.trai.ch/sho/internal/adapters/store"
	"go.trai.ch/sho/internal/adapters/telemetry"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/sho/internal/engine/aggregator"
	"go.trai.ch/sho/internal/engine/cache"
	"go.trai.ch/sho/internal/engine/capability"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       *logger.Logger
	lister       ports.ModelLister
	stater       ports.Stater
	extractor    ports.MetricExtractor
	notes        ports.NotesStore
	stores       *store.Factory
	runner       *shell.Runner
	watcher      ports.Watcher
	exporter     *export.Exporter
	resolver     *capability.Resolver

	teaOptions []tea.ProgramOption
	mode       *detector.Mode
}

// Deps are the collaborators of an App.
type Deps struct {
	ConfigLoader ports.ConfigLoader
	Logger       *logger.Logger
	Lister       ports.ModelLister
	Stater       ports.Stater
	Extractor    ports.MetricExtractor
	Notes        ports.NotesStore
	Stores       *store.Factory
	Runner       *shell.Runner
	Watcher      ports.Watcher
	Exporter     *export.Exporter
}

// New creates a new App instance.
func New(deps Deps) *App {
	return &App{
		configLoader: deps.ConfigLoader,
		logger:       deps.Logger,
		lister:       deps.Lister,
		stater:       deps.Stater,
		extractor:    deps.Extractor,
		notes:        deps.Notes,
		stores:       deps.Stores,
		runner:       deps.Runner,
		watcher:      deps.Watcher,
		exporter:     deps.Exporter,
		resolver:     capability.NewResolver(),
	}
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithMode fixes the presentation mode instead of detecting it from the terminal.
func (a *App) WithMode(mode detector.Mode) *App {
	a.mode = &mode
	return a
}

// Close releases the directory watcher.
func (a *App) Close() error {
	if a.watcher == nil {
		return nil
	}
	return a.watcher.Stop()
}

// Options holds the settings shared by every command. Non-empty values
// override the config file.
type Options struct {
	ConfigPath   string
	Force        bool
	Quiet        bool
	XMetric      string
	YMetric      string
	Primary      string
	CacheBackend string
	CachePath    string
	JSONLog      bool
	TraceFile    string
}

// session is the state a command works on: the resolved configuration and
// an aggregator backed by the opened metric cache.
type session struct {
	cfg   domain.Config
	cache *cache.Cache
	agg   *aggregator.Aggregator
	tp    *telemetry.Provider
}

func (s *session) close(ctx context.Context) error {
	err := s.cache.Close()
	if s.tp != nil {
		err = errors.Join(err, s.tp.Shutdown(ctx))
	}
	return err
}

// resolveConfig loads the config file and applies the flag overrides.
func (a *App) resolveConfig(opts Options) (domain.Config, error) {
	a.logger.SetJSON(opts.JSONLog)

	cwd, err := os.Getwd()
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to get working directory")
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath, cwd)
	if err != nil {
		return domain.Config{}, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Primary != "" {
		cfg.PrimaryMetric = opts.Primary
	}
	if opts.XMetric != "" {
		cfg.XMetric = opts.XMetric
	}
	if opts.YMetric != "" {
		cfg.YMetric = opts.YMetric
	}

	if opts.CacheBackend != "" || opts.CachePath != "" {
		backend := opts.CacheBackend
		if backend == "" {
			backend = cfg.Cache.Backend
		}
		path := opts.CachePath
		if path == "" && backend == cfg.Cache.Backend {
			path = cfg.Cache.Path
		}
		cc, err := config.ResolveCache(cwd, backend, path)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Cache = cc
	}

	return cfg, nil
}

// open resolves the configuration and builds the aggregator. observer, when
// set, receives every finished span.
func (a *App) open(ctx context.Context, opts Options, observer func(telemetry.SpanSummary)) (*session, error) {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	var tp *telemetry.Provider
	if opts.TraceFile != "" || observer != nil {
		tp, err = telemetry.Setup(telemetry.Options{TraceFile: opts.TraceFile, Observer: observer})
		if err != nil {
			return nil, err
		}
	}

	metricStore := a.stores.OpenOrFallback(ctx, cfg.Cache)
	c := cache.New(metricStore, a.stater, a.logger).WithForce(opts.Force)

	ext := a.extractor
	if len(cfg.Extractor.Command) > 0 {
		ext = extractor.NewScript(cfg.Extractor.Command, a.runner)
	}

	agg := aggregator.New(a.lister, c, ext, a.notes, a.logger, aggregator.Options{
		PrimaryMetric: cfg.PrimaryMetric,
		ModelGlob:     cfg.ModelGlob,
	})

	return &session{cfg: cfg, cache: c, agg: agg, tp: tp}, nil
}

// closeSession closes s and reports a failure through the logger.
func (a *App) closeSession(ctx context.Context, s *session) {
	if err := s.close(ctx); err != nil {
		a.logger.Error(err)
	}
}

// summarize logs one line per design and the cache counters.
func (a *App) summarize(designs []*domain.Design, c *cache.Cache, primary string) {
	var models, failed int
	for _, d := range designs {
		switch {
		case d.State == domain.StateFailed:
			failed++
			a.logger.Warn(fmt.Sprintf("%s: %v", d.ID(), d.Err))
		case d.Empty():
			// Already reported by the aggregator.
		default:
			models += len(d.Models)
			best, ok := d.Best()
			if !ok {
				a.logger.Warn(domain.ErrNoBestModel.Error() + ": " + d.ID())
				continue
			}
			v, _ := best.Metrics.Get(primary)
			a.logger.Info(fmt.Sprintf("%s: %d models, best %s (%s %g)", d.Name(), len(d.Models), best.Name(), primary, v))
		}
	}

	stats := c.Stats()
	a.logger.Info(fmt.Sprintf("loaded %d designs, %d models, %d failed", len(designs), models, failed))
	a.logger.Info(fmt.Sprintf("cache: %d hits, %d misses, %d failures", stats.Hits, stats.Misses, stats.Failures))
}

// Scripts writes the capability scripts available for a model, nearest first,
// as "name<TAB>path" lines.
func (a *App) Scripts(_ context.Context, w io.Writer, modelPath string) error {
	if _, err := a.stater.ModTime(modelPath); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", modelPath)
	}
	for _, s := range capability.Dedup(a.resolver.Resolve(modelPath)) {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", s.Name, s.Path); err != nil {
			return zerr.Wrap(err, "failed to write script list")
		}
	}
	return nil
}
