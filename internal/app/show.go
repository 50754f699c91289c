package app

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sho/internal/adapters/detector"
	"go.trai.ch/sho/internal/adapters/shell"
	"go.trai.ch/sho/internal/adapters/telemetry"
	"go.trai.ch/sho/internal/adapters/tui"
	"go.trai.ch/sho/internal/adapters/watcher"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/aggregator"
	"go.trai.ch/zerr"
)

// Show loads the design directories and opens the design browser. Outside a
// terminal, or with --quiet, it loads the designs, fills the cache and logs
// a summary instead.
func (a *App) Show(ctx context.Context, dirs []string, opts Options) error {
	if len(dirs) == 0 {
		return domain.ErrNoDirectories
	}

	mode := detector.ResolveMode(detector.DetectEnvironment(), opts.Quiet)
	if a.mode != nil {
		mode = detector.ResolveMode(*a.mode, opts.Quiet)
	}

	if mode == detector.ModeSummary {
		return a.summary(ctx, dirs, opts)
	}
	return a.browse(ctx, dirs, opts)
}

func (a *App) summary(ctx context.Context, dirs []string, opts Options) error {
	s, err := a.open(ctx, opts, nil)
	if err != nil {
		return err
	}
	defer a.closeSession(ctx, s)

	designs, err := s.agg.Load(ctx, dirs)
	if err != nil {
		return err
	}
	a.summarize(designs, s.cache, s.agg.PrimaryMetric())
	return nil
}

func (a *App) browse(ctx context.Context, dirs []string, opts Options) error {
	restore, err := a.redirectLog()
	if err != nil {
		return err
	}
	defer restore()

	var browser atomic.Pointer[tui.Browser]
	observe := func(summary telemetry.SpanSummary) {
		if b := browser.Load(); b != nil {
			b.ObserveSpan(summary)
		}
	}

	s, err := a.open(ctx, opts, observe)
	if err != nil {
		return err
	}
	defer a.closeSession(ctx, s)

	loader := aggregator.NewLoader(s.agg)
	jobs, err := loader.Request(ctx, dirs)
	if err != nil {
		return err
	}
	defer loader.Cancel()

	model := tui.NewModel(ctx, tui.Options{
		Aggregator: s.agg,
		Loader:     loader,
		Resolver:   a.resolver,
		Runner:     a.runner,
		Viewers:    shell.Viewers(s.cfg.Viewers),
		Metrics:    s.cfg.Metrics,
		Tolerance:  s.cfg.Tolerance,
		XMetric:    s.cfg.XMetric,
		YMetric:    s.cfg.YMetric,
		Jobs:       jobs,
		Exporter:   a.exporter,
	})

	teaOpts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}, a.teaOptions...)
	b := tui.NewBrowser(model, teaOpts...)
	browser.Store(b)

	if a.watcher != nil {
		watched := make([]string, 0, len(jobs))
		for _, job := range jobs {
			watched = append(watched, job.Dir)
		}
		if err := a.watcher.Start(ctx, watched); err != nil {
			a.logger.Error(err)
		} else {
			b.Watch(a.watcher, watcher.DefaultDebounceWindow)
		}
	}

	if err := b.Run(); err != nil {
		return zerr.Wrap(err, "design browser failed")
	}
	return nil
}

// redirectLog points the logger at the debug log while the browser owns the
// terminal. The returned func restores stderr and closes the file.
func (a *App) redirectLog() (func(), error) {
	path := domain.DefaultDebugLogPath()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create debug log directory"), "path", path)
	}
	//nolint:gosec // The debug log lives in the per-user cache directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, domain.PrivateFilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open debug log"), "path", path)
	}
	a.logger.SetOutput(f)
	return func() {
		a.logger.SetOutput(nil)
		_ = f.Close()
	}, nil
}
