package app

import (
	"context"
	"fmt"

	"go.trai.ch/sho/internal/adapters/export"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/aggregator"
	"go.trai.ch/sho/internal/engine/selection"
)

// ExportOptions configures an export command.
type ExportOptions struct {
	// Output is the file to write. Empty selects the default file name.
	Output string
	// Search keeps only designs whose notes contain it, case-insensitively.
	Search string
}

// ExportPaths loads dirs and writes the best model path of every matching
// design, in argument order.
func (a *App) ExportPaths(ctx context.Context, dirs []string, opts Options, exp ExportOptions) error {
	s, designs, err := a.loadSelection(ctx, dirs, opts, exp.Search)
	if err != nil {
		return err
	}
	defer a.closeSession(ctx, s)

	out := exp.Output
	if out == "" {
		out = domain.DefaultPathsExport
	}
	n, err := a.exporter.SavePaths(out, designs)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote %d paths to %s", n, out))
	return nil
}

// ExportFunnels loads dirs and writes one funnel plot page per matching design.
// The axes default the same way as in the browser; all pages share limits
// derived from every loaded design.
func (a *App) ExportFunnels(ctx context.Context, dirs []string, opts Options, exp ExportOptions) error {
	s, designs, err := a.loadSelection(ctx, dirs, opts, exp.Search)
	if err != nil {
		return err
	}
	defer a.closeSession(ctx, s)

	loaded := s.agg.Designs()
	axes := selection.New()
	axes.SetDefinedMetrics(aggregator.DefinedMetrics(loaded))
	if err := axes.SetAxes(s.cfg.XMetric, s.cfg.YMetric); err != nil {
		return err
	}
	x, y := axes.Axes()

	out := exp.Output
	if out == "" {
		out = domain.DefaultFunnelsExport
	}
	doc := export.Document{
		Designs: designs,
		Loaded:  loaded,
		XMetric: x,
		YMetric: y,
		Metrics: s.cfg.Metrics,
	}
	if err := a.exporter.SaveFunnels(out, doc); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("wrote %d pages to %s", len(designs), out))
	return nil
}

// loadSelection loads dirs and returns the designs whose notes match search,
// in argument order. The caller closes the session.
func (a *App) loadSelection(
	ctx context.Context,
	dirs []string,
	opts Options,
	search string,
) (*session, []*domain.Design, error) {
	if len(dirs) == 0 {
		return nil, nil, domain.ErrNoDirectories
	}

	s, err := a.open(ctx, opts, nil)
	if err != nil {
		return nil, nil, err
	}

	designs, err := s.agg.Load(ctx, dirs)
	if err != nil {
		a.closeSession(ctx, s)
		return nil, nil, err
	}

	filter := selection.New()
	filter.SetSearch(search)
	var selected []*domain.Design
	for _, d := range designs {
		if filter.Matches(d.Notes) {
			selected = append(selected, d)
		}
	}
	if len(selected) == 0 {
		a.closeSession(ctx, s)
		return nil, nil, domain.ErrNoDesignsSelected
	}
	return s, selected, nil
}
