// Package plot turns designs into plottable points and answers nearest-point queries.
package plot

import (
	"math"

	"go.trai.ch/sho/internal/core/domain"
)

// Points returns one point per model that has both metrics, for ready designs only.
// Designs still loading are left out rather than drawn from partial data.
func Points(designs []*domain.Design, x, y string) []domain.Point {
	var points []domain.Point
	for _, d := range designs {
		points = append(points, DesignPoints(d, x, y)...)
	}
	return points
}

// DesignPoints returns the points of a single design.
func DesignPoints(d *domain.Design, x, y string) []domain.Point {
	if d.State != domain.StateReady {
		return nil
	}
	points := make([]domain.Point, 0, len(d.Models))
	for _, m := range d.Models {
		xv, okX := m.Metrics.Get(x)
		yv, okY := m.Metrics.Get(y)
		if !okX || !okY {
			continue
		}
		points = append(points, domain.Point{DesignID: d.ID(), ModelID: m.Path, X: xv, Y: yv})
	}
	return points
}

// Viewport maps data coordinates onto a pixel or cell grid. The y axis grows upward.
type Viewport struct {
	Width  float64
	Height float64
	X      Limits
	Y      Limits
}

// Project returns the screen position of a data point.
func (v Viewport) Project(x, y float64) (px, py float64) {
	px = scale(x, v.X) * v.Width
	py = (1 - scale(y, v.Y)) * v.Height
	return px, py
}

func scale(v float64, l Limits) float64 {
	if l.Span() == 0 {
		return 0.5
	}
	return (v - l.Min) / l.Span()
}

// Options configures nearest-point lookup.
type Options struct {
	// Tolerance is the largest accepted distance, in screen units when a
	// viewport is set and data units otherwise.
	Tolerance float64
	Viewport  *Viewport
}

// Plot is an immutable set of points with nearest-point lookup.
type Plot struct {
	points []domain.Point
	opts   Options
}

// New creates a Plot. A non-positive tolerance means domain.DefaultTolerance.
func New(points []domain.Point, opts Options) *Plot {
	if opts.Tolerance <= 0 {
		opts.Tolerance = domain.DefaultTolerance
	}
	return &Plot{points: points, opts: opts}
}

// Points returns the plotted points.
func (p *Plot) Points() []domain.Point {
	return p.points
}

// Nearest returns the point closest to (px, py) within the tolerance. The
// earliest point wins a tie.
func (p *Plot) Nearest(px, py float64) (domain.Point, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, pt := range p.points {
		x, y := pt.X, pt.Y
		if p.opts.Viewport != nil {
			x, y = p.opts.Viewport.Project(x, y)
		}
		d := math.Hypot(x-px, y-py)
		if d <= p.opts.Tolerance && d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return domain.Point{}, false
	}
	return p.points[best], true
}
