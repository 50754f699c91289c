package export

import (
	"bytes"
	"fmt"
	"html"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/plot"
	"go.trai.ch/zerr"
)

const (
	pageWidth  = 800
	pageHeight = 600
)

var (
	modelColor = drawing.ColorFromHex("5a56e0")
	bestColor  = drawing.ColorFromHex("e05a5a")
	guideColor = drawing.ColorFromHex("9ca3af")
)

// Document describes a funnel export: one page per design, all pages sharing
// the same axes and limits.
type Document struct {
	// Designs are the selected designs, in page order.
	Designs []*domain.Design
	// Loaded are all loaded designs; the axis limits are derived from them.
	Loaded  []*domain.Design
	XMetric string
	YMetric string
	Metrics domain.MetricTable
}

const documentHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; margin: 0; }
section.page { page-break-after: always; break-after: page; padding: 2em; }
section.page:last-child { page-break-after: auto; break-after: auto; }
h1 { font-size: 1.1em; font-family: monospace; }
p.notes { white-space: pre-wrap; color: #444; }
p.empty { color: #999; }
</style>
</head>
<body>
`

const documentTail = `</body>
</html>
`

// WriteFunnels renders one funnel plot page per design as an HTML document
// with embedded SVG charts.
func (e *Exporter) WriteFunnels(w io.Writer, doc Document) error {
	xSpec := doc.Metrics.Lookup(doc.XMetric)
	ySpec := doc.Metrics.Lookup(doc.YMetric)
	xl, yl, framed := plot.Frame(doc.Loaded, doc.Metrics, doc.XMetric, doc.YMetric)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, documentHead, html.EscapeString(ySpec.Title+" vs "+xSpec.Title))

	for _, d := range doc.Designs {
		buf.WriteString("<section class=\"page\">\n")
		fmt.Fprintf(&buf, "<h1>%s</h1>\n", html.EscapeString(d.ID()))
		if d.Notes != "" {
			fmt.Fprintf(&buf, "<p class=\"notes\">%s</p>\n", html.EscapeString(d.Notes))
		}

		points := plot.DesignPoints(d, doc.XMetric, doc.YMetric)
		if !framed || len(points) == 0 {
			e.logger.Warn("no plottable models: " + d.ID())
			buf.WriteString("<p class=\"empty\">No models with both metrics.</p>\n")
		} else {
			c := funnelChart(d, points, xSpec, ySpec, xl, yl)
			if err := c.Render(chart.SVG, &buf); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrChartRenderFailed.Error()), "design", d.ID())
			}
			buf.WriteString("\n")
		}
		buf.WriteString("</section>\n")
	}
	buf.WriteString(documentTail)

	if _, err := buf.WriteTo(w); err != nil {
		return zerr.Wrap(err, domain.ErrExportWriteFailed.Error())
	}
	return nil
}

func funnelChart(
	d *domain.Design,
	points []domain.Point,
	xSpec, ySpec domain.MetricSpec,
	xl, yl plot.Limits,
) chart.Chart {
	best, hasBest := d.Best()

	models := chart.ContinuousSeries{
		Name:  "models",
		Style: pointStyle(modelColor, 3),
	}
	var bestSeries *chart.ContinuousSeries
	for _, p := range points {
		if hasBest && p.ModelID == best.Path {
			bestSeries = &chart.ContinuousSeries{
				Name:    "best",
				Style:   pointStyle(bestColor, 6),
				XValues: []float64{p.X},
				YValues: []float64{p.Y},
			}
			continue
		}
		models.XValues = append(models.XValues, p.X)
		models.YValues = append(models.YValues, p.Y)
	}

	var series []chart.Series
	if g := xSpec.Guide; g != nil && xl.Contains(*g) {
		series = append(series, guideSeries([]float64{*g, *g}, []float64{yl.Min, yl.Max}))
	}
	if g := ySpec.Guide; g != nil && yl.Contains(*g) {
		series = append(series, guideSeries([]float64{xl.Min, xl.Max}, []float64{*g, *g}))
	}
	if len(models.XValues) > 0 {
		series = append(series, models)
	}
	if bestSeries != nil {
		series = append(series, *bestSeries)
	}

	return chart.Chart{
		Width:      pageWidth,
		Height:     pageHeight,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  xSpec.Title,
			Range: &chart.ContinuousRange{Min: xl.Min, Max: xl.Max},
		},
		YAxis: chart.YAxis{
			Name:  ySpec.Title,
			Range: &chart.ContinuousRange{Min: yl.Min, Max: yl.Max},
		},
		Series: series,
	}
}

// pointStyle draws dots only, without a connecting line.
func pointStyle(color drawing.Color, width float64) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    width,
		DotColor:    color,
	}
}

func guideSeries(xs, ys []float64) chart.ContinuousSeries {
	return chart.ContinuousSeries{
		Name: "guide",
		Style: chart.Style{
			StrokeWidth:     1,
			StrokeColor:     guideColor,
			StrokeDashArray: []float64{4, 4},
		},
		XValues: xs,
		YValues: ys,
	}
}
