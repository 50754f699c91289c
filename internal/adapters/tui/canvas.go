package tui

import (
	"math"
	"strings"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/plot"
	"go.trai.ch/sho/internal/ui/style"
)

type cell struct {
	count  int
	series int
	best   bool
}

// canvas rasterizes plot points onto a grid of terminal cells. Row 0 is the
// top of the plot.
type canvas struct {
	cols, rows int
	viewport   plot.Viewport
	cells      []cell
	guideCols  map[int]bool
	guideRows  map[int]bool
}

func newCanvas(cols, rows int, x, y plot.Limits) *canvas {
	return &canvas{
		cols: cols,
		rows: rows,
		viewport: plot.Viewport{
			Width:  float64(cols - 1),
			Height: float64(rows - 1),
			X:      x,
			Y:      y,
		},
		cells:     make([]cell, cols*rows),
		guideCols: make(map[int]bool),
		guideRows: make(map[int]bool),
	}
}

// locate returns the cell a data point falls into.
func (c *canvas) locate(x, y float64) (col, row int, ok bool) {
	px, py := c.viewport.Project(x, y)
	col = int(math.Round(px))
	row = int(math.Round(py))
	return col, row, col >= 0 && col < c.cols && row >= 0 && row < c.rows
}

func (c *canvas) plot(p domain.Point, series int, best bool) {
	col, row, ok := c.locate(p.X, p.Y)
	if !ok {
		return
	}
	cl := &c.cells[row*c.cols+col]
	if cl.count == 0 {
		cl.series = series
	}
	cl.count++
	cl.best = cl.best || best
}

func (c *canvas) guideX(v float64) {
	if col, _, ok := c.locate(v, c.viewport.Y.Min+c.viewport.Y.Span()/2); ok {
		c.guideCols[col] = true
	}
}

func (c *canvas) guideY(v float64) {
	if _, row, ok := c.locate(c.viewport.X.Min+c.viewport.X.Span()/2, v); ok {
		c.guideRows[row] = true
	}
}

// render draws the grid with a left and bottom axis. The cursor cell is
// highlighted when showCursor is set.
func (c *canvas) render(cursorCol, cursorRow int, showCursor bool) string {
	var b strings.Builder
	for row := range c.rows {
		b.WriteString(guideStyle.Render(style.AxisVertical))
		for col := range c.cols {
			glyph := c.glyph(col, row)
			if showCursor && col == cursorCol && row == cursorRow {
				if glyph == " " || glyph == style.GuideGlyph || glyph == style.GuideGlyphH {
					glyph = style.PointCursor
				}
				b.WriteString(cursorStyle.Render(glyph))
				continue
			}
			b.WriteString(c.styled(col, row, glyph))
		}
		b.WriteString("\n")
	}
	b.WriteString(guideStyle.Render(style.AxisCorner + strings.Repeat(style.AxisBottom, c.cols)))
	return b.String()
}

func (c *canvas) glyph(col, row int) string {
	cl := c.cells[row*c.cols+col]
	switch {
	case cl.best:
		return style.PointBest
	case cl.count > 0:
		return style.Density(cl.count)
	case c.guideCols[col]:
		return style.GuideGlyph
	case c.guideRows[row]:
		return style.GuideGlyphH
	default:
		return " "
	}
}

func (c *canvas) styled(col, row int, glyph string) string {
	cl := c.cells[row*c.cols+col]
	switch {
	case cl.best:
		return bestStyle.Render(glyph)
	case cl.count > 0:
		return seriesStyle(cl.series).Render(glyph)
	case glyph != " ":
		return guideStyle.Render(glyph)
	default:
		return glyph
	}
}
