//nolint:testpackage // Test needs access to unexported fields
package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/plot"
	"go.trai.ch/sho/internal/ui/style"
)

func TestCanvas_Render(t *testing.T) {
	c := newCanvas(5, 3, plot.Limits{Min: 0, Max: 4}, plot.Limits{Min: 0, Max: 2})

	c.plot(domain.Point{X: 0, Y: 2}, 0, false)
	c.plot(domain.Point{X: 4, Y: 0}, 0, false)
	c.plot(domain.Point{X: 4, Y: 0}, 0, false)
	c.plot(domain.Point{X: 2, Y: 1}, 1, true)
	c.plot(domain.Point{X: 9, Y: 9}, 0, false)
	c.guideX(1)

	lines := strings.Split(c.render(0, 0, false), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, style.AxisVertical+style.PointSingle+style.GuideGlyph+"   ", lines[0])
	assert.Equal(t, style.AxisVertical+" "+style.GuideGlyph+style.PointBest+"  ", lines[1])
	assert.Equal(t, style.AxisVertical+" "+style.GuideGlyph+"  "+style.PointFew, lines[2])
	assert.Equal(t, style.AxisCorner+strings.Repeat(style.AxisBottom, 5), lines[3])
}

func TestCanvas_CursorOnEmptyCell(t *testing.T) {
	c := newCanvas(3, 2, plot.Limits{Min: 0, Max: 2}, plot.Limits{Min: 0, Max: 1})
	c.guideY(1)

	lines := strings.Split(c.render(1, 0, true), "\n")
	assert.Equal(t, style.AxisVertical+style.GuideGlyphH+style.PointCursor+style.GuideGlyphH, lines[0])
}

func TestCanvas_Locate(t *testing.T) {
	c := newCanvas(11, 6, plot.Limits{Min: 0, Max: 10}, plot.Limits{Min: 0, Max: 5})

	col, row, ok := c.locate(10, 5)
	require.True(t, ok)
	assert.Equal(t, 10, col)
	assert.Equal(t, 0, row, "the top row holds the largest y")

	_, _, ok = c.locate(-1, 0)
	assert.False(t, ok)
}
