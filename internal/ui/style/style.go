// Package style provides the colors and glyphs shared by the log handler,
// the funnel plot and the design browser.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	White  = lipgloss.Color("#FFFFFF")
	Ink    = lipgloss.Color("#0B0F19")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Teal   = lipgloss.Color("#14B8A6")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
	Star    = "★"
	Cursor  = "▸"
)

// Plot glyphs, ordered from a single model to a crowded cell.
const (
	PointSingle  = "·"
	PointFew     = "∘"
	PointMany    = "●"
	PointBest    = "◆"
	PointCursor  = "+"
	GuideGlyph   = "┊"
	GuideGlyphH  = "┈"
	AxisVertical = "│"
	AxisBottom   = "─"
	AxisCorner   = "└"
)

// Density returns the glyph for a plot cell holding n points.
func Density(n int) string {
	switch {
	case n <= 0:
		return " "
	case n == 1:
		return PointSingle
	case n < 4:
		return PointFew
	default:
		return PointMany
	}
}
