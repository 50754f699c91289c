package tui

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sho/internal/adapters/telemetry"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/ui/style"
)

const keyHints = "j/k move  space select  / search  n notes  s/S export  x/y axes  p rank  tab model  enter actions  q quit"

// View renders the UI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var right string
	switch m.mode {
	case modeNotes:
		right = m.notesPane()
	case modeMenu:
		right = m.menuPane()
	case modeBrowse, modeSearch:
		right = m.plotPane()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.designList(), right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine())
}

func (m *Model) designList() string {
	var s strings.Builder
	width := m.listWidth()

	s.WriteString(titleStyle.Render("DESIGNS") + "\n")
	switch {
	case m.mode == modeSearch:
		s.WriteString(m.search.View() + "\n")
	case m.engine.Search() != "":
		s.WriteString(mutedStyle.Render(truncate("/"+m.engine.Search(), width)) + "\n")
	default:
		s.WriteString("\n")
	}

	filtered := m.engine.Filtered()
	height := max(m.height-statusLines-2, 1)
	start := 0
	if i := slices.Index(filtered, m.engine.Cursor()); i >= height {
		start = i - height + 1
	}
	end := min(start+height, len(filtered))

	for _, id := range filtered[start:end] {
		s.WriteString(m.designRow(id, width) + "\n")
	}
	if len(filtered) == 0 {
		s.WriteString(mutedStyle.Render("no matching designs") + "\n")
	}

	return listStyle.Width(width).Render(s.String())
}

func (m *Model) designRow(id string, width int) string {
	d, ok := m.opts.Aggregator.Design(id)
	if !ok {
		return ""
	}

	cursor := "  "
	if id == m.engine.Cursor() {
		cursor = selectedStyle.Render(style.Cursor) + " "
	}

	mark := style.Circle
	if m.engine.IsSelected(id) {
		mark = style.Dot
	}

	name := truncate(d.Name(), width-6)
	switch {
	case d.State == domain.StatePending:
		return cursor + pendingStyle.Render(mark+" "+name) + " " + m.spinner.View()
	case d.State == domain.StateFailed:
		return cursor + failedStyle.Render(style.Cross+" "+name)
	case d.Empty():
		return cursor + mutedStyle.Render(mark+" "+name+" (empty)")
	case m.engine.IsSelected(id):
		return cursor + seriesStyle(slices.Index(m.engine.Selected(), id)).Render(mark) + " " + selectedStyle.Render(name)
	default:
		return cursor + mark + " " + name
	}
}

func (m *Model) plotPane() string {
	x, y := m.engine.Axes()
	if x == "" || y == "" {
		return mutedStyle.Render("waiting for metrics...")
	}
	xSpec := m.opts.Metrics.Lookup(x)
	ySpec := m.opts.Metrics.Lookup(y)

	c, ok := m.canvas()
	if !ok {
		return titleStyle.Render(ySpec.Title+" vs "+xSpec.Title) + "\n" +
			mutedStyle.Render("no models with both metrics")
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render(ySpec.Title+" vs "+xSpec.Title) + " " +
		mutedStyle.Render(formatRange(c.viewport.Y.Min, c.viewport.Y.Max)) + "\n")
	s.WriteString(c.render(m.cursorCol, m.cursorRow, true) + "\n")

	lo, hi := formatValue(c.viewport.X.Min), formatValue(c.viewport.X.Max)
	gap := max(c.cols+1-len(lo)-len(hi), 1)
	s.WriteString(mutedStyle.Render(lo+strings.Repeat(" ", gap)+hi) + "\n")

	if len(m.engine.Selected()) == 0 {
		s.WriteString(mutedStyle.Render("select a design with space"))
	} else if p, picked := m.picked(); picked {
		s.WriteString(fmt.Sprintf("%s %s  %s=%s  %s=%s",
			selectedStyle.Render(style.Cursor),
			baseName(p.ModelID),
			x, formatValue(p.X),
			y, formatValue(p.Y),
		))
	}
	return s.String()
}

func (m *Model) notesPane() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("NOTES "+baseName(m.notesFor)) + "\n")
	s.WriteString(m.notes.View() + "\n")
	s.WriteString(mutedStyle.Render("ctrl+s save  esc cancel"))
	return s.String()
}

func (m *Model) menuPane() string {
	var s strings.Builder
	s.WriteString(menuTitleStyle.Render("ACTIONS "+baseName(m.menuModel)) + "\n")
	for i, item := range m.menu {
		if i == m.menuIdx {
			s.WriteString(selectedStyle.Render(style.Cursor+" "+item.Name) + "\n")
			continue
		}
		s.WriteString("  " + item.Name + "\n")
	}
	s.WriteString(mutedStyle.Render("enter run  esc close"))
	return s.String()
}

func (m *Model) statusLine() string {
	var parts []string
	if pending := m.opts.Loader.Pending(); pending > 0 {
		parts = append(parts, m.spinner.View()+fmt.Sprintf(" loading %d", pending))
	}
	if m.hasSpan {
		parts = append(parts, mutedStyle.Render(formatSpan(m.span)))
	}

	left := mutedStyle.Render(keyHints)
	if m.status != "" {
		left = m.status
		if m.statusErr {
			left = statusErrorStyle.Render(style.Cross + " " + m.status)
		}
	}
	return strings.Join(append([]string{left}, parts...), "  ")
}

func formatSpan(s telemetry.SpanSummary) string {
	var b strings.Builder
	b.WriteString(s.Name)
	for _, k := range slices.Sorted(maps.Keys(s.Counts)) {
		fmt.Fprintf(&b, " %s=%d", k, s.Counts[k])
	}
	b.WriteString(" " + s.Duration.Round(time.Millisecond).String())
	if s.Failed {
		b.WriteString(" " + style.Cross)
	}
	return b.String()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func formatRange(lo, hi float64) string {
	return formatValue(lo) + ".." + formatValue(hi)
}

func baseName(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
