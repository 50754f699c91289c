package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sho/internal/ui/style"
)

var (
	listStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(style.Slate).
			MarginRight(1).
			PaddingRight(1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Iris).
			Foreground(style.White)

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Teal).
			Foreground(style.Ink)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Iris).
			Bold(true)

	pendingStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	statusErrorStyle = lipgloss.NewStyle().
				Foreground(style.Red).
				Bold(true)

	bestStyle = lipgloss.NewStyle().
			Foreground(style.Red).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(style.White).
			Background(style.Iris)

	guideStyle = lipgloss.NewStyle().
			Foreground(style.Slate)
)

// seriesStyles colour the designs on the plot in selection order.
var seriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(style.Iris),
	lipgloss.NewStyle().Foreground(style.Teal),
	lipgloss.NewStyle().Foreground(style.Yellow),
	lipgloss.NewStyle().Foreground(style.Green),
}

func seriesStyle(i int) lipgloss.Style {
	return seriesStyles[i%len(seriesStyles)]
}
