package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sho/internal/adapters/telemetry"
	"go.trai.ch/sho/internal/adapters/watcher"
	"go.trai.ch/sho/internal/core/ports"
)

// Browser runs the design browser as a Bubble Tea program.
type Browser struct {
	program *tea.Program
	model   *Model
}

// NewBrowser creates a browser for model.
func NewBrowser(model *Model, opts ...tea.ProgramOption) *Browser {
	return &Browser{
		program: tea.NewProgram(model, opts...),
		model:   model,
	}
}

// Run blocks until the user quits.
func (b *Browser) Run() error {
	_, err := b.program.Run()
	return err
}

// ObserveSpan forwards a finished span to the status line.
func (b *Browser) ObserveSpan(s telemetry.SpanSummary) {
	b.program.Send(MsgSpan{Summary: s})
}

// NotifyChanged reloads the designs containing the changed paths.
func (b *Browser) NotifyChanged(paths []string) {
	b.program.Send(MsgFilesChanged{Dirs: watcher.AffectedDirs(paths)})
}

// Watch feeds file events from w into the browser, coalescing bursts within
// window. It returns immediately; forwarding stops when w stops.
func (b *Browser) Watch(w ports.Watcher, window time.Duration) {
	d := watcher.NewDebouncer(window, b.NotifyChanged)
	go func() {
		defer d.Stop()
		for ev := range w.Events() {
			d.Add(ev.Path)
		}
	}()
}

// Program returns the underlying tea.Program for testing.
func (b *Browser) Program() *tea.Program {
	return b.program
}
