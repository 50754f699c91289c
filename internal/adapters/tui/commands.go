package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sho/internal/adapters/export"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/sho/internal/engine/aggregator"
)

// runJobs returns a command per job that loads the design off the update loop.
func runJobs(loader *aggregator.Loader, jobs []*aggregator.Job) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(jobs))
	for _, job := range jobs {
		cmds = append(cmds, func() tea.Msg {
			return MsgDesignLoaded{Result: loader.Run(job)}
		})
	}
	return tea.Batch(cmds...)
}

func launchScript(ctx context.Context, runner ports.ScriptRunner, script domain.CapabilityScript, model string) tea.Cmd {
	return func() tea.Msg {
		err := runner.Launch(ctx, script.Path, model)
		return MsgScriptLaunched{Script: script, Model: model, Err: err}
	}
}

func saveNotes(agg *aggregator.Aggregator, id, notes string) tea.Cmd {
	return func() tea.Msg {
		err := agg.SaveNotes(id, notes)
		return MsgNotesSaved{DesignID: id, Notes: notes, Err: err}
	}
}

func savePaths(exp *export.Exporter, path string, designs []*domain.Design) tea.Cmd {
	return func() tea.Msg {
		n, err := exp.SavePaths(path, designs)
		return MsgExported{Kind: "paths", Path: path, Count: n, Err: err}
	}
}

func saveFunnels(exp *export.Exporter, path string, doc export.Document) tea.Cmd {
	return func() tea.Msg {
		err := exp.SaveFunnels(path, doc)
		return MsgExported{Kind: "pages", Path: path, Count: len(doc.Designs), Err: err}
	}
}

func setRepresentative(agg *aggregator.Aggregator, id, model string) tea.Cmd {
	return func() tea.Msg {
		err := agg.SetRepresentative(id, model)
		return MsgRepresentativeSet{DesignID: id, Model: model, Err: err}
	}
}
