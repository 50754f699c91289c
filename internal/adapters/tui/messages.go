package tui

import (
	"go.trai.ch/sho/internal/adapters/telemetry"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/aggregator"
)

// MsgDesignLoaded carries the result of a background design load.
type MsgDesignLoaded struct {
	Result aggregator.Result
}

// MsgFilesChanged reports design directories whose files changed on disk.
type MsgFilesChanged struct {
	Dirs []string
}

// MsgSpan reports a finished trace span.
type MsgSpan struct {
	Summary telemetry.SpanSummary
}

// MsgScriptLaunched reports the outcome of starting a capability script.
type MsgScriptLaunched struct {
	Script domain.CapabilityScript
	Model  string
	Err    error
}

// MsgNotesSaved reports the outcome of persisting a design's notes.
type MsgNotesSaved struct {
	DesignID string
	Notes    string
	Err      error
}

// MsgExported reports the outcome of writing an export file.
type MsgExported struct {
	// Kind names what was counted, "paths" or "pages".
	Kind  string
	Path  string
	Count int
	Err   error
}

// MsgRepresentativeSet reports the outcome of choosing a design's
// representative model. An empty Model means the choice was reset.
type MsgRepresentativeSet struct {
	DesignID string
	Model    string
	Err      error
}
