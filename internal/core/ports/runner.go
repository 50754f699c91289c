package ports

import (
	"context"
	"io"
)

// ScriptRunner launches external programs on a model.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ScriptRunner interface {
	// Launch starts executable with the model path as its only argument and
	// returns once the process has started. Output is discarded and the exit
	// status is not interpreted.
	Launch(ctx context.Context, executable, modelPath string) error
}

// CommandRunner runs a command to completion and captures its standard output.
type CommandRunner interface {
	// Output runs argv and writes its standard output to stdout.
	Output(ctx context.Context, argv []string, stdout io.Writer) error
}
