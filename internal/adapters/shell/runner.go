// Package shell launches capability scripts, viewers and extractor commands.
package shell

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.ScriptRunner  = (*Runner)(nil)
	_ ports.CommandRunner = (*Runner)(nil)
)

// Runner implements ports.ScriptRunner and ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner. Standard error of captured commands is
// forwarded to logger line by line.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Launch starts executable with modelPath as its only argument and returns
// once the process is running. The process is not tied to ctx, so it keeps
// running if the caller goes away, and its output is discarded.
func (r *Runner) Launch(ctx context.Context, executable, modelPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	resolved, err := resolveExecutable(executable)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCapabilityFailed.Error()), "executable", executable)
	}

	//nolint:gosec,noctx // user provided capability, deliberately detached from ctx
	cmd := exec.Command(resolved, modelPath)
	cmd.Dir = filepath.Dir(modelPath)

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCapabilityFailed.Error()), "executable", executable)
	}

	// Reap the process; its exit status is not interpreted.
	go func() { _ = cmd.Wait() }()

	return nil
}

// Output runs argv to completion, writing its standard output to stdout.
func (r *Runner) Output(ctx context.Context, argv []string, stdout io.Writer) error {
	if len(argv) == 0 {
		return nil
	}

	name := argv[0]
	executable := name
	if lp, err := exec.LookPath(name); err == nil {
		executable = lp
	}

	cmd := exec.CommandContext(ctx, executable, argv[1:]...) //nolint:gosec // user configured command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}

	stderrLog := &logWriter{logger: r.logger}
	defer func() { _ = stderrLog.Close() }()

	cmd.Stdout = stdout
	cmd.Stderr = stderrLog

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// resolveExecutable returns the path to run for executable. Paths are
// checked for the executable bit; bare names are searched on PATH.
func resolveExecutable(executable string) (string, error) {
	if filepath.Base(executable) == executable {
		return exec.LookPath(executable)
	}
	if err := findExecutable(executable); err != nil {
		return "", err
	}
	return executable, nil
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	m := d.Mode()
	if m.IsDir() {
		return zerr.With(fs.ErrInvalid, "reason", "is a directory")
	}
	if m&0o111 == 0 {
		return domain.ErrCapabilityNotExecutable
	}
	return nil
}
