package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/adapters/shell"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeScript(t *testing.T, path, body string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), mode))
}

func TestRunner_Launch(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	script := filepath.Join(dir, "record_path.sho")
	//nolint:gosec // test script must be executable
	writeScript(t, script, `printf '%s' "$1" > "`+marker+`"; echo noise; echo more >&2`, 0o700)

	model := filepath.Join(dir, "model.pdb")

	ctrl := gomock.NewController(t)
	runner := shell.NewRunner(mocks.NewMockLogger(ctrl))

	require.NoError(t, runner.Launch(context.Background(), script, model))

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(marker)
		return err == nil && string(data) == model
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunner_Launch_Errors(t *testing.T) {
	dir := t.TempDir()
	ctrl := gomock.NewController(t)
	runner := shell.NewRunner(mocks.NewMockLogger(ctrl))

	t.Run("not executable", func(t *testing.T) {
		script := filepath.Join(dir, "plain.sho")
		writeScript(t, script, "exit 0", 0o600)

		err := runner.Launch(context.Background(), script, "/m.pdb")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrCapabilityFailed.Error())
	})

	t.Run("missing", func(t *testing.T) {
		err := runner.Launch(context.Background(), filepath.Join(dir, "missing.sho"), "/m.pdb")
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrCapabilityFailed.Error())
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := runner.Launch(ctx, "sh", "/m.pdb")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunner_Output(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("progress: 1/1")

	runner := shell.NewRunner(log)

	var stdout bytes.Buffer
	err := runner.Output(context.Background(), []string{"sh", "-c", `echo '[{"total_score": 1}]'; echo 'progress: 1/1' >&2`}, &stdout)
	require.NoError(t, err)
	assert.Equal(t, "[{\"total_score\": 1}]\n", stdout.String())
}

func TestRunner_Output_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := shell.NewRunner(mocks.NewMockLogger(ctrl))

	var stdout bytes.Buffer
	err := runner.Output(context.Background(), []string{"sh", "-c", "exit 3"}, &stdout)
	require.Error(t, err)
	assert.ErrorContains(t, err, "command failed")
}

func TestViewers(t *testing.T) {
	viewers := shell.Viewers([]string{"sh", "definitely-not-a-molecule-viewer"})
	require.Len(t, viewers, 1)
	assert.Equal(t, "Open in sh", viewers[0].Name)

	_, err := shell.LookupViewer("definitely-not-a-molecule-viewer")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrViewerNotFound.Error())
}
