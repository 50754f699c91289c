package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/cmd/sho/commands"
	"go.trai.ch/sho/internal/app"
	"go.trai.ch/sho/internal/build"
	"go.trai.ch/sho/internal/core/domain"
)

type mockApp struct {
	showFunc          func(ctx context.Context, dirs []string, opts app.Options) error
	exportPathsFunc   func(ctx context.Context, dirs []string, opts app.Options, exp app.ExportOptions) error
	exportFunnelsFunc func(ctx context.Context, dirs []string, opts app.Options, exp app.ExportOptions) error
	scriptsFunc       func(ctx context.Context, w io.Writer, modelPath string) error
	cachePruneFunc    func(ctx context.Context, opts app.Options) error
	cacheCleanFunc    func(ctx context.Context, opts app.Options) error
}

func (m *mockApp) Show(ctx context.Context, dirs []string, opts app.Options) error {
	if m.showFunc != nil {
		return m.showFunc(ctx, dirs, opts)
	}
	return nil
}

func (m *mockApp) ExportPaths(ctx context.Context, dirs []string, opts app.Options, exp app.ExportOptions) error {
	if m.exportPathsFunc != nil {
		return m.exportPathsFunc(ctx, dirs, opts, exp)
	}
	return nil
}

func (m *mockApp) ExportFunnels(ctx context.Context, dirs []string, opts app.Options, exp app.ExportOptions) error {
	if m.exportFunnelsFunc != nil {
		return m.exportFunnelsFunc(ctx, dirs, opts, exp)
	}
	return nil
}

func (m *mockApp) Scripts(ctx context.Context, w io.Writer, modelPath string) error {
	if m.scriptsFunc != nil {
		return m.scriptsFunc(ctx, w, modelPath)
	}
	return nil
}

func (m *mockApp) CachePrune(ctx context.Context, opts app.Options) error {
	if m.cachePruneFunc != nil {
		return m.cachePruneFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) CacheClean(ctx context.Context, opts app.Options) error {
	if m.cacheCleanFunc != nil {
		return m.cacheCleanFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Show(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.Options
		var capturedDirs []string

		mock := &mockApp{
			showFunc: func(_ context.Context, dirs []string, opts app.Options) error {
				captured = opts
				capturedDirs = dirs
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"designs/a", "designs/b",
			"-c", "custom.yaml", "-f", "-q",
			"-x", "loop_rmsd", "-y", "total_score",
			"--primary", "delta_buried_unsats",
			"--cache-backend", "badger", "--cache-path", "/tmp/badger",
			"--json-log", "--trace-file", "trace.json",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"designs/a", "designs/b"}, capturedDirs)
		assert.Equal(t, app.Options{
			ConfigPath:   "custom.yaml",
			Force:        true,
			Quiet:        true,
			XMetric:      "loop_rmsd",
			YMetric:      "total_score",
			Primary:      "delta_buried_unsats",
			CacheBackend: "badger",
			CachePath:    "/tmp/badger",
			JSONLog:      true,
			TraceFile:    "trace.json",
		}, captured)
	})

	t.Run("returns error on show failure", func(t *testing.T) {
		mock := &mockApp{
			showFunc: func(context.Context, []string, app.Options) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"designs/a"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no directories provided", func(t *testing.T) {
		mock := &mockApp{
			showFunc: func(context.Context, []string, app.Options) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "Usage:")
	})
}

func TestCommands_Export(t *testing.T) {
	t.Run("paths defaults", func(t *testing.T) {
		var captured app.ExportOptions
		var capturedDirs []string
		mock := &mockApp{
			exportPathsFunc: func(_ context.Context, dirs []string, _ app.Options, exp app.ExportOptions) error {
				captured = exp
				capturedDirs = dirs
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"export", "paths", "designs/a"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, []string{"designs/a"}, capturedDirs)
		assert.Equal(t, app.ExportOptions{Output: domain.DefaultPathsExport}, captured)
	})

	t.Run("funnels with search and global flags", func(t *testing.T) {
		var captured app.ExportOptions
		var capturedOpts app.Options
		mock := &mockApp{
			exportFunnelsFunc: func(_ context.Context, _ []string, opts app.Options, exp app.ExportOptions) error {
				captured = exp
				capturedOpts = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"export", "funnels", "designs/a", "-o", "out.html", "--search", "helix", "-x", "loop_rmsd"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.ExportOptions{Output: "out.html", Search: "helix"}, captured)
		assert.Equal(t, "loop_rmsd", capturedOpts.XMetric)
	})

	t.Run("requires a directory", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"export", "paths"})

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Scripts(t *testing.T) {
	mock := &mockApp{
		scriptsFunc: func(_ context.Context, w io.Writer, modelPath string) error {
			_, err := io.WriteString(w, "Relax\t/designs/relax.sho for "+modelPath+"\n")
			return err
		},
	}

	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"scripts", "/designs/a/a_0001.pdb"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "Relax\t/designs/relax.sho for /designs/a/a_0001.pdb\n", buf.String())
}

func TestCommands_Cache(t *testing.T) {
	var pruned, cleaned bool
	var capturedOpts app.Options
	mock := &mockApp{
		cachePruneFunc: func(_ context.Context, opts app.Options) error {
			pruned = true
			capturedOpts = opts
			return nil
		},
		cacheCleanFunc: func(context.Context, app.Options) error {
			cleaned = true
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"cache", "prune", "--cache-backend", "json"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, pruned)
	assert.Equal(t, "json", capturedOpts.CacheBackend)

	cli = commands.New(mock)
	cli.SetArgs([]string{"cache", "clean"})
	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, cleaned)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "sho version "+build.Version)
}
