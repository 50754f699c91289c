package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/adapters/watcher"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/sho/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsNewModel(t *testing.T) {
	dir := t.TempDir()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	require.NoError(t, w.Start(t.Context(), []string{dir}))

	model := filepath.Join(dir, "model_9.pdb")
	require.NoError(t, os.WriteFile(model, []byte("total_score -10\n"), domain.FilePerm))

	got := make(chan ports.WatchEvent, 1)
	go func() {
		for ev := range w.Events() {
			if ev.Path == model {
				got <- ev
				return
			}
		}
	}()

	select {
	case ev := <-got:
		assert.Contains(t, []ports.WatchOp{ports.OpCreate, ports.OpWrite}, ev.Operation)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the new model")
	}
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	err = w.Start(t.Context(), []string{filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWatcherFailed.Error())
}

func TestWatcher_StopTwice(t *testing.T) {
	w, err := watcher.NewWatcher(nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestConvertEvent(t *testing.T) {
	tests := []struct {
		op     fsnotify.Op
		want   ports.WatchOp
		wantOK bool
	}{
		{op: fsnotify.Create, want: ports.OpCreate, wantOK: true},
		{op: fsnotify.Write, want: ports.OpWrite, wantOK: true},
		{op: fsnotify.Create | fsnotify.Write, want: ports.OpWrite, wantOK: true},
		{op: fsnotify.Remove, want: ports.OpRemove, wantOK: true},
		{op: fsnotify.Rename, want: ports.OpRename, wantOK: true},
		{op: fsnotify.Chmod, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			ev, ok := watcher.ConvertEvent(fsnotify.Event{Name: "/d/m.pdb", Op: tt.op})
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, ev.Operation)
				assert.Equal(t, "/d/m.pdb", ev.Path)
			}
		})
	}
}

func TestAffectedDirs(t *testing.T) {
	got := watcher.AffectedDirs([]string{
		"/designs/b/model_1.pdb",
		"/designs/a/model_2.pdb",
		"/designs/b/notes.txt",
	})
	assert.Equal(t, []string{"/designs/a", "/designs/b"}, got)
	assert.Empty(t, watcher.AffectedDirs(nil))
}
