package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New()
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("loaded 3 designs (412 models)") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("design has no readable models") },
			goldenName: "warn_basic",
		},
		{
			name:       "warn multiline",
			log:        func(l *logger.Logger) { l.Warn("line1\nline2") },
			goldenName: "warn_multiline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Chain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.Wrap(errors.New("permission denied"), "failed to write notes")
	lg.Error(err)

	g := goldie.New(t)
	g.Assert(t, "error_chain", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Warn("cache fell back to memory")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "cache fell back to memory", record["msg"])

	buf.Reset()
	lg.Error(errors.New("boom"))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "operation failed", record["msg"])
	assert.Equal(t, "boom", record["error"])
}

func TestLogger_SetOutput_KeepsMode(t *testing.T) {
	lg, first := newTestLogger(t)
	lg.SetJSON(true)

	second := &bytes.Buffer{}
	lg.SetOutput(second)
	lg.Info("redirected")

	assert.Empty(t, first.String())
	assert.Contains(t, second.String(), `"msg":"redirected"`)
}

func TestCollectErrorChain(t *testing.T) {
	inner := errors.New("no such file")
	err := zerr.Wrap(zerr.Wrap(inner, "failed to read design directory"), "failed to load designs")

	assert.Equal(t, []string{
		"failed to load designs",
		"failed to read design directory",
		"no such file",
	}, logger.CollectErrorChain(err))

	assert.Equal(t, []string{"plain"}, logger.CollectErrorChain(errors.New("plain")))

	tagged := zerr.With(errors.New("exit status 3"), "exit_code", 3)
	assert.Equal(t, []string{"exit status 3"}, logger.CollectErrorChain(tagged))
}

func TestFormatErrorChain(t *testing.T) {
	got := logger.FormatErrorChain([]string{"outer\ndetail", "inner"})
	assert.Equal(t, "Error: outer\n       detail\n\n  Caused by:\n    → inner", got)

	assert.Equal(t, "Error: only", logger.FormatErrorChain([]string{"only"}))
}
