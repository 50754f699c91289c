package extractor_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/adapters/extractor"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const scoredModel = `ATOM      1  N   MET A   1      27.340  24.430   2.614  1.00  0.00           N
ATOM      2  CA  MET A   1      26.266  25.413   2.842  1.00  0.00           C
# All scores below are weighted scores, not raw scores.
#BEGIN_POSE_ENERGIES_TABLE model
label fa_atr fa_rep total
weights 0.8 0.44 NA
pose -312.5 40.1 -272.4
#END_POSE_ENERGIES_TABLE model
loop_backbone_rmsd 0.734
delta_buried_unsats 3
`

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func TestParse(t *testing.T) {
	metrics, err := extractor.Parse(strings.NewReader(scoredModel))
	require.NoError(t, err)

	assert.Equal(t, domain.Metrics{
		"total_score":         -312.5,
		"loop_rmsd":           0.734,
		"delta_buried_unsats": 3,
	}, metrics)
}

func TestParse_SkipsMalformedLines(t *testing.T) {
	content := strings.Join([]string{
		"total_score",
		"total_score abc",
		"loop_backbone_rmsd nan",
		"total_score -10.5",
		"delta_buried_unsats 2 extra fields",
	}, "\n")

	metrics, err := extractor.Parse(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, domain.Metrics{"total_score": -10.5, "delta_buried_unsats": 2}, metrics)
	_, ok := metrics.Get(domain.MetricLoopRMSD)
	assert.False(t, ok)
}

func TestParse_NoScoreLines(t *testing.T) {
	metrics, err := extractor.Parse(strings.NewReader("ATOM 1\nATOM 2\n"))
	require.NoError(t, err)
	assert.NotNil(t, metrics)
	assert.Empty(t, metrics)
}

func TestParseFile_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.pdb.gz")
	writeGzip(t, path, "total_score -99.0\n")

	metrics, err := extractor.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Metrics{"total_score": -99.0}, metrics)
}

func TestParseFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := extractor.ParseFile(filepath.Join(t.TempDir(), "missing.pdb"))
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrModelParseFailed.Error())
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.pdb.gz")
		require.NoError(t, os.WriteFile(path, []byte("not gzip"), 0o600))

		_, err := extractor.ParseFile(path)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrModelParseFailed.Error())
	})
}

// writeTruncatedGzip writes a compressed model whose score line is followed by
// many atom records, then cuts the end of the stream off.
func writeTruncatedGzip(t *testing.T, path string) {
	t.Helper()
	var content strings.Builder
	content.WriteString("total_score -7.5\n")
	for i := range 2000 {
		fmt.Fprintf(&content, "ATOM  %5d  CA  ALA A%4d    %8.3f%8.3f%8.3f  1.00  0.00           C\n",
			i, i, float64(i)*0.37, float64(i)*1.13, float64(i)*-0.59)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(content.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	data := buf.Bytes()
	require.Greater(t, len(data), 400)
	require.NoError(t, os.WriteFile(path, data[:len(data)-200], 0o600))
}

func TestParseFile_TruncatedGzipKeepsMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.pdb.gz")
	writeTruncatedGzip(t, path)

	metrics, err := extractor.ParseFile(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrModelParseFailed.Error())
	assert.Equal(t, domain.Metrics{"total_score": -7.5}, metrics)
}

func TestPDB_ExtractMetrics_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.pdb.gz")
	writeTruncatedGzip(t, path)

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	results, err := extractor.NewPDB(log).ExtractMetrics(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, domain.Metrics{"total_score": -7.5}, results[0])
}

func TestPDB_ExtractMetrics(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "a.pdb")
	zipped := filepath.Join(dir, "b.pdb.gz")
	missing := filepath.Join(dir, "c.pdb")
	plain := filepath.Join(dir, "d.pdb")

	require.NoError(t, os.WriteFile(good, []byte(scoredModel), 0o600))
	writeGzip(t, zipped, "total_score -1.5\n")
	require.NoError(t, os.WriteFile(plain, []byte("ATOM\n"), 0o600))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	results, err := extractor.NewPDB(log).ExtractMetrics(context.Background(), []string{good, zipped, missing, plain})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.InDelta(t, -312.5, results[0]["total_score"], 1e-9)
	assert.Equal(t, domain.Metrics{"total_score": -1.5}, results[1])
	assert.Nil(t, results[2])
	assert.Equal(t, domain.Metrics{}, results[3])
}

func TestPDB_ExtractMetrics_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ctrl := gomock.NewController(t)
	_, err := extractor.NewPDB(mocks.NewMockLogger(ctrl)).ExtractMetrics(ctx, []string{"/nowhere.pdb"})
	require.ErrorIs(t, err, context.Canceled)
}
