package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/adapters/export"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func design(dir string, models ...domain.Model) *domain.Design {
	d := domain.NewDesign(dir)
	d.SetModels(models, domain.MetricTotalScore)
	d.State = domain.StateReady
	return d
}

func model(path string, score, rmsd float64) domain.Model {
	return domain.Model{
		Path:    path,
		Metrics: domain.Metrics{domain.MetricTotalScore: score, domain.MetricLoopRMSD: rmsd},
	}
}

func fixtures() (d1, d2, empty *domain.Design) {
	d1 = design("/designs/alpha",
		model("/designs/alpha/a_0001.pdb", -210.5, 0.8),
		model("/designs/alpha/a_0002.pdb", -230.1, 0.6),
		model("/designs/alpha/a_0003.pdb", -190.0, 2.4),
	)
	d2 = design("/designs/beta",
		model("/designs/beta/b_0001.pdb.gz", -180.2, 1.9),
		model("/designs/beta/b_0002.pdb.gz", -185.7, 1.1),
	)
	empty = design("/designs/gamma")
	return d1, d2, empty
}

func TestExporter_WritePaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(domain.ErrNoBestModel.Error() + ": /designs/gamma")

	d1, d2, empty := fixtures()

	var buf bytes.Buffer
	n, err := export.NewExporter(log).WritePaths(&buf, []*domain.Design{d2, empty, d1})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	g := goldie.New(t)
	g.Assert(t, "paths", buf.Bytes())
}

func TestExporter_SavePaths(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	d1, _, _ := fixtures()
	path := filepath.Join(t.TempDir(), domain.DefaultPathsExport)

	n, err := export.NewExporter(log).SavePaths(path, []*domain.Design{d1})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/designs/alpha/a_0002.pdb\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must not be left behind")
}

func TestExporter_SavePaths_MissingDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	d1, _, _ := fixtures()
	path := filepath.Join(t.TempDir(), "missing", domain.DefaultPathsExport)

	_, err := export.NewExporter(log).SavePaths(path, []*domain.Design{d1})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrExportWriteFailed.Error())
}

func TestExporter_WriteFunnels(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("no plottable models: /designs/gamma")

	d1, d2, empty := fixtures()
	d1.Notes = "Helix <capped> & stable"

	doc := export.Document{
		Designs: []*domain.Design{d1, d2, empty},
		Loaded:  []*domain.Design{d1, d2, empty},
		XMetric: domain.MetricLoopRMSD,
		YMetric: domain.MetricTotalScore,
		Metrics: domain.DefaultMetricTable(),
	}

	var buf bytes.Buffer
	require.NoError(t, export.NewExporter(log).WriteFunnels(&buf, doc))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Equal(t, 3, strings.Count(out, `<section class="page">`))
	assert.Equal(t, 2, strings.Count(out, "<svg"))
	assert.Contains(t, out, "page-break-after: always")
	assert.Contains(t, out, "<h1>/designs/alpha</h1>")
	assert.Contains(t, out, "Helix &lt;capped&gt; &amp; stable")
	assert.Contains(t, out, "Total Score (REU) vs Loop RMSD (Å)")
	assert.Contains(t, out, "No models with both metrics.")

	// Pages follow the given order.
	assert.Less(t, strings.Index(out, "/designs/alpha"), strings.Index(out, "/designs/beta"))
}

func TestExporter_SaveFunnels(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	d1, _, _ := fixtures()
	path := filepath.Join(t.TempDir(), domain.DefaultFunnelsExport)

	err := export.NewExporter(log).SaveFunnels(path, export.Document{
		Designs: []*domain.Design{d1},
		Loaded:  []*domain.Design{d1},
		XMetric: domain.MetricLoopRMSD,
		YMetric: domain.MetricTotalScore,
		Metrics: domain.DefaultMetricTable(),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}
