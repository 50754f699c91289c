package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/core/domain"
)

func TestDesign_BestModelTieBrokenByPath(t *testing.T) {
	d := domain.NewDesign("/designs/d1")
	d.SetModels([]domain.Model{
		{Path: "/designs/d1/C.pdb", Metrics: domain.Metrics{"total_score": 3.5}},
		{Path: "/designs/d1/A.pdb", Metrics: domain.Metrics{"total_score": 7.0}},
		{Path: "/designs/d1/B.pdb", Metrics: domain.Metrics{"total_score": 3.5}},
	}, domain.MetricTotalScore)

	best, ok := d.Best()
	require.True(t, ok)
	assert.Equal(t, "/designs/d1/B.pdb", best.Path)
	assert.Equal(t, "/designs/d1/A.pdb", d.Models[0].Path)
}

func TestDesign_BestModelUndefined(t *testing.T) {
	t.Run("no models", func(t *testing.T) {
		d := domain.NewDesign("/designs/empty")
		d.SetModels(nil, domain.MetricTotalScore)

		_, ok := d.Best()
		assert.False(t, ok)
		assert.True(t, d.Empty())
	})

	t.Run("no model carries the primary metric", func(t *testing.T) {
		d := domain.NewDesign("/designs/d2")
		d.SetModels([]domain.Model{
			{Path: "/designs/d2/a.pdb", Metrics: domain.Metrics{"loop_rmsd": 0.4}},
			{Path: "/designs/d2/b.pdb", Metrics: domain.Metrics{"total_score": math.NaN()}},
		}, domain.MetricTotalScore)

		_, ok := d.Best()
		assert.False(t, ok)
	})
}

func TestDesign_Rerank(t *testing.T) {
	d := domain.NewDesign("/designs/d3")
	d.SetModels([]domain.Model{
		{Path: "/designs/d3/a.pdb", Metrics: domain.Metrics{"total_score": -10, "loop_rmsd": 2.0}},
		{Path: "/designs/d3/b.pdb", Metrics: domain.Metrics{"total_score": -5, "loop_rmsd": 0.5}},
	}, domain.MetricTotalScore)

	best, _ := d.Best()
	assert.Equal(t, "/designs/d3/a.pdb", best.Path)

	d.Rerank(domain.MetricLoopRMSD)
	best, _ = d.Best()
	assert.Equal(t, "/designs/d3/b.pdb", best.Path)
}

func TestDesign_Model(t *testing.T) {
	d := domain.NewDesign("/designs/d4/")
	d.SetModels([]domain.Model{
		{Path: "/designs/d4/b.pdb"},
		{Path: "/designs/d4/a.pdb"},
	}, domain.MetricTotalScore)

	assert.Equal(t, "/designs/d4", d.ID())
	assert.Equal(t, "d4", d.Name())

	m, ok := d.Model("/designs/d4/b.pdb")
	require.True(t, ok)
	assert.Equal(t, "b.pdb", m.Name())

	_, ok = d.Model("/designs/d4/c.pdb")
	assert.False(t, ok)
}

func TestMetrics(t *testing.T) {
	m := domain.Metrics{"a": 1, "b": math.NaN()}

	_, ok := m.Get("b")
	assert.False(t, ok)
	assert.True(t, m.Has("a"))
	assert.False(t, m.Has("a", "c"))

	c := m.Clone()
	c["a"] = 2
	assert.InDelta(t, 1.0, m["a"], 0)
	assert.Equal(t, []string{"a", "b"}, m.Names())
	assert.Nil(t, domain.Metrics(nil).Clone())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"score_contacts.sho", "Score contacts"},
		{"polish.sho", "Polish"},
		{"open_in_PyMOL.sho", "Open in PyMOL"},
		{"_hidden.sho", " hidden"},
		{"ändern.sho", "Ändern"},
		{".sho", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.DisplayName(tt.filename))
		})
	}
}

func TestNewCapabilityScript(t *testing.T) {
	s := domain.NewCapabilityScript("/a/b/score_contacts.sho")
	assert.Equal(t, "Score contacts", s.Name)
	assert.Equal(t, "/a/b", s.Scope)
}

func TestMetricTable_Lookup(t *testing.T) {
	table := domain.DefaultMetricTable()

	spec := table.Lookup(domain.MetricLoopRMSD)
	assert.Equal(t, "Loop RMSD (Å)", spec.Title)
	assert.Equal(t, domain.LimitsFractionOfMax, spec.Limits)
	require.NotNil(t, spec.Guide)
	assert.InDelta(t, 1.0, *spec.Guide, 0)

	spec = table.Lookup("buried_np-SASA")
	assert.Equal(t, "Buried Np Sasa", spec.Title)
	assert.Equal(t, domain.LimitsRange, spec.Limits)
	assert.Nil(t, spec.Guide)
}

func TestDefaultAxes(t *testing.T) {
	tests := []struct {
		name    string
		defined []string
		x, y    string
	}{
		{"known metrics", []string{"delta_buried_unsats", "loop_rmsd", "total_score"}, "loop_rmsd", "total_score"},
		{"unknown metrics", []string{"a", "b", "c"}, "b", "a"},
		{"single metric", []string{"a"}, "a", "a"},
		{"nothing defined", nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := domain.DefaultAxes(tt.defined)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestLimitPolicy_Valid(t *testing.T) {
	assert.True(t, domain.LimitPolicy("").Valid())
	assert.True(t, domain.LimitsPercentile85.Valid())
	assert.False(t, domain.LimitPolicy("log").Valid())
}

func TestCacheEntry_Valid(t *testing.T) {
	var nilEntry *domain.CacheEntry
	assert.False(t, nilEntry.Valid(1))

	e := &domain.CacheEntry{Path: "/m.pdb", ModTime: 42}
	assert.True(t, e.Valid(42))
	assert.False(t, e.Valid(43))
}
