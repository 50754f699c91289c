package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/selection"
)

func design(dir, notes string) *domain.Design {
	d := domain.NewDesign(dir)
	d.Notes = notes
	return d
}

func newEngine() *selection.Engine {
	e := selection.New()
	e.SetDesigns([]*domain.Design{
		design("/designs/c", "loop is floppy"),
		design("/designs/a", "This is a Good candidate"),
		design("/designs/b", ""),
	})
	return e
}

func TestEngine_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	e := newEngine()

	e.SetSearch("good")
	assert.Equal(t, []string{"/designs/a"}, e.Filtered())

	e.SetSearch("GOOD cand")
	assert.Equal(t, []string{"/designs/a"}, e.Filtered())

	e.SetSearch("")
	assert.Equal(t, []string{"/designs/a", "/designs/b", "/designs/c"}, e.Filtered())

	e.SetSearch("nothing matches")
	assert.Empty(t, e.Filtered())
}

func TestEngine_FilterKeepsSelections(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.ToggleSelection("/designs/c"))

	e.SetSearch("good")
	assert.Equal(t, []string{"/designs/c"}, e.Selected())
}

func TestEngine_ToggleSelectionKeepsOrder(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.ToggleSelection("/designs/c"))
	require.NoError(t, e.ToggleSelection("/designs/a"))
	assert.Equal(t, []string{"/designs/c", "/designs/a"}, e.Selected())

	require.NoError(t, e.ToggleSelection("/designs/c"))
	assert.Equal(t, []string{"/designs/a"}, e.Selected())
	assert.False(t, e.IsSelected("/designs/c"))

	err := e.ToggleSelection("/designs/zzz")
	assert.ErrorContains(t, err, domain.ErrDesignNotFound.Error())
}

func TestEngine_NextOnSingleFilteredDesign(t *testing.T) {
	for _, start := range []string{"", "/designs/a", "/designs/b", "/designs/c"} {
		t.Run("start="+start, func(t *testing.T) {
			e := newEngine()
			if start != "" {
				require.NoError(t, e.ToggleSelection(start))
			}
			e.SetSearch("good")

			e.SelectNext()
			assert.Equal(t, "/designs/a", e.Cursor())
			e.SelectNext()
			assert.Equal(t, "/designs/a", e.Cursor())
			e.SelectPrevious()
			assert.Equal(t, "/designs/a", e.Cursor())
			assert.True(t, e.IsSelected("/designs/a"))
		})
	}
}

func TestEngine_NavigationClampsAndReplacesVisibleSelection(t *testing.T) {
	e := newEngine()

	e.SelectNext()
	assert.Equal(t, []string{"/designs/a"}, e.Selected())

	e.SelectNext()
	e.SelectNext()
	assert.Equal(t, []string{"/designs/c"}, e.Selected())

	e.SelectNext()
	assert.Equal(t, "/designs/c", e.Cursor(), "no wrap at the end")

	e.SelectPrevious()
	e.SelectPrevious()
	e.SelectPrevious()
	assert.Equal(t, []string{"/designs/a"}, e.Selected(), "no wrap at the start")
}

func TestEngine_NavigationKeepsHiddenSelections(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.ToggleSelection("/designs/c"))

	e.SetSearch("good")
	e.SelectNext()

	assert.Equal(t, []string{"/designs/c", "/designs/a"}, e.Selected())
}

func TestEngine_PreviousWithoutAnchorLandsOnLast(t *testing.T) {
	e := newEngine()
	e.SelectPrevious()
	assert.Equal(t, "/designs/c", e.Cursor())
}

func TestEngine_NavigationOnEmptyListIsNoop(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.ToggleSelection("/designs/b"))
	e.SetSearch("nothing matches")

	before := e.State()
	e.SelectNext()
	e.SelectPrevious()
	assert.Equal(t, before, e.State())
}

func TestEngine_SetDesignsDropsVanishedSelections(t *testing.T) {
	e := newEngine()
	require.NoError(t, e.ToggleSelection("/designs/a"))
	require.NoError(t, e.ToggleSelection("/designs/b"))

	e.SetDesigns([]*domain.Design{design("/designs/b", "")})
	assert.Equal(t, []string{"/designs/b"}, e.Selected())
	assert.Equal(t, "/designs/b", e.Cursor())
}

func TestEngine_SetNotesChangesMatching(t *testing.T) {
	e := newEngine()
	e.SetSearch("keeper")
	assert.Empty(t, e.Filtered())

	e.SetNotes("/designs/b", "a keeper")
	assert.Equal(t, []string{"/designs/b"}, e.Filtered())
}

func TestEngine_DefaultAxes(t *testing.T) {
	e := selection.New()
	e.SetDefinedMetrics([]string{domain.MetricBuriedUnsats, domain.MetricLoopRMSD, domain.MetricTotalScore})

	x, y := e.Axes()
	assert.Equal(t, domain.MetricLoopRMSD, x)
	assert.Equal(t, domain.MetricTotalScore, y)
}

func TestEngine_SetAxes(t *testing.T) {
	e := selection.New()
	e.SetDefinedMetrics([]string{domain.MetricBuriedUnsats, domain.MetricLoopRMSD, domain.MetricTotalScore})

	require.NoError(t, e.SetAxes(domain.MetricBuriedUnsats, ""))
	x, y := e.Axes()
	assert.Equal(t, domain.MetricBuriedUnsats, x)
	assert.Equal(t, domain.MetricTotalScore, y)

	err := e.SetAxes("sasa", "")
	assert.ErrorContains(t, err, domain.ErrUnknownMetric.Error())
}

func TestEngine_CycleSkipsOtherAxis(t *testing.T) {
	e := selection.New()
	e.SetDefinedMetrics([]string{"a", "b", "c"})
	require.NoError(t, e.SetAxes("a", "b"))

	e.CycleX()
	x, _ := e.Axes()
	assert.Equal(t, "c", x)

	e.CycleX()
	x, _ = e.Axes()
	assert.Equal(t, "a", x)

	e.CycleY()
	_, y := e.Axes()
	assert.Equal(t, "c", y)

	e.CycleY()
	_, y = e.Axes()
	assert.Equal(t, "b", y, "a is on x and is skipped")
}

func TestEngine_CycleWithoutMetrics(t *testing.T) {
	e := selection.New()
	e.CycleX()
	e.CycleY()
	x, y := e.Axes()
	assert.Empty(t, x)
	assert.Empty(t, y)
}

func TestEngine_AxesFallBackWhenMetricDisappears(t *testing.T) {
	e := selection.New()
	e.SetDefinedMetrics([]string{"a", "b", "c"})
	require.NoError(t, e.SetAxes("c", "a"))

	e.SetDefinedMetrics([]string{"a", "b"})
	x, y := e.Axes()
	assert.Equal(t, "b", x)
	assert.Equal(t, "a", y)
}
