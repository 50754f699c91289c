package plot

import (
	"math"
	"slices"

	"go.trai.ch/sho/internal/core/domain"
)

const (
	// padFraction is added to both ends of an axis, relative to its span.
	padFraction = 0.05
	// percentileCut is the upper bound of the percentile85 policy.
	percentileCut = 0.85
	// maxFraction is the lower bound of the fraction_of_max policy, relative to the maximum.
	maxFraction = 0.025
)

// Limits is a closed axis range.
type Limits struct {
	Min float64
	Max float64
}

// Span returns Max - Min.
func (l Limits) Span() float64 {
	return l.Max - l.Min
}

// Contains reports whether v lies within the limits.
func (l Limits) Contains(v float64) bool {
	return v >= l.Min && v <= l.Max
}

// AxisLimits derives padded axis limits for values under the metric's limit policy.
// The second result is false when there are no values.
func AxisLimits(spec domain.MetricSpec, values []float64) (Limits, bool) {
	if len(values) == 0 {
		return Limits{}, false
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]

	switch spec.Limits {
	case domain.LimitsPercentile85:
		hi = percentile(sorted, percentileCut)
	case domain.LimitsFractionOfMax:
		lo = maxFraction * hi
	case domain.LimitsRange, "":
	}

	return pad(Limits{Min: lo, Max: hi}), true
}

// percentile interpolates linearly between the closest ranks of sorted.
func percentile(sorted []float64, q float64) float64 {
	rank := q * float64(len(sorted)-1)
	i := int(math.Floor(rank))
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(i)
	return sorted[i] + frac*(sorted[i+1]-sorted[i])
}

func pad(l Limits) Limits {
	if l.Max < l.Min {
		l.Min, l.Max = l.Max, l.Min
	}
	margin := padFraction * l.Span()
	if margin == 0 {
		// A single value still gets a visible range around it.
		margin = math.Max(math.Abs(l.Min)*padFraction, 1)
	}
	return Limits{Min: l.Min - margin, Max: l.Max + margin}
}

// Values collects a metric over every model of the ready designs.
func Values(designs []*domain.Design, metric string) []float64 {
	var values []float64
	for _, d := range designs {
		if d.State != domain.StateReady {
			continue
		}
		for _, m := range d.Models {
			if v, ok := m.Metrics.Get(metric); ok {
				values = append(values, v)
			}
		}
	}
	return values
}

// Frame returns the x and y limits shared by every plot of the loaded designs.
func Frame(designs []*domain.Design, table domain.MetricTable, x, y string) (xl, yl Limits, ok bool) {
	xl, okX := AxisLimits(table.Lookup(x), Values(designs, x))
	yl, okY := AxisLimits(table.Lookup(y), Values(designs, y))
	return xl, yl, okX && okY
}
