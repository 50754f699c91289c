package domain

import (
	"strings"
	"unicode"
)

// LimitPolicy selects how an axis range is derived from a metric's values.
type LimitPolicy string

const (
	// LimitsRange spans the minimum to the maximum value.
	LimitsRange LimitPolicy = "range"
	// LimitsPercentile85 spans the minimum to the 85th percentile, hiding high outliers.
	LimitsPercentile85 LimitPolicy = "percentile85"
	// LimitsFractionOfMax spans 2.5% of the maximum to the maximum.
	LimitsFractionOfMax LimitPolicy = "fraction_of_max"
)

// Valid reports whether p is a known policy. The empty policy means LimitsRange.
func (p LimitPolicy) Valid() bool {
	switch p {
	case "", LimitsRange, LimitsPercentile85, LimitsFractionOfMax:
		return true
	default:
		return false
	}
}

// MetricSpec describes how a metric is presented on a plot axis.
type MetricSpec struct {
	Name   string
	Title  string
	Limits LimitPolicy
	// Guide is an optional reference line drawn across the plot.
	Guide *float64
}

// MetricTable maps metric names to their presentation.
type MetricTable map[string]MetricSpec

// DefaultMetricTable returns the presentation of the metrics the default extractor knows.
func DefaultMetricTable() MetricTable {
	loopGuide := 1.0
	return MetricTable{
		MetricTotalScore: {
			Name:   MetricTotalScore,
			Title:  "Total Score (REU)",
			Limits: LimitsPercentile85,
		},
		MetricLoopRMSD: {
			Name:   MetricLoopRMSD,
			Title:  "Loop RMSD (Å)",
			Limits: LimitsFractionOfMax,
			Guide:  &loopGuide,
		},
		MetricBuriedUnsats: {
			Name:   MetricBuriedUnsats,
			Title:  "Δ Buried Unsats",
			Limits: LimitsRange,
		},
	}
}

// Lookup returns the presentation settings for a metric, falling back to a generated title
// and the full value range for unknown metrics.
func (t MetricTable) Lookup(name string) MetricSpec {
	if spec, ok := t[name]; ok {
		if spec.Name == "" {
			spec.Name = name
		}
		if spec.Title == "" {
			spec.Title = NaiveTitle(name)
		}
		if spec.Limits == "" {
			spec.Limits = LimitsRange
		}
		return spec
	}
	return MetricSpec{Name: name, Title: NaiveTitle(name), Limits: LimitsRange}
}

// NaiveTitle turns a metric name such as "buried_np-sasa" into "Buried Np Sasa".
func NaiveTitle(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// DefaultAxes picks the initial x and y metrics from the metrics defined on
// every loaded design. It prefers loop_rmsd on x and total_score on y.
func DefaultAxes(defined []string) (x, y string) {
	has := func(name string) bool {
		for _, d := range defined {
			if d == name {
				return true
			}
		}
		return false
	}

	switch {
	case has(MetricLoopRMSD):
		x = MetricLoopRMSD
	case len(defined) > 1:
		x = defined[1]
	case len(defined) == 1:
		x = defined[0]
	}

	switch {
	case has(MetricTotalScore):
		y = MetricTotalScore
	case len(defined) > 0:
		y = defined[0]
	}

	return x, y
}
