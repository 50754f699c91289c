// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/sho/internal/core/domain"
)

// MetricExtractor turns model files into metric mappings.
//
//go:generate mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type MetricExtractor interface {
	// ExtractMetrics returns one mapping per input path, in input order.
	//
	// A file that cannot be read yields a nil mapping in its slot; such
	// results are never cached. A readable file with no recognised metrics
	// yields an empty, non-nil mapping.
	//
	// An error means the whole batch failed.
	ExtractMetrics(ctx context.Context, paths []string) ([]domain.Metrics, error)
}
