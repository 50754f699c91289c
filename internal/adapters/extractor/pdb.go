// Package extractor implements metric extractors for structural model files.
package extractor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName    = "go.trai.ch/sho/internal/adapters/extractor"
	maxLineLength = 1 << 20
)

var _ ports.MetricExtractor = (*PDB)(nil)

// linePrefixes maps the leading token of a score line to the metric it carries.
var linePrefixes = []struct {
	prefix string
	metric string
}{
	{"total_score", domain.MetricTotalScore},
	{"pose", domain.MetricTotalScore},
	{"loop_backbone_rmsd", domain.MetricLoopRMSD},
	{"delta_buried_unsats", domain.MetricBuriedUnsats},
}

// PDB extracts metrics from the score lines Rosetta appends to PDB files.
// Files ending in .gz are decompressed on the fly.
type PDB struct {
	logger      ports.Logger
	concurrency int
}

// NewPDB creates a PDB extractor that parses up to runtime.NumCPU files at once.
func NewPDB(logger ports.Logger) *PDB {
	return &PDB{
		logger:      logger,
		concurrency: runtime.NumCPU(),
	}
}

// ExtractMetrics parses every path concurrently. A file that cannot be read
// is logged; its slot keeps whatever metrics were read before the failure,
// or nil when there were none.
func (p *PDB) ExtractMetrics(ctx context.Context, paths []string) ([]domain.Metrics, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "extractor.pdb")
	defer span.End()
	span.SetAttributes(attribute.Int("paths", len(paths)))

	out := make([]domain.Metrics, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			metrics, err := ParseFile(path)
			if err != nil {
				if len(metrics) == 0 {
					p.logger.Warn(fmt.Sprintf("skipping %s: %v", path, err))
					return nil
				}
				p.logger.Warn(fmt.Sprintf("partial metrics for %s: %v", path, err))
			}
			out[i] = metrics
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseFile reads the metrics from one model file. On a read error it returns
// the metrics found before the error together with the error.
func ParseFile(path string) (domain.Metrics, error) {
	//nolint:gosec // Path comes from the design directory listing
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrModelParseFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrModelParseFailed.Error()), "path", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	metrics, err := Parse(r)
	if err != nil {
		return metrics, zerr.With(err, "path", path)
	}
	return metrics, nil
}

// Parse scans model content for score lines. The value is the second
// whitespace-separated field; lines whose value is not a number are skipped
// and later lines overwrite earlier ones. A read error is returned with the
// metrics scanned so far.
func Parse(r io.Reader) (domain.Metrics, error) {
	metrics := domain.Metrics{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		line := scanner.Text()
		metric, ok := metricFor(line)
		if !ok {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(v) {
			continue
		}
		metrics[metric] = v
	}

	if err := scanner.Err(); err != nil {
		return metrics, zerr.Wrap(err, domain.ErrModelParseFailed.Error())
	}
	return metrics, nil
}

func metricFor(line string) (string, bool) {
	for _, lp := range linePrefixes {
		if strings.HasPrefix(line, lp.prefix) {
			return lp.metric, true
		}
	}
	return "", false
}
