package extractor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"slices"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.MetricExtractor = (*Script)(nil)

// Script delegates extraction to an external command. The command is run
// once per batch with every model path appended to its arguments and must
// print one mapping per path, in order, as YAML or JSON. Either a single
// sequence of mappings or a stream of mapping documents is accepted; a null
// entry marks a model the command could not handle.
type Script struct {
	command []string
	runner  ports.CommandRunner
}

// NewScript creates a Script extractor running command through runner.
func NewScript(command []string, runner ports.CommandRunner) *Script {
	return &Script{
		command: slices.Clone(command),
		runner:  runner,
	}
}

// ExtractMetrics runs the command once for all paths.
func (s *Script) ExtractMetrics(ctx context.Context, paths []string) ([]domain.Metrics, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "extractor.script")
	defer span.End()
	span.SetAttributes(attribute.Int("paths", len(paths)))

	if len(paths) == 0 {
		return nil, nil
	}

	argv := append(slices.Clone(s.command), paths...)

	var stdout bytes.Buffer
	if err := s.runner.Output(ctx, argv, &stdout); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrExtractionFailed.Error()), "command", s.command[0])
	}

	results, err := decodeMappings(&stdout)
	if err != nil {
		return nil, zerr.With(err, "command", s.command[0])
	}

	if len(results) != len(paths) {
		err := zerr.With(domain.ErrExtractorOutputMismatch, "expected", len(paths))
		return nil, zerr.With(err, "got", len(results))
	}
	return results, nil
}

// decodeMappings reads every YAML document from r and flattens sequences.
func decodeMappings(r io.Reader) ([]domain.Metrics, error) {
	var out []domain.Metrics

	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrExtractionFailed.Error())
		}
		if len(doc.Content) == 0 {
			continue
		}

		root := doc.Content[0]
		if root.Kind == yaml.SequenceNode {
			for _, item := range root.Content {
				out = append(out, toMetrics(item))
			}
			continue
		}
		out = append(out, toMetrics(root))
	}

	return out, nil
}

// toMetrics converts a mapping node, keeping only numeric values. Anything
// other than a mapping yields nil.
func toMetrics(node *yaml.Node) domain.Metrics {
	if node.Kind != yaml.MappingNode {
		return nil
	}

	metrics := domain.Metrics{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			continue
		}
		if tag := value.ShortTag(); tag != "!!float" && tag != "!!int" {
			continue
		}
		v, err := strconv.ParseFloat(value.Value, 64)
		if err != nil || math.IsNaN(v) {
			continue
		}
		metrics[key.Value] = v
	}
	return metrics
}
