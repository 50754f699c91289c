package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/zerr"
)

// Options configures the tracer provider.
type Options struct {
	// TraceFile receives finished spans as JSON when set.
	TraceFile string
	// Observer receives a summary of every finished span when set.
	Observer func(SpanSummary)
}

// Provider owns the installed tracer provider and the trace file.
type Provider struct {
	tp   *sdktrace.TracerProvider
	file *os.File
}

// Setup installs a global tracer provider. Without a trace file or an
// observer spans are still created but go nowhere.
func Setup(opts Options) (*Provider, error) {
	var (
		spOpts []sdktrace.TracerProviderOption
		file   *os.File
	)

	if opts.TraceFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.TraceFile), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTraceFileFailed.Error()), "path", opts.TraceFile)
		}
		//nolint:gosec // The trace file path is a user supplied flag
		f, err := os.OpenFile(opts.TraceFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.PrivateFilePerm)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrTraceFileFailed.Error()), "path", opts.TraceFile)
		}

		exporter, err := stdouttrace.New(stdouttrace.WithWriter(f))
		if err != nil {
			_ = f.Close()
			return nil, zerr.Wrap(err, domain.ErrTraceFileFailed.Error())
		}
		file = f
		spOpts = append(spOpts, sdktrace.WithSyncer(exporter))
	}

	if opts.Observer != nil {
		spOpts = append(spOpts, sdktrace.WithSpanProcessor(NewBridge(opts.Observer)))
	}

	tp := sdktrace.NewTracerProvider(spOpts...)
	otel.SetTracerProvider(tp)

	return &Provider{tp: tp, file: file}, nil
}

// Shutdown flushes pending spans and closes the trace file.
func (p *Provider) Shutdown(ctx context.Context) error {
	err := p.tp.Shutdown(ctx)
	if p.file != nil {
		err = errors.Join(err, p.file.Close())
	}
	return err
}
