// Package export writes the selected designs out as a path listing or a
// multi-page funnel document.
package export

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/core/ports"
	"go.trai.ch/zerr"
)

// Exporter writes exports for a set of selected designs.
type Exporter struct {
	logger ports.Logger
}

// NewExporter creates an Exporter that warns through logger.
func NewExporter(logger ports.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// WritePaths writes the best model path of each design, one per line, in
// the order given. Designs without a best model are skipped with a warning.
// It returns the number of lines written.
func (e *Exporter) WritePaths(w io.Writer, designs []*domain.Design) (int, error) {
	bw := bufio.NewWriter(w)
	written := 0
	for _, d := range designs {
		best, ok := d.Best()
		if !ok {
			e.logger.Warn(domain.ErrNoBestModel.Error() + ": " + d.ID())
			continue
		}
		if _, err := bw.WriteString(best.Path + "\n"); err != nil {
			return written, zerr.Wrap(err, domain.ErrExportWriteFailed.Error())
		}
		written++
	}
	if err := bw.Flush(); err != nil {
		return written, zerr.Wrap(err, domain.ErrExportWriteFailed.Error())
	}
	return written, nil
}

// SavePaths writes the path listing to a file.
func (e *Exporter) SavePaths(path string, designs []*domain.Design) (int, error) {
	var n int
	err := writeFile(path, func(w io.Writer) error {
		var err error
		n, err = e.WritePaths(w, designs)
		return err
	})
	return n, err
}

// SaveFunnels writes the funnel document to a file.
func (e *Exporter) SaveFunnels(path string, doc Document) error {
	return writeFile(path, func(w io.Writer) error {
		return e.WriteFunnels(w, doc)
	})
}

// writeFile writes through a temporary file in the target directory and
// renames it into place, so an interrupted export never leaves a partial file.
func writeFile(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportWriteFailed.Error()), "path", path)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return zerr.With(err, "path", path)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrExportWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrExportWriteFailed.Error()), "path", path)
	}
	return nil
}
