// Package writer persists computed indicator columns alongside their bars.
package writer

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// Column is a named indicator output to include in the result file.
type Column struct {
	Label string
	Var   *series.TVar
}

// ResultWriter defines the interface for writing computed series results.
type ResultWriter interface {
	// WriteSeries writes the bars of the series together with the given
	// indicator columns, one row per bar.
	WriteSeries(b *series.BaseSeries, columns []Column) error

	// Close finalizes the writing process.
	Close() error
}

// CSVWriter implements ResultWriter by writing a series.csv file into a
// fresh run directory under the base directory.
type CSVWriter struct {
	baseDir    string
	runDir     string
	seriesFile *os.File
	seriesCsv  *csv.Writer
}

// NewCSVWriter creates a new CSVWriter with the given base directory. Each
// writer gets its own run directory so repeated runs never clobber each
// other.
func NewCSVWriter(baseDir string) (*CSVWriter, error) {
	runDir := filepath.Join(baseDir, uuid.New().String())

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeWriteFailed, err, "NewCSVWriter: failed to create run directory %s", runDir)
	}

	seriesFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWriteFailed, "NewCSVWriter: failed to create series file", err)
	}

	return &CSVWriter{
		baseDir:    baseDir,
		runDir:     runDir,
		seriesFile: seriesFile,
		seriesCsv:  csv.NewWriter(seriesFile),
	}, nil
}

// RunDir returns the directory this writer writes into.
func (w *CSVWriter) RunDir() string {
	return w.runDir
}

// WriteSeries implements ResultWriter. Null cells are written empty.
func (w *CSVWriter) WriteSeries(b *series.BaseSeries, columns []Column) error {
	header := []string{"time", "open", "high", "low", "close", "volume"}
	for _, col := range columns {
		header = append(header, col.Label)
	}

	if err := w.seriesCsv.Write(header); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "WriteSeries: failed to write header", err)
	}

	size := b.Size()
	for i := 0; i < size; i++ {
		bar, err := b.BarAt(i)
		if err != nil {
			return err
		}

		row := barRow(bar)
		for _, col := range columns {
			row = append(row, formatCell(col.Var.At(i)))
		}

		if err := w.seriesCsv.Write(row); err != nil {
			return errors.Wrapf(errors.ErrCodeWriteFailed, err, "WriteSeries: failed to write row %d", i)
		}
	}

	w.seriesCsv.Flush()
	if err := w.seriesCsv.Error(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "WriteSeries: failed to flush", err)
	}

	return nil
}

// Close implements ResultWriter.
func (w *CSVWriter) Close() error {
	w.seriesCsv.Flush()

	if err := w.seriesFile.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "Close: failed to close series file", err)
	}

	return nil
}

func barRow(bar types.Bar) []string {
	return []string{
		bar.Time.Format(time.RFC3339),
		formatCell(bar.Open),
		formatCell(bar.High),
		formatCell(bar.Low),
		formatCell(bar.Close),
		formatCell(bar.Volume),
	}
}

func formatCell(v float64) string {
	if series.IsNull(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
