package datasource

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/argo-series/internal/logger"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"go.uber.org/zap"
)

// CSVSource reads bars from a CSV file with a
// time,open,high,low,close,volume header. Timestamps are RFC3339.
type CSVSource struct {
	FilePath string
	logger   *logger.Logger
}

// NewCSVSource creates a CSV bar source.
func NewCSVSource(filePath string, log *logger.Logger) *CSVSource {
	return &CSVSource{
		FilePath: filePath,
		logger:   log,
	}
}

// WriteBarsCSV writes bars to a CSV file readable by CSVSource.
func WriteBarsCSV(filePath string, bars []types.Bar) error {
	csvFile, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "WriteBarsCSV: failed to create CSV file %s", filePath)
	}
	defer csvFile.Close()

	if err := gocsv.MarshalFile(&bars, csvFile); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "WriteBarsCSV: failed to marshal bars to %s", filePath)
	}

	return nil
}

// ReadAll implements BarSource.
func (s *CSVSource) ReadAll() ([]types.Bar, error) {
	csvFile, err := os.Open(s.FilePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "ReadAll: failed to open CSV file %s", s.FilePath)
	}
	defer csvFile.Close()

	var bars []types.Bar
	if err := gocsv.UnmarshalFile(csvFile, &bars); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceFailed, err, "ReadAll: failed to unmarshal CSV file %s", s.FilePath)
	}

	// File-backed bars are historical and therefore finalized, whether or
	// not the file carries a closed column.
	for i := range bars {
		bars[i].Closed = true
	}

	s.logger.Debug("Loaded bars from CSV", zap.String("path", s.FilePath), zap.Int("count", len(bars)))

	return bars, nil
}
