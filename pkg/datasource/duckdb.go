package datasource

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-series/internal/logger"
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBSource reads bars from a DuckDB database, typically backed by a
// parquet file exposed as a view.
type DuckDBSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBSource opens a DuckDB database at path (":memory:" works).
func NewDuckDBSource(path string, log *logger.Logger) (*DuckDBSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceFailed, "NewDuckDBSource: failed to open database", err)
	}

	return &DuckDBSource{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// InitializeParquet creates the bars view over a parquet file.
func (d *DuckDBSource) InitializeParquet(parquetPath string) error {
	d.logger.Debug("Initializing DuckDB bar source", zap.String("parquet", parquetPath))

	query := fmt.Sprintf(`
		CREATE OR REPLACE VIEW bars AS
		SELECT * FROM read_parquet('%s');
	`, parquetPath)

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "InitializeParquet: failed to create view over %s", parquetPath)
	}

	return nil
}

// Count returns the number of bars available.
func (d *DuckDBSource) Count() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM bars").Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "Count: failed to count bars", err)
	}

	return count, nil
}

// ReadAll implements BarSource, returning all bars ordered by time.
func (d *DuckDBSource) ReadAll() ([]types.Bar, error) {
	query := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("bars").
		OrderBy("time ASC")

	return d.readBars(query)
}

// ReadRange returns the bars with time in [start, end], ordered by time.
func (d *DuckDBSource) ReadRange(start, end time.Time) ([]types.Bar, error) {
	query := d.sq.
		Select("time", "open", "high", "low", "close", "volume").
		From("bars").
		Where(squirrel.GtOrEq{"time": start}).
		Where(squirrel.LtOrEq{"time": end}).
		OrderBy("time ASC")

	return d.readBars(query)
}

func (d *DuckDBSource) readBars(query squirrel.SelectBuilder) ([]types.Bar, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "readBars: failed to build query", err)
	}

	rows, err := d.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "readBars: query failed", err)
	}
	defer rows.Close()

	var bars []types.Bar

	for rows.Next() {
		var bar types.Bar
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "readBars: failed to scan row", err)
		}

		// Historical bars are always finalized.
		bar.Closed = true
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "readBars: row iteration failed", err)
	}

	return bars, nil
}

// Close releases the database handle.
func (d *DuckDBSource) Close() error {
	return d.db.Close()
}
