package datasource

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-series/internal/logger"
	"github.com/stretchr/testify/suite"
)

// DuckDBSourceTestSuite is a test suite for the DuckDB bar source
type DuckDBSourceTestSuite struct {
	suite.Suite
	source *DuckDBSource
}

// SetupTest runs before each test
func (suite *DuckDBSourceTestSuite) SetupTest() {
	source, err := NewDuckDBSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.source = source

	_, err = suite.source.db.Exec(`
		CREATE TABLE bars (
			time TIMESTAMP,
			open DOUBLE, high DOUBLE, low DOUBLE, close DOUBLE,
			volume DOUBLE
		);
		INSERT INTO bars VALUES
			('2024-01-01 00:02:00', 12, 14, 11, 13, 300),
			('2024-01-01 00:00:00', 10, 12, 9, 11, 100),
			('2024-01-01 00:01:00', 11, 13, 10, 12, 200);
	`)
	suite.Require().NoError(err)
}

// TearDownTest runs after each test
func (suite *DuckDBSourceTestSuite) TearDownTest() {
	suite.Require().NoError(suite.source.Close())
}

func (suite *DuckDBSourceTestSuite) TestCount() {
	count, err := suite.source.Count()
	suite.Require().NoError(err)
	suite.Equal(3, count)
}

func (suite *DuckDBSourceTestSuite) TestReadAllOrdersByTime() {
	bars, err := suite.source.ReadAll()
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)

	// Rows come back time-ordered regardless of insertion order.
	suite.True(bars[0].Time.Before(bars[1].Time))
	suite.True(bars[1].Time.Before(bars[2].Time))
	suite.Equal(11.0, bars[0].Close)
	suite.Equal(13.0, bars[2].Close)
	suite.True(bars[0].Closed)
}

func (suite *DuckDBSourceTestSuite) TestReadRange() {
	start := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 2, 0, 0, time.UTC)

	bars, err := suite.source.ReadRange(start, end)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)
	suite.Equal(12.0, bars[0].Close)
}

func TestDuckDBSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBSourceTestSuite))
}
