package indicator

import (
	"time"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
	"github.com/stretchr/testify/suite"
)

// IndicatorTestSuite carries a fresh base series per test and helpers to
// fill it with crafted bars.
type IndicatorTestSuite struct {
	suite.Suite
	series *series.BaseSeries
	base   time.Time
}

// SetupTest runs before each test
func (suite *IndicatorTestSuite) SetupTest() {
	suite.series = series.New()
	suite.base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

// appendCloses appends flat bars whose OHLC all equal the close price.
func (suite *IndicatorTestSuite) appendCloses(closes ...float64) {
	offset := suite.series.Size()
	for i, c := range closes {
		_, err := suite.series.Append(types.Bar{
			Time:   suite.base.Add(time.Duration(offset+i) * time.Minute),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1,
			Closed: true,
		})
		suite.Require().NoError(err)
	}
}

// appendBars appends fully specified bars one minute apart.
func (suite *IndicatorTestSuite) appendBars(bars ...types.Bar) {
	offset := suite.series.Size()
	for i, b := range bars {
		b.Time = suite.base.Add(time.Duration(offset+i) * time.Minute)
		b.Closed = true

		_, err := suite.series.Append(b)
		suite.Require().NoError(err)
	}
}
