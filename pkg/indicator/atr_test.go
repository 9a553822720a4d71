package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
	"github.com/stretchr/testify/suite"
)

// ATRTestSuite is a test suite for the average true range
type ATRTestSuite struct {
	IndicatorTestSuite
}

func (suite *ATRTestSuite) TestWilderSmoothingOfTrueRange() {
	suite.appendBars(
		types.Bar{Open: 11, High: 12, Low: 10, Close: 11, Volume: 1}, // TR 2
		types.Bar{Open: 14, High: 15, Low: 13, Close: 14, Volume: 1}, // TR 4
		types.Bar{Open: 10, High: 11, Low: 9, Close: 10, Volume: 1},  // TR 5
	)

	atr := SharedATR(suite.series, 2)
	atr.ComputeAll(1)

	suite.True(series.IsNull(atr.Out().At(0)))

	// Seeded with the mean of the first two true ranges, then Wilder.
	suite.InDelta(3.0, atr.Out().At(1), 1e-9)
	suite.InDelta(4.0, atr.Out().At(2), 1e-9)
}

func (suite *ATRTestSuite) TestSharesTrueRangeInstance() {
	suite.appendCloses(1, 2, 3, 4)

	atr := SharedATR(suite.series, 2)
	atr.ComputeAll(1)

	tr := SharedTR(suite.series)
	suite.Equal(int64(4), tr.SpotCalls())
}

func TestATRSuite(t *testing.T) {
	suite.Run(t, new(ATRTestSuite))
}
