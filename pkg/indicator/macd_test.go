package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-series/pkg/series"
	"github.com/stretchr/testify/suite"
)

// MACDTestSuite is a test suite for MACD and its shared EMA dependencies
type MACDTestSuite struct {
	IndicatorTestSuite
}

func (suite *MACDTestSuite) TestLinearTrendGivesConstantSpread() {
	suite.appendCloses(1, 2, 3, 4, 5, 6)

	macd := SharedMACD(suite.series, suite.series.Close(), 2, 3, 2)
	macd.ComputeAll(1)

	suite.True(series.IsNull(macd.Value(1, 1)))

	// On a perfectly linear trend both EMAs track the line at a fixed
	// offset, so the spread settles immediately.
	suite.InDelta(0.5, macd.Value(1, 2), 1e-9)
	suite.True(series.IsNull(macd.SignalValue(1, 2)))
	suite.InDelta(0.5, macd.SignalValue(1, 3), 1e-9)
	suite.InDelta(0.0, macd.HistValue(1, 3), 1e-9)
	suite.InDelta(0.5, macd.Value(1, 5), 1e-9)
	suite.InDelta(0.0, macd.HistValue(1, 5), 1e-9)
}

func (suite *MACDTestSuite) TestSharesEMAInstances() {
	suite.appendCloses(1, 2, 3, 4, 5, 6)

	macd := SharedMACD(suite.series, suite.series.Close(), 2, 3, 2)
	macd.ComputeAll(1)

	// The slow EMA resolved through the registry is the one MACD already
	// computed: asking for it finds all six spots done.
	slow := SharedEMA(suite.series, suite.series.Close(), 3)
	suite.Equal(int64(6), slow.SpotCalls())
	suite.Equal(6, slow.ComputedIndex()+1)

	fast := SharedEMA(suite.series, suite.series.Close(), 2)
	suite.Equal(int64(6), fast.SpotCalls())
}

func TestMACDSuite(t *testing.T) {
	suite.Run(t, new(MACDTestSuite))
}
