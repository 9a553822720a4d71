package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-series/pkg/series"
	"github.com/stretchr/testify/suite"
)

// WMATestSuite is a test suite for the weighted moving average
type WMATestSuite struct {
	IndicatorTestSuite
}

func (suite *WMATestSuite) TestLinearWeights() {
	suite.appendCloses(1, 2, 3, 4)

	wma := SharedWMA(suite.series, suite.series.Close(), 3)
	wma.ComputeAll(1)

	suite.True(series.IsNull(wma.Out().At(0)))
	suite.True(series.IsNull(wma.Out().At(1)))

	// (3*3 + 2*2 + 1*1) / 6 and (3*4 + 2*3 + 1*2) / 6.
	suite.InDelta(14.0/6.0, wma.Out().At(2), 1e-9)
	suite.InDelta(20.0/6.0, wma.Out().At(3), 1e-9)
}

func TestWMASuite(t *testing.T) {
	suite.Run(t, new(WMATestSuite))
}
