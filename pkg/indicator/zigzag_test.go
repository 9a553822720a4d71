package indicator

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
	"github.com/stretchr/testify/suite"
)

// ZigZagTestSuite is a test suite for the zigzag pivot detector
type ZigZagTestSuite struct {
	IndicatorTestSuite
}

func (suite *ZigZagTestSuite) TestAlternatingPivots() {
	// 10% reversal: every swing here moves far enough to confirm the
	// previous extreme.
	suite.appendCloses(100, 120, 105, 130, 90)

	z := SharedZigZag(suite.series, 0.10)

	suite.Equal(100.0, z.Value(1, 0))
	suite.Equal(120.0, z.Value(1, 1))
	suite.Equal(105.0, z.Value(1, 2))
	suite.Equal(130.0, z.Value(1, 3))

	suite.Equal(3, z.ConfirmedThrough(1))
}

func (suite *ZigZagTestSuite) TestTentativeTailIsNeverCommitted() {
	suite.appendCloses(100, 120, 105, 130, 90)

	z := SharedZigZag(suite.series, 0.10)

	// The last bar is the running extreme of an unconfirmed leg: no later
	// reversal exists, so it reads Null even after exhausting the axis.
	suite.True(series.IsNull(z.Value(1, 4)))
}

func (suite *ZigZagTestSuite) TestSmallSwingsAreIgnored() {
	// Wiggles inside the reversal threshold never produce pivots.
	suite.appendCloses(100, 104, 101, 103, 100)

	z := SharedZigZag(suite.series, 0.10)

	suite.Equal(-1, z.ConfirmedThrough(1))
	for i := 0; i < 5; i++ {
		suite.True(series.IsNull(z.Value(1, i)), "index %d should not be a pivot", i)
	}
}

func (suite *ZigZagTestSuite) TestLateConfirmationExtendsTheComputation() {
	suite.appendCloses(100, 120)

	z := SharedZigZag(suite.series, 0.10)

	// The upswing confirms the starting low immediately.
	suite.Equal(100.0, z.Value(1, 0))

	// The high at index 1 is still tentative until a reversal arrives.
	suite.True(series.IsNull(z.Value(1, 1)))

	suite.appendCloses(95)

	// The new bar falls more than 10% from the extreme; a fresh session
	// picks it up and commits the pivot.
	suite.Equal(120.0, z.Value(2, 1))
}

func (suite *ZigZagTestSuite) TestRevisedFormingBarRetractsThePivot() {
	suite.appendCloses(100, 120, 107)

	z := SharedZigZag(suite.series, 0.10)

	// The drop to 107 confirms the high at index 1.
	suite.Equal(120.0, z.Value(1, 1))

	// The forming bar is rewritten so the drop no longer clears the
	// threshold; a fresh session re-runs the tail and must take the
	// pivot back.
	suite.Require().NoError(suite.series.UpdateLast(types.Bar{
		Time:   suite.base.Add(2 * time.Minute),
		Open:   115,
		High:   115,
		Low:    115,
		Close:  115,
		Volume: 1,
	}))

	suite.True(series.IsNull(z.Value(2, 1)))

	// The starting low stays confirmed by the original upswing.
	suite.Equal(100.0, z.Value(2, 0))
}

func TestZigZagSuite(t *testing.T) {
	suite.Run(t, new(ZigZagTestSuite))
}
