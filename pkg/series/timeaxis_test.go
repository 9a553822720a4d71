package series

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// TimeAxisTestSuite is a test suite for the TimeAxis implementation
type TimeAxisTestSuite struct {
	suite.Suite
	axis *TimeAxis
	base time.Time
}

// SetupTest runs before each test
func (suite *TimeAxisTestSuite) SetupTest() {
	suite.axis = NewTimeAxis()
	suite.base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *TimeAxisTestSuite) at(minutes int) time.Time {
	return suite.base.Add(time.Duration(minutes) * time.Minute)
}

func (suite *TimeAxisTestSuite) TestAppendReturnsIncreasingIndices() {
	for i := 0; i < 5; i++ {
		idx, err := suite.axis.Append(suite.at(i))
		suite.Require().NoError(err)
		suite.Equal(i, idx)
	}

	suite.Equal(5, suite.axis.Size())
}

func (suite *TimeAxisTestSuite) TestAppendRejectsOutOfOrderTimestamp() {
	_, err := suite.axis.Append(suite.at(10))
	suite.Require().NoError(err)

	testCases := []struct {
		name string
		t    time.Time
	}{
		{name: "earlier than last", t: suite.at(5)},
		{name: "equal to last", t: suite.at(10)},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			idx, err := suite.axis.Append(tc.t)
			suite.Require().Error(err)
			suite.Equal(-1, idx)
			suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderTimestamp))

			// The axis must be left unchanged by the failed append.
			suite.Equal(1, suite.axis.Size())
		})
	}
}

func (suite *TimeAxisTestSuite) TestTimeAt() {
	_, err := suite.axis.Append(suite.at(0))
	suite.Require().NoError(err)
	_, err = suite.axis.Append(suite.at(1))
	suite.Require().NoError(err)

	t1, err := suite.axis.TimeAt(1)
	suite.Require().NoError(err)
	suite.True(t1.Equal(suite.at(1)))

	_, err = suite.axis.TimeAt(2)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfRange))

	_, err = suite.axis.TimeAt(-1)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfRange))
}

func (suite *TimeAxisTestSuite) TestIndexOf() {
	for i := 0; i < 4; i++ {
		_, err := suite.axis.Append(suite.at(i * 2))
		suite.Require().NoError(err)
	}

	idx := suite.axis.IndexOf(suite.at(4))
	suite.Require().True(idx.IsSome())
	suite.Equal(2, idx.Unwrap())

	// A time between two axis points is not on the axis.
	suite.True(suite.axis.IndexOf(suite.at(3)).IsNone())
	suite.True(suite.axis.IndexOf(suite.at(100)).IsNone())
}

func (suite *TimeAxisTestSuite) TestIndexOfEmptyAxis() {
	suite.True(suite.axis.IndexOf(suite.base).IsNone())
}

func TestTimeAxisSuite(t *testing.T) {
	suite.Run(t, new(TimeAxisTestSuite))
}
