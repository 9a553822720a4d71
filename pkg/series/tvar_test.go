package series

import (
	"testing"
	"time"

	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// TVarTestSuite is a test suite for the TVar column implementation
type TVarTestSuite struct {
	suite.Suite
	axis *TimeAxis
}

// SetupTest runs before each test
func (suite *TVarTestSuite) SetupTest() {
	suite.axis = NewTimeAxis()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := suite.axis.Append(base.Add(time.Duration(i) * time.Minute))
		suite.Require().NoError(err)
	}
}

func (suite *TVarTestSuite) TestUnwrittenSlotsReadNull() {
	v := NewTVar(suite.axis, "col")

	for i := 0; i < 3; i++ {
		suite.True(IsNull(v.At(i)))
	}
}

func (suite *TVarTestSuite) TestSetAndGet() {
	v := NewTVar(suite.axis, "col")
	v.Set(2, 42.5)

	suite.Equal(42.5, v.At(2))

	// Slots below the written one stay Null.
	suite.True(IsNull(v.At(0)))
	suite.True(IsNull(v.At(1)))
}

func (suite *TVarTestSuite) TestOutOfRangeAccessPanics() {
	v := NewTVar(suite.axis, "col")

	for _, i := range []int{-1, 3, 100} {
		suite.PanicsWithError(
			errors.Newf(errors.ErrCodeIndexOutOfRange, "TVar col: index %d out of range [0,3)", i).Error(),
			func() { v.At(i) },
		)
		suite.Panics(func() { v.Set(i, 1.0) })
	}
}

func (suite *TVarTestSuite) TestValuesPadsWithNull() {
	v := NewTVar(suite.axis, "col")
	v.Set(0, 1.0)

	values := v.Values()
	suite.Require().Len(values, 3)
	suite.Equal(1.0, values[0])
	suite.True(IsNull(values[1]))
	suite.True(IsNull(values[2]))

	// Values returns a copy, not the backing storage.
	values[0] = 99.0
	suite.Equal(1.0, v.At(0))
}

func (suite *TVarTestSuite) TestNullSentinel() {
	suite.True(IsNull(Null))
	suite.False(IsNull(0))
	suite.False(IsNull(-1.5))
}

func TestTVarSuite(t *testing.T) {
	suite.Run(t, new(TVarTestSuite))
}
