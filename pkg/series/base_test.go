package series

import (
	"sync"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// BaseSeriesTestSuite is a test suite for the base series and its registry
type BaseSeriesTestSuite struct {
	suite.Suite
	series *BaseSeries
	base   time.Time
}

// SetupTest runs before each test
func (suite *BaseSeriesTestSuite) SetupTest() {
	suite.series = New()
	suite.base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *BaseSeriesTestSuite) bar(minute int, close float64) types.Bar {
	return types.Bar{
		Time:   suite.base.Add(time.Duration(minute) * time.Minute),
		Open:   close - 1,
		High:   close + 1,
		Low:    close - 2,
		Close:  close,
		Volume: 100,
		Closed: true,
	}
}

func (suite *BaseSeriesTestSuite) TestAppendWritesAllColumns() {
	idx, err := suite.series.Append(suite.bar(0, 10))
	suite.Require().NoError(err)
	suite.Equal(0, idx)

	suite.Equal(9.0, suite.series.Open().At(0))
	suite.Equal(11.0, suite.series.High().At(0))
	suite.Equal(8.0, suite.series.Low().At(0))
	suite.Equal(10.0, suite.series.Close().At(0))
	suite.Equal(100.0, suite.series.Volume().At(0))
	suite.Equal(1.0, suite.series.IsClosed().At(0))
}

func (suite *BaseSeriesTestSuite) TestAppendRejectsOutOfOrderBar() {
	_, err := suite.series.Append(suite.bar(5, 10))
	suite.Require().NoError(err)

	_, err = suite.series.Append(suite.bar(5, 11))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderTimestamp))
	suite.Equal(1, suite.series.Size())
}

func (suite *BaseSeriesTestSuite) TestUpdateLast() {
	_, err := suite.series.Append(suite.bar(0, 10))
	suite.Require().NoError(err)

	forming := suite.bar(0, 12)
	forming.Closed = false
	suite.Require().NoError(suite.series.UpdateLast(forming))

	suite.Equal(12.0, suite.series.Close().At(0))
	suite.Equal(0.0, suite.series.IsClosed().At(0))
	suite.Equal(1, suite.series.Size())
}

func (suite *BaseSeriesTestSuite) TestUpdateLastErrors() {
	err := suite.series.UpdateLast(suite.bar(0, 10))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))

	_, err = suite.series.Append(suite.bar(0, 10))
	suite.Require().NoError(err)

	// Time must match the last axis point exactly.
	err = suite.series.UpdateLast(suite.bar(1, 11))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *BaseSeriesTestSuite) TestBarAtRoundTrip() {
	want := suite.bar(3, 42)
	_, err := suite.series.Append(want)
	suite.Require().NoError(err)

	got, err := suite.series.BarAt(0)
	suite.Require().NoError(err)
	suite.True(got.Time.Equal(want.Time))
	suite.Equal(want.Close, got.Close)
	suite.True(got.Closed)

	_, err = suite.series.BarAt(1)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeIndexOutOfRange))
}

func (suite *BaseSeriesTestSuite) TestKeyEncodesParameters() {
	suite.Equal(Key("ma", 5), Key("ma", 5))
	suite.NotEqual(Key("ma", 5), Key("ma", 10))
	suite.NotEqual(Key("ma", 5), Key("ema", 5))
	suite.NotEqual(Key("ma", 2, 5), Key("ma", 25))
}

func (suite *BaseSeriesTestSuite) TestSharedConstructsOncePerKey() {
	built := 0
	build := func() *Function {
		built++

		return NewFunction(suite.series.Axis(), "ma")
	}

	a := Shared(suite.series, Key("ma", 5), build)
	b := Shared(suite.series, Key("ma", 5), build)
	c := Shared(suite.series, Key("ma", 10), build)

	suite.Same(a, b)
	suite.NotSame(a, c)
	suite.Equal(2, built)
	suite.Equal(2, suite.series.RegisteredFunctions())
}

func (suite *BaseSeriesTestSuite) TestSharedIsSafeUnderConcurrentLookups() {
	var built sync.Map

	var wg sync.WaitGroup

	results := make([]*Function, 16)

	for i := range results {
		wg.Add(1)

		go func(slot int) {
			defer wg.Done()

			results[slot] = Shared(suite.series, Key("ma", 7), func() *Function {
				built.Store(slot, true)

				return NewFunction(suite.series.Axis(), "ma")
			})
		}(i)
	}

	wg.Wait()

	builders := 0
	built.Range(func(_, _ any) bool {
		builders++

		return true
	})
	suite.Equal(1, builders)

	for _, r := range results {
		suite.Same(results[0], r)
	}
}

func (suite *BaseSeriesTestSuite) TestSharedBuildMayRequestOtherKeys() {
	// A build that resolves its own sub-computation through the registry
	// must not deadlock.
	inner := Shared(suite.series, Key("std_dev", 5), func() *Function {
		return NewFunction(suite.series.Axis(), "std_dev")
	})

	outer := Shared(suite.series, Key("bollinger_bands", 5, 2.0), func() *Function {
		dep := Shared(suite.series, Key("std_dev", 5), func() *Function {
			return NewFunction(suite.series.Axis(), "std_dev")
		})
		suite.Same(inner, dep)

		return NewFunction(suite.series.Axis(), "bollinger_bands")
	})

	suite.NotNil(outer)
	suite.Equal(2, suite.series.RegisteredFunctions())
}

func TestBaseSeriesSuite(t *testing.T) {
	suite.Run(t, new(BaseSeriesTestSuite))
}
