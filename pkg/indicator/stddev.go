package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// StdDev computes the population standard deviation of a source column
// over a fixed window. It depends on the shared MA of the same window for
// the window mean.
type StdDev struct {
	*series.Function

	src    *series.TVar
	period series.Factor
	ma     *MA
	out    *series.TVar
}

// SharedStdDev returns the registry instance of StdDev(src, period).
func SharedStdDev(b *series.BaseSeries, src *series.TVar, period int) *StdDev {
	key := series.Key(types.IndicatorTypeStdDev, src.Name(), period)

	return series.Shared(b, key, func() *StdDev {
		return NewStdDev(b, src, period)
	})
}

// NewStdDev creates an unshared StdDev instance.
func NewStdDev(b *series.BaseSeries, src *series.TVar, period int) *StdDev {
	s := &StdDev{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeStdDev),
		src:      src,
		period:   series.NewBoundedFactor("period", float64(period), 1, 1, 500),
		ma:       SharedMA(b, src, period),
	}
	s.out = s.Var("std_dev")
	s.Bind(s.computeSpot)
	s.DependsOn(s.ma.Function)

	return s
}

func (s *StdDev) computeSpot(i int) {
	period := s.period.Int()
	if i < period-1 {
		s.out.Set(i, series.Null)

		return
	}

	mean := s.ma.Out().At(i)

	sum := 0.0
	for j := i - period + 1; j <= i; j++ {
		d := s.src.At(j) - mean
		sum += d * d
	}

	s.out.Set(i, math.Sqrt(sum/float64(period)))
}

// Value computes up to idx and returns the deviation there.
func (s *StdDev) Value(sessionID int64, idx int) float64 {
	s.ComputeTo(sessionID, idx)

	return s.out.At(idx)
}

// Out returns the output column.
func (s *StdDev) Out() *series.TVar {
	return s.out
}

// Outputs implements Indicator.
func (s *StdDev) Outputs() []*series.TVar {
	return []*series.TVar{s.out}
}
