package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// Sum computes the rolling sum of a source column over a fixed window.
type Sum struct {
	*series.Function

	src    *series.TVar
	period series.Factor
	out    *series.TVar
}

// SharedSum returns the registry instance of Sum(src, period).
func SharedSum(b *series.BaseSeries, src *series.TVar, period int) *Sum {
	key := series.Key(types.IndicatorTypeSum, src.Name(), period)

	return series.Shared(b, key, func() *Sum {
		return NewSum(b, src, period)
	})
}

// NewSum creates an unshared Sum instance.
func NewSum(b *series.BaseSeries, src *series.TVar, period int) *Sum {
	s := &Sum{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeSum),
		src:      src,
		period:   series.NewBoundedFactor("period", float64(period), 1, 1, 500),
	}
	s.out = s.Var("sum")
	s.Bind(s.computeSpot)

	return s
}

func (s *Sum) computeSpot(i int) {
	period := s.period.Int()
	if i < period-1 {
		s.out.Set(i, series.Null)

		return
	}

	sum := 0.0
	for j := i - period + 1; j <= i; j++ {
		sum += s.src.At(j)
	}

	s.out.Set(i, sum)
}

// Value computes up to idx and returns the rolling sum there.
func (s *Sum) Value(sessionID int64, idx int) float64 {
	s.ComputeTo(sessionID, idx)

	return s.out.At(idx)
}

// Out returns the output column.
func (s *Sum) Out() *series.TVar {
	return s.out
}

// Outputs implements Indicator.
func (s *Sum) Outputs() []*series.TVar {
	return []*series.TVar{s.out}
}
