package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// MA computes the simple moving average of a source column.
type MA struct {
	*series.Function

	src    *series.TVar
	period series.Factor
	out    *series.TVar
}

// SharedMA returns the registry instance of MA(src, period), constructing
// it on first use.
func SharedMA(b *series.BaseSeries, src *series.TVar, period int) *MA {
	key := series.Key(types.IndicatorTypeMA, src.Name(), period)

	return series.Shared(b, key, func() *MA {
		return NewMA(b, src, period)
	})
}

// NewMA creates an unshared MA instance. Most callers want SharedMA.
func NewMA(b *series.BaseSeries, src *series.TVar, period int) *MA {
	m := &MA{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeMA),
		src:      src,
		period:   series.NewBoundedFactor("period", float64(period), 1, 1, 500),
	}
	m.out = m.Var("ma")
	m.Bind(m.computeSpot)

	return m
}

func (m *MA) computeSpot(i int) {
	period := m.period.Int()
	if i < period-1 {
		m.out.Set(i, series.Null)

		return
	}

	sum := 0.0
	for j := i - period + 1; j <= i; j++ {
		sum += m.src.At(j)
	}

	m.out.Set(i, sum/float64(period))
}

// Value computes up to idx and returns the average there, or Null inside
// the warm-up window.
func (m *MA) Value(sessionID int64, idx int) float64 {
	m.ComputeTo(sessionID, idx)

	return m.out.At(idx)
}

// Out returns the output column.
func (m *MA) Out() *series.TVar {
	return m.out
}

// Outputs implements Indicator.
func (m *MA) Outputs() []*series.TVar {
	return []*series.TVar{m.out}
}
