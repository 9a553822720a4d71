package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// EMA computes the exponential moving average of a source column, seeded
// with the simple average of the first period values.
type EMA struct {
	*series.Function

	src    *series.TVar
	period series.Factor
	out    *series.TVar
}

// SharedEMA returns the registry instance of EMA(src, period).
func SharedEMA(b *series.BaseSeries, src *series.TVar, period int) *EMA {
	key := series.Key(types.IndicatorTypeEMA, src.Name(), period)

	return series.Shared(b, key, func() *EMA {
		return NewEMA(b, src, period)
	})
}

// NewEMA creates an unshared EMA instance.
func NewEMA(b *series.BaseSeries, src *series.TVar, period int) *EMA {
	e := &EMA{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeEMA),
		src:      src,
		period:   series.NewBoundedFactor("period", float64(period), 1, 1, 500),
	}
	e.out = e.Var("ema")
	e.Bind(e.computeSpot)

	return e
}

func (e *EMA) computeSpot(i int) {
	period := e.period.Int()

	switch {
	case i < period-1:
		e.out.Set(i, series.Null)
	case i == period-1:
		// Seed with the simple average of the first window.
		sum := 0.0
		for j := 0; j <= i; j++ {
			sum += e.src.At(j)
		}

		e.out.Set(i, sum/float64(period))
	default:
		alpha := 2.0 / float64(period+1)
		e.out.Set(i, alpha*e.src.At(i)+(1-alpha)*e.out.At(i-1))
	}
}

// Value computes up to idx and returns the EMA there, or Null inside the
// warm-up window.
func (e *EMA) Value(sessionID int64, idx int) float64 {
	e.ComputeTo(sessionID, idx)

	return e.out.At(idx)
}

// Out returns the output column.
func (e *EMA) Out() *series.TVar {
	return e.out
}

// Outputs implements Indicator.
func (e *EMA) Outputs() []*series.TVar {
	return []*series.TVar{e.out}
}
