package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// WMA computes the linearly weighted moving average of a source column,
// with the most recent value carrying the largest weight.
type WMA struct {
	*series.Function

	src    *series.TVar
	period series.Factor
	out    *series.TVar
}

// SharedWMA returns the registry instance of WMA(src, period).
func SharedWMA(b *series.BaseSeries, src *series.TVar, period int) *WMA {
	key := series.Key(types.IndicatorTypeWMA, src.Name(), period)

	return series.Shared(b, key, func() *WMA {
		return NewWMA(b, src, period)
	})
}

// NewWMA creates an unshared WMA instance.
func NewWMA(b *series.BaseSeries, src *series.TVar, period int) *WMA {
	w := &WMA{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeWMA),
		src:      src,
		period:   series.NewBoundedFactor("period", float64(period), 1, 1, 500),
	}
	w.out = w.Var("wma")
	w.Bind(w.computeSpot)

	return w
}

func (w *WMA) computeSpot(i int) {
	period := w.period.Int()
	if i < period-1 {
		w.out.Set(i, series.Null)

		return
	}

	sum := 0.0
	weightSum := 0.0

	for k := 0; k < period; k++ {
		weight := float64(period - k)
		sum += weight * w.src.At(i-k)
		weightSum += weight
	}

	w.out.Set(i, sum/weightSum)
}

// Value computes up to idx and returns the weighted average there.
func (w *WMA) Value(sessionID int64, idx int) float64 {
	w.ComputeTo(sessionID, idx)

	return w.out.At(idx)
}

// Out returns the output column.
func (w *WMA) Out() *series.TVar {
	return w.out
}

// Outputs implements Indicator.
func (w *WMA) Outputs() []*series.TVar {
	return []*series.TVar{w.out}
}
