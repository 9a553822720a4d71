package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// WilliamsR computes Williams %R: the negated position of the close inside
// the recent high/low range, scaled to [-100, 0].
type WilliamsR struct {
	*series.Function

	high   *series.TVar
	low    *series.TVar
	close  *series.TVar
	period series.Factor
	out    *series.TVar
}

// SharedWilliamsR returns the registry instance of WilliamsR(period).
func SharedWilliamsR(b *series.BaseSeries, period int) *WilliamsR {
	key := series.Key(types.IndicatorTypeWilliamsR, period)

	return series.Shared(b, key, func() *WilliamsR {
		return NewWilliamsR(b, period)
	})
}

// NewWilliamsR creates an unshared WilliamsR instance.
func NewWilliamsR(b *series.BaseSeries, period int) *WilliamsR {
	w := &WilliamsR{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeWilliamsR),
		high:     b.High(),
		low:      b.Low(),
		close:    b.Close(),
		period:   series.NewBoundedFactor("period", float64(period), 1, 1, 100),
	}
	w.out = w.Var("williams_r")
	w.Bind(w.computeSpot)

	return w
}

func (w *WilliamsR) computeSpot(i int) {
	period := w.period.Int()
	if i < period-1 {
		w.out.Set(i, series.Null)

		return
	}

	hh := highest(w.high, i, period)
	ll := lowest(w.low, i, period)

	if hh == ll {
		w.out.Set(i, -50)

		return
	}

	w.out.Set(i, -100*(hh-w.close.At(i))/(hh-ll))
}

// Value computes up to idx and returns %R there.
func (w *WilliamsR) Value(sessionID int64, idx int) float64 {
	w.ComputeTo(sessionID, idx)

	return w.out.At(idx)
}

// Outputs implements Indicator.
func (w *WilliamsR) Outputs() []*series.TVar {
	return []*series.TVar{w.out}
}
