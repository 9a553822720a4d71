package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// ATR computes the average true range: Wilder's smoothing of the shared TR
// function, seeded with the plain average of the first window.
type ATR struct {
	*series.Function

	tr     *TR
	period series.Factor
	out    *series.TVar
}

// SharedATR returns the registry instance of ATR(period).
func SharedATR(b *series.BaseSeries, period int) *ATR {
	key := series.Key(types.IndicatorTypeATR, period)

	return series.Shared(b, key, func() *ATR {
		return NewATR(b, period)
	})
}

// NewATR creates an unshared ATR instance.
func NewATR(b *series.BaseSeries, period int) *ATR {
	a := &ATR{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeATR),
		tr:       SharedTR(b),
		period:   series.NewBoundedFactor("period", float64(period), 2, 1, 100),
	}
	a.out = a.Var("atr")
	a.Bind(a.computeSpot)
	a.DependsOn(a.tr.Function)

	return a
}

func (a *ATR) computeSpot(i int) {
	period := a.period.Int()

	switch {
	case i < period-1:
		a.out.Set(i, series.Null)
	case i == period-1:
		sum := 0.0
		for j := 0; j <= i; j++ {
			sum += a.tr.Out().At(j)
		}

		a.out.Set(i, sum/float64(period))
	default:
		n := float64(period)
		a.out.Set(i, (a.out.At(i-1)*(n-1)+a.tr.Out().At(i))/n)
	}
}

// Value computes up to idx and returns the ATR there, or Null inside the
// warm-up window.
func (a *ATR) Value(sessionID int64, idx int) float64 {
	a.ComputeTo(sessionID, idx)

	return a.out.At(idx)
}

// Out returns the output column.
func (a *ATR) Out() *series.TVar {
	return a.out
}

// Outputs implements Indicator.
func (a *ATR) Outputs() []*series.TVar {
	return []*series.TVar{a.out}
}
