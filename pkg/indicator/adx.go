package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// ADX computes the Average Directional Index: Wilder's smoothing of the DX
// column of the shared DMI instance for the same period. The chain
// ADX -> DMI -> TR is the deepest dependency path in the package; session
// memoization keeps each stage computed once per pass no matter how many
// indicators sit on top.
type ADX struct {
	*series.Function

	dmi    *DMI
	period series.Factor
	out    *series.TVar
}

// SharedADX returns the registry instance of ADX(period).
func SharedADX(b *series.BaseSeries, period int) *ADX {
	key := series.Key(types.IndicatorTypeADX, period)

	return series.Shared(b, key, func() *ADX {
		return NewADX(b, period)
	})
}

// NewADX creates an unshared ADX instance.
func NewADX(b *series.BaseSeries, period int) *ADX {
	a := &ADX{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeADX),
		dmi:      SharedDMI(b, period),
		period:   series.NewBoundedFactor("period", float64(period), 2, 1, 100),
	}
	a.out = a.Var("adx")
	a.Bind(a.computeSpot)
	a.DependsOn(a.dmi.Function)

	return a
}

func (a *ADX) computeSpot(i int) {
	period := a.period.Int()
	seedIdx := 2 * period

	switch {
	case i < seedIdx:
		a.out.Set(i, series.Null)
	case i == seedIdx:
		sum := 0.0
		for j := period + 1; j <= i; j++ {
			sum += a.dmi.DX().At(j)
		}

		a.out.Set(i, sum/float64(period))
	default:
		n := float64(period)
		a.out.Set(i, (a.out.At(i-1)*(n-1)+a.dmi.DX().At(i))/n)
	}
}

// Value computes up to idx and returns the ADX there, or Null inside the
// warm-up window.
func (a *ADX) Value(sessionID int64, idx int) float64 {
	a.ComputeTo(sessionID, idx)

	return a.out.At(idx)
}

// Out returns the output column.
func (a *ADX) Out() *series.TVar {
	return a.out
}

// Outputs implements Indicator.
func (a *ADX) Outputs() []*series.TVar {
	return []*series.TVar{a.out}
}
