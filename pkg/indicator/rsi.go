package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// RSI computes the Relative Strength Index over the close column using
// Wilder's smoothing. The first value appears at index period (one bar of
// history is consumed by the first price change).
type RSI struct {
	*series.Function

	src     *series.TVar
	period  series.Factor
	avgGain *series.TVar
	avgLoss *series.TVar
	out     *series.TVar
}

// SharedRSI returns the registry instance of RSI(period) over the series
// close column.
func SharedRSI(b *series.BaseSeries, period int) *RSI {
	key := series.Key(types.IndicatorTypeRSI, period)

	return series.Shared(b, key, func() *RSI {
		return NewRSI(b, period)
	})
}

// NewRSI creates an unshared RSI instance.
func NewRSI(b *series.BaseSeries, period int) *RSI {
	r := &RSI{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeRSI),
		src:      b.Close(),
		period:   series.NewBoundedFactor("period", float64(period), 2, 1, 100),
	}
	r.avgGain = r.Var("avg_gain")
	r.avgLoss = r.Var("avg_loss")
	r.out = r.Var("rsi")
	r.Bind(r.computeSpot)

	return r
}

func (r *RSI) computeSpot(i int) {
	period := r.period.Int()

	switch {
	case i < period:
		r.avgGain.Set(i, series.Null)
		r.avgLoss.Set(i, series.Null)
		r.out.Set(i, series.Null)

		return
	case i == period:
		// Seed with the plain average of the first period changes.
		gain := 0.0
		loss := 0.0

		for j := 1; j <= period; j++ {
			change := r.src.At(j) - r.src.At(j-1)
			if change > 0 {
				gain += change
			} else {
				loss -= change
			}
		}

		r.avgGain.Set(i, gain/float64(period))
		r.avgLoss.Set(i, loss/float64(period))
	default:
		change := r.src.At(i) - r.src.At(i-1)
		gain := 0.0
		loss := 0.0

		if change > 0 {
			gain = change
		} else {
			loss = -change
		}

		n := float64(period)
		r.avgGain.Set(i, (r.avgGain.At(i-1)*(n-1)+gain)/n)
		r.avgLoss.Set(i, (r.avgLoss.At(i-1)*(n-1)+loss)/n)
	}

	avgLoss := r.avgLoss.At(i)
	if avgLoss == 0 {
		r.out.Set(i, 100)

		return
	}

	rs := r.avgGain.At(i) / avgLoss
	r.out.Set(i, 100-100/(1+rs))
}

// Value computes up to idx and returns the RSI there, or Null inside the
// warm-up window.
func (r *RSI) Value(sessionID int64, idx int) float64 {
	r.ComputeTo(sessionID, idx)

	return r.out.At(idx)
}

// Out returns the output column.
func (r *RSI) Out() *series.TVar {
	return r.out
}

// Outputs implements Indicator.
func (r *RSI) Outputs() []*series.TVar {
	return []*series.TVar{r.out}
}
