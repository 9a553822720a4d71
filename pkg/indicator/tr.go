package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// TR computes the true range of each bar: the largest of the bar range and
// the gaps against the previous close. ATR and the DMI family share one TR
// instance through the registry.
type TR struct {
	*series.Function

	high  *series.TVar
	low   *series.TVar
	close *series.TVar
	out   *series.TVar
}

// SharedTR returns the registry instance of TR for this series.
func SharedTR(b *series.BaseSeries) *TR {
	key := series.Key(types.IndicatorTypeTR)

	return series.Shared(b, key, func() *TR {
		return NewTR(b)
	})
}

// NewTR creates an unshared TR instance.
func NewTR(b *series.BaseSeries) *TR {
	t := &TR{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeTR),
		high:     b.High(),
		low:      b.Low(),
		close:    b.Close(),
	}
	t.out = t.Var("tr")
	t.Bind(t.computeSpot)

	return t
}

func (t *TR) computeSpot(i int) {
	if i == 0 {
		t.out.Set(i, t.high.At(i)-t.low.At(i))

		return
	}

	prevClose := t.close.At(i - 1)
	tr := t.high.At(i) - t.low.At(i)

	if hc := math.Abs(t.high.At(i) - prevClose); hc > tr {
		tr = hc
	}

	if lc := math.Abs(t.low.At(i) - prevClose); lc > tr {
		tr = lc
	}

	t.out.Set(i, tr)
}

// Value computes up to idx and returns the true range there.
func (t *TR) Value(sessionID int64, idx int) float64 {
	t.ComputeTo(sessionID, idx)

	return t.out.At(idx)
}

// Out returns the output column.
func (t *TR) Out() *series.TVar {
	return t.out
}

// Outputs implements Indicator.
func (t *TR) Outputs() []*series.TVar {
	return []*series.TVar{t.out}
}
