package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// OBV computes On-Balance Volume: a running volume total that adds on up
// closes and subtracts on down closes.
type OBV struct {
	*series.Function

	close  *series.TVar
	volume *series.TVar
	out    *series.TVar
}

// SharedOBV returns the registry instance of OBV for this series.
func SharedOBV(b *series.BaseSeries) *OBV {
	key := series.Key(types.IndicatorTypeOBV)

	return series.Shared(b, key, func() *OBV {
		return NewOBV(b)
	})
}

// NewOBV creates an unshared OBV instance.
func NewOBV(b *series.BaseSeries) *OBV {
	o := &OBV{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeOBV),
		close:    b.Close(),
		volume:   b.Volume(),
	}
	o.out = o.Var("obv")
	o.Bind(o.computeSpot)

	return o
}

func (o *OBV) computeSpot(i int) {
	if i == 0 {
		o.out.Set(i, 0)

		return
	}

	prev := o.out.At(i - 1)

	switch {
	case o.close.At(i) > o.close.At(i-1):
		o.out.Set(i, prev+o.volume.At(i))
	case o.close.At(i) < o.close.At(i-1):
		o.out.Set(i, prev-o.volume.At(i))
	default:
		o.out.Set(i, prev)
	}
}

// Value computes up to idx and returns the OBV there.
func (o *OBV) Value(sessionID int64, idx int) float64 {
	o.ComputeTo(sessionID, idx)

	return o.out.At(idx)
}

// Outputs implements Indicator.
func (o *OBV) Outputs() []*series.TVar {
	return []*series.TVar{o.out}
}
