package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// Stochastic computes the stochastic oscillator: %K as the position of the
// close inside the recent high/low range, and %D as a simple average of %K.
type Stochastic struct {
	*series.Function

	high    *series.TVar
	low     *series.TVar
	close   *series.TVar
	kPeriod series.Factor
	dPeriod series.Factor

	k *series.TVar
	d *series.TVar
}

// SharedStochastic returns the registry instance of Stochastic(k, d).
func SharedStochastic(b *series.BaseSeries, kPeriod, dPeriod int) *Stochastic {
	key := series.Key(types.IndicatorTypeStochastic, kPeriod, dPeriod)

	return series.Shared(b, key, func() *Stochastic {
		return NewStochastic(b, kPeriod, dPeriod)
	})
}

// NewStochastic creates an unshared Stochastic instance.
func NewStochastic(b *series.BaseSeries, kPeriod, dPeriod int) *Stochastic {
	s := &Stochastic{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeStochastic),
		high:     b.High(),
		low:      b.Low(),
		close:    b.Close(),
		kPeriod:  series.NewBoundedFactor("k_period", float64(kPeriod), 1, 1, 100),
		dPeriod:  series.NewBoundedFactor("d_period", float64(dPeriod), 1, 1, 100),
	}
	s.k = s.Var("k")
	s.d = s.Var("d")
	s.Bind(s.computeSpot)

	return s
}

func (s *Stochastic) computeSpot(i int) {
	kPeriod := s.kPeriod.Int()
	dPeriod := s.dPeriod.Int()

	if i < kPeriod-1 {
		s.k.Set(i, series.Null)
		s.d.Set(i, series.Null)

		return
	}

	hh := highest(s.high, i, kPeriod)
	ll := lowest(s.low, i, kPeriod)

	if hh == ll {
		s.k.Set(i, 50)
	} else {
		s.k.Set(i, 100*(s.close.At(i)-ll)/(hh-ll))
	}

	if i < kPeriod-1+dPeriod-1 {
		s.d.Set(i, series.Null)

		return
	}

	sum := 0.0
	for j := i - dPeriod + 1; j <= i; j++ {
		sum += s.k.At(j)
	}

	s.d.Set(i, sum/float64(dPeriod))
}

// KValue computes up to idx and returns %K there.
func (s *Stochastic) KValue(sessionID int64, idx int) float64 {
	s.ComputeTo(sessionID, idx)

	return s.k.At(idx)
}

// DValue computes up to idx and returns %D there.
func (s *Stochastic) DValue(sessionID int64, idx int) float64 {
	s.ComputeTo(sessionID, idx)

	return s.d.At(idx)
}

// Outputs implements Indicator.
func (s *Stochastic) Outputs() []*series.TVar {
	return []*series.TVar{s.k, s.d}
}
