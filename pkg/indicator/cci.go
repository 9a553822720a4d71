package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// CCI computes the Commodity Channel Index over the typical price
// (high+low+close)/3, kept in a working column so the window statistics
// stay re-runnable per index.
type CCI struct {
	*series.Function

	high   *series.TVar
	low    *series.TVar
	close  *series.TVar
	period series.Factor

	tp  *series.TVar
	out *series.TVar
}

// SharedCCI returns the registry instance of CCI(period).
func SharedCCI(b *series.BaseSeries, period int) *CCI {
	key := series.Key(types.IndicatorTypeCCI, period)

	return series.Shared(b, key, func() *CCI {
		return NewCCI(b, period)
	})
}

// NewCCI creates an unshared CCI instance.
func NewCCI(b *series.BaseSeries, period int) *CCI {
	c := &CCI{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeCCI),
		high:     b.High(),
		low:      b.Low(),
		close:    b.Close(),
		period:   series.NewBoundedFactor("period", float64(period), 2, 1, 100),
	}
	c.tp = c.Var("typical_price")
	c.out = c.Var("cci")
	c.Bind(c.computeSpot)

	return c
}

func (c *CCI) computeSpot(i int) {
	c.tp.Set(i, (c.high.At(i)+c.low.At(i)+c.close.At(i))/3)

	period := c.period.Int()
	if i < period-1 {
		c.out.Set(i, series.Null)

		return
	}

	sum := 0.0
	for j := i - period + 1; j <= i; j++ {
		sum += c.tp.At(j)
	}

	mean := sum / float64(period)

	dev := 0.0
	for j := i - period + 1; j <= i; j++ {
		dev += math.Abs(c.tp.At(j) - mean)
	}

	dev /= float64(period)
	if dev == 0 {
		c.out.Set(i, 0)

		return
	}

	c.out.Set(i, (c.tp.At(i)-mean)/(0.015*dev))
}

// Value computes up to idx and returns the CCI there.
func (c *CCI) Value(sessionID int64, idx int) float64 {
	c.ComputeTo(sessionID, idx)

	return c.out.At(idx)
}

// Outputs implements Indicator.
func (c *CCI) Outputs() []*series.TVar {
	return []*series.TVar{c.out}
}
