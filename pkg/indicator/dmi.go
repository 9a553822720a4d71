package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// DMI computes Wilder's Directional Movement family: +DI, -DI and DX. It
// keeps the raw and smoothed directional movement in working columns and
// shares the TR function with ATR through the registry. ADX smooths the DX
// column of a shared DMI instance.
type DMI struct {
	*series.Function

	high   *series.TVar
	low    *series.TVar
	tr     *TR
	period series.Factor

	dmPlus  *series.TVar
	dmMinus *series.TVar
	sdmPlus *series.TVar
	sdmMin  *series.TVar
	str     *series.TVar
	diPlus  *series.TVar
	diMinus *series.TVar
	dx      *series.TVar
}

// SharedDMI returns the registry instance of DMI(period).
func SharedDMI(b *series.BaseSeries, period int) *DMI {
	key := series.Key(types.IndicatorTypeDMI, period)

	return series.Shared(b, key, func() *DMI {
		return NewDMI(b, period)
	})
}

// NewDMI creates an unshared DMI instance.
func NewDMI(b *series.BaseSeries, period int) *DMI {
	d := &DMI{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeDMI),
		high:     b.High(),
		low:      b.Low(),
		tr:       SharedTR(b),
		period:   series.NewBoundedFactor("period", float64(period), 2, 1, 100),
	}
	d.dmPlus = d.Var("dm_plus")
	d.dmMinus = d.Var("dm_minus")
	d.sdmPlus = d.Var("sdm_plus")
	d.sdmMin = d.Var("sdm_minus")
	d.str = d.Var("smoothed_tr")
	d.diPlus = d.Var("di_plus")
	d.diMinus = d.Var("di_minus")
	d.dx = d.Var("dx")
	d.Bind(d.computeSpot)
	d.DependsOn(d.tr.Function)

	return d
}

func (d *DMI) computeSpot(i int) {
	period := d.period.Int()

	// Raw directional movement needs one bar of history.
	if i == 0 {
		d.dmPlus.Set(i, 0)
		d.dmMinus.Set(i, 0)
	} else {
		upMove := d.high.At(i) - d.high.At(i-1)
		downMove := d.low.At(i-1) - d.low.At(i)

		dmPlus := 0.0
		dmMinus := 0.0

		if upMove > downMove && upMove > 0 {
			dmPlus = upMove
		}

		if downMove > upMove && downMove > 0 {
			dmMinus = downMove
		}

		d.dmPlus.Set(i, dmPlus)
		d.dmMinus.Set(i, dmMinus)
	}

	switch {
	case i < period:
		d.sdmPlus.Set(i, series.Null)
		d.sdmMin.Set(i, series.Null)
		d.str.Set(i, series.Null)
		d.diPlus.Set(i, series.Null)
		d.diMinus.Set(i, series.Null)
		d.dx.Set(i, series.Null)

		return
	case i == period:
		sumPlus := 0.0
		sumMinus := 0.0
		sumTR := 0.0

		for j := 1; j <= period; j++ {
			sumPlus += d.dmPlus.At(j)
			sumMinus += d.dmMinus.At(j)
			sumTR += d.tr.Out().At(j)
		}

		d.sdmPlus.Set(i, sumPlus)
		d.sdmMin.Set(i, sumMinus)
		d.str.Set(i, sumTR)
	default:
		n := float64(period)
		d.sdmPlus.Set(i, d.sdmPlus.At(i-1)-d.sdmPlus.At(i-1)/n+d.dmPlus.At(i))
		d.sdmMin.Set(i, d.sdmMin.At(i-1)-d.sdmMin.At(i-1)/n+d.dmMinus.At(i))
		d.str.Set(i, d.str.At(i-1)-d.str.At(i-1)/n+d.tr.Out().At(i))
	}

	str := d.str.At(i)
	if str == 0 {
		d.diPlus.Set(i, 0)
		d.diMinus.Set(i, 0)
		d.dx.Set(i, 0)

		return
	}

	diPlus := 100 * d.sdmPlus.At(i) / str
	diMinus := 100 * d.sdmMin.At(i) / str
	d.diPlus.Set(i, diPlus)
	d.diMinus.Set(i, diMinus)

	if sum := diPlus + diMinus; sum == 0 {
		d.dx.Set(i, 0)
	} else {
		d.dx.Set(i, 100*math.Abs(diPlus-diMinus)/sum)
	}
}

// DIPlusValue computes up to idx and returns +DI there.
func (d *DMI) DIPlusValue(sessionID int64, idx int) float64 {
	d.ComputeTo(sessionID, idx)

	return d.diPlus.At(idx)
}

// DIMinusValue computes up to idx and returns -DI there.
func (d *DMI) DIMinusValue(sessionID int64, idx int) float64 {
	d.ComputeTo(sessionID, idx)

	return d.diMinus.At(idx)
}

// DXValue computes up to idx and returns DX there.
func (d *DMI) DXValue(sessionID int64, idx int) float64 {
	d.ComputeTo(sessionID, idx)

	return d.dx.At(idx)
}

// DX returns the DX column, consumed by ADX.
func (d *DMI) DX() *series.TVar {
	return d.dx
}

// Outputs implements Indicator.
func (d *DMI) Outputs() []*series.TVar {
	return []*series.TVar{d.diPlus, d.diMinus, d.dx}
}
