package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// BollingerBands computes the middle, upper and lower bands over a source
// column. The middle band is the shared MA of the window and the width
// comes from the shared StdDev of the same window, so every other
// indicator using that MA or deviation reuses one computation per session.
type BollingerBands struct {
	*series.Function

	ma     *MA
	stdDev *StdDev
	width  series.Factor

	middle *series.TVar
	upper  *series.TVar
	lower  *series.TVar
}

// SharedBollingerBands returns the registry instance of
// BollingerBands(src, period, width).
func SharedBollingerBands(b *series.BaseSeries, src *series.TVar, period int, width float64) *BollingerBands {
	key := series.Key(types.IndicatorTypeBollingerBands, src.Name(), period, width)

	return series.Shared(b, key, func() *BollingerBands {
		return NewBollingerBands(b, src, period, width)
	})
}

// NewBollingerBands creates an unshared BollingerBands instance.
func NewBollingerBands(b *series.BaseSeries, src *series.TVar, period int, width float64) *BollingerBands {
	bb := &BollingerBands{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeBollingerBands),
		ma:       SharedMA(b, src, period),
		stdDev:   SharedStdDev(b, src, period),
		width:    series.NewBoundedFactor("width", width, 0.5, 0.5, 5),
	}
	bb.middle = bb.Var("middle")
	bb.upper = bb.Var("upper")
	bb.lower = bb.Var("lower")
	bb.Bind(bb.computeSpot)
	bb.DependsOn(bb.ma.Function, bb.stdDev.Function)

	return bb
}

func (bb *BollingerBands) computeSpot(i int) {
	mean := bb.ma.Out().At(i)
	dev := bb.stdDev.Out().At(i)

	if series.IsNull(mean) || series.IsNull(dev) {
		bb.middle.Set(i, series.Null)
		bb.upper.Set(i, series.Null)
		bb.lower.Set(i, series.Null)

		return
	}

	band := bb.width.Value * dev
	bb.middle.Set(i, mean)
	bb.upper.Set(i, mean+band)
	bb.lower.Set(i, mean-band)
}

// MiddleValue computes up to idx and returns the middle band there.
func (bb *BollingerBands) MiddleValue(sessionID int64, idx int) float64 {
	bb.ComputeTo(sessionID, idx)

	return bb.middle.At(idx)
}

// UpperValue computes up to idx and returns the upper band there.
func (bb *BollingerBands) UpperValue(sessionID int64, idx int) float64 {
	bb.ComputeTo(sessionID, idx)

	return bb.upper.At(idx)
}

// LowerValue computes up to idx and returns the lower band there.
func (bb *BollingerBands) LowerValue(sessionID int64, idx int) float64 {
	bb.ComputeTo(sessionID, idx)

	return bb.lower.At(idx)
}

// Outputs implements Indicator.
func (bb *BollingerBands) Outputs() []*series.TVar {
	return []*series.TVar{bb.middle, bb.upper, bb.lower}
}
