package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// ZigZag marks reversal pivots on the close column: a pivot at index p is
// committed only once price has moved against it by at least the reversal
// fraction at some later index. The pivot column therefore depends on the
// future, which makes ZigZag the one lookahead formula in the package: a
// read at idx goes through ComputeUntil and keeps extending the
// computation until the pivot state at idx is confirmed (or the axis runs
// out). Plain ComputeTo stays causal and only maintains the per-index
// reversal state.
//
// All reversal state (direction, running extreme, last confirmed pivot) is
// kept in columns indexed by bar, so re-evaluating the tail index after a
// forming-bar update reproduces the same state instead of double-applying
// it. Committing a pivot writes to the pivot column at a past index, so
// each bar also records which pivot it committed (commitIdx); a re-run of
// that bar retracts the old pivot before deciding again, keeping the spot
// idempotent when the forming bar is rewritten. A tentative extreme at the
// axis tail is never committed to the pivot column; it becomes a pivot
// only when a later bar confirms the reversal. The first leg anchors at
// the first bar of the series.
type ZigZag struct {
	*series.Function

	close    *series.TVar
	reversal series.Factor

	dir       *series.TVar
	extIdx    *series.TVar
	extPrice  *series.TVar
	confirmed *series.TVar
	pivot     *series.TVar
	commitIdx *series.TVar
}

// SharedZigZag returns the registry instance of ZigZag(reversal).
func SharedZigZag(b *series.BaseSeries, reversal float64) *ZigZag {
	key := series.Key(types.IndicatorTypeZigZag, reversal)

	return series.Shared(b, key, func() *ZigZag {
		return NewZigZag(b, reversal)
	})
}

// NewZigZag creates an unshared ZigZag instance. reversal is the minimum
// counter-move fraction, e.g. 0.05 for 5%.
func NewZigZag(b *series.BaseSeries, reversal float64) *ZigZag {
	z := &ZigZag{
		Function: series.NewFunction(b.Axis(), types.IndicatorTypeZigZag),
		close:    b.Close(),
		reversal: series.NewBoundedFactor("reversal", reversal, 0.001, 0.001, 0.5),
	}
	z.dir = z.Var("dir")
	z.extIdx = z.Var("ext_idx")
	z.extPrice = z.Var("ext_price")
	z.confirmed = z.Var("confirmed")
	z.pivot = z.Var("pivot")
	z.commitIdx = z.Var("commit_idx")
	z.Bind(z.computeSpot)

	return z
}

func (z *ZigZag) computeSpot(i int) {
	if i == 0 {
		z.dir.Set(i, 0)
		z.extIdx.Set(i, 0)
		z.extPrice.Set(i, z.close.At(0))
		z.confirmed.Set(i, -1)
		z.commitIdx.Set(i, -1)

		return
	}

	// Undo whatever pivot this bar committed on an earlier evaluation: the
	// forming bar may have been rewritten since, and the decision below has
	// to be made from scratch.
	if prev := z.commitIdx.At(i); !series.IsNull(prev) && prev >= 0 {
		z.pivot.Set(int(prev), series.Null)
	}
	z.commitIdx.Set(i, -1)

	dir := z.dir.At(i - 1)
	extIdx := int(z.extIdx.At(i - 1))
	extPrice := z.extPrice.At(i - 1)
	confirmed := z.confirmed.At(i - 1)

	cur := z.close.At(i)
	pct := z.reversal.Value

	switch {
	case dir == 0:
		switch {
		case cur >= extPrice*(1+pct):
			z.pivot.Set(extIdx, extPrice)
			z.commitIdx.Set(i, float64(extIdx))
			confirmed = float64(extIdx)
			dir = 1
			extIdx = i
			extPrice = cur
		case cur <= extPrice*(1-pct):
			z.pivot.Set(extIdx, extPrice)
			z.commitIdx.Set(i, float64(extIdx))
			confirmed = float64(extIdx)
			dir = -1
			extIdx = i
			extPrice = cur
		}
	case dir > 0:
		switch {
		case cur > extPrice:
			extIdx = i
			extPrice = cur
		case cur <= extPrice*(1-pct):
			z.pivot.Set(extIdx, extPrice)
			z.commitIdx.Set(i, float64(extIdx))
			confirmed = float64(extIdx)
			dir = -1
			extIdx = i
			extPrice = cur
		}
	default:
		switch {
		case cur < extPrice:
			extIdx = i
			extPrice = cur
		case cur >= extPrice*(1+pct):
			z.pivot.Set(extIdx, extPrice)
			z.commitIdx.Set(i, float64(extIdx))
			confirmed = float64(extIdx)
			dir = 1
			extIdx = i
			extPrice = cur
		}
	}

	z.dir.Set(i, dir)
	z.extIdx.Set(i, float64(extIdx))
	z.extPrice.Set(i, extPrice)
	z.confirmed.Set(i, confirmed)
}

// Value extends the computation until the pivot state at idx is confirmed
// by a later reversal, then returns the pivot price at idx, or Null when
// idx is not a confirmed pivot. When the axis ends before confirmation the
// tentative state stays uncommitted and Null is returned.
func (z *ZigZag) Value(sessionID int64, idx int) float64 {
	z.ComputeUntil(sessionID, func(i int) bool {
		return z.confirmed.At(i) >= float64(idx)
	})

	return z.pivot.At(idx)
}

// ConfirmedThrough computes up to the axis end and returns the index of
// the last committed pivot, or -1.
func (z *ZigZag) ConfirmedThrough(sessionID int64) int {
	z.ComputeAll(sessionID)

	last := z.Axis().Size() - 1
	if last < 0 {
		return -1
	}

	return int(z.confirmed.At(last))
}

// Outputs implements Indicator.
func (z *ZigZag) Outputs() []*series.TVar {
	return []*series.TVar{z.pivot}
}
