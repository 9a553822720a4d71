// Package indicator implements technical indicators as incrementally
// computed, memoized functions over a shared series time axis.
//
// Indicators are obtained through the base-series registry (the Shared*
// constructors), so two callers requesting the same kind with the same
// parameters observe the same function instance and its computation runs
// once per session. Values inside an indicator's warm-up window read back
// as the series.Null sentinel.
package indicator

import (
	"github.com/rxtech-lab/argo-series/internal/types"
	"github.com/rxtech-lab/argo-series/pkg/series"
)

// Indicator is the common surface of an indicator function: forcing
// computation and reading its named output columns.
type Indicator interface {
	ComputeTo(sessionID int64, targetIdx int)
	ComputeAll(sessionID int64)
	Kind() types.IndicatorType
	Outputs() []*series.TVar
}

// highest returns the maximum of v over the window [i-period+1, i].
func highest(v *series.TVar, i, period int) float64 {
	max := v.At(i)
	for j := i - period + 1; j < i; j++ {
		if x := v.At(j); x > max {
			max = x
		}
	}

	return max
}

// lowest returns the minimum of v over the window [i-period+1, i].
func lowest(v *series.TVar, i, period int) float64 {
	min := v.At(i)
	for j := i - period + 1; j < i; j++ {
		if x := v.At(j); x < min {
			min = x
		}
	}

	return min
}
