package series

import (
	"github.com/rxtech-lab/argo-series/pkg/errors"
)

// TVar is a named float64 column aligned one-to-one with the indices of a
// TimeAxis. Slots that were never written read back as the Null sentinel.
//
// A TVar has a single owner (the base series for OHLCV columns, a Function
// for its working variables) that serializes writes; many functions may hold
// a read-only reference to the same column. The TVar itself does not lock:
// access is covered by the axis lock held around ComputeTo and appends.
type TVar struct {
	name   string
	axis   *TimeAxis
	values []float64
}

// NewTVar creates a column attached to the given axis.
func NewTVar(axis *TimeAxis, name string) *TVar {
	return &TVar{
		name: name,
		axis: axis,
	}
}

// Name returns the column name.
func (v *TVar) Name() string {
	return v.name
}

// At returns the value at index i, or Null when the slot was never written.
// Accessing an index outside [0, axis size) is a programmer error and
// panics with an ErrCodeIndexOutOfRange error, mirroring slice indexing.
func (v *TVar) At(i int) float64 {
	if n := v.axis.size(); i < 0 || i >= n {
		panic(errors.Newf(errors.ErrCodeIndexOutOfRange, "TVar %s: index %d out of range [0,%d)", v.name, i, n))
	}

	if i >= len(v.values) {
		return Null
	}

	return v.values[i]
}

// Set writes the value at index i, extending internal storage with Null
// fill as needed. The same range rule as At applies.
func (v *TVar) Set(i int, value float64) {
	if n := v.axis.size(); i < 0 || i >= n {
		panic(errors.Newf(errors.ErrCodeIndexOutOfRange, "TVar %s: index %d out of range [0,%d)", v.name, i, n))
	}

	v.grow(i + 1)
	v.values[i] = value
}

// grow extends the backing storage to n slots, filling new slots with Null.
func (v *TVar) grow(n int) {
	for len(v.values) < n {
		v.values = append(v.values, Null)
	}
}

// Values returns a copy of the column padded with Null up to the axis size.
func (v *TVar) Values() []float64 {
	n := v.axis.size()
	out := make([]float64, n)

	copy(out, v.values)

	for i := len(v.values); i < n; i++ {
		out[i] = Null
	}

	return out
}
