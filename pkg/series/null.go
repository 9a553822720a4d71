package series

import "math"

// Null is the sentinel stored in a column slot that has no applicable value,
// e.g. inside an indicator's warm-up window. It is distinct from zero and
// propagates through arithmetic, so readers must check IsNull explicitly.
var Null = math.NaN()

// IsNull reports whether v is the Null sentinel.
func IsNull(v float64) bool {
	return math.IsNaN(v)
}
