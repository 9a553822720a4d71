package series

// Factor is an immutable named numeric parameter of an indicator function,
// e.g. a period length. Min, Max and Step are presentation metadata for
// hosts that expose tunable parameters; the engine only reads Value.
// Factors take part in a function's registry identity.
type Factor struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// NewFactor creates a factor carrying only a value.
func NewFactor(name string, value float64) Factor {
	return Factor{
		Name:  name,
		Value: value,
	}
}

// NewBoundedFactor creates a factor with UI range metadata.
func NewBoundedFactor(name string, value, min, step, max float64) Factor {
	return Factor{
		Name:  name,
		Value: value,
		Min:   min,
		Max:   max,
		Step:  step,
	}
}

// Int returns the value truncated to an int, convenient for period factors.
func (f Factor) Int() int {
	return int(f.Value)
}
