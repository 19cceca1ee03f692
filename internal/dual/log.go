package dual

import "math"

// Log returns the natural logarithm ln(a).
//
// Tangent: a' / a.
//
// Log is only defined for a > 0. Non-positive values return ErrDomain
// instead of the NaN or -Inf produced by math.Log.
func Log[T Float](a Number[T]) (Number[T], error) {
	if a.value <= 0 {
		return Number[T]{}, domainErr("log", a.value)
	}
	return Number[T]{
		value:   T(math.Log(float64(a.value))),
		tangent: a.tangent / a.value,
	}, nil
}
