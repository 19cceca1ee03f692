package dual

import "math"

// Sqrt returns √a.
//
// Tangent: a' / (2√a). Negative values return ErrDomain. Zero has a finite
// value but an unbounded derivative and returns ErrDivisionByZero.
func Sqrt[T Float](a Number[T]) (Number[T], error) {
	if a.value < 0 {
		return Number[T]{}, domainErr("sqrt", a.value)
	}
	if a.value == 0 {
		return Number[T]{}, divByZero("sqrt", a.value)
	}
	r := math.Sqrt(float64(a.value))
	return Number[T]{value: T(r), tangent: T(float64(a.tangent) / (2 * r))}, nil
}
