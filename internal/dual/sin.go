package dual

import "math"

// Sin returns sin(a).
//
// Since d(sin(x))/dx = cos(x): tangent = cos(a)·a'.
func Sin[T Float](a Number[T]) Number[T] {
	s, c := math.Sincos(float64(a.value))
	return Number[T]{value: T(s), tangent: T(c * float64(a.tangent))}
}
