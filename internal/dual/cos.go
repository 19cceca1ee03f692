package dual

import "math"

// Cos returns cos(a).
//
// Since d(cos(x))/dx = -sin(x): tangent = -sin(a)·a'.
func Cos[T Float](a Number[T]) Number[T] {
	s, c := math.Sincos(float64(a.value))
	return Number[T]{value: T(c), tangent: T(-s * float64(a.tangent))}
}
