package dual

import "math"

// Exp returns e^a.
//
// Since (e^a)' = e^a·a', the tangent reuses the computed value.
func Exp[T Float](a Number[T]) Number[T] {
	v := math.Exp(float64(a.value))
	return Number[T]{value: T(v), tangent: T(v * float64(a.tangent))}
}
