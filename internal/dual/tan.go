package dual

import "math"

// Tan returns tan(a).
//
// Since d(tan(x))/dx = 1/cos²(x): tangent = a'/cos²(a).
// Returns ErrDomain where cos(a) is exactly zero.
func Tan[T Float](a Number[T]) (Number[T], error) {
	s, c := math.Sincos(float64(a.value))
	if c == 0 {
		return Number[T]{}, domainErr("tan", a.value)
	}
	return Number[T]{value: T(s / c), tangent: T(float64(a.tangent) / (c * c))}, nil
}
