package dual

// Mul returns a * b.
//
// Product rule: (ab)' = a·b' + a'·b.
func (a Number[T]) Mul(b Number[T]) Number[T] {
	return Number[T]{
		value:   a.value * b.value,
		tangent: a.value*b.tangent + a.tangent*b.value,
	}
}

// MulScalar returns a * s.
func (a Number[T]) MulScalar(s T) Number[T] {
	return Number[T]{value: a.value * s, tangent: a.tangent * s}
}

// ScalarMul returns s * a.
func ScalarMul[T Float](s T, a Number[T]) Number[T] {
	return Number[T]{value: s * a.value, tangent: s * a.tangent}
}
