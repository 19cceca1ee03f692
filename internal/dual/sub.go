package dual

// Sub returns a - b.
//
// Tangent: a' - b'.
func (a Number[T]) Sub(b Number[T]) Number[T] {
	return Number[T]{value: a.value - b.value, tangent: a.tangent - b.tangent}
}

// SubScalar returns a - s.
func (a Number[T]) SubScalar(s T) Number[T] {
	return Number[T]{value: a.value - s, tangent: a.tangent}
}

// ScalarSub returns s - a.
//
// Tangent: -a'. The derivative flips sign, unlike a - s.
func ScalarSub[T Float](s T, a Number[T]) Number[T] {
	return Number[T]{value: s - a.value, tangent: -a.tangent}
}
