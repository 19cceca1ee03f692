package dual

// Add returns a + b.
//
// Tangent: a' + b'.
func (a Number[T]) Add(b Number[T]) Number[T] {
	return Number[T]{value: a.value + b.value, tangent: a.tangent + b.tangent}
}

// AddScalar returns a + s. The scalar contributes no tangent.
func (a Number[T]) AddScalar(s T) Number[T] {
	return Number[T]{value: a.value + s, tangent: a.tangent}
}

// ScalarAdd returns s + a.
func ScalarAdd[T Float](s T, a Number[T]) Number[T] {
	return Number[T]{value: s + a.value, tangent: a.tangent}
}
