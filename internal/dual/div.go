package dual

// Div returns a / b.
//
// Quotient rule: (a/b)' = (a'·b - a·b') / b².
// Returns ErrDivisionByZero when b's value is zero, whatever its tangent.
func (a Number[T]) Div(b Number[T]) (Number[T], error) {
	if b.value == 0 {
		return Number[T]{}, divByZero("div", b.value)
	}
	return Number[T]{
		value:   a.value / b.value,
		tangent: (a.tangent*b.value - a.value*b.tangent) / (b.value * b.value),
	}, nil
}

// DivScalar returns a / s.
func (a Number[T]) DivScalar(s T) (Number[T], error) {
	if s == 0 {
		return Number[T]{}, divByZero("div", s)
	}
	return Number[T]{value: a.value / s, tangent: a.tangent / s}, nil
}

// ScalarDiv returns s / a.
//
// Tangent: -s·a' / a².
func ScalarDiv[T Float](s T, a Number[T]) (Number[T], error) {
	if a.value == 0 {
		return Number[T]{}, divByZero("div", a.value)
	}
	return Number[T]{
		value:   s / a.value,
		tangent: -s * a.tangent / (a.value * a.value),
	}, nil
}
