package dual

import "math"

// PowScalar returns a^s for a constant exponent s.
//
// Power rule: (a^s)' = s·a^(s-1)·a'.
//
// A zero base with s < 1 has an unbounded derivative and returns
// ErrDivisionByZero. A negative base with a non-integer exponent has no
// real value and returns ErrDomain. a^0 is the constant 1.
func (a Number[T]) PowScalar(s T) (Number[T], error) {
	if s == 0 {
		return Number[T]{value: 1}, nil
	}
	if a.value == 0 && s < 1 {
		return Number[T]{}, divByZero("pow", a.value)
	}
	value, err := realPow(a.value, s)
	if err != nil {
		return Number[T]{}, err
	}
	coeff, err := realPow(a.value, s-1)
	if err != nil {
		return Number[T]{}, err
	}
	return Number[T]{value: value, tangent: s * coeff * a.tangent}, nil
}

// Pow returns a^b where both base and exponent carry tangents.
//
// General rule for f^g:
//
//	(a^b)' = b·a^(b-1)·a' + a^b·ln(a)·b'
//
// When b' is zero the logarithmic term vanishes and Pow behaves exactly
// like PowScalar(b.Value()). Otherwise the base must be positive for
// ln(a) to exist, and a non-positive base returns ErrDomain.
func (a Number[T]) Pow(b Number[T]) (Number[T], error) {
	if b.tangent == 0 {
		return a.PowScalar(b.value)
	}
	if a.value <= 0 {
		return Number[T]{}, domainErr("pow", a.value)
	}
	base, exp := float64(a.value), float64(b.value)
	value := math.Pow(base, exp)
	tangent := exp*math.Pow(base, exp-1)*float64(a.tangent) +
		value*math.Log(base)*float64(b.tangent)
	return Number[T]{value: T(value), tangent: T(tangent)}, nil
}

// ScalarPow returns s^a for a constant base s.
//
// Exponential rule: (s^a)' = s^a·ln(s)·a'.
//
// A non-positive base has no real logarithm and returns ErrDomain unless a
// carries no tangent, in which case the result is the constant s^a.
func ScalarPow[T Float](s T, a Number[T]) (Number[T], error) {
	if a.tangent == 0 {
		if s == 0 && a.value < 0 {
			return Number[T]{}, divByZero("pow", s)
		}
		value, err := realPow(s, a.value)
		if err != nil {
			return Number[T]{}, err
		}
		return Number[T]{value: value}, nil
	}
	if s <= 0 {
		return Number[T]{}, domainErr("pow", s)
	}
	value := math.Pow(float64(s), float64(a.value))
	return Number[T]{
		value:   T(value),
		tangent: T(value * math.Log(float64(s)) * float64(a.tangent)),
	}, nil
}

// realPow computes base^exp on the reals.
func realPow[T Float](base, exp T) (T, error) {
	b, e := float64(base), float64(exp)
	if b == 0 && e < 0 {
		return 0, divByZero("pow", base)
	}
	if b < 0 && e != math.Trunc(e) {
		return 0, domainErr("pow", base)
	}
	return T(math.Pow(b, e)), nil
}
