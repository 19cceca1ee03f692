// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides dual numbers for forward-mode automatic differentiation.
//
// A dual number carries a value and its derivative (tangent) with respect to one
// independent variable. Seed the variable with tangent 1, run the computation
// with dual numbers instead of floats, and read f'(x) from the result.
//
// Example:
//
//	import "github.com/born-ml/dualdiff/dual"
//
//	func main() {
//	    x := dual.Variable(2.0)
//
//	    // f(x) = x·sin(x) + 3
//	    y := x.Mul(dual.Sin(x)).AddScalar(3)
//
//	    fmt.Println(y.Value())   // f(2)
//	    fmt.Println(y.Tangent()) // f'(2) = sin(2) + 2cos(2)
//	}
//
// Operations that can fail (division, powers, logarithms) return an error
// wrapping ErrDivisionByZero or ErrDomain instead of producing Inf or NaN.
package dual

import "github.com/born-ml/dualdiff/internal/dual"

// Float is the constraint for scalar types (float32, float64).
type Float = dual.Float

// Number is a value paired with its tangent.
type Number[T Float] = dual.Number[T]

// Func is a function of one dual variable.
type Func[T Float] = dual.Func[T]

// OpError describes a failed operation.
type OpError = dual.OpError

// Errors returned by failing operations.
var (
	ErrDivisionByZero = dual.ErrDivisionByZero
	ErrDomain         = dual.ErrDomain
)

// New creates a Number from a value and tangent.
func New[T Float](value, tangent T) Number[T] {
	return dual.New(value, tangent)
}

// Variable seeds the independent variable at x.
//
// Example:
//
//	x := dual.Variable(2.0) // value 2, tangent 1
func Variable[T Float](x T) Number[T] {
	return dual.Variable(x)
}

// Constant creates a Number with zero tangent.
func Constant[T Float](c T) Number[T] {
	return dual.Constant(c)
}

// Derivative returns f(x) and f'(x).
func Derivative[T Float](f Func[T], x T) (value, derivative T, err error) {
	return dual.Derivative(f, x)
}

// ScalarAdd returns s + a.
func ScalarAdd[T Float](s T, a Number[T]) Number[T] {
	return dual.ScalarAdd(s, a)
}

// ScalarSub returns s - a.
func ScalarSub[T Float](s T, a Number[T]) Number[T] {
	return dual.ScalarSub(s, a)
}

// ScalarMul returns s * a.
func ScalarMul[T Float](s T, a Number[T]) Number[T] {
	return dual.ScalarMul(s, a)
}

// ScalarDiv returns s / a.
func ScalarDiv[T Float](s T, a Number[T]) (Number[T], error) {
	return dual.ScalarDiv(s, a)
}

// ScalarPow returns s^a.
func ScalarPow[T Float](s T, a Number[T]) (Number[T], error) {
	return dual.ScalarPow(s, a)
}

// Exp returns e^a.
func Exp[T Float](a Number[T]) Number[T] {
	return dual.Exp(a)
}

// Log returns ln(a).
func Log[T Float](a Number[T]) (Number[T], error) {
	return dual.Log(a)
}

// Sin returns sin(a).
func Sin[T Float](a Number[T]) Number[T] {
	return dual.Sin(a)
}

// Cos returns cos(a).
func Cos[T Float](a Number[T]) Number[T] {
	return dual.Cos(a)
}

// Tan returns tan(a).
func Tan[T Float](a Number[T]) (Number[T], error) {
	return dual.Tan(a)
}

// Sqrt returns √a.
func Sqrt[T Float](a Number[T]) (Number[T], error) {
	return dual.Sqrt(a)
}
