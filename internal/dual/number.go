// Package dual implements dual numbers for forward-mode automatic differentiation.
//
// A Number carries a value together with its derivative (the tangent) with
// respect to a single independent variable. Each operation applies the chain
// rule in closed form, so evaluating a function on Variable(x) yields f(x)
// and f'(x) in one pass.
//
// Supported operations:
//   - Add, Sub, Mul, Div: arithmetic with another Number or a scalar
//   - ScalarAdd, ScalarSub, ScalarMul, ScalarDiv, ScalarPow: scalar on the left
//   - Pow, PowScalar: power rule and the general f^g rule
//   - Exp, Log, Sin, Cos, Tan, Sqrt: elementary functions
//
// Numbers are immutable values. Every operation returns a new Number and
// never touches its operands, so they are safe to share between goroutines.
package dual

import (
	"fmt"
	"math"
)

// Float is a constraint for the scalar types a Number can be built on.
type Float interface {
	~float32 | ~float64
}

// Number is a dual number value + tangent·ε with ε² = 0.
//
// Type Parameters:
//   - T: scalar type (float32 or float64)
//
// Example:
//
//	x := dual.Variable(2.0)          // (2, 1)
//	y := x.Mul(x).AddScalar(1)       // x² + 1
//	fmt.Println(y.Value(), y.Tangent()) // 5 4
type Number[T Float] struct {
	value   T
	tangent T
}

// New creates a Number from a value and its tangent.
func New[T Float](value, tangent T) Number[T] {
	return Number[T]{value: value, tangent: tangent}
}

// Variable seeds the independent variable at x (tangent 1).
func Variable[T Float](x T) Number[T] {
	return Number[T]{value: x, tangent: 1}
}

// Constant wraps c as a Number whose derivative is zero.
func Constant[T Float](c T) Number[T] {
	return Number[T]{value: c}
}

// Value returns the primal value.
func (a Number[T]) Value() T {
	return a.value
}

// Tangent returns the derivative carried alongside the value.
func (a Number[T]) Tangent() T {
	return a.tangent
}

// Equal reports whether both components match exactly.
func (a Number[T]) Equal(b Number[T]) bool {
	return a.value == b.value && a.tangent == b.tangent
}

// ApproxEqual reports whether both components differ by at most tol.
func (a Number[T]) ApproxEqual(b Number[T], tol T) bool {
	return math.Abs(float64(a.value-b.value)) <= float64(tol) &&
		math.Abs(float64(a.tangent-b.tangent)) <= float64(tol)
}

// IsFinite reports whether neither component is NaN or infinite.
func (a Number[T]) IsFinite() bool {
	return isFinite(a.value) && isFinite(a.tangent)
}

// String formats the number as "value+tangentε".
func (a Number[T]) String() string {
	return fmt.Sprintf("%g%+gε", float64(a.value), float64(a.tangent))
}

// Neg returns -a: value -a, tangent -a'.
func (a Number[T]) Neg() Number[T] {
	return Number[T]{value: -a.value, tangent: -a.tangent}
}

// Pos returns a unchanged (unary plus).
func (a Number[T]) Pos() Number[T] {
	return a
}

func isFinite[T Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
