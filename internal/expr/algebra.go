package expr

import (
	"fmt"
	"math"

	"github.com/born-ml/dualdiff/internal/dual"
)

// Algebra is the arithmetic an expression tree is evaluated in.
//
// Scalar operands are passed separately from values of V so that an algebra
// can apply dedicated formulas when one side is a constant. For dual numbers
// s - a, s / a and s ** a are distinct derivative rules, not swapped operands.
type Algebra[V any] interface {
	// Const lifts a constant into the algebra.
	Const(c float64) V
	// Var returns the independent variable evaluated at x.
	Var(x float64) V
	Unary(op UnaryOp, a V) (V, error)
	Binary(op BinaryOp, a, b V) (V, error)
	// ScalarLeft computes s op b.
	ScalarLeft(op BinaryOp, s float64, b V) (V, error)
	// ScalarRight computes a op s.
	ScalarRight(op BinaryOp, a V, s float64) (V, error)
	Call(fn string, a V) (V, error)
}

// Eval evaluates n at x in the given algebra.
//
// Sub-expressions that do not depend on x are folded to float64 first and
// passed to the algebra as scalars.
func Eval[V any](n Node, alg Algebra[V], x float64) (V, error) {
	var zero V
	switch n := n.(type) {
	case *Const:
		return alg.Const(n.Val), nil
	case *Var:
		return alg.Var(x), nil
	case *Unary:
		v, err := Eval(n.Child, alg, x)
		if err != nil {
			return zero, err
		}
		return alg.Unary(n.Op, v)
	case *Binary:
		return evalBinary(n, alg, x)
	case *Call:
		v, err := Eval(n.Arg, alg, x)
		if err != nil {
			return zero, err
		}
		return alg.Call(n.Func, v)
	default:
		return zero, fmt.Errorf("expr: unsupported node %T", n)
	}
}

func evalBinary[V any](n *Binary, alg Algebra[V], x float64) (V, error) {
	var zero V
	leftConst, rightConst := !HasVar(n.Left), !HasVar(n.Right)

	switch {
	case leftConst && rightConst:
		l, err := Eval[float64](n.Left, Float{}, x)
		if err != nil {
			return zero, err
		}
		r, err := Eval[float64](n.Right, Float{}, x)
		if err != nil {
			return zero, err
		}
		s, err := Float{}.Binary(n.Op, l, r)
		if err != nil {
			return zero, err
		}
		return alg.Const(s), nil
	case leftConst:
		s, err := Eval[float64](n.Left, Float{}, x)
		if err != nil {
			return zero, err
		}
		b, err := Eval(n.Right, alg, x)
		if err != nil {
			return zero, err
		}
		return alg.ScalarLeft(n.Op, s, b)
	case rightConst:
		a, err := Eval(n.Left, alg, x)
		if err != nil {
			return zero, err
		}
		s, err := Eval[float64](n.Right, Float{}, x)
		if err != nil {
			return zero, err
		}
		return alg.ScalarRight(n.Op, a, s)
	}

	a, err := Eval(n.Left, alg, x)
	if err != nil {
		return zero, err
	}
	b, err := Eval(n.Right, alg, x)
	if err != nil {
		return zero, err
	}
	return alg.Binary(n.Op, a, b)
}

// Float evaluates expressions with plain float64 arithmetic.
//
// It reports the same failures as the dual algebra (division by zero,
// logarithm of a non-positive value, ...) so both evaluations agree on
// which inputs are valid.
type Float struct{}

func (Float) Const(c float64) float64 { return c }
func (Float) Var(x float64) float64   { return x }

func (Float) Unary(op UnaryOp, a float64) (float64, error) {
	if op == OpNeg {
		return -a, nil
	}
	return a, nil
}

func (f Float) Binary(op BinaryOp, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		if b == 0 {
			return 0, opError("div", b, dual.ErrDivisionByZero)
		}
		return a / b, nil
	case OpPow:
		if a == 0 && b < 0 {
			return 0, opError("pow", a, dual.ErrDivisionByZero)
		}
		if a < 0 && b != math.Trunc(b) {
			return 0, opError("pow", a, dual.ErrDomain)
		}
		return math.Pow(a, b), nil
	default:
		return 0, fmt.Errorf("expr: unsupported operator %v", op)
	}
}

func (f Float) ScalarLeft(op BinaryOp, s, b float64) (float64, error) {
	return f.Binary(op, s, b)
}

func (f Float) ScalarRight(op BinaryOp, a, s float64) (float64, error) {
	return f.Binary(op, a, s)
}

func (Float) Call(fn string, a float64) (float64, error) {
	switch fn {
	case "sin":
		return math.Sin(a), nil
	case "cos":
		return math.Cos(a), nil
	case "tan":
		if math.Cos(a) == 0 {
			return 0, opError("tan", a, dual.ErrDomain)
		}
		return math.Tan(a), nil
	case "exp":
		return math.Exp(a), nil
	case "log":
		if a <= 0 {
			return 0, opError("log", a, dual.ErrDomain)
		}
		return math.Log(a), nil
	case "sqrt":
		if a < 0 {
			return 0, opError("sqrt", a, dual.ErrDomain)
		}
		return math.Sqrt(a), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownName, fn)
	}
}

// Dual evaluates expressions with dual numbers, seeding x with tangent 1.
type Dual struct{}

// D is the value type of the Dual algebra.
type D = dual.Number[float64]

func (Dual) Const(c float64) D { return dual.Constant(c) }
func (Dual) Var(x float64) D   { return dual.Variable(x) }

func (Dual) Unary(op UnaryOp, a D) (D, error) {
	if op == OpNeg {
		return a.Neg(), nil
	}
	return a.Pos(), nil
}

func (Dual) Binary(op BinaryOp, a, b D) (D, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		return a.Div(b)
	case OpPow:
		return a.Pow(b)
	default:
		return D{}, fmt.Errorf("expr: unsupported operator %v", op)
	}
}

func (Dual) ScalarLeft(op BinaryOp, s float64, b D) (D, error) {
	switch op {
	case OpAdd:
		return dual.ScalarAdd(s, b), nil
	case OpSub:
		return dual.ScalarSub(s, b), nil
	case OpMul:
		return dual.ScalarMul(s, b), nil
	case OpDiv:
		return dual.ScalarDiv(s, b)
	case OpPow:
		return dual.ScalarPow(s, b)
	default:
		return D{}, fmt.Errorf("expr: unsupported operator %v", op)
	}
}

func (Dual) ScalarRight(op BinaryOp, a D, s float64) (D, error) {
	switch op {
	case OpAdd:
		return a.AddScalar(s), nil
	case OpSub:
		return a.SubScalar(s), nil
	case OpMul:
		return a.MulScalar(s), nil
	case OpDiv:
		return a.DivScalar(s)
	case OpPow:
		return a.PowScalar(s)
	default:
		return D{}, fmt.Errorf("expr: unsupported operator %v", op)
	}
}

func (Dual) Call(fn string, a D) (D, error) {
	switch fn {
	case "sin":
		return dual.Sin(a), nil
	case "cos":
		return dual.Cos(a), nil
	case "tan":
		return dual.Tan(a)
	case "exp":
		return dual.Exp(a), nil
	case "log":
		return dual.Log(a)
	case "sqrt":
		return dual.Sqrt(a)
	default:
		return D{}, fmt.Errorf("%w: %q", ErrUnknownName, fn)
	}
}

// EvalDual evaluates n at x with dual numbers and returns f(x) and f'(x).
func EvalDual(n Node, x float64) (value, derivative float64, err error) {
	d, err := Eval[D](n, Dual{}, x)
	if err != nil {
		return 0, 0, err
	}
	return d.Value(), d.Tangent(), nil
}

func opError(op string, v float64, err error) error {
	return &dual.OpError{Op: op, Value: v, Err: err}
}
