// Package check compares dual-number derivatives against independent references.
//
// For every expression the Runner picks a valid evaluation point, computes
// f'(x) with dual numbers, and compares it with one or more references:
//   - Symbolic: the symbolically differentiated expression evaluated at x
//   - Numerical: a central finite difference with a small step
//
// Inputs that hit division by zero or a domain error are skipped rather than
// counted as failures.
package check

import (
	"fmt"
	"math"
	"strings"

	"github.com/born-ml/dualdiff/internal/expr"
)

// Method identifies a reference differentiation method.
type Method int

const (
	Symbolic Method = iota
	Numerical
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Symbolic:
		return "symbolic"
	case Numerical:
		return "numerical"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMethod parses a method name.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "symbolic":
		return Symbolic, nil
	case "numerical":
		return Numerical, nil
	default:
		return 0, fmt.Errorf("unknown method %q: must be symbolic or numerical", s)
	}
}

// Tolerance bounds the acceptable difference between two derivative estimates.
type Tolerance struct {
	Abs float64 // Absolute floor
	Rel float64 // Relative to the larger magnitude
}

// Bound returns the allowed difference between a and b.
func (t Tolerance) Bound(a, b float64) float64 {
	return math.Max(t.Abs, t.Rel*math.Max(math.Abs(a), math.Abs(b)))
}

// Within reports whether a and b agree within the tolerance.
func (t Tolerance) Within(a, b float64) bool {
	return math.Abs(a-b) <= t.Bound(a, b)
}

// Comparison is one derivative compared against one reference.
type Comparison struct {
	Method    Method  `json:"method"`
	Reference float64 `json:"reference"`
	Diff      float64 `json:"diff"`  // |dual - reference|
	Bound     float64 `json:"bound"` // Allowed difference
	Pass      bool    `json:"pass"`
}

// SymbolicDerivative evaluates the symbolic derivative of n at x.
func SymbolicDerivative(n expr.Node, x float64) (float64, error) {
	return expr.Eval[float64](expr.Diff(n), expr.Float{}, x)
}

// CentralDifference approximates f'(x) by (f(x+h) - f(x-h)) / 2h.
//
// It also returns the rounding error bound of the quotient, which grows with
// |f| / h and must be added to any tolerance.
func CentralDifference(n expr.Node, x, h float64) (deriv, roundoff float64, err error) {
	fPlus, err := expr.Eval[float64](n, expr.Float{}, x+h)
	if err != nil {
		return 0, 0, err
	}
	fMinus, err := expr.Eval[float64](n, expr.Float{}, x-h)
	if err != nil {
		return 0, 0, err
	}
	const eps = 0x1p-52
	roundoff = 4 * eps * math.Max(math.Abs(fPlus), math.Abs(fMinus)) / h
	return (fPlus - fMinus) / (2 * h), roundoff, nil
}

func compare(m Method, got, ref, slack float64, tol Tolerance) Comparison {
	diff := math.Abs(got - ref)
	bound := tol.Bound(got, ref) + slack
	return Comparison{
		Method:    m,
		Reference: ref,
		Diff:      diff,
		Bound:     bound,
		Pass:      diff <= bound,
	}
}
