package expr

import "fmt"

// Diff returns the symbolic derivative of n with respect to x.
//
// Rules:
//   - sum/difference: (u ± v)' = u' ± v'
//   - product: (uv)' = u'v + uv'
//   - quotient: (u/v)' = (u'v - uv') / v²
//   - power: constant exponent, constant base and the general f^g form
//   - chain rule for every elementary function
//
// The result is only lightly simplified (0 and 1 identities are folded).
// It panics on node types the parser never produces.
func Diff(n Node) Node {
	switch n := n.(type) {
	case *Const:
		return zero()
	case *Var:
		return one()
	case *Unary:
		d := Diff(n.Child)
		if n.Op == OpNeg {
			return neg(d)
		}
		return d
	case *Binary:
		return diffBinary(n)
	case *Call:
		return mul(diffCall(n.Func, n.Arg), Diff(n.Arg))
	default:
		panic(fmt.Sprintf("expr: cannot differentiate %T", n))
	}
}

func diffBinary(n *Binary) Node {
	u, v := n.Left, n.Right
	switch n.Op {
	case OpAdd:
		return add(Diff(u), Diff(v))
	case OpSub:
		return sub(Diff(u), Diff(v))
	case OpMul:
		return add(mul(Diff(u), v), mul(u, Diff(v)))
	case OpDiv:
		return div(sub(mul(Diff(u), v), mul(u, Diff(v))), pow(v, &Const{Val: 2}))
	case OpPow:
		switch {
		case !HasVar(v):
			// v·u^(v-1)·u'
			return mul(mul(v, pow(u, sub(v, one()))), Diff(u))
		case !HasVar(u):
			// u^v·ln(u)·v'
			return mul(mul(n, call("log", u)), Diff(v))
		default:
			// u^v·(v'·ln(u) + v·u'/u)
			return mul(n, add(mul(Diff(v), call("log", u)), div(mul(v, Diff(u)), u)))
		}
	default:
		panic(fmt.Sprintf("expr: cannot differentiate operator %v", n.Op))
	}
}

// diffCall returns f'(u) for the outer function f, without the u' factor.
func diffCall(fn string, u Node) Node {
	switch fn {
	case "sin":
		return call("cos", u)
	case "cos":
		return neg(call("sin", u))
	case "tan":
		return div(one(), pow(call("cos", u), &Const{Val: 2}))
	case "exp":
		return call("exp", u)
	case "log":
		return div(one(), u)
	case "sqrt":
		return div(one(), mul(&Const{Val: 2}, call("sqrt", u)))
	default:
		panic(fmt.Sprintf("expr: cannot differentiate %s", fn))
	}
}

func zero() Node { return &Const{Val: 0} }
func one() Node  { return &Const{Val: 1} }

func isConst(n Node, v float64) bool {
	c, ok := n.(*Const)
	return ok && c.Val == v
}

func add(a, b Node) Node {
	switch {
	case isConst(a, 0):
		return b
	case isConst(b, 0):
		return a
	}
	return &Binary{Op: OpAdd, Left: a, Right: b}
}

func sub(a, b Node) Node {
	switch {
	case isConst(b, 0):
		return a
	case isConst(a, 0):
		return neg(b)
	}
	if ca, ok := a.(*Const); ok {
		if cb, ok := b.(*Const); ok {
			return &Const{Val: ca.Val - cb.Val}
		}
	}
	return &Binary{Op: OpSub, Left: a, Right: b}
}

func mul(a, b Node) Node {
	switch {
	case isConst(a, 0), isConst(b, 0):
		return zero()
	case isConst(a, 1):
		return b
	case isConst(b, 1):
		return a
	}
	return &Binary{Op: OpMul, Left: a, Right: b}
}

func div(a, b Node) Node {
	switch {
	case isConst(a, 0):
		return zero()
	case isConst(b, 1):
		return a
	}
	return &Binary{Op: OpDiv, Left: a, Right: b}
}

func pow(a, b Node) Node {
	switch {
	case isConst(b, 0):
		return one()
	case isConst(b, 1):
		return a
	}
	return &Binary{Op: OpPow, Left: a, Right: b}
}

func neg(a Node) Node {
	if c, ok := a.(*Const); ok {
		return &Const{Val: -c.Val}
	}
	return &Unary{Op: OpNeg, Child: a}
}

func call(fn string, a Node) Node {
	return &Call{Func: fn, Arg: a}
}
