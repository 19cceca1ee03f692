// Package expr parses, evaluates and differentiates single-variable expressions.
//
// Expressions are built over the variable x using numbers, + - * / and ** (or ^),
// unary signs, parentheses and the functions sin, cos, tan, log, exp and sqrt.
// One parsed tree can be evaluated over any Algebra: plain floats, dual numbers,
// or anything else that implements the arithmetic.
//
// The package also provides a symbolic differentiator (Diff) and a random
// expression generator used to cross-check dual-number derivatives.
package expr

import (
	"strconv"
	"strings"
)

// Node is an expression tree node.
type Node interface {
	String() string
	Depth() int
	NodeCount() int
}

// UnaryOp identifies a unary operation.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
)

// BinaryOp identifies a binary operation.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var binarySymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "**",
}

// String returns the operator symbol.
func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binarySymbols) {
		return "?"
	}
	return binarySymbols[op]
}

// String returns the operator symbol.
func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "+"
}

// Const is a numeric literal.
type Const struct {
	Val float64
}

// Var is the independent variable x.
type Var struct{}

// Unary applies a sign to a child expression.
type Unary struct {
	Op    UnaryOp
	Child Node
}

// Binary applies an arithmetic operator to two child expressions.
type Binary struct {
	Op          BinaryOp
	Left, Right Node
}

// Call applies a named elementary function to its argument.
type Call struct {
	Func string
	Arg  Node
}

func (c *Const) String() string {
	s := strconv.FormatFloat(c.Val, 'g', -1, 64)
	if c.Val < 0 {
		return "(" + s + ")"
	}
	return s
}

func (c *Const) Depth() int     { return 1 }
func (c *Const) NodeCount() int { return 1 }

func (*Var) String() string { return "x" }
func (*Var) Depth() int     { return 1 }
func (*Var) NodeCount() int { return 1 }

func (u *Unary) String() string {
	return "(" + u.Op.String() + u.Child.String() + ")"
}

func (u *Unary) Depth() int     { return 1 + u.Child.Depth() }
func (u *Unary) NodeCount() int { return 1 + u.Child.NodeCount() }

func (b *Binary) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(b.Left.String())
	sb.WriteByte(' ')
	sb.WriteString(b.Op.String())
	sb.WriteByte(' ')
	sb.WriteString(b.Right.String())
	sb.WriteByte(')')
	return sb.String()
}

func (b *Binary) Depth() int     { return 1 + max(b.Left.Depth(), b.Right.Depth()) }
func (b *Binary) NodeCount() int { return 1 + b.Left.NodeCount() + b.Right.NodeCount() }

func (c *Call) String() string { return c.Func + "(" + c.Arg.String() + ")" }
func (c *Call) Depth() int     { return 1 + c.Arg.Depth() }
func (c *Call) NodeCount() int { return 1 + c.Arg.NodeCount() }

// HasVar reports whether n depends on x.
func HasVar(n Node) bool {
	switch n := n.(type) {
	case *Var:
		return true
	case *Const:
		return false
	case *Unary:
		return HasVar(n.Child)
	case *Binary:
		return HasVar(n.Left) || HasVar(n.Right)
	case *Call:
		return HasVar(n.Arg)
	default:
		return false
	}
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Const:
		o, ok := b.(*Const)
		return ok && a.Val == o.Val
	case *Var:
		_, ok := b.(*Var)
		return ok
	case *Unary:
		o, ok := b.(*Unary)
		return ok && a.Op == o.Op && Equal(a.Child, o.Child)
	case *Binary:
		o, ok := b.(*Binary)
		return ok && a.Op == o.Op && Equal(a.Left, o.Left) && Equal(a.Right, o.Right)
	case *Call:
		o, ok := b.(*Call)
		return ok && a.Func == o.Func && Equal(a.Arg, o.Arg)
	default:
		return false
	}
}
