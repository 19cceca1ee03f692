package expr

import (
	"fmt"
	"math"
)

// Functions lists the elementary functions the parser accepts.
var Functions = map[string]bool{
	"sin":  true,
	"cos":  true,
	"tan":  true,
	"log":  true,
	"exp":  true,
	"sqrt": true,
}

// named constants
var constants = map[string]float64{
	"e":  math.E,
	"pi": math.Pi,
}

// Parse parses an expression in x.
//
// Grammar (lowest to highest precedence):
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ ("**" | "^") unary ]
//	primary = number | "x" | "e" | "pi" | func "(" expr ")" | "(" expr ")"
//
// Power is right-associative and binds tighter than a leading sign, so
// -x**2 is -(x**2) and 2**-1 is 2**(-1).
func Parse(input string) (Node, error) {
	toks, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{input: input, toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
	return n, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) Node {
	n, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return n
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok token, format string, args ...any) error {
	return &SyntaxError{Input: p.input, Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op BinaryOp
		switch p.peek().kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		default:
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) unary() (Node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		child, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpNeg, Child: child}, nil
	case tokPlus:
		p.next()
		child, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: OpPos, Child: child}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *parser) primary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return &Const{Val: tok.num}, nil
	case tokIdent:
		if tok.text == "x" {
			return &Var{}, nil
		}
		if v, ok := constants[tok.text]; ok {
			return &Const{Val: v}, nil
		}
		if !Functions[tok.text] {
			return nil, fmt.Errorf("%w: %q at %d", ErrUnknownName, tok.text, tok.pos)
		}
		if p.peek().kind != tokLParen {
			return nil, p.errorf(p.peek(), "expected ( after %s", tok.text)
		}
		p.next()
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return &Call{Func: tok.text, Arg: arg}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return n, nil
	case tokEOF:
		return nil, p.errorf(tok, "unexpected end of input")
	default:
		return nil, p.errorf(tok, "unexpected %q", tok.text)
	}
}

func (p *parser) expect(kind tokenKind) error {
	tok := p.next()
	if tok.kind != kind {
		if tok.kind == tokEOF {
			return p.errorf(tok, "unexpected end of input, missing )")
		}
		return p.errorf(tok, "expected ), got %q", tok.text)
	}
	return nil
}
