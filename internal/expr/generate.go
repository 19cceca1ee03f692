package expr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
)

// TermKind selects the shape of a generated term.
type TermKind int

const (
	// KindNumber is a plain non-zero integer.
	KindNumber TermKind = iota + 1
	// KindVariable is x, optionally scaled and multiplied by another term.
	KindVariable
	// KindFunction is sin, cos or log applied to a nested term.
	KindFunction
	// KindSum is a sum of 1-4 random terms.
	KindSum
	// KindPolynomial is a polynomial in x of degree 1-2 with a constant.
	KindPolynomial
)

// exp is left out: it overflows for most of the sampled domain.
var generatorFunctions = []string{"sin", "cos", "log"}

// maxTermDepth bounds nesting; deeper terms fall back to complexity 0.
const maxTermDepth = 8

var signReplacer = strings.NewReplacer("+-", "-", "--", "+")

// Generator produces random expressions in x.
//
// Complexity of a term ranges from 0 to 3:
//   - 0: plain number, variable or function of a variable
//   - 1: adds a numeric coefficient (functions take a polynomial argument)
//   - 2: multiplies by a nested variable term (functions nest a function)
//   - 3: multiplies by a nested function term (functions take a sum)
//
// The output is deterministic for a given seed.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Rand returns the generator's random source.
func (g *Generator) Rand() *rand.Rand {
	return g.rng
}

// Expression joins length random terms with random + - * / operators.
func (g *Generator) Expression(length int) string {
	delimiters := [...]string{"+", "-", "*", "/"}

	var sb strings.Builder
	for i := 0; i < length; i++ {
		if i > 0 {
			sb.WriteString(delimiters[g.rng.IntN(len(delimiters))])
		}
		sb.WriteString(g.Term(g.rng.IntN(3), g.baseKind()))
	}
	return signReplacer.Replace(sb.String())
}

// Term generates a single term of the given complexity and kind.
func (g *Generator) Term(complexity int, kind TermKind) string {
	return g.term(complexity, kind, 0)
}

func (g *Generator) term(complexity int, kind TermKind, depth int) string {
	if depth >= maxTermDepth {
		complexity = 0
	}

	switch kind {
	case KindNumber:
		return strconv.Itoa(g.coefficient())

	case KindVariable:
		s := "x"
		if complexity > 0 {
			s = strconv.Itoa(g.coefficient()) + "*x"
		}
		switch complexity {
		case 2:
			s += "*" + g.term(g.rng.IntN(2), KindVariable, depth+1)
		case 3:
			s += "*" + g.term(g.rng.IntN(2), KindFunction, depth+1)
		}
		return s

	case KindFunction:
		fn := generatorFunctions[g.rng.IntN(len(generatorFunctions))]
		var arg string
		switch complexity {
		case 0:
			arg = g.term(g.rng.IntN(2), KindVariable, depth+1)
		case 1:
			arg = g.term(g.rng.IntN(2), KindPolynomial, depth+1)
		case 2:
			arg = g.term(3*g.rng.IntN(2), KindFunction, depth+1)
		default:
			arg = g.term(3*g.rng.IntN(2), KindSum, depth+1)
		}
		return fn + "(" + arg + ")"

	case KindSum:
		parts := make([]string, 1+g.rng.IntN(4))
		for i := range parts {
			parts[i] = g.term(g.rng.IntN(3), g.baseKind(), depth+1)
		}
		return strings.Join(parts, "+")

	case KindPolynomial:
		degree := 2 + g.rng.IntN(2)
		parts := make([]string, 0, degree)
		for i := 1; i < degree; i++ {
			parts = append(parts, fmt.Sprintf("%d*x**%d", g.coefficient(), i))
		}
		parts = append(parts, strconv.Itoa(g.rng.IntN(20)-10))
		return strings.Join(parts, "+")

	default:
		panic(fmt.Sprintf("expr: unknown term kind %d", kind))
	}
}

func (g *Generator) baseKind() TermKind {
	return KindNumber + TermKind(g.rng.IntN(3))
}

// coefficient returns a non-zero integer in [-10, 10].
func (g *Generator) coefficient() int {
	v := g.rng.IntN(20) - 10
	if v >= 0 {
		v++
	}
	return v
}

// GenerateOptions controls Generate.
type GenerateOptions struct {
	MinTerms int // Fewest terms per expression
	MaxTerms int // Most terms per expression
	Domain   DomainOptions
}

// DefaultGenerateOptions returns 4-6 terms per expression and the default domain check.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		MinTerms: 4,
		MaxTerms: 6,
		Domain:   DefaultDomainOptions(),
	}
}

// Generate makes count attempts and returns the expressions that pass the domain check.
//
// Expressions with no valid sample point, or whose check runs past the time
// budget, are dropped, so fewer than count expressions may be returned.
func (g *Generator) Generate(ctx context.Context, count int, opts GenerateOptions) ([]string, error) {
	if opts.MinTerms < 1 || opts.MaxTerms < opts.MinTerms {
		return nil, fmt.Errorf("expr: invalid term range [%d, %d]", opts.MinTerms, opts.MaxTerms)
	}

	accepted := make([]string, 0, count)
	for i := 0; i < count; i++ {
		s := g.Expression(opts.MinTerms + g.rng.IntN(opts.MaxTerms-opts.MinTerms+1))

		n, err := Parse(s)
		if err != nil {
			return nil, fmt.Errorf("generated unparsable expression %q: %w", s, err)
		}

		ok, err := HasDomain(ctx, n, opts.Domain)
		switch {
		case errors.Is(err, ErrBudgetExceeded):
			slog.Debug("rejected expression", "expr", s, "reason", "budget")
			continue
		case err != nil:
			return nil, err
		case !ok:
			slog.Debug("rejected expression", "expr", s, "reason", "empty domain")
			continue
		}

		accepted = append(accepted, s)
	}

	slog.Info("generated expressions", "attempts", count, "accepted", len(accepted))
	return accepted, nil
}
