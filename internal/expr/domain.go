package expr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// DomainOptions controls the sampled domain check.
type DomainOptions struct {
	Min, Max float64       // Sampled interval
	Samples  int           // Grid points, including both ends
	Budget   time.Duration // Zero means no limit
}

// DefaultDomainOptions samples [-1000, 1000] at unit steps within 5 seconds.
func DefaultDomainOptions() DomainOptions {
	return DomainOptions{
		Min:     -1000,
		Max:     1000,
		Samples: 2001,
		Budget:  5 * time.Second,
	}
}

func (o DomainOptions) step() float64 {
	if o.Samples < 2 {
		return 0
	}
	return (o.Max - o.Min) / float64(o.Samples-1)
}

// ValidAt reports whether n and its derivative d both evaluate to finite
// values at x.
func ValidAt(n, d Node, x float64) bool {
	v, err := Eval[float64](n, Float{}, x)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	dv, err := Eval[float64](d, Float{}, x)
	return err == nil && !math.IsNaN(dv) && !math.IsInf(dv, 0)
}

// SampleDomain returns the grid points at which n is valid.
//
// Returns ErrBudgetExceeded when the scan does not finish within
// opts.Budget.
func SampleDomain(ctx context.Context, n Node, opts DomainOptions) ([]float64, error) {
	if opts.Budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Budget)
		defer cancel()
	}

	d := Diff(n)
	samples := max(opts.Samples, 1)
	step := opts.step()

	var points []float64
	for i := 0; i < samples; i++ {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w after %d of %d samples", ErrBudgetExceeded, i, samples)
			}
			return nil, err
		}
		x := opts.Min + float64(i)*step
		if ValidAt(n, d, x) {
			points = append(points, x)
		}
	}
	return points, nil
}

// HasDomain reports whether n is valid at one or more sample points.
func HasDomain(ctx context.Context, n Node, opts DomainOptions) (bool, error) {
	points, err := SampleDomain(ctx, n, opts)
	if err != nil {
		return false, err
	}
	return len(points) > 0, nil
}

// PickPoint chooses a random valid evaluation point for n.
//
// A sample point is drawn at random and jittered within half a grid step,
// so points rarely land on integers where singularities tend to sit. If the
// jittered point is invalid, the sample point itself is returned.
func PickPoint(ctx context.Context, rng *rand.Rand, n Node, opts DomainOptions) (float64, error) {
	points, err := SampleDomain(ctx, n, opts)
	if err != nil {
		return 0, err
	}
	if len(points) == 0 {
		return 0, ErrEmptyDomain
	}

	p := points[rng.IntN(len(points))]
	x := p + (rng.Float64()-0.5)*opts.step()
	if ValidAt(n, Diff(n), x) {
		return x, nil
	}
	return p, nil
}
