package expr

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasDomain(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"x**2", true},
		{"log(x)", true},
		{"sqrt(x - 5)", true},
		{"log(-x**2 - 1)", false},
		{"sqrt(-1 - x**2)", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ok, err := HasDomain(context.Background(), MustParse(tt.input), smallDomain())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestHasDomain_ConstantDivisor(t *testing.T) {
	opts := DomainOptions{Min: 1, Max: 2, Samples: 2}
	ok, err := HasDomain(context.Background(), MustParse("x/3"), opts)
	require.NoError(t, err)
	assert.True(t, ok)

	x, err := PickPoint(context.Background(), rand.New(rand.NewPCG(1, 2)), MustParse("x/3 + 5/7"), opts)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, x, 0.5)
	assert.LessOrEqual(t, x, 2.5)
}

func TestSampleDomain_Points(t *testing.T) {
	opts := DomainOptions{Min: -2, Max: 2, Samples: 5}
	points, err := SampleDomain(context.Background(), MustParse("log(x)"), opts)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, points)
}

func TestSampleDomain_Budget(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := SampleDomain(ctx, MustParse("x"), smallDomain())
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestSampleDomain_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SampleDomain(ctx, MustParse("x"), smallDomain())
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrBudgetExceeded)
}

func TestPickPoint(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	for _, in := range []string{"log(x)", "sqrt(x - 5)", "1/x", "x**x"} {
		n := MustParse(in)
		for i := 0; i < 20; i++ {
			x, err := PickPoint(context.Background(), rng, n, smallDomain())
			require.NoError(t, err, in)
			assert.True(t, ValidAt(n, Diff(n), x), "%s at %v", in, x)
		}
	}
}

func TestPickPoint_EmptyDomain(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	_, err := PickPoint(context.Background(), rng, MustParse("log(-1 - x**2)"), smallDomain())
	assert.ErrorIs(t, err, ErrEmptyDomain)
}
