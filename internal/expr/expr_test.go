package expr

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rootfind/internal/rootfind"
)

func TestParseAndEval(t *testing.T) {
	tests := []struct {
		expr string
		x    float64
		want float64
	}{
		{"x**3 - 6*x**2 + 11*x - 6", 4, 6},
		{"x^2 - 4", 3, 5},
		{"sin(x) + cos(0)", 0, 1},
		{"exp(x) - e", 1, 0},
		{"pow(x, 3)", 2, 8},
		{"sqrt(abs(x))", -9, 3},
		{"ln(x) - log(x)", 2, 0},
		{"x * pi", 1, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			f, err := Parse(tt.expr)
			require.NoError(t, err)
			got, err := f.Eval(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.Equal(t, tt.expr, f.String())
		})
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	for _, src := range []string{"", "   ", "x +", "y * 2", "foo(x)"} {
		_, err := Parse(src)
		assert.Error(t, err, src)
	}
}

func TestEvalNonFiniteIsError(t *testing.T) {
	f, err := Parse("1 / x")
	require.NoError(t, err)
	_, err = f.Eval(0)
	assert.ErrorIs(t, err, ErrNotFinite)

	g, err := Parse("log(x)")
	require.NoError(t, err)
	_, err = g.Eval(-1)
	assert.ErrorIs(t, err, ErrNotFinite)
}

func TestEvalErrorSurfacesThroughSolver(t *testing.T) {
	f, err := Parse("log(x)")
	require.NoError(t, err)
	_, err = rootfind.Bisection(f, rootfind.Interval{Low: -1, High: 2}, rootfind.DefaultParams())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFinite))
}

func TestEvalIsSafeForConcurrentUse(t *testing.T) {
	f, err := Parse("x**2")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(x float64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				y, err := f.Eval(x)
				if assert.NoError(t, err) {
					assert.Equal(t, x*x, y)
				}
			}
		}(float64(i))
	}
	wg.Wait()
}

func TestDerivative(t *testing.T) {
	f, err := Parse("x**3 - 6*x**2 + 11*x - 6")
	require.NoError(t, err)

	explicit, err := Derivative("3*x**2 - 12*x + 11", f)
	require.NoError(t, err)
	numeric, err := Derivative("", f)
	require.NoError(t, err)

	for _, x := range []float64{-2, 0, 1.5, 4} {
		want := 3*x*x - 12*x + 11
		got, err := explicit.Eval(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)

		got, err = numeric.Eval(x)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-4)
	}

	// симметричная разность даёт точный ноль в вершине параболы
	q, err := Parse("x**2 - 4")
	require.NoError(t, err)
	dq, err := Derivative("", q)
	require.NoError(t, err)
	v, err := dq.Eval(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, v)
}

func TestNewtonWithParsedFunctions(t *testing.T) {
	f, err := Parse("x**2 - 4")
	require.NoError(t, err)
	df, err := Derivative("", f)
	require.NoError(t, err)

	res, err := rootfind.Newton(f, df, rootfind.Interval{Low: -5, High: 5}, rootfind.DefaultParams())
	require.NoError(t, err)
	require.Len(t, res.Roots, 2)
	assert.InDelta(t, -2, res.Roots[0].Value, 1e-6)
	assert.InDelta(t, 2, res.Roots[1].Value, 1e-6)
}

func TestSample(t *testing.T) {
	f, err := Parse("1 / x")
	require.NoError(t, err)
	pts := Sample(f, rootfind.Interval{Low: -1, High: 1}, 3)
	require.Len(t, pts, 3)
	assert.Equal(t, []float64{-1, 0, 1}, []float64{pts[0].X, pts[1].X, pts[2].X})
	require.NotNil(t, pts[0].Y)
	assert.Equal(t, -1.0, *pts[0].Y)
	assert.Nil(t, pts[1].Y)
}
