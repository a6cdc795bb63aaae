package rootfind

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubicRootsAllRefiningMethods(t *testing.T) {
	iv := Interval{Low: 0, High: 5}
	p := DefaultParams()

	tests := []struct {
		name string
		run  func() (Result, error)
	}{
		{"bisection", func() (Result, error) { return Bisection(cubic, iv, p) }},
		{"false_position", func() (Result, error) { return RegulaFalsi(cubic, iv, p) }},
		{"newton", func() (Result, error) { return Newton(cubic, dcubic, iv, p) }},
		{"secant", func() (Result, error) { return Secant(cubic, iv, p) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.run()
			require.NoError(t, err)
			assertRoots(t, []float64{1, 2, 3}, res.Values(), 1e-4)
			assertDistinct(t, res.Values(), p.Tol)
			assert.NotEmpty(t, res.Trace)
		})
	}
}

func TestQuadraticRoots(t *testing.T) {
	iv := Interval{Low: -5, High: 5}
	p := DefaultParams()

	for _, m := range []Method{MethodBisection, MethodFalsePos, MethodSecant, MethodNewton} {
		t.Run(string(m), func(t *testing.T) {
			res, err := Solve(m, quad, dquad, iv, p)
			require.NoError(t, err)
			assertRoots(t, []float64{-2, 2}, res.Values(), 1e-4)
		})
	}
}

func TestNewtonZeroDerivativeGuessContributesNothing(t *testing.T) {
	sol, err := NewtonSolver{Derivative: dquad}.SolveGuess(quad, Guess{X0: 0}, Tolerance{Tol: 1e-5, MaxIter: 100})
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.Empty(t, sol.Trace)

	// в полной сетке -5, -4.5, ..., 5 есть x0 = 0, остальные приближения сходятся
	res, err := Newton(quad, dquad, Interval{Low: -5, High: 5}, DefaultParams())
	require.NoError(t, err)
	for _, rec := range res.Trace {
		assert.NotEqual(t, 0.0, rec.Init0)
	}
	assertRoots(t, []float64{-2, 2}, res.Values(), 1e-6)
}

func TestNewtonSkipsStopCheckWhenEstimateIsZero(t *testing.T) {
	// из x0 = 1 для x^2+1 первый шаг даёт x1 = 0, затем f'(0) = 0
	sol, err := NewtonSolver{Derivative: dnoRoot}.SolveGuess(noRoot, Guess{X0: 1}, Tolerance{Tol: 1e-5, MaxIter: 100})
	require.NoError(t, err)
	assert.False(t, sol.Found)
	require.Len(t, sol.Trace, 1)
	assert.Nil(t, sol.Trace[0].RelErr)
	assert.Equal(t, 0.0, sol.Trace[0].Estimate)
}

func TestNonConvergencePolicyDiffersBetweenNewtonAndSecant(t *testing.T) {
	tol := Tolerance{Tol: 1e-5, MaxIter: 10}

	newton, err := NewtonSolver{Derivative: dnoRoot}.SolveGuess(noRoot, Guess{X0: 2}, tol)
	require.NoError(t, err)
	assert.False(t, newton.Found, "newton returns no root when the budget runs out")
	assert.Len(t, newton.Trace, 10)

	secant, err := SecantSolver{}.SolveGuess(noRoot, Guess{X0: 1, X1: 2}, tol)
	require.NoError(t, err)
	require.Len(t, secant.Trace, 10)
	assert.True(t, secant.Found, "secant keeps its last estimate")
	assert.Equal(t, secant.Trace[9].Estimate, secant.Root)
}

func TestSecantZeroDenominatorAborts(t *testing.T) {
	sol, err := SecantSolver{}.SolveGuess(quad, Guess{X0: -1, X1: 1}, Tolerance{Tol: 1e-5, MaxIter: 100})
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.Empty(t, sol.Trace)
}

func TestRegulaFalsiZeroDenominatorAborts(t *testing.T) {
	zero := FuncOf(func(float64) float64 { return 0 })
	res, err := RegulaFalsi(zero, Interval{Low: 0, High: 1}, DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, res.Roots)
	assert.Empty(t, res.Trace)
}

func TestBracketingMethodsStayInsideBracket(t *testing.T) {
	sqrt2 := FuncOf(func(x float64) float64 { return x*x - 2 })
	tol := Tolerance{Tol: 1e-5, MaxIter: 100}
	br := Bracket{ID: 1, A: 1, B: 1.5, FA: -1, FB: 0.25}

	for _, s := range []BracketSolver{BisectionSolver{}, RegulaFalsiSolver{}} {
		t.Run(string(s.Method()), func(t *testing.T) {
			sol, err := s.SolveBracket(sqrt2, br, tol)
			require.NoError(t, err)
			require.True(t, sol.Found)
			assert.GreaterOrEqual(t, sol.Root, br.A)
			assert.LessOrEqual(t, sol.Root, br.B)
			assert.InDelta(t, math.Sqrt2, sol.Root, 1e-4)
			for i, rec := range sol.Trace {
				assert.Equal(t, i+1, rec.Step)
				assert.Equal(t, 1, rec.Bracket)
			}
		})
	}
}

func TestBisectionAcceptsConvergedMidpoint(t *testing.T) {
	steep := FuncOf(func(x float64) float64 { return 1000 * (x - 0.3) })
	sol, err := BisectionSolver{}.SolveBracket(steep, Bracket{A: 0, B: 1, FA: -300, FB: 700}, Tolerance{Tol: 1e-5, MaxIter: 100})
	require.NoError(t, err)
	require.True(t, sol.Found)
	assert.InDelta(t, 0.3, sol.Root, 1e-5)
	assert.Equal(t, RemarkConverged, sol.Trace[len(sol.Trace)-1].Remark)
}

func TestBisectionDropsBracketWhenBudgetRunsOut(t *testing.T) {
	steep := FuncOf(func(x float64) float64 { return 1000 * (x - 0.3) })
	sol, err := BisectionSolver{}.SolveBracket(steep, Bracket{A: 0, B: 1, FA: -300, FB: 700}, Tolerance{Tol: 1e-5, MaxIter: 3})
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.Len(t, sol.Trace, 3)
	assert.Equal(t, RemarkFirstSub, sol.Trace[0].Remark)
	assert.Equal(t, RemarkSecondSub, sol.Trace[1].Remark)
	assert.Equal(t, RemarkFirstSub, sol.Trace[2].Remark)
}

func TestRegulaFalsiRelativeErrorAbsentOnFirstStep(t *testing.T) {
	sqrt2 := FuncOf(func(x float64) float64 { return x*x - 2 })
	sol, err := RegulaFalsiSolver{}.SolveBracket(sqrt2, Bracket{ID: 7, A: 0, B: 3, FA: -2, FB: 7}, Tolerance{Tol: 1e-5, MaxIter: 100})
	require.NoError(t, err)
	require.True(t, sol.Found)
	require.Greater(t, len(sol.Trace), 1)
	assert.Nil(t, sol.Trace[0].RelErr)
	assert.NotNil(t, sol.Trace[1].RelErr)
	last := sol.Trace[len(sol.Trace)-1]
	assert.Equal(t, RemarkRootFound, last.Remark)
	assert.Equal(t, 7, last.Bracket)
}

func TestNoSignChangeIsNotAnError(t *testing.T) {
	iv := Interval{Low: -1, High: 1}
	for _, m := range []Method{MethodBisection, MethodFalsePos} {
		t.Run(string(m), func(t *testing.T) {
			res, err := Solve(m, noRoot, nil, iv, DefaultParams())
			require.NoError(t, err)
			assert.Empty(t, res.Roots)
			require.Len(t, res.Trace, 4)
			for i, rec := range res.Trace {
				assert.Equal(t, RemarkNoSignChange, rec.Remark)
				assert.Equal(t, i+1, rec.Bracket)
			}
		})
	}
}

func TestBisectionEndpointRoots(t *testing.T) {
	res, err := Bisection(cubic, Interval{Low: 0, High: 5}, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, res.Values())

	var remarks []string
	for _, rec := range res.Trace {
		remarks = append(remarks, rec.Remark)
	}
	assert.Equal(t, []string{
		RemarkNoSignChange,
		RemarkRootAtEnd, RemarkRootAtStart,
		RemarkRootAtEnd, RemarkRootAtStart,
		RemarkRootAtEnd, RemarkRootAtStart,
		RemarkNoSignChange, RemarkNoSignChange, RemarkNoSignChange,
	}, remarks)
}

func TestEvaluationErrorPropagates(t *testing.T) {
	errDomain := errors.New("domain error")
	bad := FuncE(func(x float64) (float64, error) {
		if x > 1.2 {
			return math.NaN(), errDomain
		}
		return x - 1, nil
	})
	iv := Interval{Low: 0, High: 5}

	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			_, err := Solve(m, bad, FuncOf(func(float64) float64 { return 1 }), iv, DefaultParams())
			require.Error(t, err)
			assert.ErrorIs(t, err, errDomain)
		})
	}
}

func TestNewtonRequiresDerivative(t *testing.T) {
	_, err := Newton(quad, nil, Interval{Low: -1, High: 1}, DefaultParams())
	assert.ErrorIs(t, err, ErrNoDerivative)
}

func TestInvalidParameters(t *testing.T) {
	p := DefaultParams()
	_, err := Bisection(quad, Interval{Low: 1, High: 1}, p)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	bad := p
	bad.Tol = 0
	_, err = RegulaFalsi(quad, Interval{Low: 0, High: 1}, bad)
	assert.ErrorIs(t, err, ErrInvalidTolerance)

	bad = p
	bad.SecantStep = -1
	_, err = Secant(quad, Interval{Low: 0, High: 1}, bad)
	assert.ErrorIs(t, err, ErrInvalidStep)

	bad = p
	bad.Resolution = 1
	_, err = Graphical(quad, Interval{Low: 0, High: 1}, bad)
	assert.ErrorIs(t, err, ErrInvalidResolution)

	_, err = Solve(Method("brent"), quad, nil, Interval{Low: 0, High: 1}, p)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
