package rootfind

import "fmt"

// Значения по умолчанию для всех методов
const (
	DefaultTol          = 1e-5
	DefaultMaxIter      = 100
	DefaultStep         = 0.5
	DefaultSecantStep   = 0.5
	DefaultDx           = 0.001
	DefaultResolution   = 1000
	DefaultGraphicalTol = 1e-6
)

// Params — настраиваемые параметры методов
type Params struct {
	Tol          float64 `json:"tol"`
	MaxIter      int     `json:"maxIter"`
	Step         float64 `json:"step"`
	SecantStep   float64 `json:"secantStep"`
	Dx           float64 `json:"dx"`
	Resolution   int     `json:"resolution"`
	GraphicalTol float64 `json:"graphicalTol"`
	Workers      int     `json:"workers"`
}

func DefaultParams() Params {
	return Params{
		Tol:          DefaultTol,
		MaxIter:      DefaultMaxIter,
		Step:         DefaultStep,
		SecantStep:   DefaultSecantStep,
		Dx:           DefaultDx,
		Resolution:   DefaultResolution,
		GraphicalTol: DefaultGraphicalTol,
		Workers:      1,
	}
}

func (p Params) tolerance() Tolerance {
	return Tolerance{Tol: p.Tol, MaxIter: p.MaxIter}
}

func (p Params) scan(step float64) ScanOptions {
	return ScanOptions{Step: step, Tolerance: p.tolerance(), Workers: p.Workers}
}

func Incremental(f Func, iv Interval, p Params) (Result, error) {
	return IncrementalSearch(f, iv, p.Dx)
}

func Graphical(f Func, iv Interval, p Params) (Result, error) {
	return GraphicalSearch(f, iv, p.Resolution, p.GraphicalTol)
}

func Bisection(f Func, iv Interval, p Params) (Result, error) {
	return ScanBrackets(f, iv, BisectionSolver{}, p.scan(p.Step))
}

func RegulaFalsi(f Func, iv Interval, p Params) (Result, error) {
	return ScanBrackets(f, iv, RegulaFalsiSolver{}, p.scan(p.Step))
}

// Newton запускает метод из каждого узла сетки начальных приближений
func Newton(f, df Func, iv Interval, p Params) (Result, error) {
	if df == nil {
		return Result{}, ErrNoDerivative
	}
	guesses, err := SingleGuesses(iv, p.Step)
	if err != nil {
		return Result{}, err
	}
	return ScanGuesses(f, guesses, NewtonSolver{Derivative: df}, p.scan(p.Step))
}

// Secant запускает метод на каждой паре соседних узлов сетки с шагом SecantStep
func Secant(f Func, iv Interval, p Params) (Result, error) {
	guesses, err := GuessPairs(iv, p.SecantStep)
	if err != nil {
		return Result{}, err
	}
	return ScanGuesses(f, guesses, SecantSolver{}, p.scan(p.SecantStep))
}

// Solve выбирает метод по имени; df нужна только для Ньютона
func Solve(m Method, f, df Func, iv Interval, p Params) (Result, error) {
	switch m {
	case MethodGraphical:
		return Graphical(f, iv, p)
	case MethodIncremental:
		return Incremental(f, iv, p)
	case MethodBisection:
		return Bisection(f, iv, p)
	case MethodFalsePos:
		return RegulaFalsi(f, iv, p)
	case MethodNewton:
		return Newton(f, df, iv, p)
	case MethodSecant:
		return Secant(f, iv, p)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, m)
}
