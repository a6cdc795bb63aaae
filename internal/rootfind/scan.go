package rootfind

import (
	"math"

	"golang.org/x/sync/errgroup"
)

// Bracket — подотрезок [A, B] со значениями функции на концах
type Bracket struct {
	ID int
	A  float64
	B  float64
	FA float64
	FB float64
}

// Guess — начальное приближение: X0 для Ньютона, пара (X0, X1) для секущих
type Guess struct {
	X0 float64
	X1 float64
}

// Solution — итог одного запуска на подотрезке или из одного приближения
type Solution struct {
	Root  float64
	Found bool
	Trace []Record
}

// Admission — решение сканера о том, что делать с подотрезком
type Admission int

const (
	AdmitSkip Admission = iota
	AdmitSolve
	AdmitRootAtStart
	AdmitRootAtEnd
)

// BracketSolver — метод, уточняющий корень внутри одного подотрезка
type BracketSolver interface {
	Method() Method
	// Admit решает по значениям на концах, запускать ли поиск
	Admit(br Bracket, tol float64) Admission
	SolveBracket(f Func, br Bracket, tol Tolerance) (Solution, error)
}

// GuessSolver — открытый метод, итерирующий из начального приближения
type GuessSolver interface {
	Method() Method
	SolveGuess(f Func, g Guess, tol Tolerance) (Solution, error)
}

// ScanOptions — параметры сканирования отрезка.
// При Workers > 1 подзадачи считаются параллельно, поэтому f должна быть
// безопасна для конкурентного вызова.
type ScanOptions struct {
	Step      float64
	Tolerance Tolerance
	Workers   int
}

type piece struct {
	roots []Root
	trace []Record
}

// ScanBrackets делит отрезок на подотрезки шириной Step и запускает решатель на каждом
func ScanBrackets(f Func, iv Interval, s BracketSolver, opts ScanOptions) (Result, error) {
	if err := iv.Validate(); err != nil {
		return Result{}, err
	}
	if err := opts.Tolerance.Validate(); err != nil {
		return Result{}, err
	}
	if err := validatePartition(iv, opts.Step); err != nil {
		return Result{}, err
	}

	var edges [][2]float64
	for i := 0; ; i++ {
		a := iv.Low + float64(i)*opts.Step
		if a >= iv.High {
			break
		}
		edges = append(edges, [2]float64{a, math.Min(a+opts.Step, iv.High)})
	}

	pieces, err := runJobs(len(edges), opts.Workers, func(i int) (piece, error) {
		return scanBracket(f, s, i+1, edges[i][0], edges[i][1], opts.Tolerance)
	})
	if err != nil {
		return Result{}, err
	}
	return merge(s.Method(), opts.Tolerance.Tol, pieces), nil
}

// scanBracket обрабатывает один подотрезок независимо от остальных.
// Строка "Root found at start/end" пишется всегда, даже если этот корень уже
// найден на соседнем подотрезке: повторы отсекает только merge, поэтому журнал
// содержит по строке на каждый общий узел сетки и не зависит от числа воркеров.
func scanBracket(f Func, s BracketSolver, id int, a, b float64, tol Tolerance) (piece, error) {
	fa, err := eval(f, a)
	if err != nil {
		return piece{}, err
	}
	fb, err := eval(f, b)
	if err != nil {
		return piece{}, err
	}
	br := Bracket{ID: id, A: a, B: b, FA: fa, FB: fb}
	src := Source{Index: id, A: a, B: b}
	row := Record{Bracket: id, X0: a, X1: b, F0: fa, F1: fb}

	switch s.Admit(br, tol.Tol) {
	case AdmitRootAtStart:
		row.Estimate, row.FEstimate, row.Remark = a, fa, RemarkRootAtStart
		return piece{roots: []Root{{Value: a, Source: src}}, trace: []Record{row}}, nil
	case AdmitRootAtEnd:
		row.Estimate, row.FEstimate, row.Remark = b, fb, RemarkRootAtEnd
		return piece{roots: []Root{{Value: b, Source: src}}, trace: []Record{row}}, nil
	case AdmitSolve:
		sol, err := s.SolveBracket(f, br, tol)
		if err != nil {
			return piece{}, err
		}
		p := piece{trace: sol.Trace}
		if sol.Found {
			p.roots = []Root{{Value: sol.Root, Source: src}}
		}
		return p, nil
	}

	mid := (a + b) / 2
	fm, err := eval(f, mid)
	if err != nil {
		return piece{}, err
	}
	row.Estimate, row.FEstimate, row.Remark = mid, fm, RemarkNoSignChange
	return piece{trace: []Record{row}}, nil
}

// ScanGuesses запускает открытый метод из каждого приближения независимо
func ScanGuesses(f Func, guesses []Guess, s GuessSolver, opts ScanOptions) (Result, error) {
	if err := opts.Tolerance.Validate(); err != nil {
		return Result{}, err
	}

	pieces, err := runJobs(len(guesses), opts.Workers, func(i int) (piece, error) {
		g := guesses[i]
		sol, err := s.SolveGuess(f, g, opts.Tolerance)
		if err != nil {
			return piece{}, err
		}
		p := piece{trace: sol.Trace}
		if sol.Found {
			p.roots = []Root{{Value: sol.Root, Source: Source{Index: i + 1, A: g.X0, B: g.X1}}}
		}
		return p, nil
	})
	if err != nil {
		return Result{}, err
	}
	return merge(s.Method(), opts.Tolerance.Tol, pieces), nil
}

// SingleGuesses — сетка начальных приближений low, low+step, ... включая high.
// Небольшой запас 1e-9 защищает последнюю точку от ошибок округления.
func SingleGuesses(iv Interval, step float64) ([]Guess, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if err := validatePartition(iv, step); err != nil {
		return nil, err
	}
	grid := arange(iv.Low, iv.High+1e-9, step)
	out := make([]Guess, len(grid))
	for i, x := range grid {
		out[i] = Guess{X0: x, X1: x}
	}
	return out, nil
}

// GuessPairs — пары соседних узлов сетки low, low+step, ... (high не входит)
func GuessPairs(iv Interval, step float64) ([]Guess, error) {
	if err := iv.Validate(); err != nil {
		return nil, err
	}
	if err := validatePartition(iv, step); err != nil {
		return nil, err
	}
	grid := arange(iv.Low, iv.High, step)
	if len(grid) < 2 {
		return nil, nil
	}
	out := make([]Guess, 0, len(grid)-1)
	for i := 0; i+1 < len(grid); i++ {
		out = append(out, Guess{X0: grid[i], X1: grid[i+1]})
	}
	return out, nil
}

// arange — узлы start + i·step для i < ceil((stop-start)/step)
func arange(start, stop, step float64) []float64 {
	n := int(math.Ceil((stop - start) / step))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

// runJobs выполняет n независимых подзадач. Результаты раскладываются по индексам,
// так что порядок не зависит от числа воркеров; при ошибках возвращается ошибка
// подзадачи с наименьшим индексом.
func runJobs(n, workers int, job func(i int) (piece, error)) ([]piece, error) {
	pieces := make([]piece, n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			p, err := job(i)
			if err != nil {
				return nil, err
			}
			pieces[i] = p
		}
		return pieces, nil
	}

	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			pieces[i], errs[i] = job(i)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pieces, nil
}

// merge склеивает журналы в порядке подотрезков и удаляет повторы корней последовательно
func merge(m Method, tol float64, pieces []piece) Result {
	agg := NewAggregator(tol)
	trace := make([]Record, 0, len(pieces))
	for _, p := range pieces {
		trace = append(trace, p.trace...)
		for _, r := range p.roots {
			agg.Add(r)
		}
	}
	return Result{Method: m, Roots: agg.Roots(), Trace: trace}
}
