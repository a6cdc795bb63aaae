package rootfind

// SecantSolver — метод секущих, производная не нужна
type SecantSolver struct{}

func (SecantSolver) Method() Method { return MethodSecant }

// SolveGuess итерирует x2 = x1 - f(x1)(x1-x0)/(f(x1)-f(x0)) из пары (g.X0, g.X1).
// Нулевой знаменатель прерывает запуск без корня. В отличие от Ньютона, при
// исчерпании бюджета возвращается последнее x2 как наилучшая оценка.
func (SecantSolver) SolveGuess(f Func, g Guess, tol Tolerance) (Solution, error) {
	var sol Solution
	x0, x1 := g.X0, g.X1
	var x2 float64
	for k := 1; k <= tol.MaxIter; k++ {
		fx0, err := eval(f, x0)
		if err != nil {
			return sol, err
		}
		fx1, err := eval(f, x1)
		if err != nil {
			return sol, err
		}
		den := fx1 - fx0
		if den == 0 {
			return Solution{Trace: sol.Trace}, nil
		}

		x2 = x1 - fx1*(x1-x0)/den
		rec := Record{
			Step:     k,
			Init0:    g.X0,
			Init1:    g.X1,
			X0:       x0,
			X1:       x1,
			F0:       fx0,
			F1:       fx1,
			Estimate: x2,
			Remark:   RemarkNextIteration,
		}
		ea, ok := relErr(x2, x1)
		if ok {
			rec.RelErr = ptr(ea)
		}
		if ok && ea < tol.Tol {
			rec.Remark = RemarkRootFound
			sol.Trace = append(sol.Trace, rec)
			sol.Root, sol.Found = x2, true
			return sol, nil
		}
		sol.Trace = append(sol.Trace, rec)
		x0, x1 = x1, x2
	}

	if len(sol.Trace) > 0 && finite(x2) {
		sol.Root, sol.Found = x2, true
	}
	return sol, nil
}
