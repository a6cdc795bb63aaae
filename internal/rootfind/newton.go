package rootfind

// NewtonSolver — метод Ньютона–Рафсона, производная передаётся извне
type NewtonSolver struct {
	Derivative Func
}

func (NewtonSolver) Method() Method { return MethodNewton }

// SolveGuess итерирует x1 = x0 - f(x0)/f'(x0) из g.X0.
// f'(x0) == 0 немедленно прекращает запуск без корня. Если x1 == 0, проверка
// сходимости на этой итерации пропускается. Исчерпание бюджета — корня нет.
func (n NewtonSolver) SolveGuess(f Func, g Guess, tol Tolerance) (Solution, error) {
	var sol Solution
	if n.Derivative == nil {
		return sol, ErrNoDerivative
	}

	x0 := g.X0
	for k := 1; k <= tol.MaxIter; k++ {
		fx, err := eval(f, x0)
		if err != nil {
			return sol, err
		}
		dfx, err := evalDerivative(n.Derivative, x0)
		if err != nil {
			return sol, err
		}
		if dfx == 0 {
			return Solution{Trace: sol.Trace}, nil
		}

		x1 := x0 - fx/dfx
		rec := Record{
			Step:     k,
			Init0:    g.X0,
			X0:       x0,
			F0:       fx,
			DF:       dfx,
			Estimate: x1,
			Remark:   RemarkNextIteration,
		}
		ea, ok := relErr(x1, x0)
		if ok {
			rec.RelErr = ptr(ea)
		}
		if ok && ea < tol.Tol {
			rec.Remark = RemarkRootFound
			sol.Trace = append(sol.Trace, rec)
			sol.Root, sol.Found = x1, true
			return sol, nil
		}
		sol.Trace = append(sol.Trace, rec)
		x0 = x1
	}
	return sol, nil
}
