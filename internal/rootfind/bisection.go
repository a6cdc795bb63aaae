package rootfind

import "math"

// BisectionSolver — метод половинного деления
type BisectionSolver struct{}

func (BisectionSolver) Method() Method { return MethodBisection }

// Admit сначала проверяет корни на концах, затем строгую смену знака
func (BisectionSolver) Admit(br Bracket, tol float64) Admission {
	switch {
	case math.Abs(br.FA) < tol:
		return AdmitRootAtStart
	case math.Abs(br.FB) < tol:
		return AdmitRootAtEnd
	case br.FA*br.FB < 0:
		return AdmitSolve
	}
	return AdmitSkip
}

// SolveBracket делит [A, B] пополам, пока полуширина больше допуска.
// Корень принимается при |f(c)| < tol или при сжатии отрезка до допуска;
// если бюджет итераций исчерпан раньше, корня нет.
func (BisectionSolver) SolveBracket(f Func, br Bracket, tol Tolerance) (Solution, error) {
	var sol Solution
	a, b, fa, fb := br.A, br.B, br.FA, br.FB
	if fa*fb > 0 {
		return sol, nil
	}

	k := 1
	for ; k <= tol.MaxIter && (b-a)/2 > tol.Tol; k++ {
		c := (a + b) / 2
		fc, err := eval(f, c)
		if err != nil {
			return sol, err
		}

		rec := Record{
			Step:      k,
			Bracket:   br.ID,
			X0:        a,
			X1:        b,
			F0:        fa,
			F1:        fb,
			Estimate:  c,
			FEstimate: fc,
		}
		switch {
		case math.Abs(fc) < tol.Tol:
			rec.Remark = RemarkRootFound
			sol.Trace = append(sol.Trace, rec)
			sol.Root, sol.Found = c, true
			return sol, nil
		case fa*fc < 0:
			b, fb = c, fc
			rec.Remark = RemarkFirstSub
		default:
			a, fa = c, fc
			rec.Remark = RemarkSecondSub
		}
		sol.Trace = append(sol.Trace, rec)
	}

	if (b-a)/2 > tol.Tol {
		return sol, nil
	}

	c := (a + b) / 2
	fc, err := eval(f, c)
	if err != nil {
		return sol, err
	}
	sol.Trace = append(sol.Trace, Record{
		Step:      k,
		Bracket:   br.ID,
		X0:        a,
		X1:        b,
		F0:        fa,
		F1:        fb,
		Estimate:  c,
		FEstimate: fc,
		Remark:    RemarkConverged,
	})
	sol.Root, sol.Found = c, true
	return sol, nil
}
