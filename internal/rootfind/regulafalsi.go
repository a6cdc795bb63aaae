package rootfind

import "math"

// RegulaFalsiSolver — метод ложного положения (хорд)
type RegulaFalsiSolver struct{}

func (RegulaFalsiSolver) Method() Method { return MethodFalsePos }

// Admit — поиск запускается при смене знака или почти нулевом конце
func (RegulaFalsiSolver) Admit(br Bracket, tol float64) Admission {
	if br.FA*br.FB < 0 || math.Abs(br.FA) < tol || math.Abs(br.FB) < tol {
		return AdmitSolve
	}
	return AdmitSkip
}

// SolveBracket строит хорду c = b - f(b)(b-a)/(f(b)-f(a)) и заменяет конец
// того же знака, что f(c). Остановка при |f(c)| < tol либо, начиная со второй
// итерации, при относительном изменении c меньше tol процентов.
// Нулевой знаменатель прерывает поиск на этом подотрезке без корня.
func (RegulaFalsiSolver) SolveBracket(f Func, br Bracket, tol Tolerance) (Solution, error) {
	var sol Solution
	a, b, fa, fb := br.A, br.B, br.FA, br.FB
	if fa*fb > 0 {
		return sol, nil
	}

	var prev float64
	for k := 1; k <= tol.MaxIter; k++ {
		den := fb - fa
		if den == 0 {
			break
		}

		c := b - fb*(b-a)/den
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
		ea, hasEa := 0.0, false
		if k > 1 {
			ea, hasEa = relErr(c, prev)
		}
		if hasEa {
			rec.RelErr = ptr(ea)
		}

		if math.Abs(fc) < tol.Tol || (hasEa && ea < tol.Tol) {
			rec.Remark = RemarkRootFound
			sol.Trace = append(sol.Trace, rec)
			sol.Root, sol.Found = c, true
			return sol, nil
		}

		if fa*fc < 0 {
			b, fb = c, fc
			rec.Remark = RemarkReplaceUpper
		} else {
			a, fa = c, fc
			rec.Remark = RemarkReplaceLower
		}
		sol.Trace = append(sol.Trace, rec)
		prev = c
	}
	return sol, nil
}
