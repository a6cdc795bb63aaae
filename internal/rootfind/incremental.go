package rootfind

import "math"

// IncrementalSearch проходит отрезок шагом dx и отмечает середину каждого шага,
// на котором f меняет знак. Метод только локализует корни и не уточняет их.
// Повторы отсекаются лишь относительно предыдущего принятого корня (ближе dx/2).
func IncrementalSearch(f Func, iv Interval, dx float64) (Result, error) {
	if err := iv.Validate(); err != nil {
		return Result{}, err
	}
	if err := validatePartition(iv, dx); err != nil {
		return Result{}, err
	}

	res := Result{Method: MethodIncremental, Roots: []Root{}, Trace: []Record{}}
	for i := 0; ; i++ {
		a := iv.Low + float64(i)*dx
		if a >= iv.High {
			break
		}
		b := a + dx

		fa, err := eval(f, a)
		if err != nil {
			return Result{}, err
		}
		fb, err := eval(f, b)
		if err != nil {
			return Result{}, err
		}

		rec := Record{
			Step:   i + 1,
			X0:     a,
			Delta:  dx,
			X1:     b,
			F0:     fa,
			F1:     fb,
			Remark: RemarkNoRootDetected,
		}
		if fa*fb < 0 {
			mid := (a + b) / 2
			n := len(res.Roots)
			if n == 0 || math.Abs(mid-res.Roots[n-1].Value) > dx/2 {
				res.Roots = append(res.Roots, Root{Value: mid, Source: Source{Index: i + 1, A: a, B: b}})
				rec.Estimate = mid
				rec.Remark = RemarkRootDetected
			}
		}
		res.Trace = append(res.Trace, rec)
	}
	return res, nil
}
