package rootfind

import (
	"fmt"
	"math"
)

// GraphicalSearch вычисляет f в resolution равноотстоящих точках отрезка (концы включены).
// Корнем считается середина пары соседних точек со сменой знака, либо сама точка,
// где |f| < tol и которая дальше (High-Low)/resolution от предыдущего корня.
// В журнал попадают только точки, давшие корень.
func GraphicalSearch(f Func, iv Interval, resolution int, tol float64) (Result, error) {
	if err := iv.Validate(); err != nil {
		return Result{}, err
	}
	if resolution < 2 || resolution > MaxPartition {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}

	xs := linspace(iv.Low, iv.High, resolution)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y, err := eval(f, x)
		if err != nil {
			return Result{}, err
		}
		ys[i] = y
	}

	spacing := (iv.High - iv.Low) / float64(resolution)
	res := Result{Method: MethodGraphical, Roots: []Root{}, Trace: []Record{}}
	for i := 0; i+1 < len(xs); i++ {
		src := Source{Index: i + 1, A: xs[i], B: xs[i+1]}
		switch {
		case ys[i]*ys[i+1] < 0:
			mid := (xs[i] + xs[i+1]) / 2
			res.Roots = append(res.Roots, Root{Value: mid, Source: src})
			res.Trace = append(res.Trace, Record{
				Step: i + 1, X0: xs[i], X1: xs[i+1], F0: ys[i], F1: ys[i+1],
				Estimate: mid, Remark: RemarkSignChange,
			})
		case math.Abs(ys[i]) < tol:
			n := len(res.Roots)
			if n > 0 && math.Abs(xs[i]-res.Roots[n-1].Value) <= spacing {
				continue
			}
			res.Roots = append(res.Roots, Root{Value: xs[i], Source: src})
			res.Trace = append(res.Trace, Record{
				Step: i + 1, X0: xs[i], X1: xs[i], F0: ys[i], F1: ys[i],
				Estimate: xs[i], FEstimate: ys[i], Remark: RemarkNearZero,
			})
		}
	}
	return res, nil
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
