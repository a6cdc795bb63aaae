package expr

import (
	"math"
	"strings"

	"rootfind/internal/rootfind"
)

// centralDiff — численная производная (f(x+h) - f(x-h)) / 2h
type centralDiff struct {
	f rootfind.Func
}

func (d centralDiff) Eval(x float64) (float64, error) {
	h := 1e-6 * math.Max(1, math.Abs(x))
	fp, err := d.f.Eval(x + h)
	if err != nil {
		return math.NaN(), err
	}
	fm, err := d.f.Eval(x - h)
	if err != nil {
		return math.NaN(), err
	}
	return (fp - fm) / (2 * h), nil
}

// Derivative возвращает f'(x): по явному выражению, если оно задано,
// иначе центральной разностью от f
func Derivative(text string, f rootfind.Func) (rootfind.Func, error) {
	if strings.TrimSpace(text) != "" {
		return Parse(text)
	}
	return centralDiff{f: f}, nil
}

// Point — точка графика; Y == nil, если функция в точке не определена
type Point struct {
	X float64  `json:"x"`
	Y *float64 `json:"y"`
}

// Sample вычисляет n точек графика на отрезке для внешней отрисовки
func Sample(f rootfind.Func, iv rootfind.Interval, n int) []Point {
	if n < 2 {
		n = 2
	}
	out := make([]Point, n)
	h := (iv.High - iv.Low) / float64(n-1)
	for i := range out {
		x := iv.Low + float64(i)*h
		out[i].X = x
		if y, err := f.Eval(x); err == nil {
			out[i].Y = &y
		}
	}
	return out
}
