package rootfind

import (
	"fmt"
	"math"
)

// Func — интерфейс для абстрактной функции f(x)
type Func interface {
	Eval(x float64) (float64, error)
}

// FuncOf — адаптер обычной функции f(x), которая не может завершиться ошибкой
type FuncOf func(float64) float64

func (f FuncOf) Eval(x float64) (float64, error) { return f(x), nil }

// FuncE — адаптер функции, возвращающей ошибку вычисления
type FuncE func(float64) (float64, error)

func (f FuncE) Eval(x float64) (float64, error) { return f(x) }

// eval вычисляет f(x); ошибка не маскируется, а дополняется абсциссой
func eval(f Func, x float64) (float64, error) {
	y, err := f.Eval(x)
	if err != nil {
		return y, fmt.Errorf("rootfind: f(%g): %w", x, err)
	}
	return y, nil
}

func evalDerivative(df Func, x float64) (float64, error) {
	y, err := df.Eval(x)
	if err != nil {
		return y, fmt.Errorf("rootfind: f'(%g): %w", x, err)
	}
	return y, nil
}

// relErr — приближённая относительная ошибка в процентах |(cur-prev)/cur|·100.
// При cur == 0 ошибка не определена.
func relErr(cur, prev float64) (float64, bool) {
	if cur == 0 {
		return 0, false
	}
	return math.Abs((cur-prev)/cur) * 100, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
