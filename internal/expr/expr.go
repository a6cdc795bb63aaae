package expr

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"rootfind/internal/rootfind"
)

// ErrNotFinite — выражение дало NaN или бесконечность (деление на ноль, log(-1) и т.п.)
var ErrNotFinite = errors.New("expr: value is not finite")

// Func — вычислимая функция f(x), построенная по строке
type Func struct {
	text string
	expr *govaluate.EvaluableExpression
}

var functions = map[string]govaluate.ExpressionFunction{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"ln":    unary(math.Log),
	"log10": unary(math.Log10),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"pow": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("pow: ожидается 2 аргумента, получено %d", len(args))
		}
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

func unary(fn func(float64) float64) govaluate.ExpressionFunction {
	return func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("ожидается 1 аргумент, получено %d", len(args))
		}
		return fn(toFloat(args[0])), nil
	}
}

// Parse создаёт вычислимую функцию по строке f(x).
// Степень записывается как x**2 или x^2, доступны константы pi и e.
func Parse(text string) (*Func, error) {
	src := strings.TrimSpace(text)
	if src == "" {
		return nil, errors.New("expr: пустое выражение")
	}
	// ^ в govaluate — побитовое XOR, приводим к возведению в степень
	src = strings.ReplaceAll(src, "^", "**")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(src, functions)
	if err != nil {
		return nil, fmt.Errorf("expr: %q: %w", text, err)
	}
	for _, v := range parsed.Vars() {
		switch v {
		case "x", "pi", "e":
		default:
			return nil, fmt.Errorf("expr: неизвестная переменная %q", v)
		}
	}

	return &Func{text: text, expr: parsed}, nil
}

func (f *Func) String() string { return f.text }

// Eval вычисляет f(x). Безопасен для конкурентного вызова: параметры
// собираются заново на каждый вызов.
func (f *Func) Eval(x float64) (float64, error) {
	params := map[string]interface{}{"x": x, "pi": math.Pi, "e": math.E}
	v, err := f.expr.Evaluate(params)
	if err != nil {
		return math.NaN(), err
	}

	var y float64
	switch t := v.(type) {
	case float64:
		y = t
	case int:
		y = float64(t)
	case int64:
		y = float64(t)
	case bool:
		return math.NaN(), fmt.Errorf("expr: выражение вернуло логическое значение")
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN(), err
		}
		y = parsed
	default:
		return math.NaN(), fmt.Errorf("expr: выражение не вернуло число: %T", v)
	}

	if math.IsNaN(y) || math.IsInf(y, 0) {
		return y, fmt.Errorf("%w: f(%g) = %g", ErrNotFinite, x, y)
	}
	return y, nil
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return math.NaN()
	}
}

var _ rootfind.Func = (*Func)(nil)
