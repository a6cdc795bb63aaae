package rootfind

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidInterval   = errors.New("rootfind: interval requires finite low < high")
	ErrInvalidTolerance  = errors.New("rootfind: tolerance and iteration limit must be positive")
	ErrInvalidStep       = errors.New("rootfind: step must be positive and finite")
	ErrInvalidResolution = errors.New("rootfind: resolution must be between 2 and MaxPartition")
	ErrNoDerivative      = errors.New("rootfind: newton method requires a derivative")
	ErrUnknownMethod     = errors.New("rootfind: unknown method")
)

// Method — имя численного метода
type Method string

const (
	MethodGraphical   Method = "graphical"
	MethodIncremental Method = "incremental"
	MethodBisection   Method = "bisection"
	MethodFalsePos    Method = "false_position"
	MethodNewton      Method = "newton"
	MethodSecant      Method = "secant"
)

// Methods возвращает все методы в порядке их отображения
func Methods() []Method {
	return []Method{
		MethodGraphical,
		MethodIncremental,
		MethodBisection,
		MethodFalsePos,
		MethodNewton,
		MethodSecant,
	}
}

// Title — человекочитаемое название метода
func (m Method) Title() string {
	switch m {
	case MethodGraphical:
		return "Graphical Method"
	case MethodIncremental:
		return "Incremental Search"
	case MethodBisection:
		return "Bisection Method"
	case MethodFalsePos:
		return "Regula Falsi Method"
	case MethodNewton:
		return "Newton-Raphson Method"
	case MethodSecant:
		return "Secant Method"
	}
	return string(m)
}

// ParseMethod разбирает имя метода, допускаются распространённые синонимы
func ParseMethod(s string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	switch key {
	case "graphical":
		return MethodGraphical, nil
	case "incremental", "incremental_search":
		return MethodIncremental, nil
	case "bisection":
		return MethodBisection, nil
	case "false_position", "false", "regula_falsi":
		return MethodFalsePos, nil
	case "newton", "newton_raphson":
		return MethodNewton, nil
	case "secant":
		return MethodSecant, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Interval — отрезок поиска [Low, High]
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (iv Interval) Validate() error {
	if !finite(iv.Low) || !finite(iv.High) || !(iv.Low < iv.High) {
		return fmt.Errorf("%w: [%g, %g]", ErrInvalidInterval, iv.Low, iv.High)
	}
	return nil
}

// Tolerance — допуск сходимости и бюджет итераций
type Tolerance struct {
	Tol     float64 `json:"tol"`
	MaxIter int     `json:"maxIter"`
}

func (t Tolerance) Validate() error {
	if !(t.Tol > 0) || !finite(t.Tol) || t.MaxIter <= 0 {
		return fmt.Errorf("%w: tol=%g maxIter=%d", ErrInvalidTolerance, t.Tol, t.MaxIter)
	}
	return nil
}

// MaxPartition — предел числа шагов сетки на одном отрезке
const MaxPartition = 10_000_000

func validateStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidStep, step)
	}
	return nil
}

// validatePartition проверяет шаг и то, что сетка на iv не больше MaxPartition узлов
func validatePartition(iv Interval, step float64) error {
	if err := validateStep(step); err != nil {
		return err
	}
	if n := (iv.High - iv.Low) / step; !(n <= MaxPartition) {
		return fmt.Errorf("%w: %g gives %g steps on [%g, %g], limit %d",
			ErrInvalidStep, step, n, iv.Low, iv.High, MaxPartition)
	}
	return nil
}

// Пометки строк журнала итераций
const (
	RemarkRootDetected   = "Root detected"
	RemarkNoRootDetected = "No root detected"
	RemarkSignChange     = "Sign change"
	RemarkNearZero       = "Near zero"
	RemarkRootFound      = "Root found"
	RemarkRootAtStart    = "Root found at start"
	RemarkRootAtEnd      = "Root found at end"
	RemarkFirstSub       = "1st subinterval"
	RemarkSecondSub      = "2nd subinterval"
	RemarkConverged      = "Converged"
	RemarkNoSignChange   = "No sign change"
	RemarkReplaceUpper   = "Replace Xu"
	RemarkReplaceLower   = "Replace Xl"
	RemarkNextIteration  = "Next iteration"
)

// Record — одна строка журнала итераций.
// Набор заполненных полей зависит от метода, см. Columns.
type Record struct {
	Step      int      `json:"step"`
	Bracket   int      `json:"bracket,omitempty"`
	Init0     float64  `json:"init0"`
	Init1     float64  `json:"init1"`
	X0        float64  `json:"x0"`
	X1        float64  `json:"x1"`
	Delta     float64  `json:"delta,omitempty"`
	F0        float64  `json:"f0"`
	F1        float64  `json:"f1"`
	DF        float64  `json:"df,omitempty"`
	Estimate  float64  `json:"estimate"`
	FEstimate float64  `json:"fEstimate"`
	RelErr    *float64 `json:"ea,omitempty"`
	Remark    string   `json:"remark"`
}

// Source — откуда получен корень: номер подотрезка (или начального приближения) и его концы
type Source struct {
	Index int     `json:"index"`
	A     float64 `json:"a"`
	B     float64 `json:"b"`
}

// Root — найденное приближение корня
type Root struct {
	Value  float64 `json:"value"`
	Source Source  `json:"source"`
}

// Result — результат одного метода: корни без повторов и журнал итераций
type Result struct {
	Method Method   `json:"method"`
	Roots  []Root   `json:"roots"`
	Trace  []Record `json:"trace"`
}

// Values возвращает значения корней в порядке нахождения
func (r Result) Values() []float64 {
	out := make([]float64, len(r.Roots))
	for i, root := range r.Roots {
		out[i] = root.Value
	}
	return out
}

func ptr(v float64) *float64 { return &v }
