package rootfind

import "math"

// Aggregator собирает корни со всех подотрезков, отбрасывая значения,
// совпадающие с уже найденными в пределах допуска. Порядок нахождения сохраняется.
type Aggregator struct {
	tol   float64
	roots []Root
}

func NewAggregator(tol float64) *Aggregator {
	return &Aggregator{tol: tol}
}

// Contains — есть ли уже корень ближе tol к x
func (a *Aggregator) Contains(x float64) bool {
	for _, r := range a.roots {
		if math.Abs(x-r.Value) < a.tol {
			return true
		}
	}
	return false
}

// Add добавляет корень, если он новый; возвращает true при добавлении
func (a *Aggregator) Add(r Root) bool {
	if a.Contains(r.Value) {
		return false
	}
	a.roots = append(a.roots, r)
	return true
}

func (a *Aggregator) Roots() []Root {
	out := make([]Root, len(a.roots))
	copy(out, a.roots)
	return out
}
