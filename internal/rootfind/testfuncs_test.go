package rootfind

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cubic   = FuncOf(func(x float64) float64 { return x*x*x - 6*x*x + 11*x - 6 })
	dcubic  = FuncOf(func(x float64) float64 { return 3*x*x - 12*x + 11 })
	quad    = FuncOf(func(x float64) float64 { return x*x - 4 })
	dquad   = FuncOf(func(x float64) float64 { return 2 * x })
	noRoot  = FuncOf(func(x float64) float64 { return x*x + 1 })
	dnoRoot = FuncOf(func(x float64) float64 { return 2 * x })
)

// assertRoots проверяет, что найденные корни совпадают с ожидаемыми с точностью eps
func assertRoots(t *testing.T, want []float64, got []float64, eps float64) {
	t.Helper()
	require.Len(t, got, len(want), "roots: %v", got)
	sorted := append([]float64(nil), got...)
	sort.Float64s(sorted)
	for i := range want {
		assert.InDelta(t, want[i], sorted[i], eps, "roots: %v", got)
	}
}

// assertDistinct — никакие два корня не совпадают в пределах tol
func assertDistinct(t *testing.T, roots []float64, tol float64) {
	t.Helper()
	for i := range roots {
		for j := i + 1; j < len(roots); j++ {
			assert.GreaterOrEqual(t, math.Abs(roots[i]-roots[j]), tol, "roots %d and %d coincide", i, j)
		}
	}
}
