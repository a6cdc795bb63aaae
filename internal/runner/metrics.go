package runner

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rootfind/internal/rootfind"
)

var (
	// methodRuns — число запусков метода по итогу (ok, failed)
	methodRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rootfind_method_runs_total",
		Help: "Total method runs by method and status",
	}, []string{"method", "status"})

	methodDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rootfind_method_duration_seconds",
		Help:    "Method run duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"method"})

	rootsFound = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rootfind_roots_found",
		Help:    "Number of distinct roots returned per method run",
		Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
	}, []string{"method"})

	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rootfind_function_evaluations_total",
		Help: "Total evaluations of f and f' by method",
	}, []string{"method"})
)

// countingFunc считает вызовы f; счётчик атомарный, так как скан может быть параллельным
type countingFunc struct {
	f     rootfind.Func
	calls *atomic.Int64
}

func (c countingFunc) Eval(x float64) (float64, error) {
	c.calls.Add(1)
	return c.f.Eval(x)
}
