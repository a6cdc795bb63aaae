package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"rootfind/internal/rootfind"
)

// ErrStopped — запуск прерван до завершения всех методов
var ErrStopped = errors.New("runner: stopped")

// Request — один запуск набора методов на общей функции и отрезке
type Request struct {
	Func       rootfind.Func
	Derivative rootfind.Func
	Interval   rootfind.Interval
	Params     rootfind.Params
	Methods    []rootfind.Method
}

// Outcome — итог одного метода. Ошибка вычисления функции попадает в Err
// и не мешает остальным методам.
type Outcome struct {
	Method      rootfind.Method `json:"method"`
	Result      rootfind.Result `json:"result"`
	Err         string          `json:"error,omitempty"`
	Evaluations int64           `json:"evaluations"`
	Duration    time.Duration   `json:"duration"`

	err error
}

// Failure возвращает исходную ошибку метода
func (o Outcome) Failure() error { return o.err }

// Report — итоги всех методов в порядке запроса
type Report struct {
	Outcomes []Outcome `json:"outcomes"`
	Summary  []Cluster `json:"summary"`
}

// Runner выполняет методы последовательно и пишет метрики
type Runner struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{log: log}
}

// Run выполняет все методы запроса. onOutcome вызывается после каждого метода.
// Отмена ctx проверяется между методами; уже готовые итоги возвращаются вместе с ErrStopped.
func (r *Runner) Run(ctx context.Context, req Request, onOutcome func(Outcome)) (Report, error) {
	if err := req.Interval.Validate(); err != nil {
		return Report{}, err
	}

	var rep Report
	for _, m := range req.Methods {
		select {
		case <-ctx.Done():
			rep.Summary = Summarize(rep.Outcomes, req.Params.Tol)
			return rep, fmt.Errorf("%w: %v", ErrStopped, ctx.Err())
		default:
		}

		out := r.runOne(m, req)
		rep.Outcomes = append(rep.Outcomes, out)
		if onOutcome != nil {
			onOutcome(out)
		}
	}

	rep.Summary = Summarize(rep.Outcomes, req.Params.Tol)
	return rep, nil
}

func (r *Runner) runOne(m rootfind.Method, req Request) Outcome {
	var calls atomic.Int64
	f := countingFunc{f: req.Func, calls: &calls}
	var df rootfind.Func
	if req.Derivative != nil {
		df = countingFunc{f: req.Derivative, calls: &calls}
	}

	start := time.Now()
	res, err := rootfind.Solve(m, f, df, req.Interval, req.Params)
	elapsed := time.Since(start)

	out := Outcome{
		Method:      m,
		Result:      res,
		Evaluations: calls.Load(),
		Duration:    elapsed,
	}
	status := "ok"
	if err != nil {
		status = "failed"
		out.err = err
		out.Err = err.Error()
		out.Result = rootfind.Result{Method: m}
	}

	methodRuns.WithLabelValues(string(m), status).Inc()
	methodDuration.WithLabelValues(string(m)).Observe(elapsed.Seconds())
	evaluations.WithLabelValues(string(m)).Add(float64(out.Evaluations))
	if err == nil {
		rootsFound.WithLabelValues(string(m)).Observe(float64(len(res.Roots)))
	}

	if err != nil {
		r.log.Warn("method failed", "method", m, "error", err, "duration", elapsed)
	} else {
		r.log.Info("method done",
			"method", m,
			"roots", len(res.Roots),
			"rows", len(res.Trace),
			"evaluations", out.Evaluations,
			"duration", elapsed,
		)
	}
	return out
}
