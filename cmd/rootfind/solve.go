package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rootfind/internal/expr"
	"rootfind/internal/rootfind"
	"rootfind/internal/runner"
)

type solveOptions struct {
	fn         string
	deriv      string
	a, b       float64
	methods    []string
	tol        float64
	maxIter    int
	step       float64
	secantStep float64
	dx         float64
	workers    int
	trace      bool
	csvDir     string
	noColor    bool
}

func newSolveCmd() *cobra.Command {
	var o solveOptions
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Найти корни f(x) на отрезке [a, b]",
		Example: `  rootfind solve --func "x**3 - 6*x**2 + 11*x - 6" --a 0 --b 5
  rootfind solve --func "x^2 - 4" --a -5 --b 5 --methods newton,secant --trace`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), cmd.Flags().Changed, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.fn, "func", "", "функция f(x), например \"x**2 - 4\"")
	f.StringVar(&o.deriv, "deriv", "", "производная f'(x); по умолчанию численная")
	f.Float64Var(&o.a, "a", 0, "левый конец отрезка")
	f.Float64Var(&o.b, "b", 5, "правый конец отрезка")
	f.StringSliceVarP(&o.methods, "methods", "m", nil, "методы через запятую (по умолчанию все)")
	f.Float64Var(&o.tol, "tol", 0, "допуск сходимости")
	f.IntVar(&o.maxIter, "max-iter", 0, "предел итераций")
	f.Float64Var(&o.step, "step", 0, "шаг подотрезков для бисекции, хорд и Ньютона")
	f.Float64Var(&o.secantStep, "secant-step", 0, "шаг пар начальных приближений для секущих")
	f.Float64Var(&o.dx, "dx", 0, "шаг инкрементального поиска")
	f.IntVar(&o.workers, "workers", 0, "число параллельных подзадач сканирования")
	f.BoolVar(&o.trace, "trace", false, "печатать журнал итераций")
	f.StringVar(&o.csvDir, "csv", "", "каталог для CSV журналов по методам")
	f.BoolVar(&o.noColor, "no-color", false, "без цвета")
	_ = cmd.MarkFlagRequired("func")
	return cmd
}

func runSolve(ctx context.Context, out io.Writer, changed func(string) bool, o solveOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := cfg.Log.Logger()

	p := cfg.Solver.Params()
	if changed("tol") {
		p.Tol = o.tol
	}
	if changed("max-iter") {
		p.MaxIter = o.maxIter
	}
	if changed("step") {
		p.Step = o.step
	}
	if changed("secant-step") {
		p.SecantStep = o.secantStep
	}
	if changed("dx") {
		p.Dx = o.dx
	}
	if changed("workers") {
		p.Workers = o.workers
	}

	methods := rootfind.Methods()
	if len(o.methods) > 0 {
		methods = nil
		for _, name := range o.methods {
			m, err := rootfind.ParseMethod(name)
			if err != nil {
				return err
			}
			methods = append(methods, m)
		}
	}

	f, err := expr.Parse(o.fn)
	if err != nil {
		return err
	}
	df, err := expr.Derivative(o.deriv, f)
	if err != nil {
		return err
	}

	req := runner.Request{
		Func:       f,
		Derivative: df,
		Interval:   rootfind.Interval{Low: o.a, High: o.b},
		Params:     p,
		Methods:    methods,
	}

	pr := newPrinter(out, o.noColor)
	rep, err := runner.New(log).Run(ctx, req, func(oc runner.Outcome) {
		pr.outcome(oc, o.trace)
	})
	if err != nil {
		return err
	}
	pr.summary(rep.Summary)

	if o.csvDir != "" {
		return writeCSV(o.csvDir, rep)
	}
	return nil
}

func writeCSV(dir string, rep runner.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, oc := range rep.Outcomes {
		if oc.Err != "" {
			continue
		}
		path := filepath.Join(dir, "iterations_"+string(oc.Method)+".csv")
		if err := writeTable(path, oc.Result); err != nil {
			return fmt.Errorf("csv %s: %w", oc.Method, err)
		}
	}
	return nil
}

func writeTable(path string, res rootfind.Result) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fh.Close()

	cw := csv.NewWriter(fh)
	header, rows := res.Table()
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return fh.Close()
}
