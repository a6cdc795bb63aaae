package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"rootfind/internal/rootfind"
	"rootfind/internal/runner"
)

type printer struct {
	out   io.Writer
	title *color.Color
	ok    *color.Color
	warn  *color.Color
	fail  *color.Color
	dim   *color.Color
}

func newPrinter(out io.Writer, noColor bool) *printer {
	p := &printer{
		out:   out,
		title: color.New(color.FgCyan, color.Bold),
		ok:    color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed, color.Bold),
		dim:   color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.ok, p.warn, p.fail, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) outcome(oc runner.Outcome, trace bool) {
	p.title.Fprintf(p.out, "== %s ==\n", oc.Method.Title())

	if oc.Err != "" {
		p.fail.Fprintf(p.out, "ошибка: %s\n\n", oc.Err)
		return
	}

	roots := oc.Result.Values()
	if len(roots) == 0 {
		p.warn.Fprintln(p.out, "корни не найдены")
	} else {
		vals := make([]string, len(roots))
		for i, r := range roots {
			vals[i] = rootfind.FormatFloat(r)
		}
		p.ok.Fprintf(p.out, "корни: %s\n", strings.Join(vals, ", "))
	}
	p.dim.Fprintf(p.out, "итераций: %d, вычислений f: %d, время: %s\n",
		len(oc.Result.Trace), oc.Evaluations, oc.Duration)

	if trace && len(oc.Result.Trace) > 0 {
		header, rows := oc.Result.Table()
		printTable(p.out, header, rows)
	}
	fmt.Fprintln(p.out)
}

func (p *printer) summary(clusters []runner.Cluster) {
	p.title.Fprintln(p.out, "== Сводка ==")
	if len(clusters) == 0 {
		p.warn.Fprintln(p.out, "ни один метод не нашёл корней")
		return
	}

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Корень\tСКО\tМин\tМакс\tМетоды")
	for _, c := range clusters {
		names := make([]string, len(c.Methods))
		for i, m := range c.Methods {
			names[i] = string(m)
		}
		fmt.Fprintf(tw, "%s\t%.3g\t%s\t%s\t%s\n",
			rootfind.FormatFloat(c.Mean), c.StdDev,
			rootfind.FormatFloat(c.Min), rootfind.FormatFloat(c.Max),
			strings.Join(names, ","))
	}
	tw.Flush()
}

func printTable(out io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}
