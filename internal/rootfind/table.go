package rootfind

import "strconv"

// Columns — фиксированные названия столбцов журнала для метода
func Columns(m Method) []string {
	switch m {
	case MethodGraphical:
		return []string{"Step", "x(i)", "x(i+1)", "f(x(i))", "f(x(i+1))", "Root", "Remark"}
	case MethodIncremental:
		return []string{"Iteration", "Xl", "ΔX", "Xu", "f(Xl)", "f(Xu)", "f(Xl) * f(Xu)", "Remark"}
	case MethodBisection:
		return []string{"Iteration", "Xl", "Xu", "Midpoint", "f(Xl)", "f(Xu)", "f(Midpoint)", "Remark"}
	case MethodFalsePos:
		return []string{"Bracket", "Iteration", "Xl", "Xu", "Xr", "Approx. Error (%)", "f(Xl)", "f(Xu)", "f(Xr)", "f(Xl) * f(Xr)", "Remark"}
	case MethodNewton:
		return []string{"Initial Guess", "Iteration", "x0", "f(x0)", "f'(x0)", "x1", "Approx. Rel. Error (%)", "Remark"}
	case MethodSecant:
		return []string{"Init x0", "Init x1", "Iteration", "x0", "x1", "f(x0)", "f(x1)", "x2", "Approx. Rel. Error (%)", "Remark"}
	}
	return nil
}

// Row раскладывает запись по столбцам Columns(m)
func Row(m Method, r Record) []string {
	switch m {
	case MethodGraphical:
		return []string{itoa(r.Step), FormatFloat(r.X0), FormatFloat(r.X1), FormatFloat(r.F0), FormatFloat(r.F1), FormatFloat(r.Estimate), r.Remark}
	case MethodIncremental:
		return []string{itoa(r.Step), FormatFloat(r.X0), FormatFloat(r.Delta), FormatFloat(r.X1), FormatFloat(r.F0), FormatFloat(r.F1), FormatFloat(r.F0 * r.F1), r.Remark}
	case MethodBisection:
		return []string{itoa(r.Step), FormatFloat(r.X0), FormatFloat(r.X1), FormatFloat(r.Estimate), FormatFloat(r.F0), FormatFloat(r.F1), FormatFloat(r.FEstimate), r.Remark}
	case MethodFalsePos:
		return []string{itoa(r.Bracket), itoa(r.Step), FormatFloat(r.X0), FormatFloat(r.X1), FormatFloat(r.Estimate), formatErr(r.RelErr), FormatFloat(r.F0), FormatFloat(r.F1), FormatFloat(r.FEstimate), FormatFloat(r.F0 * r.FEstimate), r.Remark}
	case MethodNewton:
		return []string{FormatFloat(r.Init0), itoa(r.Step), FormatFloat(r.X0), FormatFloat(r.F0), FormatFloat(r.DF), FormatFloat(r.Estimate), formatErr(r.RelErr), r.Remark}
	case MethodSecant:
		return []string{FormatFloat(r.Init0), FormatFloat(r.Init1), itoa(r.Step), FormatFloat(r.X0), FormatFloat(r.X1), FormatFloat(r.F0), FormatFloat(r.F1), FormatFloat(r.Estimate), formatErr(r.RelErr), r.Remark}
	}
	return nil
}

// Table возвращает заголовок и строки журнала для внешнего отображения
func (r Result) Table() ([]string, [][]string) {
	rows := make([][]string, len(r.Trace))
	for i, rec := range r.Trace {
		rows[i] = Row(r.Method, rec)
	}
	return Columns(r.Method), rows
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 16, 64)
}

func formatErr(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatFloat(*v)
}

func itoa(v int) string { return strconv.Itoa(v) }
