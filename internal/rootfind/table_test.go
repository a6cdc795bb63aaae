package rootfind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMatchesColumns(t *testing.T) {
	iv := Interval{Low: -3, High: 3}
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			res, err := Solve(m, quad, dquad, iv, DefaultParams())
			require.NoError(t, err)
			header, rows := res.Table()
			require.NotEmpty(t, header)
			assert.Equal(t, "Remark", header[len(header)-1])
			require.Len(t, rows, len(res.Trace))
			for _, row := range rows {
				assert.Len(t, row, len(header))
			}
		})
	}
}

func TestRowFormatsMissingRelativeError(t *testing.T) {
	row := Row(MethodNewton, Record{Init0: 1, Step: 1, X0: 1, F0: 2, DF: 2, Estimate: 0, Remark: RemarkNextIteration})
	assert.Equal(t, []string{"1", "1", "1", "2", "2", "0", "-", RemarkNextIteration}, row)

	row = Row(MethodFalsePos, Record{Bracket: 3, Step: 2, RelErr: ptr(12.5), F0: -1, FEstimate: 2})
	assert.Equal(t, "3", row[0])
	assert.Equal(t, "12.5", row[5])
	assert.Equal(t, "-2", row[9])
}

func TestParseMethod(t *testing.T) {
	tests := map[string]Method{
		"bisection":      MethodBisection,
		"False":          MethodFalsePos,
		"regula-falsi":   MethodFalsePos,
		"Newton Raphson": MethodNewton,
		" secant ":       MethodSecant,
		"incremental":    MethodIncremental,
		"graphical":      MethodGraphical,
	}
	for in, want := range tests {
		got, err := ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMethod("brent")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
