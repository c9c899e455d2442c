package expr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/expr"
	"github.com/vegasq/framecat/frame"
)

// newTestFrame builds the frame shared by the evaluator tests:
//
//	  x      y     city  flag
//	  1    1.5    amber  true
//	  2     NA    birch  false
//	  3    3.5    amber  NA
//	 NA    4.5    cedar  true
//	  5    5.5    birch  false
func newTestFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		[]string{"x", "y", "city", "flag"},
		[]column.Column{
			column.IntsNA(
				[]int64{1, 2, 3, 0, 5},
				[]bool{true, true, true, false, true}),
			column.FloatsNA(
				[]float64{1.5, 0, 3.5, 4.5, 5.5},
				[]bool{true, false, true, true, true}),
			column.Strs([]string{"amber", "birch", "amber", "cedar", "birch"}),
			column.BoolsNA(
				[]bool{true, false, false, true, false},
				[]bool{true, true, false, true, true}),
		})
	require.NoError(t, err)
	return f
}

// eval1 evaluates a single computed expression over the frame and returns
// its only output column.
func eval1(t *testing.T, f *frame.Frame, n expr.Node) column.Column {
	t.Helper()
	out, err := expr.Eval(f, nil, n, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 1, out.NCols())
	return out.Column(0)
}

// cells reads a whole column into boxed values, nil for missing.
func cells(t *testing.T, c column.Column) []interface{} {
	t.Helper()
	out := make([]interface{}, c.NRows())
	for i := range out {
		switch c.LType() {
		case column.LBool:
			if v, ok := c.Bool8At(i); ok {
				out[i] = v
			}
		case column.LInt, column.LDateTime:
			if v, ok := c.IntAt(i); ok {
				out[i] = v
			}
		case column.LReal:
			if v, ok := c.FloatAt(i); ok {
				out[i] = v
			}
		case column.LString:
			if v, ok := c.StrAt(i); ok {
				out[i] = v
			}
		default:
			if v, ok := c.ObjAt(i); ok {
				out[i] = v
			}
		}
	}
	return out
}
