package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/expr"
	"github.com/vegasq/framecat/frame"
)

func TestReduceUngrouped(t *testing.T) {
	f := newTestFrame(t)
	tests := []struct {
		name string
		node expr.Node
		want interface{}
	}{
		{"count rows", expr.Count(), int64(5)},
		{"count valid", expr.Reduce(expr.RCount, expr.Col("x")), int64(4)},
		{"sum int", expr.Reduce(expr.RSum, expr.Col("x")), int64(11)},
		{"sum float", expr.Reduce(expr.RSum, expr.Col("y")), 15.0},
		{"mean", expr.Reduce(expr.RMean, expr.Col("x")), 2.75},
		{"min", expr.Reduce(expr.RMin, expr.Col("x")), int64(1)},
		{"max", expr.Reduce(expr.RMax, expr.Col("x")), int64(5)},
		{"median even", expr.Reduce(expr.RMedian, expr.Col("x")), 2.5},
		{"median odd", expr.Reduce(expr.RMedian, expr.Col("y")), 4.0},
		{"first", expr.Reduce(expr.RFirst, expr.Col("x")), int64(1)},
		{"last", expr.Reduce(expr.RLast, expr.Col("x")), int64(5)},
		{"nunique strings", expr.Reduce(expr.RNUnique, expr.Col("city")), int64(3)},
		{"count of void", expr.Reduce(expr.RCount, expr.Lit(nil)), int64(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := eval1(t, f, tt.node)
			require.Equal(t, 1, c.NRows(), "an ungrouped reduction yields one row")
			assert.Equal(t, []interface{}{tt.want}, cells(t, c))
		})
	}
}

func TestReduceSumBoolCountsTrues(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Reduce(expr.RSum, expr.Col("flag")))
	assert.Equal(t, []interface{}{int64(2)}, cells(t, c))
}

func TestReduceMinMaxKeepStype(t *testing.T) {
	f := newTestFrame(t)
	assert.Equal(t, column.Int64, eval1(t, f, expr.Reduce(expr.RMin, expr.Col("x"))).Stype())
	assert.Equal(t, column.Float64, eval1(t, f, expr.Reduce(expr.RMax, expr.Col("y"))).Stype())
}

func TestReduceSd(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Reduce(expr.RSd, expr.Col("x")))
	v, ok := c.FloatAt(0)
	require.True(t, ok)
	assert.InDelta(t, 1.7078251, v, 1e-6)
}

func TestReduceSdNeedsTwoValues(t *testing.T) {
	f, err := frame.New(
		[]string{"v"},
		[]column.Column{column.IntsNA([]int64{7, 0}, []bool{true, false})})
	require.NoError(t, err)
	c := eval1(t, f, expr.Reduce(expr.RSd, expr.Col("v")))
	_, ok := c.FloatAt(0)
	assert.False(t, ok, "the deviation of a single value is missing")
}

func TestReduceOfScalarCountsEveryRow(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Reduce(expr.RCount, expr.Lit(1)))
	assert.Equal(t, []interface{}{int64(5)}, cells(t, c))
}

func TestCovAndCorr(t *testing.T) {
	f, err := frame.New(
		[]string{"a", "b", "c"},
		[]column.Column{
			column.Ints([]int64{1, 2, 3}),
			column.Ints([]int64{2, 4, 6}),
			column.Floats([]float64{5, 5, 5}),
		})
	require.NoError(t, err)

	cov := eval1(t, f, expr.Reduce2(expr.RCov, expr.Col("a"), expr.Col("b")))
	v, ok := cov.FloatAt(0)
	require.True(t, ok)
	assert.InDelta(t, 2.0, v, 1e-12)

	corr := eval1(t, f, expr.Reduce2(expr.RCorr, expr.Col("a"), expr.Col("b")))
	v, ok = corr.FloatAt(0)
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-12)

	// Correlation against a constant has a zero denominator.
	c := eval1(t, f, expr.Reduce2(expr.RCorr, expr.Col("a"), expr.Col("c")))
	_, ok = c.FloatAt(0)
	assert.False(t, ok)
}

func TestCovSkipsHalfMissingPairs(t *testing.T) {
	f, err := frame.New(
		[]string{"a", "b"},
		[]column.Column{
			column.IntsNA([]int64{1, 2, 3, 9}, []bool{true, true, true, false}),
			column.IntsNA([]int64{2, 0, 6, 8}, []bool{true, false, true, true}),
		})
	require.NoError(t, err)
	// Only rows 0 and 2 have both sides: cov((1,3),(2,6)) = 4.
	c := eval1(t, f, expr.Reduce2(expr.RCov, expr.Col("a"), expr.Col("b")))
	v, ok := c.FloatAt(0)
	require.True(t, ok)
	assert.InDelta(t, 4.0, v, 1e-12)
}

func TestReduceTypeErrors(t *testing.T) {
	f := newTestFrame(t)

	_, err := expr.Eval(f, nil, expr.Reduce(expr.RSum, expr.Col("city")), nil, nil)
	assert.True(t, errf.IsKind(err, errf.KindType))

	_, err = expr.Eval(f, nil, expr.Reduce2(expr.RCov, expr.Col("x"), expr.Col("city")), nil, nil)
	assert.True(t, errf.IsKind(err, errf.KindType))

	_, err = expr.Eval(f, nil, expr.Reduce2(expr.RSum, expr.Col("x"), expr.Col("y")), nil, nil)
	assert.True(t, errf.IsKind(err, errf.KindType),
		"one-column reducers reject a second column")
}

func TestGroupedAggregation(t *testing.T) {
	f := newTestFrame(t)
	out, err := expr.Eval(f, nil,
		expr.Dict(
			[]string{"n", "total", "avg_y"},
			[]expr.Node{
				expr.Count(),
				expr.Reduce(expr.RSum, expr.Col("x")),
				expr.Reduce(expr.RMean, expr.Col("y")),
			}),
		[]string{"city"}, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"city", "n", "total", "avg_y"}, out.Names(),
		"grouped output is prefixed with the key columns")
	require.Equal(t, 3, out.NRows())

	// Groups appear in order of first appearance: amber, birch, cedar.
	assert.Equal(t, []interface{}{"amber", "birch", "cedar"}, cells(t, out.Column(0)))
	assert.Equal(t, []interface{}{int64(2), int64(2), int64(1)}, cells(t, out.Column(1)))
	assert.Equal(t, []interface{}{int64(4), int64(7), int64(0)}, cells(t, out.Column(2)))
	assert.Equal(t, []interface{}{2.5, 5.5, 4.5}, cells(t, out.Column(3)))
}

func TestGroupedFirstLast(t *testing.T) {
	f := newTestFrame(t)
	out, err := expr.Eval(f, nil,
		expr.Dict(
			[]string{"first_x", "last_x"},
			[]expr.Node{
				expr.Reduce(expr.RFirst, expr.Col("x")),
				expr.Reduce(expr.RLast, expr.Col("x")),
			}),
		[]string{"city"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []interface{}{int64(1), int64(2), nil}, cells(t, out.Column(1)))
	assert.Equal(t, []interface{}{int64(3), int64(5), nil}, cells(t, out.Column(2)))
}

func TestGroupedSd(t *testing.T) {
	f := newTestFrame(t)
	out, err := expr.Eval(f, nil, expr.Reduce(expr.RSd, expr.Col("y")), []string{"city"}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, out.NRows())

	sd := out.Column(1)
	v, ok := sd.FloatAt(0)
	require.True(t, ok)
	assert.InDelta(t, 1.4142136, v, 1e-6)
	_, ok = sd.FloatAt(1)
	assert.False(t, ok, "birch has a single valid value")
	_, ok = sd.FloatAt(2)
	assert.False(t, ok)
}

func TestGroupedMixesReductionAndPerRow(t *testing.T) {
	// A per-row column next to a reduction widens the reduction across
	// each group's rows.
	f := newTestFrame(t)
	out, err := expr.Eval(f, nil,
		expr.List(expr.Col("x"), expr.Reduce(expr.RSum, expr.Col("x"))),
		[]string{"city"}, nil)
	require.NoError(t, err)

	require.Equal(t, 5, out.NRows(), "the per-row column forces one output row per source row")
	// Rows arrive grouped: amber (x=1,3), birch (x=2,5), cedar (x=NA).
	assert.Equal(t,
		[]interface{}{"amber", "amber", "birch", "birch", "cedar"},
		cells(t, out.Column(0)))
	assert.Equal(t,
		[]interface{}{int64(1), int64(3), int64(2), int64(5), nil},
		cells(t, out.Column(1)))
	assert.Equal(t,
		[]interface{}{int64(4), int64(4), int64(7), int64(7), int64(0)},
		cells(t, out.Column(2)))
}
