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

func TestNegate(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Neg(expr.Col("x")))
	assert.Equal(t, column.Int64, c.Stype())
	assert.Equal(t,
		[]interface{}{int64(-1), int64(-2), int64(-3), nil, int64(-5)},
		cells(t, c))

	c = eval1(t, f, expr.Neg(expr.Col("y")))
	assert.Equal(t, column.Float64, c.Stype())
	assert.Equal(t, []interface{}{-1.5, nil, -3.5, -4.5, -5.5}, cells(t, c))
}

func TestNegateBoolWidens(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Neg(expr.Col("flag")))
	assert.Equal(t, column.Int32, c.Stype())
	assert.Equal(t,
		[]interface{}{int64(-1), int64(0), nil, int64(-1), int64(0)},
		cells(t, c))
}

func TestAbs(t *testing.T) {
	f, err := frame.New(
		[]string{"v"},
		[]column.Column{column.Floats([]float64{-1.5, 0, 2.5})})
	require.NoError(t, err)
	c := eval1(t, f, expr.Un(expr.OpAbs, expr.Col("v")))
	assert.Equal(t, []interface{}{1.5, 0.0, 2.5}, cells(t, c))
}

func TestNot(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Not(expr.Col("flag")))
	assert.Equal(t, column.Bool8, c.Stype())
	assert.Equal(t,
		[]interface{}{false, true, nil, false, true},
		cells(t, c), "negating a missing boolean stays missing")
}

func TestInvert(t *testing.T) {
	f, err := frame.New(
		[]string{"n", "b"},
		[]column.Column{
			column.Ints([]int64{0, -1, 5}),
			column.Bools([]bool{true, false, true}),
		})
	require.NoError(t, err)

	c := eval1(t, f, expr.Un(expr.OpInvert, expr.Col("n")))
	assert.Equal(t, []interface{}{int64(-1), int64(0), int64(-6)}, cells(t, c),
		"invert is bitwise on integers")

	c = eval1(t, f, expr.Un(expr.OpInvert, expr.Col("b")))
	assert.Equal(t, []interface{}{false, true, false}, cells(t, c),
		"invert is logical on booleans")
}

func TestUnaryVoidPassesThrough(t *testing.T) {
	f := newTestFrame(t)
	c := eval1(t, f, expr.Neg(expr.Lit(nil)))
	assert.Equal(t, column.Void, c.Stype())
}

func TestUnaryTypeErrors(t *testing.T) {
	f := newTestFrame(t)

	_, err := expr.Eval(f, nil, expr.Neg(expr.Col("city")), nil, nil)
	assert.True(t, errf.IsKind(err, errf.KindType))

	_, err = expr.Eval(f, nil, expr.Un(expr.OpInvert, expr.Col("y")), nil, nil)
	assert.True(t, errf.IsKind(err, errf.KindType),
		"bitwise invert has no real-typed form")

	_, err = expr.Eval(f, nil, expr.Not(expr.Col("x")), nil, nil)
	assert.True(t, errf.IsKind(err, errf.KindType),
		"logical not applies to booleans only")
}
