package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
)

func TestNew(t *testing.T) {
	f, err := New(
		[]string{"a", "b"},
		[]column.Column{column.Ints([]int64{1, 2}), column.Strs([]string{"x", "y"})})
	require.NoError(t, err)
	assert.Equal(t, 2, f.NRows())
	assert.Equal(t, 2, f.NCols())
	assert.Equal(t, "b", f.Name(1))
	assert.NotEqual(t, f.ID().String(), "00000000-0000-0000-0000-000000000000")
}

func TestNewValidation(t *testing.T) {
	_, err := New([]string{"a"}, nil)
	assert.Error(t, err, "name/column count mismatch")

	_, err = New(
		[]string{"a", "b"},
		[]column.Column{column.Ints([]int64{1, 2}), column.Ints([]int64{1})})
	assert.Error(t, err, "ragged columns")
}

func TestNewEmpty(t *testing.T) {
	f, err := New(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, f.NRows())
	assert.Equal(t, 0, f.NCols())
}

func TestColumnIndex(t *testing.T) {
	f, err := New(
		[]string{"height", "weight"},
		[]column.Column{column.Ints([]int64{1}), column.Ints([]int64{2})})
	require.NoError(t, err)

	i, err := f.ColumnIndex("weight")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = f.ColumnIndex("wieght")
	require.Error(t, err)
	assert.True(t, errf.IsKind(err, errf.KindKey))
	assert.Contains(t, err.Error(), "weight", "a close match is suggested")
}

func TestColumnOutOfBoundsPanics(t *testing.T) {
	f, err := New([]string{"a"}, []column.Column{column.Ints([]int64{1})})
	require.NoError(t, err)
	assert.Panics(t, func() { f.Column(1) })
}

func TestFrameIDsAreDistinct(t *testing.T) {
	a, err := New(nil, nil)
	require.NoError(t, err)
	b, err := New(nil, nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRbind(t *testing.T) {
	a, err := New(
		[]string{"x", "y"},
		[]column.Column{column.Ints([]int64{1, 2}), column.Strs([]string{"a", "b"})})
	require.NoError(t, err)
	b, err := New(
		[]string{"y", "x"},
		[]column.Column{column.Strs([]string{"c"}), column.Floats([]float64{3.5})})
	require.NoError(t, err)

	got, err := Rbind(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3, got.NRows())
	assert.Equal(t, []string{"x", "y"}, got.Names(), "columns match by name, not position")

	// Int64 stacked with Float64 promotes the whole column.
	x := got.Column(0)
	assert.Equal(t, column.Float64, x.Stype())
	v, ok := x.FloatAt(2)
	require.True(t, ok)
	assert.Equal(t, 3.5, v)

	y := got.Column(1)
	s, ok := y.StrAt(2)
	require.True(t, ok)
	assert.Equal(t, "c", s)
}

func TestRbindMissingColumn(t *testing.T) {
	a, err := New([]string{"x"}, []column.Column{column.Ints([]int64{1})})
	require.NoError(t, err)
	b, err := New([]string{"z"}, []column.Column{column.Ints([]int64{2})})
	require.NoError(t, err)
	_, err = Rbind(a, b)
	assert.Error(t, err)
}

func TestRbindSingle(t *testing.T) {
	a, err := New([]string{"x"}, []column.Column{column.Ints([]int64{1})})
	require.NoError(t, err)
	got, err := Rbind(a)
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = Rbind()
	assert.Error(t, err)
}
