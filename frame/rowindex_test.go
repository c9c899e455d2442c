package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/framecat/column"
)

func positions(t *testing.T, ri RowIndex) []interface{} {
	t.Helper()
	out := make([]interface{}, ri.NRows())
	for i := range out {
		if v, ok := ri.At(i); ok {
			out[i] = v
		}
	}
	return out
}

func TestSliceIndex(t *testing.T) {
	ri := SliceIndex(2, 3, 2)
	assert.Equal(t, RISlice, ri.Kind())
	assert.Equal(t, []interface{}{int64(2), int64(4), int64(6)}, positions(t, ri))
}

func TestIdentity(t *testing.T) {
	ri := Identity(3)
	assert.True(t, ri.IsIdentity(3))
	assert.False(t, ri.IsIdentity(4))
	assert.Equal(t, []interface{}{int64(0), int64(1), int64(2)}, positions(t, ri))
}

func TestNegativeStepSlice(t *testing.T) {
	ri := SliceIndex(4, 3, -2)
	assert.Equal(t, []interface{}{int64(4), int64(2), int64(0)}, positions(t, ri))
}

func TestArrIndexNotFound(t *testing.T) {
	ri := ArrIndex32([]int32{1, NotFound, 0})
	assert.Equal(t, []interface{}{int64(1), nil, int64(0)}, positions(t, ri))
}

func TestComposeSlices(t *testing.T) {
	// Applying (start 1, step 2) after (start 2, step 3) must stay in
	// slice form: row i reads inner[1 + 2i] = 2 + 3(1 + 2i) = 5 + 6i.
	outer := SliceIndex(1, 3, 2)
	inner := SliceIndex(2, 10, 3)
	got := Compose(outer, inner)
	assert.Equal(t, RISlice, got.Kind())
	assert.Equal(t, []interface{}{int64(5), int64(11), int64(17)}, positions(t, got))
}

func TestComposeWithArrays(t *testing.T) {
	outer := ArrIndex32([]int32{2, NotFound, 0})
	inner := SliceIndex(10, 5, 1)
	got := Compose(outer, inner)
	assert.Equal(t, []interface{}{int64(12), nil, int64(10)}, positions(t, got))

	// NA in the inner index also propagates.
	inner2 := ArrIndex32([]int32{5, NotFound})
	got2 := Compose(ArrIndex32([]int32{1, 0}), inner2)
	assert.Equal(t, []interface{}{nil, int64(5)}, positions(t, got2))
}

func TestComposeOutOfBoundsPanics(t *testing.T) {
	assert.Panics(t, func() {
		Compose(ArrIndex32([]int32{3}), SliceIndex(0, 2, 1))
	})
}

func TestSelect(t *testing.T) {
	c := column.Ints([]int64{10, 20, 30})

	id := Identity(3).Select(c)
	v, ok := id.IntAt(1)
	require.True(t, ok)
	assert.Equal(t, int64(20), v)

	sel := ArrIndex32([]int32{2, NotFound, 1}).Select(c)
	require.Equal(t, 3, sel.NRows())
	v, ok = sel.IntAt(0)
	require.True(t, ok)
	assert.Equal(t, int64(30), v)
	_, ok = sel.IntAt(1)
	assert.False(t, ok, "excluded row reads as missing")
}

func TestFromBools(t *testing.T) {
	c := column.BoolsNA(
		[]bool{true, false, true, true},
		[]bool{true, true, true, false})
	ri, err := FromBools(c)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(0), int64(2)}, positions(t, ri),
		"missing counts as false")

	_, err = FromBools(column.Ints([]int64{1}))
	assert.Error(t, err)
}

func TestFromInts(t *testing.T) {
	c := column.IntsNA([]int64{0, -1, 2, 0}, []bool{true, true, true, false})
	ri, err := FromInts(c, 5)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(0), int64(4), int64(2), nil}, positions(t, ri),
		"negative positions count from the end")

	_, err = FromInts(column.Ints([]int64{5}), 5)
	assert.Error(t, err)
	_, err = FromInts(column.Ints([]int64{-6}), 5)
	assert.Error(t, err)
	_, err = FromInts(column.Strs([]string{"x"}), 5)
	assert.Error(t, err)
}

func TestNormalizeSlice(t *testing.T) {
	p := func(v int64) *int64 { return &v }
	tests := []struct {
		name              string
		start, stop, step *int64
		n                 int64
		wantStart         int64
		wantCount         int64
		wantStep          int64
	}{
		{"full", nil, nil, nil, 5, 0, 5, 1},
		{"prefix", nil, p(3), nil, 5, 0, 3, 1},
		{"suffix", p(2), nil, nil, 5, 2, 3, 1},
		{"negative start", p(-2), nil, nil, 5, 3, 2, 1},
		{"negative stop", nil, p(-1), nil, 5, 0, 4, 1},
		{"stride", nil, nil, p(2), 5, 0, 3, 2},
		{"reverse", nil, nil, p(-1), 5, 4, 5, -1},
		{"reverse window", p(3), p(0), p(-1), 5, 3, 3, -1},
		{"past the end clamps", p(2), p(100), nil, 5, 2, 3, 1},
		{"empty", p(3), p(3), nil, 5, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, count, step, err := NormalizeSlice(tt.start, tt.stop, tt.step, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantStep, step)
		})
	}

	_, _, _, err := NormalizeSlice(nil, nil, p(0), 5)
	assert.Error(t, err, "zero step is rejected")
}
