package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intValues(t *testing.T, c Column) []interface{} {
	t.Helper()
	out := make([]interface{}, c.NRows())
	for i := range out {
		if v, ok := c.IntAt(i); ok {
			out[i] = v
		}
	}
	return out
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		col   Column
		stype SType
		nrows int
	}{
		{"bools", Bools([]bool{true, false, true}), Bool8, 3},
		{"ints", Ints([]int64{1, 2, 3, 4}), Int64, 4},
		{"ints narrow", IntsAs(Int16, []int64{1, 2}, nil), Int16, 2},
		{"floats", Floats([]float64{1.5}), Float64, 1},
		{"floats narrow", FloatsAs(Float32, []float64{1.5, 2.5}, nil), Float32, 2},
		{"strings", Strs([]string{"a", "bb", "ccc"}), Str32, 3},
		{"times", Times([]int64{0, 1}), Time64, 2},
		{"objs", Objs([]interface{}{1, "x", nil}), Obj, 3},
		{"void", NAs(5), Void, 5},
		{"empty", Ints(nil), Int64, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stype, tt.col.Stype())
			assert.Equal(t, tt.nrows, tt.col.NRows())
		})
	}
}

func TestValidityMask(t *testing.T) {
	c := IntsNA([]int64{10, 20, 30}, []bool{true, false, true})

	v, ok := c.IntAt(0)
	assert.True(t, ok)
	assert.Equal(t, int64(10), v)

	_, ok = c.IntAt(1)
	assert.False(t, ok, "masked row must read as missing")

	v, ok = c.IntAt(2)
	assert.True(t, ok)
	assert.Equal(t, int64(30), v)
}

func TestNilValidMeansAllValid(t *testing.T) {
	c := Floats([]float64{1, 2})
	for i := 0; i < 2; i++ {
		_, ok := c.FloatAt(i)
		assert.True(t, ok)
	}
}

func TestVoidColumnAllMissing(t *testing.T) {
	c := NAs(3)
	for i := 0; i < 3; i++ {
		_, ok := c.IntAt(i)
		assert.False(t, ok)
		_, ok = c.Bool8At(i)
		assert.False(t, ok)
	}
}

func TestWrongClassAccessPanics(t *testing.T) {
	c := Strs([]string{"a"})
	assert.Panics(t, func() { c.IntAt(0) })
	assert.Panics(t, func() { c.FloatAt(0) })

	n := Ints([]int64{1})
	assert.Panics(t, func() { n.StrAt(0) })
}

func TestOutOfBoundsPanics(t *testing.T) {
	c := Ints([]int64{1, 2})
	assert.Panics(t, func() { c.IntAt(2) })
	assert.Panics(t, func() { c.IntAt(-1) })
}

func TestCloneSharesStorage(t *testing.T) {
	c := Ints([]int64{1, 2, 3})
	assert.Equal(t, 1, c.Refs())

	d := c.Clone()
	assert.Equal(t, 2, c.Refs())
	assert.Equal(t, 2, d.Refs())

	d.Release()
	assert.Equal(t, 1, c.Refs())
}

func TestMaterializeIsCopyOnWrite(t *testing.T) {
	c := ConstInt(Int32, 7, 4)
	d := c.Clone()
	require.False(t, c.Materialized())

	c.Materialize()
	assert.True(t, c.Materialized())
	assert.False(t, d.Materialized(), "shared handle must keep its representation")
	assert.Equal(t, 1, c.Refs(), "materializing a shared handle rebinds it")
	assert.Equal(t, 1, d.Refs())

	v, ok := c.IntAt(2)
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestMaterializeIdempotent(t *testing.T) {
	c := Ints([]int64{1, 2})
	require.True(t, c.Materialized())
	c.Materialize()
	assert.True(t, c.Materialized())
	assert.Equal(t, 1, c.Refs())
}

func TestConstColumn(t *testing.T) {
	tests := []struct {
		name  string
		col   Column
		check func(t *testing.T, c Column)
	}{
		{"bool", ConstBool(true, 3), func(t *testing.T, c Column) {
			v, ok := c.Bool8At(1)
			assert.True(t, ok)
			assert.True(t, v)
		}},
		{"int", ConstInt(Int64, -5, 2), func(t *testing.T, c Column) {
			v, ok := c.IntAt(0)
			assert.True(t, ok)
			assert.Equal(t, int64(-5), v)
		}},
		{"float", ConstFloat(Float64, 2.5, 2), func(t *testing.T, c Column) {
			v, ok := c.FloatAt(1)
			assert.True(t, ok)
			assert.Equal(t, 2.5, v)
		}},
		{"str", ConstStr("hi", 2), func(t *testing.T, c Column) {
			v, ok := c.StrAt(0)
			assert.True(t, ok)
			assert.Equal(t, "hi", v)
		}},
		{"na", ConstNA(Float64, 2), func(t *testing.T, c Column) {
			_, ok := c.FloatAt(0)
			assert.False(t, ok)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.col)
		})
	}
}

func TestConstMaterialize(t *testing.T) {
	c := ConstStr("x", 3)
	c.Materialize()
	require.True(t, c.Materialized())
	for i := 0; i < 3; i++ {
		v, ok := c.StrAt(i)
		require.True(t, ok)
		assert.Equal(t, "x", v)
	}
}

func TestRbind(t *testing.T) {
	c := Rbind(Ints([]int64{1, 2}), Ints([]int64{3}), IntsNA([]int64{0}, []bool{false}))
	assert.Equal(t, Int64, c.Stype())
	require.Equal(t, 4, c.NRows())
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3), nil}, intValues(t, c))

	c.Materialize()
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3), nil}, intValues(t, c))
}

func TestRepeat(t *testing.T) {
	c := Ints([]int64{1, 2})
	r := c.Repeat(3)
	require.Equal(t, 6, r.NRows())
	assert.Equal(t,
		[]interface{}{int64(1), int64(2), int64(1), int64(2), int64(1), int64(2)},
		intValues(t, r))

	// Constant columns grow without gaining children.
	k := ConstInt(Int32, 9, 2).Repeat(4)
	assert.Equal(t, 8, k.NRows())
	assert.Nil(t, k.Children())
}

func TestRepeatZero(t *testing.T) {
	r := Strs([]string{"a"}).Repeat(0)
	assert.Equal(t, 0, r.NRows())
}

func TestView(t *testing.T) {
	src := Ints([]int64{10, 20, 30})
	v := View(src, 4, func(i int) (int, bool) {
		if i == 3 {
			return 0, false // missing target row
		}
		return 2 - i, true
	})
	assert.Equal(t, Int64, v.Stype())
	assert.Equal(t, []interface{}{int64(30), int64(20), int64(10), nil}, intValues(t, v))

	v.Materialize()
	assert.Equal(t, []interface{}{int64(30), int64(20), int64(10), nil}, intValues(t, v))
}

func TestViewOfVoid(t *testing.T) {
	v := View(NAs(2), 3, func(i int) (int, bool) { return 0, true })
	assert.Equal(t, Void, v.Stype())
	_, ok := v.IntAt(1)
	assert.False(t, ok)
}

func TestVirtualColumn(t *testing.T) {
	a := Ints([]int64{1, 2, 3})
	v := NewVirtualInt(Int64, 3, []Column{a}, func(i int) (int64, bool) {
		x, ok := a.IntAt(i)
		return x * 10, ok
	})
	require.False(t, v.Materialized())
	assert.Len(t, v.Children(), 1)
	assert.Equal(t, []interface{}{int64(10), int64(20), int64(30)}, intValues(t, v))

	v.Materialize()
	assert.True(t, v.Materialized())
	assert.Nil(t, v.Children())
	assert.Equal(t, []interface{}{int64(10), int64(20), int64(30)}, intValues(t, v))
}

func TestLatentForcesOnce(t *testing.T) {
	calls := 0
	base := NewVirtualInt(Int64, 2, nil, func(i int) (int64, bool) {
		calls++
		return int64(i), true
	})
	l := NewLatent(base)
	require.False(t, l.Materialized())

	_, _ = l.IntAt(0)
	_, _ = l.IntAt(1)
	_, _ = l.IntAt(0)
	assert.Equal(t, 2, calls, "latent column must evaluate each row exactly once")
}

func TestFromValue(t *testing.T) {
	tests := []struct {
		name  string
		v     interface{}
		stype SType
	}{
		{"nil", nil, Void},
		{"bool", true, Bool8},
		{"small int", 42, Int32},
		{"large int", int64(1) << 40, Int64},
		{"float", 1.5, Float64},
		{"string", "s", Str32},
		{"other", struct{}{}, Obj},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromValue(tt.v, 3)
			assert.Equal(t, tt.stype, c.Stype())
			assert.Equal(t, 3, c.NRows())
		})
	}
}
