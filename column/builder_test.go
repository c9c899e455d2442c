package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderBasic(t *testing.T) {
	b := NewBuilder(Int64, 4)
	b.PushInt(1)
	b.PushNA()
	b.PushInt(3)
	require.Equal(t, 3, b.Len())

	c := b.Seal()
	assert.Equal(t, Int64, c.Stype())
	require.Equal(t, 3, c.NRows())

	v, ok := c.IntAt(0)
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
	_, ok = c.IntAt(1)
	assert.False(t, ok)
	v, ok = c.IntAt(2)
	require.True(t, ok)
	assert.Equal(t, int64(3), v)
}

func TestBuilderAllValidHasNoMask(t *testing.T) {
	b := NewBuilder(Float64, 2)
	b.PushFloat(1)
	b.PushFloat(2)
	c := b.Seal()
	for i := 0; i < 2; i++ {
		_, ok := c.FloatAt(i)
		assert.True(t, ok)
	}
}

func TestBuilderWidensWithinFamily(t *testing.T) {
	// An int builder accepts bools; a float builder accepts ints.
	b := NewBuilder(Int32, 2)
	b.PushBool(true)
	b.PushInt(5)
	c := b.Seal()
	assert.Equal(t, Int32, c.Stype())
	v, _ := c.IntAt(0)
	assert.Equal(t, int64(1), v)

	f := NewBuilder(Float64, 2)
	f.PushInt(3)
	f.PushFloat(0.5)
	fc := f.Seal()
	v2, _ := fc.FloatAt(0)
	assert.Equal(t, 3.0, v2)
}

func TestBuilderWrongClassPanics(t *testing.T) {
	b := NewBuilder(Int64, 1)
	assert.Panics(t, func() { b.PushStr("x") })
	assert.Panics(t, func() { b.PushFloat(1) })
}

func TestBuilderChangeType(t *testing.T) {
	b := NewBuilder(Int64, 4)
	b.PushInt(1)
	b.PushNA()
	b.PushInt(3)
	require.NoError(t, b.ChangeType(Float64))
	b.PushFloat(0.5)

	c := b.Seal()
	assert.Equal(t, Float64, c.Stype())
	require.Equal(t, 4, c.NRows())

	v, ok := c.FloatAt(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	_, ok = c.FloatAt(1)
	assert.False(t, ok, "missing slots survive the repack")
	v, ok = c.FloatAt(3)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
}

func TestBuilderChangeTypeToObj(t *testing.T) {
	b := NewBuilder(Str32, 3)
	b.PushStr("a")
	b.PushNA()
	require.NoError(t, b.ChangeType(Obj))
	b.PushObj(map[string]int{"k": 1})

	c := b.Seal()
	assert.Equal(t, Obj, c.Stype())

	v, ok := c.ObjAt(0)
	require.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = c.ObjAt(1)
	assert.False(t, ok)
	_, ok = c.ObjAt(2)
	assert.True(t, ok)
}

func TestBuilderChangeTypeRejectsNarrowing(t *testing.T) {
	b := NewBuilder(Float64, 1)
	b.PushFloat(1.5)
	assert.Error(t, b.ChangeType(Int64))

	s := NewBuilder(Str32, 1)
	s.PushStr("x")
	assert.Error(t, s.ChangeType(Int64))
}

func TestBuilderSealStr64(t *testing.T) {
	b := NewBuilder(Str64, 2)
	b.PushStr("aa")
	b.PushNA()
	c := b.Seal()
	assert.Equal(t, Str64, c.Stype())
	v, ok := c.StrAt(0)
	require.True(t, ok)
	assert.Equal(t, "aa", v)
	_, ok = c.StrAt(1)
	assert.False(t, ok)
}
