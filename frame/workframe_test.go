package frame

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/framecat/column"
)

func testGroupby(t *testing.T) Groupby {
	t.Helper()
	gb, err := FromOffsets([]int32{0, 2, 5})
	require.NoError(t, err)
	return gb
}

func TestWorkframeAddColumn(t *testing.T) {
	w := NewWorkframe(5, testGroupby(t))
	require.NoError(t, w.AddColumn(column.Ints([]int64{1, 2, 3, 4, 5}), "a", GroupToFull))
	assert.Equal(t, GroupToFull, w.Mode())
	assert.Equal(t, 1, w.NCols())
	assert.Equal(t, "a", w.Entry(0).Name())
}

func TestWorkframeShapeMismatch(t *testing.T) {
	w := NewWorkframe(5, testGroupby(t))
	assert.Error(t, w.AddColumn(column.Ints([]int64{1, 2}), "a", GroupToFull))
	assert.Error(t, w.AddColumn(column.Ints([]int64{1, 2, 3}), "a", GroupToOne),
		"per-group columns must have one row per group")
	assert.Error(t, w.AddColumn(column.Ints([]int64{1, 2}), "a", GroupToAll))
}

func TestWorkframeWidensExistingColumns(t *testing.T) {
	w := NewWorkframe(5, testGroupby(t))
	require.NoError(t, w.AddColumn(column.Ints([]int64{7}), "s", GroupToAll))
	require.Equal(t, GroupToAll, w.Mode())

	// Adding a per-group column lifts the scalar to one row per group.
	require.NoError(t, w.AddColumn(column.Ints([]int64{10, 20}), "g", GroupToOne))
	assert.Equal(t, GroupToOne, w.Mode())

	c, err := w.RetrieveColumn(0)
	require.NoError(t, err)
	require.Equal(t, 2, c.NRows())
	v, _ := c.IntAt(1)
	assert.Equal(t, int64(7), v)
}

func TestWorkframeWidensNewColumn(t *testing.T) {
	w := NewWorkframe(5, testGroupby(t))
	require.NoError(t, w.AddColumn(column.Ints([]int64{1, 2, 3, 4, 5}), "full", GroupToFull))

	// A per-group column added to a per-row workframe is expanded through
	// the partition: group 0 covers rows 0-1, group 1 covers rows 2-4.
	require.NoError(t, w.AddColumn(column.Ints([]int64{10, 20}), "g", GroupToOne))
	assert.Equal(t, GroupToFull, w.Mode())

	c, err := w.RetrieveColumn(1)
	require.NoError(t, err)
	require.Equal(t, 5, c.NRows())
	want := []int64{10, 10, 20, 20, 20}
	for i, exp := range want {
		v, ok := c.IntAt(i)
		require.True(t, ok)
		assert.Equal(t, exp, v, "row %d", i)
	}
}

func TestWorkframeRetrieveIsSingleRead(t *testing.T) {
	w := NewWorkframe(3, SingleGroup(3))
	require.NoError(t, w.AddColumn(column.Ints([]int64{1, 2, 3}), "a", GroupToFull))

	_, err := w.RetrieveColumn(0)
	require.NoError(t, err)
	_, err = w.RetrieveColumn(0)
	assert.Error(t, err)

	_, err = w.RetrieveColumn(5)
	assert.Error(t, err)
}

func TestWorkframeCbind(t *testing.T) {
	gb := testGroupby(t)
	w := NewWorkframe(5, gb)
	require.NoError(t, w.AddColumn(column.Ints([]int64{1, 2}), "g", GroupToOne))

	other := NewWorkframe(5, gb)
	require.NoError(t, other.AddColumn(column.Ints([]int64{1, 2, 3, 4, 5}), "full", GroupToFull))

	require.NoError(t, w.Cbind(other))
	assert.Equal(t, GroupToFull, w.Mode())
	assert.Equal(t, 2, w.NCols())

	c, err := w.RetrieveColumn(0)
	require.NoError(t, err)
	assert.Equal(t, 5, c.NRows(), "the narrower side is widened")
}

func TestWorkframeCbindMismatch(t *testing.T) {
	w := NewWorkframe(5, testGroupby(t))
	other := NewWorkframe(4, SingleGroup(4))
	assert.Error(t, w.Cbind(other))
}

func TestWorkframePlaceholder(t *testing.T) {
	w := NewWorkframe(2, SingleGroup(2))
	require.NoError(t, w.AddColumn(column.Ints([]int64{1, 2}), "a", GroupToFull))
	w.AddPlaceholder("new", uuid.Nil)
	require.True(t, w.Entry(1).IsPlaceholder())

	_, err := w.ToFrame()
	assert.Error(t, err, "an unassigned placeholder cannot become a frame")

	require.NoError(t, w.SetColumn(1, column.Strs([]string{"x", "y"})))
	assert.False(t, w.Entry(1).IsPlaceholder())

	f, err := w.ToFrame()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "new"}, f.Names())
}

func TestWorkframeToFrameNames(t *testing.T) {
	w := NewWorkframe(1, SingleGroup(1))
	require.NoError(t, w.AddColumn(column.Ints([]int64{1}), "", GroupToFull))
	require.NoError(t, w.AddColumn(column.Ints([]int64{2}), "x", GroupToFull))
	require.NoError(t, w.AddColumn(column.Ints([]int64{3}), "x", GroupToFull))

	f, err := w.ToFrame()
	require.NoError(t, err)
	assert.Equal(t, []string{"C0", "x", "x.1"}, f.Names())
}
