package writer_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
	"github.com/vegasq/framecat/reader"
	"github.com/vegasq/framecat/writer"
)

func roundtripFrame(t *testing.T) *frame.Frame {
	t.Helper()
	ts := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)
	f, err := frame.New(
		[]string{"flag", "n", "score", "name", "seen"},
		[]column.Column{
			column.BoolsNA([]bool{true, false, false}, []bool{true, true, false}),
			column.IntsNA([]int64{10, 0, 30}, []bool{true, false, true}),
			column.FloatsNA([]float64{1.5, 2.5, 0}, []bool{true, true, false}),
			column.StrsNA([]string{"ada", "", "lin"}, []bool{true, false, true}),
			column.TimesNA([]int64{ts.UnixNano(), 0, ts.Add(time.Hour).UnixNano()}, []bool{true, false, true}),
		})
	require.NoError(t, err)
	return f
}

func TestRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, writer.WriteFrame(roundtripFrame(t), path))

	got, err := reader.ReadFrame(path)
	require.NoError(t, err)
	require.Equal(t, 3, got.NRows())
	require.Equal(t, 5, got.NCols())

	flag, err := got.ColumnByName("flag")
	require.NoError(t, err)
	assert.Equal(t, column.Bool8, flag.Stype())
	v, ok := flag.Bool8At(0)
	assert.True(t, ok)
	assert.True(t, v)
	_, ok = flag.Bool8At(2)
	assert.False(t, ok, "nulls come back as missing values")

	n, err := got.ColumnByName("n")
	require.NoError(t, err)
	assert.Equal(t, column.Int64, n.Stype())
	iv, ok := n.IntAt(2)
	assert.True(t, ok)
	assert.Equal(t, int64(30), iv)
	_, ok = n.IntAt(1)
	assert.False(t, ok)

	score, err := got.ColumnByName("score")
	require.NoError(t, err)
	assert.Equal(t, column.Float64, score.Stype())
	fv, ok := score.FloatAt(1)
	assert.True(t, ok)
	assert.Equal(t, 2.5, fv)

	name, err := got.ColumnByName("name")
	require.NoError(t, err)
	assert.Equal(t, column.LString, name.Stype().LType())
	sv, ok := name.StrAt(2)
	assert.True(t, ok)
	assert.Equal(t, "lin", sv)
	_, ok = name.StrAt(1)
	assert.False(t, ok)

	seen, err := got.ColumnByName("seen")
	require.NoError(t, err)
	assert.Equal(t, column.Time64, seen.Stype())
	tv, ok := seen.IntAt(0)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC).UnixNano(), tv)
}

func TestWriteRejectsObjects(t *testing.T) {
	f, err := frame.New(
		[]string{"o"},
		[]column.Column{column.Objs([]interface{}{struct{}{}})})
	require.NoError(t, err)

	err = writer.WriteFrame(f, filepath.Join(t.TempDir(), "bad.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "o"`)
}

func TestWriteFrameBadPath(t *testing.T) {
	err := writer.WriteFrame(roundtripFrame(t), filepath.Join(t.TempDir(), "missing", "out.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create file")
}

func TestRoundtripNarrowIntsWidenToInt32(t *testing.T) {
	src, err := frame.New(
		[]string{"v"},
		[]column.Column{column.Ints([]int64{1, 2, 3})})
	require.NoError(t, err)
	narrow, err := src.Column(0).Cast(column.Int8)
	require.NoError(t, err)
	f, err := frame.New([]string{"v"}, []column.Column{narrow})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "narrow.parquet")
	require.NoError(t, writer.WriteFrame(f, path))
	got, err := reader.ReadFrame(path)
	require.NoError(t, err)
	assert.Equal(t, column.Int32, got.Column(0).Stype())
	v, ok := got.Column(0).IntAt(2)
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)
}

func TestReadFrameGlob(t *testing.T) {
	dir := t.TempDir()
	f, err := frame.New(
		[]string{"v"},
		[]column.Column{column.Ints([]int64{1, 2})})
	require.NoError(t, err)
	require.NoError(t, writer.WriteFrame(f, filepath.Join(dir, "part-0.parquet")))
	require.NoError(t, writer.WriteFrame(f, filepath.Join(dir, "part-1.parquet")))

	got, err := reader.ReadFrameGlob(filepath.Join(dir, "part-*.parquet"))
	require.NoError(t, err)
	require.Equal(t, 4, got.NRows())

	file, err := got.ColumnByName("_file")
	require.NoError(t, err)
	first, ok := file.StrAt(0)
	require.True(t, ok)
	assert.Contains(t, first, "part-0.parquet")
	last, ok := file.StrAt(3)
	require.True(t, ok)
	assert.Contains(t, last, "part-1.parquet")
}

func TestReadFrameGlobNoMatch(t *testing.T) {
	_, err := reader.ReadFrameGlob(filepath.Join(t.TempDir(), "*.parquet"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files match")
}

func TestExtractSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.parquet")
	require.NoError(t, writer.WriteFrame(roundtripFrame(t), path))

	infos, err := reader.ExtractSchema(path)
	require.NoError(t, err)
	require.Len(t, infos, 5)

	byName := map[string]reader.ColumnInfo{}
	for _, info := range infos {
		byName[info.Name] = info
		assert.True(t, info.Optional, info.Name)
	}
	assert.Equal(t, column.Bool8, byName["flag"].Stype)
	assert.Equal(t, column.Int64, byName["n"].Stype)
	assert.Equal(t, column.Float64, byName["score"].Stype)
	assert.Equal(t, column.Str32, byName["name"].Stype)
	assert.Equal(t, column.Time64, byName["seen"].Stype)
	assert.Equal(t, "INT64", byName["n"].PhysicalType)
	assert.Equal(t, "BYTE_ARRAY", byName["name"].PhysicalType)
}
