// Package frame implements the engine's selection primitives (RowIndex,
// Groupby) and its column containers: Frame, a finished ordered set of
// named columns, and Workframe, the in-progress builder used while an
// expression tree is evaluated.
package frame

import (
	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
)

// NotFound is the sentinel stored in array-form row indexes for rows that
// are excluded from the selection; reading through it yields NA.
const NotFound = -1

// RowIndexKind tags the physical form of a RowIndex.
type RowIndexKind int

const (
	// RISlice is an arithmetic progression (start, count, step).
	RISlice RowIndexKind = iota
	// RIArr32 is an explicit array of 32-bit row positions.
	RIArr32
	// RIArr64 is an explicit array of 64-bit row positions.
	RIArr64
)

// RowIndex describes a selection (and permutation) of source rows. It is
// immutable once built. The zero value selects nothing.
type RowIndex struct {
	kind  RowIndexKind
	start int64
	count int64
	step  int64
	arr32 []int32
	arr64 []int64
}

// SliceIndex builds a slice-form RowIndex selecting rows start,
// start+step, ... (count rows). The step may be negative or zero.
func SliceIndex(start, count, step int64) RowIndex {
	if count < 0 {
		panic(errf.Runtime("slice row index with negative count %d", count))
	}
	if count > 0 && start < 0 {
		panic(errf.Runtime("slice row index with negative start %d", start))
	}
	return RowIndex{kind: RISlice, start: start, count: count, step: step}
}

// Identity builds the RowIndex selecting all n rows in order.
func Identity(n int) RowIndex { return SliceIndex(0, int64(n), 1) }

// ArrIndex32 builds an array-form RowIndex from explicit positions.
// Entries equal to NotFound mark excluded rows.
func ArrIndex32(idx []int32) RowIndex { return RowIndex{kind: RIArr32, arr32: idx} }

// ArrIndex64 builds a 64-bit array-form RowIndex.
func ArrIndex64(idx []int64) RowIndex { return RowIndex{kind: RIArr64, arr64: idx} }

// Kind returns the physical form of the index.
func (ri RowIndex) Kind() RowIndexKind { return ri.kind }

// NRows returns the number of selected rows.
func (ri RowIndex) NRows() int {
	switch ri.kind {
	case RISlice:
		return int(ri.count)
	case RIArr32:
		return len(ri.arr32)
	default:
		return len(ri.arr64)
	}
}

// At returns the source row for output row i, or ok=false when the row is
// excluded (NA).
func (ri RowIndex) At(i int) (int64, bool) {
	switch ri.kind {
	case RISlice:
		if i < 0 || int64(i) >= ri.count {
			panic(errf.Runtime("row %d out of bounds for a selection of %d rows", i, ri.count))
		}
		return ri.start + ri.step*int64(i), true
	case RIArr32:
		v := ri.arr32[i]
		if v == NotFound {
			return 0, false
		}
		return int64(v), true
	default:
		v := ri.arr64[i]
		if v == NotFound {
			return 0, false
		}
		return v, true
	}
}

// IsIdentity reports whether the index selects rows 0..n-1 in order.
func (ri RowIndex) IsIdentity(n int) bool {
	return ri.kind == RISlice && ri.start == 0 && ri.step == 1 && ri.count == int64(n)
}

// Compose combines two row indexes into one equivalent to applying inner
// first and outer second: the result's row i reads source row
// inner[outer[i]]. Two slice-form indexes always collapse back to slice
// form without allocating; this is relied upon by hot paths that stack
// selections.
func Compose(outer, inner RowIndex) RowIndex {
	if outer.kind == RISlice && inner.kind == RISlice {
		return SliceIndex(
			inner.start+inner.step*outer.start,
			outer.count,
			inner.step*outer.step,
		)
	}
	n := outer.NRows()
	out := make([]int64, n)
	needs64 := false
	for i := 0; i < n; i++ {
		j, ok := outer.At(i)
		if !ok {
			out[i] = NotFound
			continue
		}
		if j < 0 || int(j) >= inner.NRows() {
			panic(errf.Runtime("compose: row %d out of bounds for a selection of %d rows", j, inner.NRows()))
		}
		v, ok := inner.At(int(j))
		if !ok {
			out[i] = NotFound
			continue
		}
		out[i] = v
		if v > 1<<31-1 {
			needs64 = true
		}
	}
	if needs64 {
		return ArrIndex64(out)
	}
	out32 := make([]int32, n)
	for i, v := range out {
		out32[i] = int32(v)
	}
	return ArrIndex32(out32)
}

// Select applies the row selection to a column, producing a (virtual)
// column of the selected rows. Excluded rows read as NA. Applying the
// identity selection returns the column unchanged.
func (ri RowIndex) Select(c column.Column) column.Column {
	if ri.IsIdentity(c.NRows()) {
		return c.Clone()
	}
	return column.View(c, ri.NRows(), func(i int) (int, bool) {
		j, ok := ri.At(i)
		if !ok {
			return 0, false
		}
		return int(j), true
	})
}

// FromBools converts a boolean column into a RowIndex selecting the rows
// where the value is true, preserving order. NA counts as false.
func FromBools(c column.Column) (RowIndex, error) {
	if c.LType() != column.LBool {
		return RowIndex{}, errf.Type("a row selector column must be of boolean type, not %s", c.Stype())
	}
	n := c.NRows()
	var out []int32
	for i := 0; i < n; i++ {
		v, ok := c.Bool8At(i)
		if ok && v {
			out = append(out, int32(i))
		}
	}
	return ArrIndex32(out), nil
}

// FromInts converts an integer column into a RowIndex of explicit
// positions, bounds-checked against nrows. Negative positions count from
// the end; NA positions select an all-NA row.
func FromInts(c column.Column, nrows int) (RowIndex, error) {
	if c.LType() != column.LInt && c.LType() != column.LBool {
		return RowIndex{}, errf.Type("a row selector column must be of integer type, not %s", c.Stype())
	}
	n := c.NRows()
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		v, ok := c.IntAt(i)
		if !ok {
			out[i] = NotFound
			continue
		}
		if v < 0 {
			v += int64(nrows)
		}
		if v < 0 || v >= int64(nrows) {
			orig, _ := c.IntAt(i)
			return RowIndex{}, errf.Value("row %d is out of range for a frame with %d rows", orig, nrows)
		}
		out[i] = int32(v)
	}
	return ArrIndex32(out), nil
}

// NormalizeSlice resolves optional slice bounds against n rows with the
// usual negative-from-the-end semantics, returning slice parameters for
// SliceIndex.
func NormalizeSlice(start, stop, step *int64, n int64) (int64, int64, int64, error) {
	st := int64(1)
	if step != nil {
		st = *step
	}
	if st == 0 {
		return 0, 0, 0, errf.Value("slice step cannot be zero")
	}

	clamp := func(v, lo, hi int64) int64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}

	var s, e int64
	if st > 0 {
		s, e = int64(0), n
	} else {
		s, e = n-1, -1
	}
	if start != nil {
		s = *start
		if s < 0 {
			s += n
		}
		if st > 0 {
			s = clamp(s, 0, n)
		} else {
			s = clamp(s, -1, n-1)
		}
	}
	if stop != nil {
		e = *stop
		if e < 0 {
			e += n
		}
		if st > 0 {
			e = clamp(e, 0, n)
		} else {
			e = clamp(e, -1, n-1)
		}
	}

	var count int64
	if st > 0 && e > s {
		count = (e - s + st - 1) / st
	} else if st < 0 && e < s {
		count = (s - e + (-st) - 1) / (-st)
	}
	if count == 0 {
		s = 0
	}
	return s, count, st, nil
}
