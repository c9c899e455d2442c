package frame

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
)

// Groupby partitions a contiguous row range into ordered groups. It is
// stored as ngroups+1 non-decreasing offsets; group g covers
// [offs[g], offs[g+1]).
type Groupby struct {
	offs []int32
}

// SingleGroup builds the trivial partition: one group spanning all n
// rows. Ungrouped reductions are computed against this partition.
func SingleGroup(n int) Groupby {
	return Groupby{offs: []int32{0, int32(n)}}
}

// FromOffsets builds a Groupby from explicit boundary offsets. The
// offsets must start at zero and be non-decreasing.
func FromOffsets(offs []int32) (Groupby, error) {
	if len(offs) == 0 || offs[0] != 0 {
		return Groupby{}, errf.Value("group offsets must start at zero")
	}
	for i := 1; i < len(offs); i++ {
		if offs[i] < offs[i-1] {
			return Groupby{}, errf.Value("group offsets must be non-decreasing, got %d after %d", offs[i], offs[i-1])
		}
	}
	return Groupby{offs: offs}, nil
}

// NGroups returns the number of groups.
func (g Groupby) NGroups() int {
	if len(g.offs) == 0 {
		return 0
	}
	return len(g.offs) - 1
}

// NRows returns the number of rows covered by the partition.
func (g Groupby) NRows() int {
	if len(g.offs) == 0 {
		return 0
	}
	return int(g.offs[len(g.offs)-1])
}

// Group returns the [start, end) row range of group i.
func (g Groupby) Group(i int) (int, int) {
	if i < 0 || i >= g.NGroups() {
		panic(errf.Runtime("group %d out of bounds for a partition of %d groups", i, g.NGroups()))
	}
	return int(g.offs[i]), int(g.offs[i+1])
}

// Offsets returns the boundary offsets. The slice must not be modified.
func (g Groupby) Offsets() []int32 { return g.offs }

// RowToGroup builds a row→group lookup table for the partition.
func (g Groupby) RowToGroup() []int32 {
	out := make([]int32, g.NRows())
	for gi := 0; gi < g.NGroups(); gi++ {
		s, e := g.Group(gi)
		for r := s; r < e; r++ {
			out[r] = int32(gi)
		}
	}
	return out
}

// GroupsFromColumns partitions rows by the values of the given key
// columns. Groups are numbered in order of first appearance; the returned
// RowIndex permutes the source rows so that each group's rows are
// contiguous, matching the returned Groupby. Row keys are hashed with
// xxhash; hash collisions fall back to a full key comparison, so equal
// hashes never merge distinct keys.
func GroupsFromColumns(cols []column.Column) (Groupby, RowIndex, error) {
	if len(cols) == 0 {
		return Groupby{}, RowIndex{}, errf.Value("grouping requires at least one key column")
	}
	n := cols[0].NRows()
	for _, c := range cols[1:] {
		if c.NRows() != n {
			return Groupby{}, RowIndex{}, errf.Value(
				"grouping key columns have incompatible row counts %d and %d", n, c.NRows())
		}
	}

	var (
		buckets   = make(map[uint64][]int32) // hash -> group ids
		groupRows [][]int32
		firstRow  []int32
		keyBuf    []byte
	)
	for i := 0; i < n; i++ {
		keyBuf = encodeRowKey(keyBuf[:0], cols, i)
		h := xxhash.Sum64(keyBuf)

		gid := int32(-1)
		for _, cand := range buckets[h] {
			if rowsEqual(cols, int(firstRow[cand]), i) {
				gid = cand
				break
			}
		}
		if gid < 0 {
			gid = int32(len(groupRows))
			groupRows = append(groupRows, nil)
			firstRow = append(firstRow, int32(i))
			buckets[h] = append(buckets[h], gid)
		}
		groupRows[gid] = append(groupRows[gid], int32(i))
	}

	perm := make([]int32, 0, n)
	offs := make([]int32, len(groupRows)+1)
	for gi, rows := range groupRows {
		perm = append(perm, rows...)
		offs[gi+1] = int32(len(perm))
	}
	gb, err := FromOffsets(offs)
	if err != nil {
		return Groupby{}, RowIndex{}, err
	}
	return gb, ArrIndex32(perm), nil
}

// encodeRowKey appends a canonical byte encoding of row i's key values.
// The encoding separates type class, validity and value so that distinct
// keys never collide byte-wise.
func encodeRowKey(buf []byte, cols []column.Column, i int) []byte {
	for _, c := range cols {
		switch c.LType() {
		case column.LBool:
			v, ok := c.Bool8At(i)
			buf = append(buf, 'b', flag(ok), flag(v))
		case column.LInt, column.LDateTime:
			v, ok := c.IntAt(i)
			buf = append(buf, 'i', flag(ok))
			buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
		case column.LReal:
			v, ok := c.FloatAt(i)
			buf = append(buf, 'f', flag(ok))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		case column.LString:
			v, ok := c.StrAt(i)
			buf = append(buf, 's', flag(ok))
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(v)))
			buf = append(buf, v...)
		default:
			// Void and Obj group all rows by validity only.
			buf = append(buf, 'v', 0)
		}
	}
	return buf
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// rowsEqual compares the key values of two rows. NA equals NA.
func rowsEqual(cols []column.Column, a, b int) bool {
	for _, c := range cols {
		switch c.LType() {
		case column.LBool:
			va, oka := c.Bool8At(a)
			vb, okb := c.Bool8At(b)
			if oka != okb || (oka && va != vb) {
				return false
			}
		case column.LInt, column.LDateTime:
			va, oka := c.IntAt(a)
			vb, okb := c.IntAt(b)
			if oka != okb || (oka && va != vb) {
				return false
			}
		case column.LReal:
			va, oka := c.FloatAt(a)
			vb, okb := c.FloatAt(b)
			if oka != okb || (oka && va != vb) {
				return false
			}
		case column.LString:
			va, oka := c.StrAt(a)
			vb, okb := c.StrAt(b)
			if oka != okb || (oka && va != vb) {
				return false
			}
		}
	}
	return true
}
