package column

import (
	"sort"

	"github.com/vegasq/framecat/errf"
)

// rboundImpl concatenates child columns of the same storage type row-wise.
// Row i is dispatched to the child whose offset range covers it.
type rboundImpl struct {
	st     SType
	n      int
	chunks []Column
	offs   []int64 // len(chunks)+1 cumulative row offsets
}

// Rbind concatenates columns row-wise. All columns must share one storage
// type; mixed-type concatenation is resolved by the caller through Cast
// before binding. Child buffers are shared, never copied.
func Rbind(cols ...Column) Column {
	if len(cols) == 0 {
		return newColumn(&matVoid{n: 0})
	}
	st := cols[0].Stype()
	for _, c := range cols[1:] {
		if c.Stype() != st {
			panic(errf.Runtime("rbind of mismatched storage types %s and %s", st, c.Stype()))
		}
	}
	if len(cols) == 1 {
		return cols[0].Clone()
	}
	rb := &rboundImpl{st: st, chunks: make([]Column, len(cols)), offs: make([]int64, len(cols)+1)}
	for i, c := range cols {
		rb.chunks[i] = c.Clone()
		rb.offs[i+1] = rb.offs[i] + int64(c.NRows())
	}
	rb.n = int(rb.offs[len(cols)])
	return newColumn(rb)
}

func (r *rboundImpl) stype() SType { return r.st }
func (r *rboundImpl) nrows() int   { return r.n }

// locate maps a global row to (chunk, local row).
func (r *rboundImpl) locate(i int) (int, int) {
	checkRow(i, r.n)
	k := sort.Search(len(r.chunks), func(c int) bool { return r.offs[c+1] > int64(i) })
	return k, i - int(r.offs[k])
}

func (r *rboundImpl) boolAt(i int) (bool, bool) {
	k, j := r.locate(i)
	return r.chunks[k].Bool8At(j)
}

func (r *rboundImpl) intAt(i int) (int64, bool) {
	k, j := r.locate(i)
	return r.chunks[k].IntAt(j)
}

func (r *rboundImpl) floatAt(i int) (float64, bool) {
	k, j := r.locate(i)
	return r.chunks[k].FloatAt(j)
}

func (r *rboundImpl) strAt(i int) (string, bool) {
	k, j := r.locate(i)
	return r.chunks[k].StrAt(j)
}

func (r *rboundImpl) objAt(i int) (interface{}, bool) {
	k, j := r.locate(i)
	return r.chunks[k].ObjAt(j)
}

func (r *rboundImpl) materialized() bool    { return false }
func (r *rboundImpl) materializeInto() impl { return materializeOf(r) }
func (r *rboundImpl) children() []Column    { return r.chunks }

func (r *rboundImpl) deepCopy() impl {
	cp := &rboundImpl{st: r.st, n: r.n, offs: append([]int64(nil), r.offs...)}
	cp.chunks = make([]Column, len(r.chunks))
	for i, c := range r.chunks {
		cp.chunks[i] = c.Clone()
	}
	return cp
}
