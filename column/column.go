package column

import (
	"go.uber.org/atomic"

	"github.com/vegasq/framecat/errf"
)

// impl is the closed set of physical column representations. It is
// unexported so no representation can be added from outside the package;
// every element-access operation must handle all five kinds.
type impl interface {
	stype() SType
	nrows() int

	// Element accessors. Each representation implements only the
	// accessors covered by its logical family and panics on the rest;
	// requesting an incompatible class is a programming error, not a
	// runtime condition.
	boolAt(i int) (bool, bool)
	intAt(i int) (int64, bool)
	floatAt(i int) (float64, bool)
	strAt(i int) (string, bool)
	objAt(i int) (interface{}, bool)

	// materialized reports whether the representation already is a flat
	// buffer; materializeInto produces an equivalent flat representation.
	materialized() bool
	materializeInto() impl

	// children returns owned child columns (rbound chunks, virtual
	// dependencies), or nil.
	children() []Column

	// deepCopy clones the representation so it can be mutated without
	// affecting other owners.
	deepCopy() impl
}

// colData is the shared, reference-counted box behind Column handles.
type colData struct {
	refs atomic.Int32
	ci   impl
}

// Column is a shared handle to one physical column representation.
//
// Copying the handle with Clone is O(1) and shares the underlying storage.
// Mutating operations (Materialize, CastInPlace, RepeatInPlace) follow
// copy-on-write: they check whether this handle is the sole owner and
// deep-copy first if it is not, so concurrent readers of other handles
// never observe the mutation. The sole-owner check happens before any
// parallel work is dispatched.
type Column struct {
	d *colData
}

func newColumn(ci impl) Column {
	d := &colData{ci: ci}
	d.refs.Store(1)
	return Column{d: d}
}

// Stype returns the column's storage type.
func (c Column) Stype() SType { return c.d.ci.stype() }

// LType returns the column's logical family.
func (c Column) LType() LType { return c.d.ci.stype().LType() }

// NRows returns the number of rows.
func (c Column) NRows() int { return c.d.ci.nrows() }

// Clone returns a new handle sharing the same storage. O(1).
func (c Column) Clone() Column {
	c.d.refs.Inc()
	return c
}

// Release drops this handle's ownership share. After Release the handle
// must not be used again.
func (c Column) Release() {
	c.d.refs.Dec()
}

// Refs returns the current number of owners. Exposed for tests.
func (c Column) Refs() int { return int(c.d.refs.Load()) }

func (c Column) shared() bool { return c.d.refs.Load() > 1 }

// Bool8At returns (value, valid) for row i of a boolean column.
func (c Column) Bool8At(i int) (bool, bool) { return c.d.ci.boolAt(i) }

// IntAt returns (value, valid) for row i, converted to int64. Valid for
// boolean, integer and datetime columns.
func (c Column) IntAt(i int) (int64, bool) { return c.d.ci.intAt(i) }

// FloatAt returns (value, valid) for row i, converted to float64. Valid
// for boolean, integer, real and datetime columns.
func (c Column) FloatAt(i int) (float64, bool) { return c.d.ci.floatAt(i) }

// StrAt returns (value, valid) for row i of a string column.
func (c Column) StrAt(i int) (string, bool) { return c.d.ci.strAt(i) }

// ObjAt returns (value, valid) for row i of an object column.
func (c Column) ObjAt(i int) (interface{}, bool) { return c.d.ci.objAt(i) }

// Materialized reports whether the column is already backed by flat
// buffers.
func (c Column) Materialized() bool { return c.d.ci.materialized() }

// Materialize forces the column into a flat-buffer representation holding
// the same logical values. Idempotent. If the storage is shared with
// other handles, only this handle is rebound to the materialized copy.
func (c *Column) Materialize() {
	if c.d.ci.materialized() {
		return
	}
	m := c.d.ci.materializeInto()
	c.rebind(m)
}

// rebind points this handle at a new representation, respecting
// copy-on-write: shared storage is left untouched for the other owners.
func (c *Column) rebind(ci impl) {
	if c.shared() {
		c.d.refs.Dec()
		d := &colData{ci: ci}
		d.refs.Store(1)
		c.d = d
		return
	}
	c.d.ci = ci
}

// exclusive returns an impl this handle may mutate in place, deep-copying
// shared storage first.
func (c *Column) exclusive() impl {
	if c.shared() {
		c.rebind(c.d.ci.deepCopy())
	}
	return c.d.ci
}

// Repeat returns a column with the values of c tiled n times. Constant
// columns grow in O(1); everything else becomes a row-bound concatenation
// of shared chunks, which is O(n) in handles but never copies buffers.
func (c Column) Repeat(n int) Column {
	if n <= 0 {
		return newColumn(&constImpl{st: c.Stype(), n: 0})
	}
	if n == 1 {
		return c.Clone()
	}
	if cc, ok := c.d.ci.(*constImpl); ok {
		grown := *cc
		grown.n = cc.n * n
		return newColumn(&grown)
	}
	if rb, ok := c.d.ci.(*rboundImpl); ok {
		chunks := make([]Column, 0, len(rb.chunks)*n)
		for i := 0; i < n; i++ {
			for _, ch := range rb.chunks {
				chunks = append(chunks, ch.Clone())
			}
		}
		return Rbind(chunks...)
	}
	chunks := make([]Column, n)
	for i := range chunks {
		chunks[i] = c.Clone()
	}
	return Rbind(chunks...)
}

// RepeatInPlace replaces c's storage with the values tiled n times,
// cloning first if the storage is shared.
func (c *Column) RepeatInPlace(n int) {
	r := c.Repeat(n)
	c.rebind(r.d.ci)
}

// Children returns the column's owned child columns, if any.
func (c Column) Children() []Column { return c.d.ci.children() }

func badAccess(st SType, want string) {
	panic(errf.Runtime("element access of class %s on a column of type %s", want, st))
}

func checkRow(i, n int) {
	if i < 0 || i >= n {
		panic(errf.Runtime("row %d out of bounds for column of %d rows", i, n))
	}
}
