package column

import "github.com/vegasq/framecat/errf"

// constImpl broadcasts a single value (or NA) across all rows. It never
// allocates per-row storage unless explicitly materialized.
type constImpl struct {
	st    SType
	n     int
	valid bool

	bv bool
	iv int64
	fv float64
	sv string
	ov interface{}
}

func (c *constImpl) stype() SType { return c.st }
func (c *constImpl) nrows() int   { return c.n }

func (c *constImpl) boolAt(i int) (bool, bool) {
	checkRow(i, c.n)
	if c.st.LType() != LBool {
		badAccess(c.st, "bool")
	}
	return c.bv, c.valid
}

func (c *constImpl) intAt(i int) (int64, bool) {
	checkRow(i, c.n)
	switch c.st.LType() {
	case LBool:
		if c.bv {
			return 1, c.valid
		}
		return 0, c.valid
	case LInt, LDateTime:
		return c.iv, c.valid
	case LVoid:
		return 0, false
	default:
		badAccess(c.st, "int")
		return 0, false
	}
}

func (c *constImpl) floatAt(i int) (float64, bool) {
	checkRow(i, c.n)
	switch c.st.LType() {
	case LBool:
		if c.bv {
			return 1, c.valid
		}
		return 0, c.valid
	case LInt, LDateTime:
		return float64(c.iv), c.valid
	case LReal:
		return c.fv, c.valid
	case LVoid:
		return 0, false
	default:
		badAccess(c.st, "float")
		return 0, false
	}
}

func (c *constImpl) strAt(i int) (string, bool) {
	checkRow(i, c.n)
	if c.st.LType() == LVoid {
		return "", false
	}
	if c.st.LType() != LString {
		badAccess(c.st, "str")
	}
	return c.sv, c.valid
}

func (c *constImpl) objAt(i int) (interface{}, bool) {
	checkRow(i, c.n)
	if c.st.LType() == LVoid {
		return nil, false
	}
	if c.st.LType() != LObject {
		badAccess(c.st, "obj")
	}
	return c.ov, c.valid
}

func (c *constImpl) materialized() bool    { return false }
func (c *constImpl) materializeInto() impl { return materializeOf(c) }
func (c *constImpl) children() []Column    { return nil }
func (c *constImpl) deepCopy() impl        { cp := *c; return &cp }

// ConstBool returns an n-row broadcast of a single boolean.
func ConstBool(v bool, n int) Column {
	return newColumn(&constImpl{st: Bool8, n: n, valid: true, bv: v})
}

// ConstInt returns an n-row broadcast of a single integer with the given
// integer (or datetime) storage type.
func ConstInt(st SType, v int64, n int) Column {
	if st.LType() != LInt && st.LType() != LDateTime {
		panic(errf.Runtime("ConstInt called with storage type %s", st))
	}
	return newColumn(&constImpl{st: st, n: n, valid: true, iv: v})
}

// ConstFloat returns an n-row broadcast of a single float.
func ConstFloat(st SType, v float64, n int) Column {
	if st.LType() != LReal {
		panic(errf.Runtime("ConstFloat called with storage type %s", st))
	}
	return newColumn(&constImpl{st: st, n: n, valid: true, fv: v})
}

// ConstStr returns an n-row broadcast of a single string.
func ConstStr(v string, n int) Column {
	return newColumn(&constImpl{st: Str32, n: n, valid: true, sv: v})
}

// ConstObj returns an n-row broadcast of a single host value.
func ConstObj(v interface{}, n int) Column {
	return newColumn(&constImpl{st: Obj, n: n, valid: v != nil, ov: v})
}

// ConstNA returns an n-row broadcast NA of the given storage type.
func ConstNA(st SType, n int) Column {
	return newColumn(&constImpl{st: st, n: n})
}
