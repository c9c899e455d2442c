package column

// virtualImpl computes elements on every read from a pure function over
// zero or more child columns. Only the reader function matching the
// column's logical family is set; the numeric accessors derive the other
// classes from it.
type virtualImpl struct {
	st   SType
	n    int
	deps []Column

	bfn func(i int) (bool, bool)
	ifn func(i int) (int64, bool)
	ffn func(i int) (float64, bool)
	sfn func(i int) (string, bool)
	ofn func(i int) (interface{}, bool)
}

func (v *virtualImpl) stype() SType { return v.st }
func (v *virtualImpl) nrows() int   { return v.n }

func (v *virtualImpl) boolAt(i int) (bool, bool) {
	checkRow(i, v.n)
	if v.bfn == nil {
		badAccess(v.st, "bool")
	}
	return v.bfn(i)
}

func (v *virtualImpl) intAt(i int) (int64, bool) {
	checkRow(i, v.n)
	switch {
	case v.ifn != nil:
		return v.ifn(i)
	case v.bfn != nil:
		b, ok := v.bfn(i)
		if b {
			return 1, ok
		}
		return 0, ok
	default:
		badAccess(v.st, "int")
		return 0, false
	}
}

func (v *virtualImpl) floatAt(i int) (float64, bool) {
	checkRow(i, v.n)
	switch {
	case v.ffn != nil:
		return v.ffn(i)
	case v.ifn != nil:
		x, ok := v.ifn(i)
		return float64(x), ok
	case v.bfn != nil:
		b, ok := v.bfn(i)
		if b {
			return 1, ok
		}
		return 0, ok
	default:
		badAccess(v.st, "float")
		return 0, false
	}
}

func (v *virtualImpl) strAt(i int) (string, bool) {
	checkRow(i, v.n)
	if v.sfn == nil {
		badAccess(v.st, "str")
	}
	return v.sfn(i)
}

func (v *virtualImpl) objAt(i int) (interface{}, bool) {
	checkRow(i, v.n)
	if v.ofn == nil {
		badAccess(v.st, "obj")
	}
	return v.ofn(i)
}

func (v *virtualImpl) materialized() bool    { return false }
func (v *virtualImpl) materializeInto() impl { return materializeOf(v) }
func (v *virtualImpl) children() []Column    { return v.deps }

func (v *virtualImpl) deepCopy() impl {
	cp := *v
	cp.deps = make([]Column, len(v.deps))
	for i, d := range v.deps {
		cp.deps[i] = d.Clone()
	}
	return &cp
}

// NewVirtualBool builds a computed boolean column of n rows.
func NewVirtualBool(n int, deps []Column, fn func(i int) (bool, bool)) Column {
	return newColumn(&virtualImpl{st: Bool8, n: n, deps: deps, bfn: fn})
}

// NewVirtualInt builds a computed integer or datetime column of n rows.
func NewVirtualInt(st SType, n int, deps []Column, fn func(i int) (int64, bool)) Column {
	return newColumn(&virtualImpl{st: st, n: n, deps: deps, ifn: fn})
}

// NewVirtualFloat builds a computed real column of n rows.
func NewVirtualFloat(st SType, n int, deps []Column, fn func(i int) (float64, bool)) Column {
	return newColumn(&virtualImpl{st: st, n: n, deps: deps, ffn: fn})
}

// NewVirtualStr builds a computed string column of n rows.
func NewVirtualStr(st SType, n int, deps []Column, fn func(i int) (string, bool)) Column {
	return newColumn(&virtualImpl{st: st, n: n, deps: deps, sfn: fn})
}

// NewVirtualObj builds a computed object column of n rows.
func NewVirtualObj(n int, deps []Column, fn func(i int) (interface{}, bool)) Column {
	return newColumn(&virtualImpl{st: Obj, n: n, deps: deps, ofn: fn})
}

// View builds a virtual column reading row idx(i) of src for every row i.
// When idx reports !ok the output row is NA. The source column is owned by
// the view, so its lifetime covers every read.
func View(src Column, n int, idx func(i int) (int, bool)) Column {
	deps := []Column{src.Clone()}
	switch src.LType() {
	case LVoid:
		return ConstNA(Void, n)
	case LBool:
		return newColumn(&virtualImpl{st: src.Stype(), n: n, deps: deps, bfn: func(i int) (bool, bool) {
			j, ok := idx(i)
			if !ok {
				return false, false
			}
			return src.Bool8At(j)
		}})
	case LInt, LDateTime:
		return newColumn(&virtualImpl{st: src.Stype(), n: n, deps: deps, ifn: func(i int) (int64, bool) {
			j, ok := idx(i)
			if !ok {
				return 0, false
			}
			return src.IntAt(j)
		}})
	case LReal:
		return newColumn(&virtualImpl{st: src.Stype(), n: n, deps: deps, ffn: func(i int) (float64, bool) {
			j, ok := idx(i)
			if !ok {
				return 0, false
			}
			return src.FloatAt(j)
		}})
	case LString:
		return newColumn(&virtualImpl{st: src.Stype(), n: n, deps: deps, sfn: func(i int) (string, bool) {
			j, ok := idx(i)
			if !ok {
				return "", false
			}
			return src.StrAt(j)
		}})
	default:
		return newColumn(&virtualImpl{st: Obj, n: n, deps: deps, ofn: func(i int) (interface{}, bool) {
			j, ok := idx(i)
			if !ok {
				return nil, false
			}
			return src.ObjAt(j)
		}})
	}
}
