package column

import "github.com/vegasq/framecat/errf"

// Materialized (flat-buffer) column representations. One concrete type per
// logical family, generic over the element width so that every storage
// type shares the same accessor code.

type intElem interface {
	~int8 | ~int16 | ~int32 | ~int64
}

type floatElem interface {
	~float32 | ~float64
}

type offElem interface {
	~int32 | ~int64
}

func validAt(valid []bool, i int) bool {
	return valid == nil || valid[i]
}

func allValid(n int) []bool {
	v := make([]bool, n)
	for i := range v {
		v[i] = true
	}
	return v
}

// matVoid is an all-NA column. Any element class may be requested from it;
// the answer is always NA.
type matVoid struct {
	n int
}

func (m *matVoid) stype() SType { return Void }
func (m *matVoid) nrows() int   { return m.n }

func (m *matVoid) boolAt(i int) (bool, bool)         { checkRow(i, m.n); return false, false }
func (m *matVoid) intAt(i int) (int64, bool)         { checkRow(i, m.n); return 0, false }
func (m *matVoid) floatAt(i int) (float64, bool)     { checkRow(i, m.n); return 0, false }
func (m *matVoid) strAt(i int) (string, bool)        { checkRow(i, m.n); return "", false }
func (m *matVoid) objAt(i int) (interface{}, bool)   { checkRow(i, m.n); return nil, false }
func (m *matVoid) materialized() bool                { return true }
func (m *matVoid) materializeInto() impl             { return m }
func (m *matVoid) children() []Column                { return nil }
func (m *matVoid) deepCopy() impl                    { cp := *m; return &cp }

// matBools stores booleans one byte per element.
type matBools struct {
	data  []bool
	valid []bool
}

func (m *matBools) stype() SType { return Bool8 }
func (m *matBools) nrows() int   { return len(m.data) }

func (m *matBools) boolAt(i int) (bool, bool) {
	checkRow(i, len(m.data))
	return m.data[i], validAt(m.valid, i)
}

func (m *matBools) intAt(i int) (int64, bool) {
	v, ok := m.boolAt(i)
	if v {
		return 1, ok
	}
	return 0, ok
}

func (m *matBools) floatAt(i int) (float64, bool) {
	v, ok := m.intAt(i)
	return float64(v), ok
}

func (m *matBools) strAt(i int) (string, bool)      { badAccess(Bool8, "str"); return "", false }
func (m *matBools) objAt(i int) (interface{}, bool) { badAccess(Bool8, "obj"); return nil, false }
func (m *matBools) materialized() bool              { return true }
func (m *matBools) materializeInto() impl           { return m }
func (m *matBools) children() []Column              { return nil }

func (m *matBools) deepCopy() impl {
	cp := &matBools{data: append([]bool(nil), m.data...)}
	if m.valid != nil {
		cp.valid = append([]bool(nil), m.valid...)
	}
	return cp
}

// matInts stores fixed-width integers (and nanosecond timestamps).
type matInts[T intElem] struct {
	st    SType
	data  []T
	valid []bool
}

func (m *matInts[T]) stype() SType { return m.st }
func (m *matInts[T]) nrows() int   { return len(m.data) }

func (m *matInts[T]) intAt(i int) (int64, bool) {
	checkRow(i, len(m.data))
	return int64(m.data[i]), validAt(m.valid, i)
}

func (m *matInts[T]) floatAt(i int) (float64, bool) {
	checkRow(i, len(m.data))
	return float64(m.data[i]), validAt(m.valid, i)
}

func (m *matInts[T]) boolAt(i int) (bool, bool)      { badAccess(m.st, "bool"); return false, false }
func (m *matInts[T]) strAt(i int) (string, bool)     { badAccess(m.st, "str"); return "", false }
func (m *matInts[T]) objAt(i int) (interface{}, bool) { badAccess(m.st, "obj"); return nil, false }
func (m *matInts[T]) materialized() bool             { return true }
func (m *matInts[T]) materializeInto() impl          { return m }
func (m *matInts[T]) children() []Column             { return nil }

func (m *matInts[T]) deepCopy() impl {
	cp := &matInts[T]{st: m.st, data: append([]T(nil), m.data...)}
	if m.valid != nil {
		cp.valid = append([]bool(nil), m.valid...)
	}
	return cp
}

// matFloats stores IEEE-754 floating point values.
type matFloats[T floatElem] struct {
	st    SType
	data  []T
	valid []bool
}

func (m *matFloats[T]) stype() SType { return m.st }
func (m *matFloats[T]) nrows() int   { return len(m.data) }

func (m *matFloats[T]) floatAt(i int) (float64, bool) {
	checkRow(i, len(m.data))
	return float64(m.data[i]), validAt(m.valid, i)
}

func (m *matFloats[T]) boolAt(i int) (bool, bool)      { badAccess(m.st, "bool"); return false, false }
func (m *matFloats[T]) intAt(i int) (int64, bool)      { badAccess(m.st, "int"); return 0, false }
func (m *matFloats[T]) strAt(i int) (string, bool)     { badAccess(m.st, "str"); return "", false }
func (m *matFloats[T]) objAt(i int) (interface{}, bool) { badAccess(m.st, "obj"); return nil, false }
func (m *matFloats[T]) materialized() bool             { return true }
func (m *matFloats[T]) materializeInto() impl          { return m }
func (m *matFloats[T]) children() []Column             { return nil }

func (m *matFloats[T]) deepCopy() impl {
	cp := &matFloats[T]{st: m.st, data: append([]T(nil), m.data...)}
	if m.valid != nil {
		cp.valid = append([]bool(nil), m.valid...)
	}
	return cp
}

// matStrs stores strings as a flat byte buffer plus n+1 offsets. The
// offset width is the difference between the two string storage types.
type matStrs[O offElem] struct {
	st    SType
	offs  []O // len nrows+1
	bytes []byte
	valid []bool
}

func (m *matStrs[O]) stype() SType { return m.st }
func (m *matStrs[O]) nrows() int   { return len(m.offs) - 1 }

func (m *matStrs[O]) strAt(i int) (string, bool) {
	checkRow(i, m.nrows())
	if !validAt(m.valid, i) {
		return "", false
	}
	return string(m.bytes[m.offs[i]:m.offs[i+1]]), true
}

func (m *matStrs[O]) boolAt(i int) (bool, bool)      { badAccess(m.st, "bool"); return false, false }
func (m *matStrs[O]) intAt(i int) (int64, bool)      { badAccess(m.st, "int"); return 0, false }
func (m *matStrs[O]) floatAt(i int) (float64, bool)  { badAccess(m.st, "float"); return 0, false }
func (m *matStrs[O]) objAt(i int) (interface{}, bool) { badAccess(m.st, "obj"); return nil, false }
func (m *matStrs[O]) materialized() bool             { return true }
func (m *matStrs[O]) materializeInto() impl          { return m }
func (m *matStrs[O]) children() []Column             { return nil }

func (m *matStrs[O]) deepCopy() impl {
	cp := &matStrs[O]{
		st:    m.st,
		offs:  append([]O(nil), m.offs...),
		bytes: append([]byte(nil), m.bytes...),
	}
	if m.valid != nil {
		cp.valid = append([]bool(nil), m.valid...)
	}
	return cp
}

// matObjs stores arbitrary host values. A nil entry is NA.
type matObjs struct {
	data  []interface{}
	valid []bool
}

func (m *matObjs) stype() SType { return Obj }
func (m *matObjs) nrows() int   { return len(m.data) }

func (m *matObjs) objAt(i int) (interface{}, bool) {
	checkRow(i, len(m.data))
	if !validAt(m.valid, i) || m.data[i] == nil {
		return nil, false
	}
	return m.data[i], true
}

func (m *matObjs) boolAt(i int) (bool, bool)     { badAccess(Obj, "bool"); return false, false }
func (m *matObjs) intAt(i int) (int64, bool)     { badAccess(Obj, "int"); return 0, false }
func (m *matObjs) floatAt(i int) (float64, bool) { badAccess(Obj, "float"); return 0, false }
func (m *matObjs) strAt(i int) (string, bool)    { badAccess(Obj, "str"); return "", false }
func (m *matObjs) materialized() bool            { return true }
func (m *matObjs) materializeInto() impl         { return m }
func (m *matObjs) children() []Column            { return nil }

func (m *matObjs) deepCopy() impl {
	cp := &matObjs{data: append([]interface{}(nil), m.data...)}
	if m.valid != nil {
		cp.valid = append([]bool(nil), m.valid...)
	}
	return cp
}

// materializeOf builds a flat-buffer representation equivalent to ci, for
// any storage type. Used by the non-materialized kinds.
func materializeOf(ci impl) impl {
	st := ci.stype()
	n := ci.nrows()
	switch st {
	case Void:
		return &matVoid{n: n}
	case Bool8:
		data := make([]bool, n)
		var valid []bool
		for i := 0; i < n; i++ {
			v, ok := ci.boolAt(i)
			if !ok {
				if valid == nil {
					valid = allValid(n)
				}
				valid[i] = false
				continue
			}
			data[i] = v
		}
		return &matBools{data: data, valid: valid}
	case Int8:
		return buildIntMat[int8](st, ci)
	case Int16:
		return buildIntMat[int16](st, ci)
	case Int32:
		return buildIntMat[int32](st, ci)
	case Int64, Time64:
		return buildIntMat[int64](st, ci)
	case Float32:
		return buildFloatMat[float32](st, ci)
	case Float64:
		return buildFloatMat[float64](st, ci)
	case Str32:
		return buildStrMat[int32](st, ci)
	case Str64:
		return buildStrMat[int64](st, ci)
	case Obj:
		data := make([]interface{}, n)
		for i := 0; i < n; i++ {
			if v, ok := ci.objAt(i); ok {
				data[i] = v
			}
		}
		return &matObjs{data: data}
	default:
		panic(errf.Runtime("cannot materialize column of type %s", st))
	}
}

func buildIntMat[T intElem](st SType, ci impl) impl {
	n := ci.nrows()
	data := make([]T, n)
	var valid []bool
	for i := 0; i < n; i++ {
		v, ok := ci.intAt(i)
		if !ok {
			if valid == nil {
				valid = allValid(n)
			}
			valid[i] = false
			continue
		}
		data[i] = T(v)
	}
	return &matInts[T]{st: st, data: data, valid: valid}
}

func buildFloatMat[T floatElem](st SType, ci impl) impl {
	n := ci.nrows()
	data := make([]T, n)
	var valid []bool
	for i := 0; i < n; i++ {
		v, ok := ci.floatAt(i)
		if !ok {
			if valid == nil {
				valid = allValid(n)
			}
			valid[i] = false
			continue
		}
		data[i] = T(v)
	}
	return &matFloats[T]{st: st, data: data, valid: valid}
}

func buildStrMat[O offElem](st SType, ci impl) impl {
	n := ci.nrows()
	offs := make([]O, n+1)
	var bytes []byte
	var valid []bool
	for i := 0; i < n; i++ {
		v, ok := ci.strAt(i)
		if !ok {
			if valid == nil {
				valid = allValid(n)
			}
			valid[i] = false
			offs[i+1] = offs[i]
			continue
		}
		bytes = append(bytes, v...)
		offs[i+1] = O(len(bytes))
	}
	return &matStrs[O]{st: st, offs: offs, bytes: bytes, valid: valid}
}
