// Package column implements the engine's column value model: storage and
// logical types, the type-promotion lattice, and a shared copy-on-write
// Column handle over several interchangeable physical representations.
//
// A Column may be backed by a flat materialized buffer, a broadcast
// constant, a row-wise concatenation of chunks, a virtual view computed on
// every read, or a one-shot cache around an expensive virtual view. All of
// them answer the same element-access calls, so the rest of the engine
// never needs to know which representation it is holding.
//
// Example usage:
//
//	c := column.Ints([]int64{1, 2, 3})
//	v, ok := c.IntAt(1) // 2, true
//	d, err := c.Cast(column.Float64)
package column

// SType identifies the physical storage encoding of a column's elements.
//
// The numeric order of the values defines the promotion lattice: combining
// two types of the same logical family yields the larger one, and Void is
// the bottom element of every family.
type SType uint8

const (
	// Void is the bottom type: a column with no values, only NAs.
	Void SType = iota

	// Bool8 stores booleans one byte per element.
	Bool8

	// Int8 through Int64 are signed fixed-width integers.
	Int8
	Int16
	Int32
	Int64

	// Float32 and Float64 are IEEE-754 floating point.
	Float32
	Float64

	// Str32 and Str64 store strings as a flat byte buffer plus an offsets
	// buffer of 32-bit or 64-bit offsets respectively.
	Str32
	Str64

	// Time64 stores timestamps as nanoseconds since the Unix epoch.
	Time64

	// Obj stores arbitrary host values, one per element.
	Obj
)

var stypeNames = [...]string{
	Void:    "void",
	Bool8:   "bool8",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
	Str32:   "str32",
	Str64:   "str64",
	Time64:  "time64",
	Obj:     "obj64",
}

// String returns the display name of the storage type.
func (s SType) String() string {
	if int(s) < len(stypeNames) {
		return stypeNames[s]
	}
	return "invalid"
}

// LType returns the logical family the storage type belongs to.
func (s SType) LType() LType {
	switch s {
	case Void:
		return LVoid
	case Bool8:
		return LBool
	case Int8, Int16, Int32, Int64:
		return LInt
	case Float32, Float64:
		return LReal
	case Str32, Str64:
		return LString
	case Time64:
		return LDateTime
	case Obj:
		return LObject
	default:
		return LVoid
	}
}

// ElemSize returns the width in bytes of one element in the type's primary
// data buffer. For string types this is the width of one offset entry.
func (s SType) ElemSize() int {
	switch s {
	case Void:
		return 0
	case Bool8, Int8:
		return 1
	case Int16:
		return 2
	case Int32, Float32, Str32:
		return 4
	case Int64, Float64, Str64, Time64, Obj:
		return 8
	default:
		return 0
	}
}

// STypes lists every storage type the engine supports, in lattice order.
func STypes() []SType {
	return []SType{Void, Bool8, Int8, Int16, Int32, Int64, Float32, Float64, Str32, Str64, Time64, Obj}
}

// Promote returns the smallest storage type that can represent values of
// both a and b. It is total and commutative: Void promotes to anything,
// the same logical family promotes to the wider member, booleans promote
// into any numeric family, and integer/real combinations promote to a real
// type wide enough to hold the integer exactly. Families with no common
// representation promote to Obj; whether an *operation* is actually
// defined across such a pair is decided separately by the operator tables.
func Promote(a, b SType) SType {
	if a == b {
		return a
	}
	if a == Void {
		return b
	}
	if b == Void {
		return a
	}
	if a == Obj || b == Obj {
		return Obj
	}

	la, lb := a.LType(), b.LType()
	if la == lb {
		if a > b {
			return a
		}
		return b
	}

	// Bool behaves as the narrowest member of each numeric family.
	if la == LBool && (lb == LInt || lb == LReal) {
		return b
	}
	if lb == LBool && (la == LInt || la == LReal) {
		return a
	}

	// Integer with real: Float32 can only hold int8/int16 exactly.
	if la == LInt && lb == LReal {
		return promoteIntReal(a, b)
	}
	if lb == LInt && la == LReal {
		return promoteIntReal(b, a)
	}

	return Obj
}

func promoteIntReal(i, r SType) SType {
	if r == Float32 && i <= Int16 {
		return Float32
	}
	return Float64
}
