package column

// LType identifies the logical family of a storage type. Operations are
// defined in terms of logical families; the storage type only decides
// element width and promotion within the family.
type LType uint8

const (
	LVoid LType = iota
	LBool
	LInt
	LReal
	LString
	LDateTime
	LObject
)

var ltypeNames = [...]string{
	LVoid:     "void",
	LBool:     "bool",
	LInt:      "int",
	LReal:     "real",
	LString:   "str",
	LDateTime: "time",
	LObject:   "obj",
}

// String returns the display name of the logical type.
func (l LType) String() string {
	if int(l) < len(ltypeNames) {
		return ltypeNames[l]
	}
	return "invalid"
}

// STypesOf returns the storage types belonging to the family, narrowest
// first.
func STypesOf(l LType) []SType {
	switch l {
	case LVoid:
		return []SType{Void}
	case LBool:
		return []SType{Bool8}
	case LInt:
		return []SType{Int8, Int16, Int32, Int64}
	case LReal:
		return []SType{Float32, Float64}
	case LString:
		return []SType{Str32, Str64}
	case LDateTime:
		return []SType{Time64}
	case LObject:
		return []SType{Obj}
	default:
		return nil
	}
}

// IsNumeric reports whether the family supports arithmetic.
func (l LType) IsNumeric() bool {
	return l == LBool || l == LInt || l == LReal
}
