package column

import "github.com/vegasq/framecat/errf"

// Constructors building materialized columns from Go slices. The valid
// slice marks rows that hold a value; a nil valid slice means every row is
// valid. The data slices are owned by the column after the call.

// Bools builds a Bool8 column.
func Bools(data []bool) Column { return BoolsNA(data, nil) }

// BoolsNA builds a Bool8 column with a validity mask.
func BoolsNA(data, valid []bool) Column {
	return newColumn(&matBools{data: data, valid: valid})
}

// Ints builds an Int64 column.
func Ints(data []int64) Column { return IntsNA(data, nil) }

// IntsNA builds an Int64 column with a validity mask.
func IntsNA(data []int64, valid []bool) Column {
	return newColumn(&matInts[int64]{st: Int64, data: data, valid: valid})
}

// IntsAs builds an integer column of the requested width from int64
// values, truncating with Go conversion semantics.
func IntsAs(st SType, data []int64, valid []bool) Column {
	switch st {
	case Int8:
		return newColumn(&matInts[int8]{st: st, data: narrowInts[int8](data), valid: valid})
	case Int16:
		return newColumn(&matInts[int16]{st: st, data: narrowInts[int16](data), valid: valid})
	case Int32:
		return newColumn(&matInts[int32]{st: st, data: narrowInts[int32](data), valid: valid})
	case Int64, Time64:
		return newColumn(&matInts[int64]{st: st, data: data, valid: valid})
	default:
		panic(errf.Runtime("IntsAs called with storage type %s", st))
	}
}

func narrowInts[T intElem](data []int64) []T {
	out := make([]T, len(data))
	for i, v := range data {
		out[i] = T(v)
	}
	return out
}

// Floats builds a Float64 column.
func Floats(data []float64) Column { return FloatsNA(data, nil) }

// FloatsNA builds a Float64 column with a validity mask.
func FloatsNA(data []float64, valid []bool) Column {
	return newColumn(&matFloats[float64]{st: Float64, data: data, valid: valid})
}

// FloatsAs builds a real column of the requested width.
func FloatsAs(st SType, data []float64, valid []bool) Column {
	switch st {
	case Float32:
		f32 := make([]float32, len(data))
		for i, v := range data {
			f32[i] = float32(v)
		}
		return newColumn(&matFloats[float32]{st: st, data: f32, valid: valid})
	case Float64:
		return newColumn(&matFloats[float64]{st: st, data: data, valid: valid})
	default:
		panic(errf.Runtime("FloatsAs called with storage type %s", st))
	}
}

// Strs builds a Str32 column.
func Strs(data []string) Column { return StrsNA(data, nil) }

// StrsNA builds a Str32 column with a validity mask.
func StrsNA(data []string, valid []bool) Column {
	offs := make([]int32, len(data)+1)
	var bytes []byte
	for i, s := range data {
		if validAt(valid, i) {
			bytes = append(bytes, s...)
		}
		offs[i+1] = int32(len(bytes))
	}
	return newColumn(&matStrs[int32]{st: Str32, offs: offs, bytes: bytes, valid: valid})
}

// Times builds a Time64 column from nanosecond timestamps.
func Times(data []int64) Column { return TimesNA(data, nil) }

// TimesNA builds a Time64 column with a validity mask.
func TimesNA(data []int64, valid []bool) Column {
	return newColumn(&matInts[int64]{st: Time64, data: data, valid: valid})
}

// Objs builds an Obj column. Nil entries are NA.
func Objs(data []interface{}) Column {
	return newColumn(&matObjs{data: data})
}

// NAs builds an n-row void column (all NA).
func NAs(n int) Column {
	return newColumn(&matVoid{n: n})
}

// FromValue builds an n-row constant column from a Go literal value. Nil
// yields a void column. Integers become Int32 (the engine's default
// literal width) unless they do not fit.
func FromValue(v interface{}, n int) Column {
	switch x := v.(type) {
	case nil:
		return ConstNA(Void, n)
	case bool:
		return ConstBool(x, n)
	case int:
		return fromIntLiteral(int64(x), n)
	case int32:
		return ConstInt(Int32, int64(x), n)
	case int64:
		return fromIntLiteral(x, n)
	case float32:
		return ConstFloat(Float32, float64(x), n)
	case float64:
		return ConstFloat(Float64, x, n)
	case string:
		return ConstStr(x, n)
	default:
		return ConstObj(v, n)
	}
}

func fromIntLiteral(v int64, n int) Column {
	if v >= -1<<31 && v < 1<<31 {
		return ConstInt(Int32, v, n)
	}
	return ConstInt(Int64, v, n)
}
