package column

import (
	"unsafe"

	"github.com/vegasq/framecat/errf"
)

// Buffer is a read-only view of one physical data buffer of a
// materialized column, exposed for binary serialization. The bytes alias
// the column's storage and must not be written to or retained past the
// column's lifetime.
type Buffer struct {
	Name string
	Data []byte
}

// Buffers returns the column's physical buffers: a validity mask (when
// the column holds NAs), then the element data, and for string columns
// the offsets buffer followed by the character data. The column must be
// materialized first; virtual, constant and row-bound representations
// have no buffers of their own. Object columns hold host values and have
// no raw byte representation.
func (c Column) Buffers() ([]Buffer, error) {
	switch m := c.d.ci.(type) {
	case *matVoid:
		return nil, nil
	case *matBools:
		return withValidity(m.valid, Buffer{Name: "data", Data: boolBytes(m.data)}), nil
	case *matInts[int8]:
		return withValidity(m.valid, Buffer{Name: "data", Data: sliceBytes(m.data)}), nil
	case *matInts[int16]:
		return withValidity(m.valid, Buffer{Name: "data", Data: sliceBytes(m.data)}), nil
	case *matInts[int32]:
		return withValidity(m.valid, Buffer{Name: "data", Data: sliceBytes(m.data)}), nil
	case *matInts[int64]:
		return withValidity(m.valid, Buffer{Name: "data", Data: sliceBytes(m.data)}), nil
	case *matFloats[float32]:
		return withValidity(m.valid, Buffer{Name: "data", Data: sliceBytes(m.data)}), nil
	case *matFloats[float64]:
		return withValidity(m.valid, Buffer{Name: "data", Data: sliceBytes(m.data)}), nil
	case *matStrs[int32]:
		return withValidity(m.valid,
			Buffer{Name: "offsets", Data: sliceBytes(m.offs)},
			Buffer{Name: "strdata", Data: m.bytes}), nil
	case *matStrs[int64]:
		return withValidity(m.valid,
			Buffer{Name: "offsets", Data: sliceBytes(m.offs)},
			Buffer{Name: "strdata", Data: m.bytes}), nil
	case *matObjs:
		return nil, errf.Type("a column of type obj64 has no binary buffers")
	default:
		return nil, errf.Value("column of type %s must be materialized before its buffers are read", c.Stype())
	}
}

// NumBuffers returns the number of physical buffers of a materialized
// column.
func (c Column) NumBuffers() (int, error) {
	bufs, err := c.Buffers()
	if err != nil {
		return 0, err
	}
	return len(bufs), nil
}

func withValidity(valid []bool, bufs ...Buffer) []Buffer {
	if valid == nil {
		return bufs
	}
	out := make([]Buffer, 0, len(bufs)+1)
	out = append(out, Buffer{Name: "validity", Data: boolBytes(valid)})
	return append(out, bufs...)
}

func sliceBytes[T intElem | floatElem](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

func boolBytes(s []bool) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
}
