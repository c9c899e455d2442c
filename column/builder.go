package column

import "github.com/vegasq/framecat/errf"

// Builder accumulates element values for one column while an external
// reader ingests data. Values are staged in the widest member of the
// logical family; Seal packs them into the declared storage width.
//
// A reader that discovers mid-file that a column is wider than it guessed
// (for example integers turning into floats) calls ChangeType, which
// repacks everything written so far into the new family without losing
// data.
type Builder struct {
	st     SType
	target int // allocation hint

	bools  []bool
	ints   []int64
	floats []float64
	strs   []string
	objs   []interface{}
	valid  []bool
}

// NewBuilder creates a builder for a column of the given storage type,
// pre-allocating space for nrows values.
func NewBuilder(st SType, nrows int) *Builder {
	b := &Builder{st: st}
	b.Allocate(nrows)
	return b
}

// Allocate reserves staging space for nrows values. Already-written values
// are kept.
func (b *Builder) Allocate(nrows int) {
	b.target = nrows
	switch b.st.LType() {
	case LBool:
		if cap(b.bools) < nrows {
			b.bools = append(make([]bool, 0, nrows), b.bools...)
		}
	case LInt, LDateTime:
		if cap(b.ints) < nrows {
			b.ints = append(make([]int64, 0, nrows), b.ints...)
		}
	case LReal:
		if cap(b.floats) < nrows {
			b.floats = append(make([]float64, 0, nrows), b.floats...)
		}
	case LString:
		if cap(b.strs) < nrows {
			b.strs = append(make([]string, 0, nrows), b.strs...)
		}
	case LObject:
		if cap(b.objs) < nrows {
			b.objs = append(make([]interface{}, 0, nrows), b.objs...)
		}
	}
}

// Stype returns the storage type the builder will seal into.
func (b *Builder) Stype() SType { return b.st }

// Len returns the number of values written so far.
func (b *Builder) Len() int {
	switch b.st.LType() {
	case LBool:
		return len(b.bools)
	case LInt, LDateTime:
		return len(b.ints)
	case LReal:
		return len(b.floats)
	case LString:
		return len(b.strs)
	case LObject:
		return len(b.objs)
	default:
		return len(b.valid)
	}
}

func (b *Builder) pushValid(ok bool) {
	n := b.Len()
	if !ok && b.valid == nil {
		b.valid = allValid(n)
	}
	if b.valid != nil {
		b.valid = append(b.valid, ok)
	}
}

// PushBool appends a boolean value.
func (b *Builder) PushBool(v bool) {
	switch b.st.LType() {
	case LBool:
		b.pushValid(true)
		b.bools = append(b.bools, v)
	case LInt, LDateTime:
		x := int64(0)
		if v {
			x = 1
		}
		b.PushInt(x)
	case LReal:
		x := float64(0)
		if v {
			x = 1
		}
		b.PushFloat(x)
	case LObject:
		b.PushObj(v)
	default:
		panic(errf.Runtime("PushBool on a builder of type %s", b.st))
	}
}

// PushInt appends an integer value.
func (b *Builder) PushInt(v int64) {
	switch b.st.LType() {
	case LInt, LDateTime:
		b.pushValid(true)
		b.ints = append(b.ints, v)
	case LReal:
		b.PushFloat(float64(v))
	case LObject:
		b.PushObj(v)
	default:
		panic(errf.Runtime("PushInt on a builder of type %s", b.st))
	}
}

// PushFloat appends a floating point value.
func (b *Builder) PushFloat(v float64) {
	switch b.st.LType() {
	case LReal:
		b.pushValid(true)
		b.floats = append(b.floats, v)
	case LObject:
		b.PushObj(v)
	default:
		panic(errf.Runtime("PushFloat on a builder of type %s", b.st))
	}
}

// PushStr appends a string value.
func (b *Builder) PushStr(v string) {
	switch b.st.LType() {
	case LString:
		b.pushValid(true)
		b.strs = append(b.strs, v)
	case LObject:
		b.PushObj(v)
	default:
		panic(errf.Runtime("PushStr on a builder of type %s", b.st))
	}
}

// PushObj appends a host value.
func (b *Builder) PushObj(v interface{}) {
	if b.st.LType() != LObject {
		panic(errf.Runtime("PushObj on a builder of type %s", b.st))
	}
	b.pushValid(v != nil)
	b.objs = append(b.objs, v)
}

// PushNA appends a missing value.
func (b *Builder) PushNA() {
	b.pushValid(false)
	switch b.st.LType() {
	case LBool:
		b.bools = append(b.bools, false)
	case LInt, LDateTime:
		b.ints = append(b.ints, 0)
	case LReal:
		b.floats = append(b.floats, 0)
	case LString:
		b.strs = append(b.strs, "")
	case LObject:
		b.objs = append(b.objs, nil)
	}
}

// ChangeType switches the builder to a wider storage type, repacking all
// already-written values. Narrowing changes are rejected: the new type
// must be able to represent every value of the old family.
func (b *Builder) ChangeType(st SType) error {
	if st == b.st {
		return nil
	}
	from, to := b.st.LType(), st.LType()
	switch {
	case from == to:
		// Same family, different width; staging is already canonical.
	case from == LBool && (to == LInt || to == LReal):
		for _, v := range b.bools {
			x := int64(0)
			if v {
				x = 1
			}
			if to == LInt {
				b.ints = append(b.ints, x)
			} else {
				b.floats = append(b.floats, float64(x))
			}
		}
		b.bools = nil
	case from == LInt && to == LReal:
		for _, v := range b.ints {
			b.floats = append(b.floats, float64(v))
		}
		b.ints = nil
	case to == LObject:
		n := b.Len()
		for i := 0; i < n; i++ {
			if !validAt(b.valid, i) {
				b.objs = append(b.objs, nil)
				continue
			}
			switch from {
			case LBool:
				b.objs = append(b.objs, b.bools[i])
			case LInt, LDateTime:
				b.objs = append(b.objs, b.ints[i])
			case LReal:
				b.objs = append(b.objs, b.floats[i])
			case LString:
				b.objs = append(b.objs, b.strs[i])
			}
		}
		b.bools, b.ints, b.floats, b.strs = nil, nil, nil, nil
	default:
		return errf.Type("cannot change a builder of type %s to %s", b.st, st)
	}
	b.st = st
	return nil
}

// Seal finishes the builder and returns the built column. The builder
// must not be used afterwards.
func (b *Builder) Seal() Column {
	switch b.st {
	case Void:
		return NAs(len(b.valid))
	case Bool8:
		return BoolsNA(b.bools, b.valid)
	case Int8, Int16, Int32, Int64, Time64:
		return IntsAs(b.st, b.ints, b.valid)
	case Float32, Float64:
		return FloatsAs(b.st, b.floats, b.valid)
	case Str32, Str64:
		col := StrsNA(b.strs, b.valid)
		if b.st == Str64 {
			cast, err := col.Cast(Str64)
			if err == nil {
				return cast
			}
		}
		return col
	case Obj:
		return newColumn(&matObjs{data: b.objs, valid: b.valid})
	default:
		panic(errf.Runtime("cannot seal a builder of type %s", b.st))
	}
}
