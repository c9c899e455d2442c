package column

import (
	"strconv"
	"strings"
	"time"

	"github.com/vegasq/framecat/errf"
)

// Cast returns a column of the requested storage type holding the same
// logical values. NA always maps to NA. Numeric conversions follow Go
// semantics; string values that do not parse as the target type become NA
// rather than raising an error. Conversions between numeric families stay
// lazy (virtual); parsing casts are materialized eagerly so the parse runs
// once, not on every read.
func (c Column) Cast(target SType) (Column, error) {
	src := c.Stype()
	if src == target {
		return c.Clone(), nil
	}
	n := c.NRows()

	if src == Void {
		return ConstNA(target, n), nil
	}
	if target == Void {
		return Column{}, errf.Type("cannot cast a column of type %s to %s", src, target)
	}
	if target == Obj {
		return c.castToObj(), nil
	}
	if src == Obj {
		return c.castFromObj(target)
	}

	srcL, dstL := src.LType(), target.LType()
	switch {
	case srcL.IsNumeric() || srcL == LDateTime:
		switch {
		case dstL == LBool:
			cc := c.Clone()
			return NewVirtualBool(n, []Column{cc}, func(i int) (bool, bool) {
				v, ok := cc.FloatAt(i)
				return v != 0, ok
			}), nil
		case dstL == LInt || dstL == LDateTime:
			cc := c.Clone()
			var col Column
			if srcL == LReal {
				col = NewVirtualInt(target, n, []Column{cc}, func(i int) (int64, bool) {
					v, ok := cc.FloatAt(i)
					return int64(v), ok
				})
			} else {
				col = NewVirtualInt(target, n, []Column{cc}, func(i int) (int64, bool) {
					return cc.IntAt(i)
				})
			}
			return col, nil
		case dstL == LReal:
			cc := c.Clone()
			return NewVirtualFloat(target, n, []Column{cc}, func(i int) (float64, bool) {
				return cc.FloatAt(i)
			}), nil
		case dstL == LString:
			return c.castToStr(target), nil
		}
	case srcL == LString:
		switch {
		case dstL == LBool, dstL == LInt, dstL == LReal, dstL == LDateTime:
			return c.castFromStr(target), nil
		case dstL == LString:
			// Only the offset width changes; rebuild the buffers.
			cc := c.Clone()
			v := NewVirtualStr(target, n, []Column{cc}, func(i int) (string, bool) {
				return cc.StrAt(i)
			})
			v.Materialize()
			return v, nil
		}
	}
	return Column{}, errf.Type("cannot cast a column of type %s to %s", src, target)
}

// CastInPlace replaces the column's representation with the cast result,
// deep-copying first when the storage is shared.
func (c *Column) CastInPlace(target SType) error {
	cast, err := c.Cast(target)
	if err != nil {
		return err
	}
	c.rebind(cast.d.ci)
	return nil
}

func (c Column) castToObj() Column {
	cc := c.Clone()
	n := c.NRows()
	switch c.LType() {
	case LBool:
		return NewVirtualObj(n, []Column{cc}, func(i int) (interface{}, bool) {
			v, ok := cc.Bool8At(i)
			if !ok {
				return nil, false
			}
			return v, true
		})
	case LInt, LDateTime:
		return NewVirtualObj(n, []Column{cc}, func(i int) (interface{}, bool) {
			v, ok := cc.IntAt(i)
			if !ok {
				return nil, false
			}
			return v, true
		})
	case LReal:
		return NewVirtualObj(n, []Column{cc}, func(i int) (interface{}, bool) {
			v, ok := cc.FloatAt(i)
			if !ok {
				return nil, false
			}
			return v, true
		})
	case LString:
		return NewVirtualObj(n, []Column{cc}, func(i int) (interface{}, bool) {
			v, ok := cc.StrAt(i)
			if !ok {
				return nil, false
			}
			return v, true
		})
	default:
		return NewVirtualObj(n, []Column{cc}, func(i int) (interface{}, bool) {
			return cc.ObjAt(i)
		})
	}
}

func (c Column) castFromObj(target SType) (Column, error) {
	n := c.NRows()
	cc := c.Clone()
	var out Column
	switch target.LType() {
	case LBool:
		out = NewVirtualBool(n, []Column{cc}, func(i int) (bool, bool) {
			v, ok := cc.ObjAt(i)
			if !ok {
				return false, false
			}
			b, isB := v.(bool)
			return b, isB
		})
	case LInt, LDateTime:
		out = NewVirtualInt(target, n, []Column{cc}, func(i int) (int64, bool) {
			v, ok := cc.ObjAt(i)
			if !ok {
				return 0, false
			}
			return objToInt(v)
		})
	case LReal:
		out = NewVirtualFloat(target, n, []Column{cc}, func(i int) (float64, bool) {
			v, ok := cc.ObjAt(i)
			if !ok {
				return 0, false
			}
			return objToFloat(v)
		})
	case LString:
		out = NewVirtualStr(target, n, []Column{cc}, func(i int) (string, bool) {
			v, ok := cc.ObjAt(i)
			if !ok {
				return "", false
			}
			s, isS := v.(string)
			return s, isS
		})
	default:
		return Column{}, errf.Type("cannot cast a column of type obj64 to %s", target)
	}
	out.Materialize()
	return out, nil
}

func objToInt(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float32:
		return int64(x), true
	case float64:
		return int64(x), true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func objToFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	default:
		i, ok := objToInt(v)
		return float64(i), ok
	}
}

// castToStr formats each element as text. Booleans render as "True" and
// "False", timestamps as RFC 3339.
func (c Column) castToStr(target SType) Column {
	cc := c.Clone()
	n := c.NRows()
	var fn func(i int) (string, bool)
	switch c.LType() {
	case LBool:
		fn = func(i int) (string, bool) {
			v, ok := cc.Bool8At(i)
			if !ok {
				return "", false
			}
			if v {
				return "True", true
			}
			return "False", true
		}
	case LInt:
		fn = func(i int) (string, bool) {
			v, ok := cc.IntAt(i)
			if !ok {
				return "", false
			}
			return strconv.FormatInt(v, 10), true
		}
	case LReal:
		fn = func(i int) (string, bool) {
			v, ok := cc.FloatAt(i)
			if !ok {
				return "", false
			}
			return strconv.FormatFloat(v, 'g', -1, 64), true
		}
	default: // LDateTime
		fn = func(i int) (string, bool) {
			v, ok := cc.IntAt(i)
			if !ok {
				return "", false
			}
			return time.Unix(0, v).UTC().Format(time.RFC3339Nano), true
		}
	}
	out := NewVirtualStr(target, n, []Column{cc}, fn)
	out.Materialize()
	return out
}

// castFromStr parses each element as the target type; values that do not
// parse become NA.
func (c Column) castFromStr(target SType) Column {
	cc := c.Clone()
	n := c.NRows()
	var out Column
	switch target.LType() {
	case LBool:
		out = NewVirtualBool(n, []Column{cc}, func(i int) (bool, bool) {
			s, ok := cc.StrAt(i)
			if !ok {
				return false, false
			}
			return parseBool(s)
		})
	case LInt:
		out = NewVirtualInt(target, n, []Column{cc}, func(i int) (int64, bool) {
			s, ok := cc.StrAt(i)
			if !ok {
				return 0, false
			}
			v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return 0, false
			}
			return v, true
		})
	case LReal:
		out = NewVirtualFloat(target, n, []Column{cc}, func(i int) (float64, bool) {
			s, ok := cc.StrAt(i)
			if !ok {
				return 0, false
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return 0, false
			}
			return v, true
		})
	default: // LDateTime
		out = NewVirtualInt(target, n, []Column{cc}, func(i int) (int64, bool) {
			s, ok := cc.StrAt(i)
			if !ok {
				return 0, false
			}
			t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
			if err != nil {
				return 0, false
			}
			return t.UnixNano(), true
		})
	}
	out.Materialize()
	return out
}

func parseBool(s string) (bool, bool) {
	switch strings.TrimSpace(s) {
	case "true", "True", "TRUE", "1":
		return true, true
	case "false", "False", "FALSE", "0":
		return false, true
	default:
		return false, false
	}
}
