package expr

import (
	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
	"github.com/vegasq/framecat/parallel"
)

// Options tunes an evaluation. The zero value (or nil) uses the shared
// worker pool, no tracing, and lenient name resolution.
type Options struct {
	Pool   *parallel.Pool
	Tracer Tracer
	Strict bool
}

func newEnv(f *frame.Frame, opts *Options) *Env {
	e := &Env{
		Frame:  f,
		RI:     frame.Identity(f.NRows()),
		GB:     frame.SingleGroup(f.NRows()),
		Tracer: nopTracer{},
	}
	if opts != nil {
		if opts.Pool != nil {
			e.Pool = opts.Pool
		}
		if opts.Tracer != nil {
			e.Tracer = opts.Tracer
		}
		e.Strict = opts.Strict
	}
	return e
}

// Eval runs one query against a frame: group by the named columns (if
// any), narrow the row selection with rows (if non-nil), then evaluate
// cols — a column selection or any computed expression — into an output
// frame. Under grouping the output is prefixed with the key columns, and
// aggregated expressions produce one row per group.
func Eval(f *frame.Frame, rows Node, cols Node, by []string, opts *Options) (*frame.Frame, error) {
	e := newEnv(f, opts)
	e.Tracer.Enter("eval")
	defer e.Tracer.Leave("eval")

	keyIdx, err := applyGrouping(e, by)
	if err != nil {
		return nil, err
	}
	if err := applyRows(e, rows); err != nil {
		return nil, err
	}

	if cols == nil {
		cols = All()
	}
	wf, err := cols.evalValue(e)
	if err != nil {
		return nil, errf.WithPos(err, cols.String())
	}

	if e.Grouped {
		keyed := e.newWorkframe()
		ng := e.GB.NGroups()
		for _, idx := range keyIdx {
			src := e.RI.Select(f.Column(idx))
			key := column.View(src, ng, func(g int) (int, bool) {
				s, end := e.GB.Group(g)
				if s == end {
					// A group emptied by a row selection has no key row.
					return 0, false
				}
				return s, true
			})
			if err := keyed.AddColumnFrom(key, f.Name(idx), frame.GroupToOne, f.ID(), idx); err != nil {
				return nil, err
			}
		}
		if err := keyed.Cbind(wf); err != nil {
			return nil, err
		}
		wf = keyed
	}
	return wf.ToFrame()
}

// applyGrouping computes the partition over the named key columns and
// installs the sorting permutation as the current row selection.
func applyGrouping(e *Env, by []string) ([]int, error) {
	if len(by) == 0 {
		return nil, nil
	}
	keyIdx := make([]int, len(by))
	keys := make([]column.Column, len(by))
	for i, name := range by {
		idx, err := e.Frame.ColumnIndex(name)
		if err != nil {
			return nil, err
		}
		keyIdx[i] = idx
		keys[i] = e.Frame.Column(idx)
	}
	gb, perm, err := frame.GroupsFromColumns(keys)
	if err != nil {
		return nil, err
	}
	e.RI = perm
	e.GB = gb
	e.Grouped = true
	return keyIdx, nil
}

// applyRows narrows the current selection by the row-selector
// expression, stacking it onto whatever selection is already in place.
// Under grouping the selector also recomputes the partition.
func applyRows(e *Env, rows Node) error {
	if rows == nil {
		return nil
	}
	if e.Grouped {
		ri, gb, err := rows.evalRowsGrouped(e)
		if err != nil {
			return errf.WithPos(err, rows.String())
		}
		e.RI = frame.Compose(ri, e.RI)
		e.GB = gb
		return nil
	}
	ri, err := rows.evalRows(e)
	if err != nil {
		return errf.WithPos(err, rows.String())
	}
	e.RI = frame.Compose(ri, e.RI)
	e.GB = frame.SingleGroup(e.NRows())
	return nil
}

// Update evaluates value as the replacement for the selected cells and
// returns a new frame with the result; the input frame is not modified.
// The cols selector may name columns that do not exist yet — those are
// created, NA outside the selected rows. Each existing target keeps its
// storage type: the value must be promotable to it.
func Update(f *frame.Frame, rows Node, cols Node, value Node, opts *Options) (*frame.Frame, error) {
	e := newEnv(f, opts)
	e.Tracer.Enter("update")
	defer e.Tracer.Leave("update")

	if err := applyRows(e, rows); err != nil {
		return nil, err
	}
	sel := ColSelection{Assign: true}
	if err := cols.evalCols(e, &sel); err != nil {
		return nil, errf.WithPos(err, cols.String())
	}

	names := append([]string(nil), f.Names()...)
	outCols := make([]column.Column, f.NCols())
	for i := range outCols {
		outCols[i] = f.Column(i)
	}

	selN := e.NRows()
	identity := e.RI.IsIdentity(f.NRows())
	for _, item := range sel.Items {
		dst := column.Void
		if !item.IsNew {
			dst = f.Column(item.Idx).Stype()
		}
		val, err := value.evalTarget(e, dst)
		if err != nil {
			return nil, errf.WithPos(err, value.String())
		}
		if val.NRows() == 1 && selN != 1 {
			val = val.Repeat(selN)
		}
		if val.NRows() != selN {
			return nil, errf.Value(
				"the replacement value has %d rows where %d are selected", val.NRows(), selN)
		}

		var out column.Column
		if identity {
			out = val
		} else {
			old := column.ConstNA(val.Stype(), f.NRows())
			if !item.IsNew {
				old = f.Column(item.Idx)
			}
			if out, err = mergeColumns(e, old, val); err != nil {
				return nil, err
			}
		}
		if item.IsNew {
			names = append(names, item.Name)
			outCols = append(outCols, out)
		} else {
			outCols[item.Idx] = out
		}
	}
	return frame.New(names, outCols)
}

// mergeColumns overlays the replacement values onto the old column:
// selected rows read from the replacement, all others keep their old
// value.
func mergeColumns(e *Env, old, repl column.Column) (column.Column, error) {
	rt := column.Promote(old.Stype(), repl.Stype())
	old, err := old.Cast(rt)
	if err != nil {
		return column.Column{}, err
	}
	if repl, err = repl.Cast(rt); err != nil {
		return column.Column{}, err
	}

	nrows := old.NRows()
	pos := make([]int32, nrows)
	for i := range pos {
		pos[i] = -1
	}
	for i := 0; i < e.NRows(); i++ {
		if row, ok := e.RI.At(i); ok {
			pos[row] = int32(i)
		}
	}

	switch rt.LType() {
	case column.LVoid:
		return column.NAs(nrows), nil
	case column.LBool:
		return mapToBools(e, nrows, func(i int) (bool, bool) {
			if j := pos[i]; j >= 0 {
				return repl.Bool8At(int(j))
			}
			return old.Bool8At(i)
		})
	case column.LInt, column.LDateTime:
		return mapToInts(e, nrows, rt, func(i int) (int64, bool) {
			if j := pos[i]; j >= 0 {
				return repl.IntAt(int(j))
			}
			return old.IntAt(i)
		})
	case column.LReal:
		return mapToFloats(e, nrows, rt, func(i int) (float64, bool) {
			if j := pos[i]; j >= 0 {
				return repl.FloatAt(int(j))
			}
			return old.FloatAt(i)
		})
	case column.LString:
		return mapToStrs(e, nrows, func(i int) (string, bool) {
			if j := pos[i]; j >= 0 {
				return repl.StrAt(int(j))
			}
			return old.StrAt(i)
		})
	default:
		data := make([]interface{}, nrows)
		for i := 0; i < nrows; i++ {
			var v interface{}
			var ok bool
			if j := pos[i]; j >= 0 {
				v, ok = repl.ObjAt(int(j))
			} else {
				v, ok = old.ObjAt(i)
			}
			if ok {
				data[i] = v
			}
		}
		return column.Objs(data), nil
	}
}
