package expr

import (
	"fmt"
	"strings"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// sliceNode is a start:stop:step range with optional bounds. In the row
// contexts it selects rows; in the column contexts it selects a
// contiguous run of columns. Under grouping the slice applies within
// each group separately.
type sliceNode struct {
	start, stop, step *int64
}

// Slice builds a range node; nil bounds mean "from the start" / "to the
// end", and a nil step means 1. Negative bounds count from the end.
func Slice(start, stop, step *int64) Node {
	return &sliceNode{start: start, stop: stop, step: step}
}

// Span is the common two-bound case of Slice.
func Span(start, stop int64) Node {
	return &sliceNode{start: &start, stop: &stop}
}

func (n *sliceNode) String() string {
	part := func(v *int64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%d", *v)
	}
	s := part(n.start) + ":" + part(n.stop)
	if n.step != nil {
		s += ":" + part(n.step)
	}
	return "[" + s + "]"
}

func (n *sliceNode) normalize(nrows int) (int64, int64, int64, error) {
	return frame.NormalizeSlice(n.start, n.stop, n.step, int64(nrows))
}

func (n *sliceNode) evalValue(e *Env) (*frame.Workframe, error) {
	s, cnt, st, err := n.normalize(e.Frame.NCols())
	if err != nil {
		return nil, err
	}
	wf := e.newWorkframe()
	for k := int64(0); k < cnt; k++ {
		i := int(s + k*st)
		col := e.RI.Select(e.Frame.Column(i))
		if err := wf.AddColumnFrom(col, e.Frame.Name(i), e.valueMode(), e.Frame.ID(), i); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

func (n *sliceNode) evalCols(e *Env, sel *ColSelection) error {
	s, cnt, st, err := n.normalize(e.Frame.NCols())
	if err != nil {
		return err
	}
	for k := int64(0); k < cnt; k++ {
		i := int(s + k*st)
		sel.addExisting(i, e.Frame.Name(i))
	}
	return nil
}

func (n *sliceNode) evalRows(e *Env) (frame.RowIndex, error) {
	s, cnt, st, err := n.normalize(e.NRows())
	if err != nil {
		return frame.RowIndex{}, err
	}
	return frame.SliceIndex(s, cnt, st), nil
}

func (n *sliceNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *sliceNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return column.Column{}, notValidIn(n, CtxTarget)
}

// evalRowsGrouped applies the slice within each group: 0:2 keeps the
// first two rows of every group, -1: keeps each group's last row.
func (n *sliceNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	ng := e.GB.NGroups()
	var rows []int32
	offs := make([]int32, ng+1)
	for g := 0; g < ng; g++ {
		gs, ge := e.GB.Group(g)
		s, cnt, st, err := n.normalize(ge - gs)
		if err != nil {
			return frame.RowIndex{}, frame.Groupby{}, err
		}
		if st < 0 {
			// Keep group-internal row order so the partition stays
			// contiguous; a negative step reverses the picked window.
			for k := cnt - 1; k >= 0; k-- {
				rows = append(rows, int32(int64(gs)+s+k*st))
			}
		} else {
			for k := int64(0); k < cnt; k++ {
				rows = append(rows, int32(int64(gs)+s+k*st))
			}
		}
		offs[g+1] = int32(len(rows))
	}
	gb, err := frame.FromOffsets(offs)
	if err != nil {
		return frame.RowIndex{}, frame.Groupby{}, err
	}
	return frame.ArrIndex32(rows), gb, nil
}

// typeNode selects every column of a logical family.
type typeNode struct {
	l column.LType
}

// TypeSel selects all columns whose storage type belongs to the given
// logical family.
func TypeSel(l column.LType) Node { return typeNode{l: l} }

func (n typeNode) String() string { return "f[" + strings.ToLower(n.l.String()) + "]" }

func (n typeNode) evalValue(e *Env) (*frame.Workframe, error) {
	wf := e.newWorkframe()
	for i := 0; i < e.Frame.NCols(); i++ {
		if e.Frame.Column(i).LType() != n.l {
			continue
		}
		col := e.RI.Select(e.Frame.Column(i))
		if err := wf.AddColumnFrom(col, e.Frame.Name(i), e.valueMode(), e.Frame.ID(), i); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

func (n typeNode) evalCols(e *Env, sel *ColSelection) error {
	for i := 0; i < e.Frame.NCols(); i++ {
		if e.Frame.Column(i).LType() == n.l {
			sel.addExisting(i, e.Frame.Name(i))
		}
	}
	return nil
}

func (n typeNode) evalRows(e *Env) (frame.RowIndex, error) {
	return frame.RowIndex{}, notValidIn(n, CtxRows)
}

func (n typeNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n typeNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return column.Column{}, notValidIn(n, CtxTarget)
}

func (n typeNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return frame.RowIndex{}, frame.Groupby{}, notValidIn(n, CtxRowsGrouped)
}
