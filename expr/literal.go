package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
)

// litNode wraps a Go literal. Its meaning is context-dependent: a scalar
// in the value context, a column name or position in the column-selector
// context, a row position in the row-selector context.
type litNode struct {
	v interface{}
}

// Lit builds a literal node from a Go value. Nil is the missing value.
func Lit(v interface{}) Node { return &litNode{v: v} }

func (n *litNode) String() string {
	switch x := n.v.(type) {
	case nil:
		return "NA"
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func (n *litNode) evalValue(e *Env) (*frame.Workframe, error) {
	wf := e.newWorkframe()
	if err := wf.AddColumn(column.FromValue(n.v, 1), "", frame.GroupToAll); err != nil {
		return nil, err
	}
	return wf, nil
}

func (n *litNode) evalCols(e *Env, sel *ColSelection) error {
	switch x := n.v.(type) {
	case string:
		idx, err := e.Frame.ColumnIndex(x)
		if err != nil {
			if sel.Assign && !e.Strict {
				sel.addNew(x)
				return nil
			}
			return err
		}
		sel.addExisting(idx, x)
		return nil
	case int:
		idx := x
		if idx < 0 {
			idx += e.Frame.NCols()
		}
		if idx < 0 || idx >= e.Frame.NCols() {
			return errf.Value("column %d is out of range for a frame with %d columns", x, e.Frame.NCols())
		}
		sel.addExisting(idx, e.Frame.Name(idx))
		return nil
	default:
		return notValidIn(n, CtxCols)
	}
}

func (n *litNode) evalRows(e *Env) (frame.RowIndex, error) {
	x, ok := n.v.(int)
	if !ok {
		return frame.RowIndex{}, notValidIn(n, CtxRows)
	}
	row := int64(x)
	if row < 0 {
		row += int64(e.NRows())
	}
	if row < 0 || row >= int64(e.NRows()) {
		return frame.RowIndex{}, errf.Value("row %d is out of range for a selection of %d rows", x, e.NRows())
	}
	return frame.SliceIndex(row, 1, 1), nil
}

func (n *litNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *litNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	if n.v == nil && dst != column.Void {
		return column.ConstNA(dst, 1), nil
	}
	return defaultTarget(e, n, dst)
}

// evalRowsGrouped selects one row per group by its position within the
// group; groups too short to hold the position contribute no row.
func (n *litNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	x, ok := n.v.(int)
	if !ok {
		return frame.RowIndex{}, frame.Groupby{}, notValidIn(n, CtxRowsGrouped)
	}
	ng := e.GB.NGroups()
	rows := make([]int32, 0, ng)
	offs := make([]int32, ng+1)
	for g := 0; g < ng; g++ {
		s, end := e.GB.Group(g)
		pos := x
		if pos < 0 {
			pos += end - s
		}
		if pos >= 0 && pos < end-s {
			rows = append(rows, int32(s+pos))
		}
		offs[g+1] = int32(len(rows))
	}
	gb, err := frame.FromOffsets(offs)
	if err != nil {
		return frame.RowIndex{}, frame.Groupby{}, err
	}
	return frame.ArrIndex32(rows), gb, nil
}
