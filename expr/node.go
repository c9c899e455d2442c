package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
)

// Node is one node of an expression tree. A parent exclusively owns its
// children; the tree is acyclic by construction.
//
// Every node answers every evaluation context. Nodes for which a context
// makes no sense return a TypeError naming the node and the context, so
// misuse is always attributable to a specific sub-expression.
type Node interface {
	fmt.Stringer

	evalValue(e *Env) (*frame.Workframe, error)
	evalCols(e *Env, sel *ColSelection) error
	evalRows(e *Env) (frame.RowIndex, error)
	evalNamespace(e *Env) (*frame.Workframe, error)
	evalTarget(e *Env, dst column.SType) (column.Column, error)
	evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error)
}

// ColSelection is the result of evaluating an expression in the
// column-selector context: an ordered list of existing column positions
// and, in assignment mode, names of columns to be created.
type ColSelection struct {
	Items []SelItem
	// Assign permits names that do not resolve to an existing column;
	// they become new-column items instead of KeyErrors.
	Assign bool
}

// SelItem is one selected column: either an existing position or a new
// name to be created by an assignment.
type SelItem struct {
	Idx   int
	Name  string
	IsNew bool
}

func (s *ColSelection) addExisting(idx int, name string) {
	s.Items = append(s.Items, SelItem{Idx: idx, Name: name})
}

func (s *ColSelection) addNew(name string) {
	s.Items = append(s.Items, SelItem{Idx: -1, Name: name, IsNew: true})
}

// notValidIn builds the typed error for a node evaluated in a context it
// does not support.
func notValidIn(n Node, ctx Context) *errf.Error {
	return errf.Type("%s is not valid in the %s context", n, ctx)
}

// evalValueOne evaluates a node in the value context and requires the
// result to be exactly one column, returning it together with its
// grouping mode.
func evalValueOne(e *Env, n Node) (column.Column, frame.GroupMode, error) {
	wf, err := n.evalValue(e)
	if err != nil {
		return column.Column{}, 0, err
	}
	if wf.NCols() != 1 {
		return column.Column{}, 0, errf.Value("%s produced %d columns where exactly one is expected", n, wf.NCols())
	}
	col, err := wf.RetrieveColumn(0)
	if err != nil {
		return column.Column{}, 0, err
	}
	return col, wf.Mode(), nil
}

// rowsFromColumn converts a single evaluated column into a RowIndex,
// relative to the current selection: boolean columns pick rows where
// true, integer columns pick rows by position.
func rowsFromColumn(e *Env, n Node, col column.Column, mode frame.GroupMode) (frame.RowIndex, error) {
	switch col.LType() {
	case column.LBool:
		if mode == frame.GroupToFull && col.NRows() != e.NRows() {
			return frame.RowIndex{}, errf.Value(
				"a boolean row selector must have %d rows, not %d", e.NRows(), col.NRows())
		}
		return frame.FromBools(col)
	case column.LInt:
		return frame.FromInts(col, e.NRows())
	default:
		return frame.RowIndex{}, errf.Type(
			"%s evaluates to a column of type %s, which cannot be used as a row selector", n, col.Stype())
	}
}

// regroup derives the partition of the rows surviving a selection. The
// selection must preserve row order within the original partition.
func regroup(ri frame.RowIndex, gb frame.Groupby) (frame.Groupby, error) {
	r2g := gb.RowToGroup()
	offs := make([]int32, gb.NGroups()+1)
	prev := int32(-1)
	n := ri.NRows()
	for i := 0; i < n; i++ {
		row, ok := ri.At(i)
		if !ok {
			return frame.Groupby{}, errf.Value("a grouped row selection cannot contain missing rows")
		}
		g := r2g[row]
		if g < prev {
			return frame.Groupby{}, errf.Value("a grouped row selection must preserve group order")
		}
		prev = g
		offs[g+1]++
	}
	for i := 1; i < len(offs); i++ {
		offs[i] += offs[i-1]
	}
	return frame.FromOffsets(offs)
}

// defaultRowsGrouped implements the grouped-row-selector context for
// nodes whose selection is independent of the grouping: select, then
// recompute the partition.
func defaultRowsGrouped(e *Env, n Node) (frame.RowIndex, frame.Groupby, error) {
	ri, err := n.evalRows(e)
	if err != nil {
		return frame.RowIndex{}, frame.Groupby{}, err
	}
	gb, err := regroup(ri, e.GB)
	if err != nil {
		return frame.RowIndex{}, frame.Groupby{}, err
	}
	return ri, gb, nil
}

// defaultTarget implements the replacement-target context for computed
// nodes: evaluate normally, then require the result to be promotable to
// the target column's storage type.
func defaultTarget(e *Env, n Node, dst column.SType) (column.Column, error) {
	col, _, err := evalValueOne(e, n)
	if err != nil {
		return column.Column{}, err
	}
	if dst == column.Void {
		return col, nil
	}
	if column.Promote(col.Stype(), dst) != dst {
		return column.Column{}, errf.Type(
			"cannot assign a value of type %s into a column of type %s", col.Stype(), dst)
	}
	return col.Cast(dst)
}
