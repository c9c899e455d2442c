package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
	"github.com/vegasq/framecat/internal/fuzzy"
)

// colNode references a single column of the frame under evaluation, by
// name or by position. In the value context the reference reads through
// the current row selection, so downstream kernels only ever see the
// selected rows.
type colNode struct {
	name  string
	idx   int
	byIdx bool
}

// Col references a column by name.
func Col(name string) Node { return &colNode{name: name} }

// ColAt references a column by position; negative positions count from
// the end.
func ColAt(idx int) Node { return &colNode{idx: idx, byIdx: true} }

func (n *colNode) String() string {
	if n.byIdx {
		return fmt.Sprintf("f[%d]", n.idx)
	}
	return fmt.Sprintf("f.%s", n.name)
}

func (n *colNode) resolve(e *Env) (int, error) {
	if !n.byIdx {
		return e.Frame.ColumnIndex(n.name)
	}
	idx := n.idx
	if idx < 0 {
		idx += e.Frame.NCols()
	}
	if idx < 0 || idx >= e.Frame.NCols() {
		return -1, errf.Value("column %d is out of range for a frame with %d columns", n.idx, e.Frame.NCols())
	}
	return idx, nil
}

func (n *colNode) evalValue(e *Env) (*frame.Workframe, error) {
	idx, err := n.resolve(e)
	if err != nil {
		return nil, err
	}
	col := e.RI.Select(e.Frame.Column(idx))
	wf := e.newWorkframe()
	if err := wf.AddColumnFrom(col, e.Frame.Name(idx), e.valueMode(), e.Frame.ID(), idx); err != nil {
		return nil, err
	}
	return wf, nil
}

func (n *colNode) evalCols(e *Env, sel *ColSelection) error {
	idx, err := n.resolve(e)
	if err != nil {
		if !n.byIdx && sel.Assign && !e.Strict {
			sel.addNew(n.name)
			return nil
		}
		return err
	}
	sel.addExisting(idx, e.Frame.Name(idx))
	return nil
}

func (n *colNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *colNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *colNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *colNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}

// memberNode resolves a name against a namespace expression, typically
// All(): Member(All(), "x") reads column x much like Col("x"), but through
// the namespace context, so it also works against namespaces narrowed by
// an enclosing node.
type memberNode struct {
	ns   Node
	name string
}

// Member selects the named column out of a namespace expression.
func Member(ns Node, name string) Node { return &memberNode{ns: ns, name: name} }

func (n *memberNode) String() string { return fmt.Sprintf("%s.%s", n.ns, n.name) }

func (n *memberNode) evalValue(e *Env) (*frame.Workframe, error) {
	wf, err := n.ns.evalNamespace(e)
	if err != nil {
		return nil, err
	}
	names := make([]string, wf.NCols())
	for i := range names {
		names[i] = wf.Entry(i).Name()
	}
	for i, name := range names {
		if name != n.name {
			continue
		}
		col, err := wf.RetrieveColumn(i)
		if err != nil {
			return nil, err
		}
		out := e.newWorkframe()
		if err := out.AddColumn(col, name, wf.Mode()); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, errf.Key(n.name, fuzzy.Suggest(n.name, names))
}

func (n *memberNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *memberNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *memberNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *memberNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *memberNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}
