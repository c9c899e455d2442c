package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// castNode converts its child's value to an explicit storage type.
type castNode struct {
	child Node
	st    column.SType
}

// As casts the value of an expression to the given storage type.
func As(child Node, st column.SType) Node { return &castNode{child: child, st: st} }

func (n *castNode) String() string { return fmt.Sprintf("as(%s, %s)", n.child, n.st) }

func (n *castNode) evalValue(e *Env) (*frame.Workframe, error) {
	col, mode, err := evalValueOne(e, n.child)
	if err != nil {
		return nil, err
	}
	out, err := col.Cast(n.st)
	if err != nil {
		return nil, err
	}
	wf := e.newWorkframe()
	if err := wf.AddColumn(out, "", mode); err != nil {
		return nil, err
	}
	return wf, nil
}

func (n *castNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *castNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *castNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *castNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *castNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}
