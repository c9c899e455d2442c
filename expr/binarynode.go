package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// binNode applies a binary operator to its children's values. The two
// sides may differ in grouping mode (a per-row column compared against a
// per-group mean, say); the narrower side is broadcast up before the
// kernel runs.
type binNode struct {
	op       BinOp
	lhs, rhs Node
}

// Bin builds a binary operator node.
func Bin(op BinOp, lhs, rhs Node) Node { return &binNode{op: op, lhs: lhs, rhs: rhs} }

func (n *binNode) String() string { return fmt.Sprintf("(%s %s %s)", n.lhs, n.op, n.rhs) }

func (n *binNode) evalValue(e *Env) (*frame.Workframe, error) {
	lcol, lmode, err := evalValueOne(e, n.lhs)
	if err != nil {
		return nil, err
	}
	rcol, rmode, err := evalValueOne(e, n.rhs)
	if err != nil {
		return nil, err
	}

	// Mode alignment goes through a scratch Workframe, which widens the
	// narrower side by broadcasting.
	scratch := e.newWorkframe()
	if err := scratch.AddColumn(lcol, "", lmode); err != nil {
		return nil, err
	}
	if err := scratch.AddColumn(rcol, "", rmode); err != nil {
		return nil, err
	}
	mode := scratch.Mode()
	if lcol, err = scratch.RetrieveColumn(0); err != nil {
		return nil, err
	}
	if rcol, err = scratch.RetrieveColumn(1); err != nil {
		return nil, err
	}

	// A void operand adopts the other side's type (becoming all-NA);
	// two void operands compare as booleans.
	if lcol.Stype() == column.Void || rcol.Stype() == column.Void {
		other := column.Promote(lcol.Stype(), rcol.Stype())
		if other == column.Void {
			other = column.Bool8
		}
		if lcol, err = lcol.Cast(other); err != nil {
			return nil, err
		}
		if rcol, err = rcol.Cast(other); err != nil {
			return nil, err
		}
	}

	out, kernel, err := resolveBinary(n.op, lcol.Stype(), rcol.Stype())
	if err != nil {
		return nil, err
	}
	res, err := kernel(e, lcol, rcol, out)
	if err != nil {
		return nil, err
	}
	wf := e.newWorkframe()
	if err := wf.AddColumn(res, "", mode); err != nil {
		return nil, err
	}
	return wf, nil
}

func (n *binNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *binNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *binNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *binNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *binNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}
