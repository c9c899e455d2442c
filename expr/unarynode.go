package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// unNode applies a unary operator to its child's value.
type unNode struct {
	op    UnOp
	child Node
}

// Un builds a unary operator node.
func Un(op UnOp, child Node) Node { return &unNode{op: op, child: child} }

// Neg is shorthand for arithmetic negation.
func Neg(child Node) Node { return Un(OpNeg, child) }

// Not is shorthand for logical negation.
func Not(child Node) Node { return Un(OpNot, child) }

func (n *unNode) String() string {
	if n.op == OpAbs {
		return fmt.Sprintf("abs(%s)", n.child)
	}
	return fmt.Sprintf("(%s%s)", n.op, n.child)
}

func (n *unNode) evalValue(e *Env) (*frame.Workframe, error) {
	col, mode, err := evalValueOne(e, n.child)
	if err != nil {
		return nil, err
	}
	wf := e.newWorkframe()
	// A void operand stays void: NA in, NA out, whatever the operator.
	if col.Stype() == column.Void {
		if err := wf.AddColumn(col, "", mode); err != nil {
			return nil, err
		}
		return wf, nil
	}
	out, kernel, err := resolveUnary(n.op, col.Stype())
	if err != nil {
		return nil, err
	}
	res, err := kernel(e, col, out)
	if err != nil {
		return nil, err
	}
	if err := wf.AddColumn(res, "", mode); err != nil {
		return nil, err
	}
	return wf, nil
}

func (n *unNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *unNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *unNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *unNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *unNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}
