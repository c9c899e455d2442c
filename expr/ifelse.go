package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
)

// ifNode selects per row between two branches on a boolean condition. An
// NA condition yields NA; both branches are promoted to a common type.
type ifNode struct {
	cond, then, els Node
}

// IfElse builds a row-wise conditional node.
func IfElse(cond, then, els Node) Node { return &ifNode{cond: cond, then: then, els: els} }

func (n *ifNode) String() string {
	return fmt.Sprintf("ifelse(%s, %s, %s)", n.cond, n.then, n.els)
}

func (n *ifNode) evalValue(e *Env) (*frame.Workframe, error) {
	ccol, cmode, err := evalValueOne(e, n.cond)
	if err != nil {
		return nil, err
	}
	if ccol.LType() != column.LBool {
		return nil, errf.Type("the condition of %s must be boolean, not %s", n, ccol.Stype())
	}
	tcol, tmode, err := evalValueOne(e, n.then)
	if err != nil {
		return nil, err
	}
	fcol, fmode, err := evalValueOne(e, n.els)
	if err != nil {
		return nil, err
	}

	scratch := e.newWorkframe()
	if err := scratch.AddColumn(ccol, "", cmode); err != nil {
		return nil, err
	}
	if err := scratch.AddColumn(tcol, "", tmode); err != nil {
		return nil, err
	}
	if err := scratch.AddColumn(fcol, "", fmode); err != nil {
		return nil, err
	}
	mode := scratch.Mode()
	if ccol, err = scratch.RetrieveColumn(0); err != nil {
		return nil, err
	}
	if tcol, err = scratch.RetrieveColumn(1); err != nil {
		return nil, err
	}
	if fcol, err = scratch.RetrieveColumn(2); err != nil {
		return nil, err
	}

	out := column.Promote(tcol.Stype(), fcol.Stype())
	if tcol, err = tcol.Cast(out); err != nil {
		return nil, err
	}
	if fcol, err = fcol.Cast(out); err != nil {
		return nil, err
	}

	res, err := pickKernel(e, ccol, tcol, fcol, out)
	if err != nil {
		return nil, err
	}
	wf := e.newWorkframe()
	if err := wf.AddColumn(res, "", mode); err != nil {
		return nil, err
	}
	return wf, nil
}

// pickKernel builds the per-row two-way selection for the result class.
func pickKernel(e *Env, cond, then, els column.Column, out column.SType) (column.Column, error) {
	nrows := cond.NRows()
	pick := func(i int) (column.Column, bool) {
		c, ok := cond.Bool8At(i)
		if !ok {
			return column.Column{}, false
		}
		if c {
			return then, true
		}
		return els, true
	}
	switch out.LType() {
	case column.LVoid:
		return column.NAs(nrows), nil
	case column.LBool:
		return mapToBools(e, nrows, func(i int) (bool, bool) {
			src, ok := pick(i)
			if !ok {
				return false, false
			}
			return src.Bool8At(i)
		})
	case column.LInt, column.LDateTime:
		return mapToInts(e, nrows, out, func(i int) (int64, bool) {
			src, ok := pick(i)
			if !ok {
				return 0, false
			}
			return src.IntAt(i)
		})
	case column.LReal:
		return mapToFloats(e, nrows, out, func(i int) (float64, bool) {
			src, ok := pick(i)
			if !ok {
				return 0, false
			}
			return src.FloatAt(i)
		})
	case column.LString:
		return mapToStrs(e, nrows, func(i int) (string, bool) {
			src, ok := pick(i)
			if !ok {
				return "", false
			}
			return src.StrAt(i)
		})
	default:
		return column.Column{}, errf.Type("ifelse is not defined for columns of type %s", out)
	}
}

func (n *ifNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *ifNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *ifNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *ifNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *ifNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}
