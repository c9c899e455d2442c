package expr

import (
	"fmt"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// reduceNode collapses its child to one value per group (one value
// overall when no grouping is active).
type reduceNode struct {
	r      Reducer
	child  Node // nil for the zero-argument row count
	child2 Node // second column of cov/corr, nil otherwise
}

// Reduce builds a one-column reduction node.
func Reduce(r Reducer, child Node) Node { return &reduceNode{r: r, child: child} }

// Reduce2 builds a two-column reduction node (cov, corr).
func Reduce2(r Reducer, a, b Node) Node { return &reduceNode{r: r, child: a, child2: b} }

// Count builds the zero-argument reduction counting the rows of each
// group.
func Count() Node { return &reduceNode{r: RCount} }

func (n *reduceNode) String() string {
	switch {
	case n.child == nil:
		return fmt.Sprintf("%s()", n.r)
	case n.child2 != nil:
		return fmt.Sprintf("%s(%s, %s)", n.r, n.child, n.child2)
	default:
		return fmt.Sprintf("%s(%s)", n.r, n.child)
	}
}

// reduceGB is the partition the reduction folds over: the active
// grouping, or a single group covering the whole selection.
func (e *Env) reduceGB() frame.Groupby {
	if e.Grouped {
		return e.GB
	}
	return frame.SingleGroup(e.NRows())
}

// evalOperand evaluates one reduction input to the per-row shape. A
// scalar operand is tiled so that, for example, the count of a literal
// still counts every row.
func (n *reduceNode) evalOperand(e *Env, child Node) (column.Column, error) {
	col, _, err := evalValueOne(e, child)
	if err != nil {
		return column.Column{}, err
	}
	if col.NRows() == 1 && e.NRows() != 1 {
		col = col.Repeat(e.NRows())
	}
	// Reductions over an all-NA void column run as all-NA booleans, so
	// count yields zero instead of a type error.
	if col.Stype() == column.Void {
		return col.Cast(column.Bool8)
	}
	return col, nil
}

func (n *reduceNode) evalValue(e *Env) (*frame.Workframe, error) {
	tr := e.Tracer
	if tr == nil {
		tr = nopTracer{}
	}
	tr.Enter(n.r.String())
	defer tr.Leave(n.r.String())

	gb := e.reduceGB()
	var res column.Column
	switch {
	case n.child == nil:
		// Zero-argument count: group sizes.
		var err error
		res, err = reduceInts(e, gb, column.Int64, func(g int) (int64, bool) {
			s, end := gb.Group(g)
			return int64(end - s), true
		})
		if err != nil {
			return nil, err
		}
	case n.child2 != nil:
		x, err := n.evalOperand(e, n.child)
		if err != nil {
			return nil, err
		}
		y, err := n.evalOperand(e, n.child2)
		if err != nil {
			return nil, err
		}
		kernel, err := resolveReducer2(n.r, x.Stype(), y.Stype())
		if err != nil {
			return nil, err
		}
		if res, err = kernel(e, x, y, gb); err != nil {
			return nil, err
		}
	default:
		col, err := n.evalOperand(e, n.child)
		if err != nil {
			return nil, err
		}
		kernel, err := resolveReducer(n.r, col.Stype())
		if err != nil {
			return nil, err
		}
		if res, err = kernel(e, col, gb); err != nil {
			return nil, err
		}
	}

	wf := e.newWorkframe()
	if err := wf.AddColumn(res, "", e.reduceMode()); err != nil {
		return nil, err
	}
	return wf, nil
}

func (n *reduceNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *reduceNode) evalRows(e *Env) (frame.RowIndex, error) {
	return frame.RowIndex{}, notValidIn(n, CtxRows)
}

func (n *reduceNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *reduceNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *reduceNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return frame.RowIndex{}, frame.Groupby{}, notValidIn(n, CtxRowsGrouped)
}
