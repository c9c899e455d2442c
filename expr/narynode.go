package expr

import (
	"fmt"
	"strings"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
)

// naryNode applies a row-wise function across any number of numeric
// columns: for each row, the function folds that row's values from every
// child, skipping NAs.
type naryNode struct {
	op   NAryOp
	kids []Node
}

// NAry builds a row-wise n-ary function node.
func NAry(op NAryOp, kids ...Node) Node { return &naryNode{op: op, kids: kids} }

func (n *naryNode) String() string {
	parts := make([]string, len(n.kids))
	for i, k := range n.kids {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%s(%s)", n.op, strings.Join(parts, ", "))
}

// evalKids evaluates every child and aligns their grouping modes through
// one shared Workframe.
func (n *naryNode) evalKids(e *Env) ([]column.Column, frame.GroupMode, error) {
	if len(n.kids) == 0 {
		return nil, 0, errf.Value("%s requires at least one column", n.op)
	}
	scratch := e.newWorkframe()
	for _, k := range n.kids {
		col, mode, err := evalValueOne(e, k)
		if err != nil {
			return nil, 0, err
		}
		if err := scratch.AddColumn(col, "", mode); err != nil {
			return nil, 0, err
		}
	}
	cols := make([]column.Column, len(n.kids))
	for i := range cols {
		col, err := scratch.RetrieveColumn(i)
		if err != nil {
			return nil, 0, err
		}
		cols[i] = col
	}
	return cols, scratch.Mode(), nil
}

func (n *naryNode) evalValue(e *Env) (*frame.Workframe, error) {
	cols, mode, err := n.evalKids(e)
	if err != nil {
		return nil, err
	}

	promoted := column.Void
	for _, c := range cols {
		l := c.LType()
		if l == column.LVoid {
			continue
		}
		if !l.IsNumeric() {
			return nil, errf.Type("%s is not defined for a column of type %s", n.op, c.Stype())
		}
		promoted = column.Promote(promoted, c.Stype())
	}

	nrows := cols[0].NRows()
	var res column.Column
	switch n.op {
	case OpRowCount:
		counters := make([]func(int) bool, len(cols))
		for i, c := range cols {
			counters[i] = validCounter(c)
		}
		res, err = mapToInts(e, nrows, column.Int64, func(i int) (int64, bool) {
			cnt := int64(0)
			for _, has := range counters {
				if has(i) {
					cnt++
				}
			}
			return cnt, true
		})
	case OpRowMean:
		res, err = n.foldFloats(e, cols, nrows, column.Float64, func(acc float64, cnt int) (float64, bool) {
			if cnt == 0 {
				return 0, false
			}
			return acc / float64(cnt), true
		}, func(acc, v float64) float64 { return acc + v })
	case OpRowSum:
		if promoted.LType() == column.LReal {
			res, err = n.foldFloats(e, cols, nrows, column.Float64, func(acc float64, cnt int) (float64, bool) {
				return acc, true
			}, func(acc, v float64) float64 { return acc + v })
		} else {
			res, err = n.foldInts(e, cols, nrows, func(acc, v int64) int64 { return acc + v }, true)
		}
	case OpRowMin, OpRowMax:
		min := n.op == OpRowMin
		if promoted.LType() == column.LReal {
			res, err = n.foldFloats(e, cols, nrows, column.Float64, func(acc float64, cnt int) (float64, bool) {
				return acc, cnt > 0
			}, func(acc, v float64) float64 {
				if min == (v < acc) {
					return v
				}
				return acc
			})
		} else {
			res, err = n.foldInts(e, cols, nrows, func(acc, v int64) int64 {
				if min == (v < acc) {
					return v
				}
				return acc
			}, false)
		}
	default:
		return nil, errf.NotImplemented("row-wise function %s", n.op)
	}
	if err != nil {
		return nil, err
	}

	wf := e.newWorkframe()
	if err := wf.AddColumn(res, "", mode); err != nil {
		return nil, err
	}
	return wf, nil
}

// foldFloats folds each row's valid values left to right, then finishes
// with the valid-value count.
func (n *naryNode) foldFloats(e *Env, cols []column.Column, nrows int, out column.SType,
	finish func(acc float64, cnt int) (float64, bool), step func(acc, v float64) float64) (column.Column, error) {
	return mapToFloats(e, nrows, out, func(i int) (float64, bool) {
		acc := 0.0
		cnt := 0
		for _, c := range cols {
			v, ok := c.FloatAt(i)
			if !ok {
				continue
			}
			if cnt == 0 {
				acc = v
			} else {
				acc = step(acc, v)
			}
			cnt++
		}
		return finish(acc, cnt)
	})
}

// foldInts is foldFloats over the integer reading class. With zeroEmpty
// an all-NA row folds to a valid zero (sums); otherwise it is NA.
func (n *naryNode) foldInts(e *Env, cols []column.Column, nrows int,
	step func(acc, v int64) int64, zeroEmpty bool) (column.Column, error) {
	return mapToInts(e, nrows, column.Int64, func(i int) (int64, bool) {
		acc := int64(0)
		cnt := 0
		for _, c := range cols {
			v, ok := c.IntAt(i)
			if !ok {
				continue
			}
			if cnt == 0 {
				acc = v
			} else {
				acc = step(acc, v)
			}
			cnt++
		}
		if cnt == 0 {
			return 0, zeroEmpty
		}
		return acc, true
	})
}

func (n *naryNode) evalCols(e *Env, sel *ColSelection) error {
	return notValidIn(n, CtxCols)
}

func (n *naryNode) evalRows(e *Env) (frame.RowIndex, error) {
	col, mode, err := evalValueOne(e, n)
	if err != nil {
		return frame.RowIndex{}, err
	}
	return rowsFromColumn(e, n, col, mode)
}

func (n *naryNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *naryNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return defaultTarget(e, n, dst)
}

func (n *naryNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}
