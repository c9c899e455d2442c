// Package expr implements the expression evaluator: a tree of polymorphic
// nodes (literals, column references, casts, unary/binary/n-ary
// operators, conditionals, reducers, dicts and lists), each evaluable
// under six distinct contexts, plus the operator-resolution tables that
// map an operation and its operand storage types to a result type and a
// numeric kernel.
//
// Example usage:
//
//	out, err := expr.Eval(f, nil, expr.Bin(expr.OpAdd, expr.Col("x"), expr.Lit(10)), nil, nil)
package expr

import (
	"github.com/vegasq/framecat/frame"
	"github.com/vegasq/framecat/parallel"
)

// Context identifies how an expression node is being evaluated. The set
// is closed: every node kind must answer every context, if only with a
// typed "not valid here" error.
type Context int

const (
	// CtxValue produces the expression's value as one or more columns.
	CtxValue Context = iota
	// CtxCols interprets the expression as a selection of a frame's
	// columns by name, position, slice, type or mask.
	CtxCols
	// CtxRows interprets the expression as a selection of rows.
	CtxRows
	// CtxNamespace resolves a bare reference against one frame's columns.
	CtxNamespace
	// CtxTarget evaluates the expression as the replacement value of an
	// assignment, constrained by the target column's storage type.
	CtxTarget
	// CtxRowsGrouped is CtxRows combined with grouping: the selection
	// also produces the partition of the surviving rows.
	CtxRowsGrouped
)

// String returns the display name of the context.
func (c Context) String() string {
	switch c {
	case CtxValue:
		return "value"
	case CtxCols:
		return "column-selector"
	case CtxRows:
		return "row-selector"
	case CtxNamespace:
		return "namespace"
	case CtxTarget:
		return "replacement-target"
	case CtxRowsGrouped:
		return "grouped-row-selector"
	default:
		return "invalid"
	}
}

// Tracer receives the evaluator's call boundaries. The engine never logs
// on its own; a host that wants timing hooks injects a Tracer.
type Tracer interface {
	Enter(op string)
	Leave(op string)
}

type nopTracer struct{}

func (nopTracer) Enter(string) {}
func (nopTracer) Leave(string) {}

// Env is the evaluation state threaded through a tree walk: the frame
// under evaluation, the current row selection over it, and the current
// row partition (trivial unless grouping is active).
type Env struct {
	Frame   *frame.Frame
	RI      frame.RowIndex
	GB      frame.Groupby
	Grouped bool
	Pool    *parallel.Pool
	Tracer  Tracer
	Strict  bool
}

// NRows returns the number of currently selected rows.
func (e *Env) NRows() int { return e.RI.NRows() }

func (e *Env) pool() *parallel.Pool {
	if e.Pool != nil {
		return e.Pool
	}
	return parallel.Default
}

// newWorkframe creates a Workframe matching the current selection shape.
func (e *Env) newWorkframe() *frame.Workframe {
	return frame.NewWorkframe(e.NRows(), e.GB)
}

// valueMode is the grouping mode of a per-row column under the current
// environment.
func (e *Env) valueMode() frame.GroupMode { return frame.GroupToFull }

// reduceMode is the grouping mode of a reduction's result under the
// current environment: one row per group when grouping is active, one
// row overall otherwise.
func (e *Env) reduceMode() frame.GroupMode {
	if e.Grouped {
		return frame.GroupToOne
	}
	return frame.GroupToAll
}
