package expr

import (
	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// allNode is the whole-frame reference. It is a namespace (every column
// is a member), a column selector (every column is selected), a value
// (every column, through the current row selection) and a row selector
// (every currently selected row).
type allNode struct{}

// All references every column of the frame under evaluation.
func All() Node { return allNode{} }

func (allNode) String() string { return "f[:]" }

func (n allNode) evalValue(e *Env) (*frame.Workframe, error) {
	wf := e.newWorkframe()
	for i := 0; i < e.Frame.NCols(); i++ {
		col := e.RI.Select(e.Frame.Column(i))
		if err := wf.AddColumnFrom(col, e.Frame.Name(i), e.valueMode(), e.Frame.ID(), i); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

func (n allNode) evalCols(e *Env, sel *ColSelection) error {
	for i := 0; i < e.Frame.NCols(); i++ {
		sel.addExisting(i, e.Frame.Name(i))
	}
	return nil
}

func (n allNode) evalRows(e *Env) (frame.RowIndex, error) {
	return frame.Identity(e.NRows()), nil
}

func (n allNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return n.evalValue(e)
}

func (n allNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return column.Column{}, notValidIn(n, CtxTarget)
}

func (n allNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return frame.Identity(e.NRows()), e.GB, nil
}
