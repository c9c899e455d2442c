package expr

import (
	"fmt"
	"strings"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/frame"
)

// listNode is an ordered collection of sub-expressions. In the value
// context it concatenates the children's columns; in the column-selector
// context it concatenates their selections; a list of boolean literals
// acts as a row mask and a list of integer literals as row positions.
type listNode struct {
	kids []Node
}

// List builds a list node.
func List(kids ...Node) Node { return &listNode{kids: kids} }

func (n *listNode) String() string {
	parts := make([]string, len(n.kids))
	for i, k := range n.kids {
		parts[i] = k.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (n *listNode) evalValue(e *Env) (*frame.Workframe, error) {
	wf := e.newWorkframe()
	for _, k := range n.kids {
		kwf, err := k.evalValue(e)
		if err != nil {
			return nil, err
		}
		if err := wf.Cbind(kwf); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

func (n *listNode) evalCols(e *Env, sel *ColSelection) error {
	for _, k := range n.kids {
		if err := k.evalCols(e, sel); err != nil {
			return err
		}
	}
	return nil
}

// literalElems extracts the children's literal values when every child
// is a literal, so a list of plain bools or ints can act as a direct row
// selector.
func (n *listNode) literalElems() ([]interface{}, bool) {
	vals := make([]interface{}, len(n.kids))
	for i, k := range n.kids {
		lit, ok := k.(*litNode)
		if !ok {
			return nil, false
		}
		vals[i] = lit.v
	}
	return vals, true
}

func (n *listNode) evalRows(e *Env) (frame.RowIndex, error) {
	vals, ok := n.literalElems()
	if !ok {
		return frame.RowIndex{}, notValidIn(n, CtxRows)
	}
	if len(vals) == 0 {
		return frame.ArrIndex32(nil), nil
	}
	switch vals[0].(type) {
	case bool:
		data := make([]bool, len(vals))
		valid := make([]bool, len(vals))
		for i, v := range vals {
			b, isBool := v.(bool)
			if v != nil && !isBool {
				return frame.RowIndex{}, errf.Type("a row mask list must hold only booleans, found %T", v)
			}
			data[i], valid[i] = b, isBool
		}
		mask := column.BoolsNA(data, valid)
		if len(vals) != e.NRows() {
			return frame.RowIndex{}, errf.Value(
				"a boolean row mask must have %d elements, not %d", e.NRows(), len(vals))
		}
		return frame.FromBools(mask)
	case int:
		data := make([]int64, len(vals))
		for i, v := range vals {
			x, isInt := v.(int)
			if !isInt {
				return frame.RowIndex{}, errf.Type("a row position list must hold only integers, found %T", v)
			}
			data[i] = int64(x)
		}
		return frame.FromInts(column.Ints(data), e.NRows())
	default:
		return frame.RowIndex{}, notValidIn(n, CtxRows)
	}
}

func (n *listNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *listNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return column.Column{}, notValidIn(n, CtxTarget)
}

func (n *listNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return defaultRowsGrouped(e, n)
}

// dictNode is an ordered mapping of output names to sub-expressions.
type dictNode struct {
	names []string
	kids  []Node
}

// Dict builds a dict node from parallel name and expression slices.
func Dict(names []string, kids []Node) Node {
	if len(names) != len(kids) {
		panic(errf.Runtime("dict with %d names for %d expressions", len(names), len(kids)))
	}
	return &dictNode{names: names, kids: kids}
}

func (n *dictNode) String() string {
	parts := make([]string, len(n.kids))
	for i, k := range n.kids {
		parts[i] = fmt.Sprintf("%q: %s", n.names[i], k)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (n *dictNode) evalValue(e *Env) (*frame.Workframe, error) {
	wf := e.newWorkframe()
	for i, k := range n.kids {
		col, mode, err := evalValueOne(e, k)
		if err != nil {
			return nil, err
		}
		if err := wf.AddColumn(col, n.names[i], mode); err != nil {
			return nil, err
		}
	}
	return wf, nil
}

// evalCols names each child's selection: {"out": f.x} selects column x
// under the new name out, and in assignment mode a name with no existing
// column becomes a column to create.
func (n *dictNode) evalCols(e *Env, sel *ColSelection) error {
	for i, k := range n.kids {
		var sub ColSelection
		sub.Assign = sel.Assign
		if err := k.evalCols(e, &sub); err != nil {
			return err
		}
		if len(sub.Items) != 1 {
			return errf.Value("dict entry %q selects %d columns where exactly one is expected",
				n.names[i], len(sub.Items))
		}
		item := sub.Items[0]
		item.Name = n.names[i]
		sel.Items = append(sel.Items, item)
	}
	return nil
}

func (n *dictNode) evalRows(e *Env) (frame.RowIndex, error) {
	return frame.RowIndex{}, notValidIn(n, CtxRows)
}

func (n *dictNode) evalNamespace(e *Env) (*frame.Workframe, error) {
	return nil, notValidIn(n, CtxNamespace)
}

func (n *dictNode) evalTarget(e *Env, dst column.SType) (column.Column, error) {
	return column.Column{}, notValidIn(n, CtxTarget)
}

func (n *dictNode) evalRowsGrouped(e *Env) (frame.RowIndex, frame.Groupby, error) {
	return frame.RowIndex{}, frame.Groupby{}, notValidIn(n, CtxRowsGrouped)
}
