package frame

import (
	"github.com/google/uuid"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
	"github.com/vegasq/framecat/internal/fuzzy"
)

// Frame is a finished, ordered collection of equally-long named columns.
// Each frame carries a unique id so that columns built from it can point
// back at their source.
type Frame struct {
	id    uuid.UUID
	names []string
	cols  []column.Column
	nrows int
}

// New builds a frame from parallel name and column slices. All columns
// must have the same row count.
func New(names []string, cols []column.Column) (*Frame, error) {
	if len(names) != len(cols) {
		return nil, errf.Value("got %d names for %d columns", len(names), len(cols))
	}
	nrows := 0
	if len(cols) > 0 {
		nrows = cols[0].NRows()
	}
	for i, c := range cols {
		if c.NRows() != nrows {
			return nil, errf.Value("column %q has %d rows, expected %d", names[i], c.NRows(), nrows)
		}
	}
	return &Frame{
		id:    uuid.New(),
		names: append([]string(nil), names...),
		cols:  append([]column.Column(nil), cols...),
		nrows: nrows,
	}, nil
}

// ID returns the frame's unique identity.
func (f *Frame) ID() uuid.UUID { return f.id }

// NRows returns the number of rows.
func (f *Frame) NRows() int { return f.nrows }

// NCols returns the number of columns.
func (f *Frame) NCols() int { return len(f.cols) }

// Name returns the name of column i.
func (f *Frame) Name(i int) string { return f.names[i] }

// Names returns all column names in order. The slice must not be
// modified.
func (f *Frame) Names() []string { return f.names }

// Column returns a shared handle to column i.
func (f *Frame) Column(i int) column.Column {
	if i < 0 || i >= len(f.cols) {
		panic(errf.Runtime("column %d out of bounds for a frame with %d columns", i, len(f.cols)))
	}
	return f.cols[i]
}

// ColumnIndex resolves a column name to its position. Unknown names
// produce a KeyError carrying a "did you mean" suggestion when a close
// match exists.
func (f *Frame) ColumnIndex(name string) (int, error) {
	for i, n := range f.names {
		if n == name {
			return i, nil
		}
	}
	return -1, errf.Key(name, fuzzy.Suggest(name, f.names))
}

// ColumnByName returns a shared handle to the named column.
func (f *Frame) ColumnByName(name string) (column.Column, error) {
	i, err := f.ColumnIndex(name)
	if err != nil {
		return column.Column{}, err
	}
	return f.cols[i], nil
}

// Rbind concatenates frames row-wise. Columns are matched by the first
// frame's schema; storage types are promoted and cast to the common type
// before the chunks are bound.
func Rbind(frames ...*Frame) (*Frame, error) {
	if len(frames) == 0 {
		return nil, errf.Value("rbind of zero frames")
	}
	if len(frames) == 1 {
		return frames[0], nil
	}
	first := frames[0]
	names := first.Names()
	cols := make([]column.Column, len(names))
	for ci, name := range names {
		chunks := make([]column.Column, len(frames))
		target := column.Void
		for fi, fr := range frames {
			c, err := fr.ColumnByName(name)
			if err != nil {
				return nil, err
			}
			chunks[fi] = c
			target = column.Promote(target, c.Stype())
		}
		for fi, ch := range chunks {
			cast, err := ch.Cast(target)
			if err != nil {
				return nil, err
			}
			chunks[fi] = cast
		}
		cols[ci] = column.Rbind(chunks...)
	}
	return New(names, cols)
}
