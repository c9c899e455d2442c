package frame

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/errf"
)

// GroupMode is the granularity of a Workframe's columns relative to the
// evaluation's underlying row set. Modes are ordered: combining columns
// of different modes widens the narrower side by broadcasting; a column
// is never silently narrowed.
type GroupMode int

const (
	// GroupToAll means one row overall (a scalar).
	GroupToAll GroupMode = iota
	// GroupToOne means one row per group.
	GroupToOne
	// GroupToFull means one row per source row.
	GroupToFull
)

// String returns the display name of the mode.
func (m GroupMode) String() string {
	switch m {
	case GroupToAll:
		return "one_row"
	case GroupToOne:
		return "per_group"
	case GroupToFull:
		return "per_row"
	default:
		return fmt.Sprintf("GroupMode(%d)", int(m))
	}
}

// Entry is one named column under construction. A placeholder entry has a
// reserved name but no column yet; it exists so an assignment can create
// a brand-new column.
type Entry struct {
	col         column.Column
	has         bool
	name        string
	srcFrame    uuid.UUID
	srcCol      int
	placeholder bool
}

// Name returns the entry's (possibly empty) name.
func (e Entry) Name() string { return e.name }

// IsPlaceholder reports whether the entry is a reserved name with no
// column.
func (e Entry) IsPlaceholder() bool { return e.placeholder }

// SrcCol returns the entry's source column position, or -1.
func (e Entry) SrcCol() int { return e.srcCol }

// SrcFrame returns the id of the frame the entry's column came from, or
// the zero UUID.
func (e Entry) SrcFrame() uuid.UUID { return e.srcFrame }

// Workframe is the ordered, named collection of columns produced while an
// expression tree is evaluated, before it becomes an output Frame. All
// its columns share one grouping mode, kept synchronized as columns of
// different granularity are combined.
type Workframe struct {
	entries []Entry
	mode    GroupMode
	gb      Groupby
	nrows   int // row count of the per-row shape
}

// NewWorkframe creates an empty Workframe over nrows rows partitioned by
// gb.
func NewWorkframe(nrows int, gb Groupby) *Workframe {
	return &Workframe{gb: gb, nrows: nrows}
}

// NCols returns the number of entries.
func (w *Workframe) NCols() int { return len(w.entries) }

// Mode returns the current grouping mode.
func (w *Workframe) Mode() GroupMode { return w.mode }

// Groupby returns the partition the Workframe was built against.
func (w *Workframe) Groupby() Groupby { return w.gb }

// Entry returns entry i by value.
func (w *Workframe) Entry(i int) Entry { return w.entries[i] }

// shapeRows returns the physical row count a column of the given mode
// must have.
func (w *Workframe) shapeRows(mode GroupMode) int {
	switch mode {
	case GroupToAll:
		return 1
	case GroupToOne:
		return w.gb.NGroups()
	default:
		return w.nrows
	}
}

// broadcast widens a column from one grouping mode to another. Widening
// is always a concrete repeat: a scalar is tiled, and a per-group value
// is expanded across each group's rows through the partition. Narrowing
// is an internal error; callers widen the other side instead.
func (w *Workframe) broadcast(col column.Column, from, to GroupMode) (column.Column, error) {
	if from == to {
		return col, nil
	}
	if from > to {
		return column.Column{}, errf.Runtime(
			"cannot narrow a column from %s to %s", from, to)
	}
	switch {
	case from == GroupToAll && to == GroupToOne:
		return col.Repeat(w.gb.NGroups()), nil
	case from == GroupToAll && to == GroupToFull:
		return col.Repeat(w.nrows), nil
	default: // GroupToOne -> GroupToFull
		r2g := w.gb.RowToGroup()
		return column.View(col, w.nrows, func(i int) (int, bool) {
			return int(r2g[i]), true
		}), nil
	}
}

// widenTo raises every existing entry to the given mode.
func (w *Workframe) widenTo(mode GroupMode) error {
	if mode <= w.mode {
		return nil
	}
	for i := range w.entries {
		e := &w.entries[i]
		if !e.has {
			continue
		}
		wide, err := w.broadcast(e.col, w.mode, mode)
		if err != nil {
			return err
		}
		e.col = wide
	}
	w.mode = mode
	return nil
}

// AddColumn inserts a column with the given grouping mode, synchronizing
// the mode of the whole Workframe: whichever side is narrower is
// broadcast up before the insert completes.
func (w *Workframe) AddColumn(col column.Column, name string, mode GroupMode) error {
	return w.AddColumnFrom(col, name, mode, uuid.Nil, -1)
}

// AddColumnFrom is AddColumn with a back-reference to the source frame
// and column the value came from.
func (w *Workframe) AddColumnFrom(col column.Column, name string, mode GroupMode, src uuid.UUID, srcCol int) error {
	if want := w.shapeRows(mode); col.NRows() != want {
		return errf.Value(
			"cannot add a column with %d rows where %d are expected (%s)",
			col.NRows(), want, mode)
	}
	if len(w.entries) == 0 {
		w.mode = mode
	} else if mode > w.mode {
		if err := w.widenTo(mode); err != nil {
			return err
		}
	} else if mode < w.mode {
		wide, err := w.broadcast(col, mode, w.mode)
		if err != nil {
			return err
		}
		col = wide
	}
	w.entries = append(w.entries, Entry{col: col, has: true, name: name, srcFrame: src, srcCol: srcCol})
	return nil
}

// AddPlaceholder reserves a named entry with no column, to be filled by a
// later assignment.
func (w *Workframe) AddPlaceholder(name string, src uuid.UUID) {
	w.entries = append(w.entries, Entry{name: name, srcFrame: src, srcCol: -1, placeholder: true})
}

// Cbind appends the entries of another Workframe built over the same row
// partition, synchronizing grouping modes first.
func (w *Workframe) Cbind(other *Workframe) error {
	if other.nrows != w.nrows || other.gb.NGroups() != w.gb.NGroups() {
		return errf.Value("cannot cbind workframes over different row partitions")
	}
	if len(w.entries) == 0 {
		w.mode = other.mode
	}
	target := w.mode
	if other.mode > target {
		target = other.mode
	}
	if err := w.widenTo(target); err != nil {
		return err
	}
	for _, e := range other.entries {
		if !e.has {
			w.entries = append(w.entries, e)
			continue
		}
		col, err := w.broadcast(e.col, other.mode, target)
		if err != nil {
			return err
		}
		e.col = col
		w.entries = append(w.entries, e)
	}
	return nil
}

// RetrieveColumn takes ownership of entry i's column, clearing the slot.
// Entries are single-read so the same column handle is never mutated
// through two owners by accident.
func (w *Workframe) RetrieveColumn(i int) (column.Column, error) {
	if i < 0 || i >= len(w.entries) {
		return column.Column{}, errf.Value("entry %d out of bounds for a workframe with %d entries", i, len(w.entries))
	}
	e := &w.entries[i]
	if !e.has {
		return column.Column{}, errf.Runtime("entry %d has already been retrieved", i)
	}
	col := e.col
	e.col = column.Column{}
	e.has = false
	return col, nil
}

// SetColumn fills entry i (typically a placeholder) with a column of the
// Workframe's current shape.
func (w *Workframe) SetColumn(i int, col column.Column) error {
	if i < 0 || i >= len(w.entries) {
		return errf.Value("entry %d out of bounds for a workframe with %d entries", i, len(w.entries))
	}
	if want := w.shapeRows(w.mode); col.NRows() != want {
		return errf.Value("cannot set a column with %d rows where %d are expected", col.NRows(), want)
	}
	e := &w.entries[i]
	e.col = col
	e.has = true
	e.placeholder = false
	return nil
}

// ToFrame converts the Workframe into an output Frame. Every entry must
// hold a column; unnamed entries get default names (C0, C1, ...) and
// duplicate names are mangled with a numeric suffix.
func (w *Workframe) ToFrame() (*Frame, error) {
	names := make([]string, 0, len(w.entries))
	cols := make([]column.Column, 0, len(w.entries))
	seen := make(map[string]bool, len(w.entries))

	for i, e := range w.entries {
		if !e.has {
			return nil, errf.Value("column %q was never assigned a value", e.name)
		}
		name := e.name
		if name == "" {
			name = fmt.Sprintf("C%d", i)
		}
		if seen[name] {
			for k := 1; ; k++ {
				cand := fmt.Sprintf("%s.%d", name, k)
				if !seen[cand] {
					name = cand
					break
				}
			}
		}
		seen[name] = true
		names = append(names, name)
		cols = append(cols, e.col)
	}
	return New(names, cols)
}
