package output

import (
	"io"
	"time"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to render a frame in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the frame in the formatter's specific format
	Format(f *frame.Frame) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns the formatter registered under the given name ("json",
// "csv" or "table"), or false for an unknown name.
func New(name string, w io.Writer) (Formatter, bool) {
	switch name {
	case "json":
		return NewJSONFormatter(w), true
	case "csv":
		return NewCSVFormatter(w), true
	case "table":
		return NewTableFormatter(w), true
	default:
		return nil, false
	}
}

// cellValue reads one cell as a plain Go value, nil for a missing value.
// Timestamps come back as time.Time in UTC.
func cellValue(col column.Column, i int) interface{} {
	switch col.LType() {
	case column.LVoid:
		return nil
	case column.LBool:
		if v, ok := col.Bool8At(i); ok {
			return v
		}
	case column.LInt:
		if v, ok := col.IntAt(i); ok {
			return v
		}
	case column.LReal:
		if v, ok := col.FloatAt(i); ok {
			return v
		}
	case column.LString:
		if v, ok := col.StrAt(i); ok {
			return v
		}
	case column.LDateTime:
		if v, ok := col.IntAt(i); ok {
			return time.Unix(0, v).UTC()
		}
	default:
		if v, ok := col.ObjAt(i); ok {
			return v
		}
	}
	return nil
}
