// Package writer serializes frames to Apache Parquet files.
//
// The parquet schema is derived from the frame's columns; every column is
// written as an optional field so missing values round-trip as parquet
// nulls.
//
// Example usage:
//
//	if err := writer.WriteFrame(f, "out.parquet"); err != nil {
//	    log.Fatal(err)
//	}
package writer

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// WriteFrame writes a frame to a parquet file at the given path.
func WriteFrame(f *frame.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(f, file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

// Write serializes a frame to a writer in parquet format.
//
// Columns of host-object type cannot be represented in parquet and are
// rejected.
func Write(f *frame.Frame, w io.Writer) error {
	schema, err := schemaOf(f)
	if err != nil {
		return err
	}

	pw := parquet.NewGenericWriter[map[string]interface{}](w, schema)
	const batch = 1024
	rows := make([]map[string]interface{}, 0, batch)
	for i := 0; i < f.NRows(); i++ {
		rows = append(rows, rowOf(f, i))
		if len(rows) == batch {
			if _, err := pw.Write(rows); err != nil {
				return fmt.Errorf("failed to write rows: %w", err)
			}
			rows = rows[:0]
		}
	}
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			return fmt.Errorf("failed to write rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// schemaOf derives the parquet schema from the frame's storage types.
func schemaOf(f *frame.Frame) (*parquet.Schema, error) {
	group := parquet.Group{}
	for i := 0; i < f.NCols(); i++ {
		node, err := nodeOf(f.Column(i).Stype())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", f.Name(i), err)
		}
		group[f.Name(i)] = parquet.Optional(node)
	}
	return parquet.NewSchema("frame", group), nil
}

func nodeOf(st column.SType) (parquet.Node, error) {
	switch st {
	case column.Void, column.Bool8:
		return parquet.Leaf(parquet.BooleanType), nil
	case column.Int8, column.Int16, column.Int32:
		return parquet.Int(32), nil
	case column.Int64:
		return parquet.Int(64), nil
	case column.Float32:
		return parquet.Leaf(parquet.FloatType), nil
	case column.Float64:
		return parquet.Leaf(parquet.DoubleType), nil
	case column.Str32, column.Str64:
		return parquet.String(), nil
	case column.Time64:
		return parquet.Timestamp(parquet.Nanosecond), nil
	default:
		return nil, fmt.Errorf("storage type %s cannot be written to parquet", st)
	}
}

// rowOf extracts row i as a map; missing values are left out so the
// optional fields encode them as nulls.
func rowOf(f *frame.Frame, i int) map[string]interface{} {
	row := make(map[string]interface{}, f.NCols())
	for c := 0; c < f.NCols(); c++ {
		col := f.Column(c)
		name := f.Name(c)
		switch col.Stype() {
		case column.Void:
			// Always null.
		case column.Bool8:
			if v, ok := col.Bool8At(i); ok {
				row[name] = v
			}
		case column.Int8, column.Int16, column.Int32:
			if v, ok := col.IntAt(i); ok {
				row[name] = int32(v)
			}
		case column.Int64:
			if v, ok := col.IntAt(i); ok {
				row[name] = v
			}
		case column.Float32:
			if v, ok := col.FloatAt(i); ok {
				row[name] = float32(v)
			}
		case column.Float64:
			if v, ok := col.FloatAt(i); ok {
				row[name] = v
			}
		case column.Str32, column.Str64:
			if v, ok := col.StrAt(i); ok {
				row[name] = v
			}
		case column.Time64:
			if v, ok := col.IntAt(i); ok {
				row[name] = time.Unix(0, v).UTC()
			}
		}
	}
	return row
}
