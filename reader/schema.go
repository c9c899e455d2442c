package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/framecat/column"
)

// ColumnInfo describes how one parquet column maps into the engine.
type ColumnInfo struct {
	Name         string       `json:"name"`
	Stype        column.SType `json:"-"`
	Type         string       `json:"type"`
	PhysicalType string       `json:"physical_type"`
	LogicalType  string       `json:"logical_type"`
	Optional     bool         `json:"optional"`
}

// ExtractSchema reports the column layout a parquet file will load as:
// each leaf field's name, its parquet types, and the storage type the
// reader assigns to it.
func ExtractSchema(path string) ([]ColumnInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	fields := r.Schema().Fields()
	infos := make([]ColumnInfo, 0, len(fields))
	for _, field := range fields {
		if len(field.Fields()) > 0 {
			return nil, fmt.Errorf("nested parquet column %q is not supported", field.Name())
		}
		st, err := stypeOf(field)
		if err != nil {
			return nil, err
		}
		infos = append(infos, ColumnInfo{
			Name:         field.Name(),
			Stype:        st,
			Type:         st.String(),
			PhysicalType: physicalType(field),
			LogicalType:  logicalType(field),
			Optional:     field.Optional(),
		})
	}
	return infos, nil
}

// stypeOf maps one parquet leaf field to a storage type. The logical type
// takes precedence over the physical one: an INT64 annotated as TIMESTAMP
// loads as a timestamp column, a BYTE_ARRAY annotated as STRING loads as
// a string column.
func stypeOf(field parquet.Field) (column.SType, error) {
	if lt := field.Type().LogicalType(); lt != nil {
		switch {
		case lt.UTF8 != nil:
			return column.Str32, nil
		case lt.Timestamp != nil:
			return column.Time64, nil
		case lt.Date != nil:
			return column.Time64, nil
		}
	}
	switch field.Type().Kind() {
	case parquet.Boolean:
		return column.Bool8, nil
	case parquet.Int32:
		return column.Int32, nil
	case parquet.Int64:
		return column.Int64, nil
	case parquet.Float:
		return column.Float32, nil
	case parquet.Double:
		return column.Float64, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return column.Str32, nil
	default:
		return column.Void, fmt.Errorf("parquet column %q has unsupported type %s", field.Name(), field.Type())
	}
}

func physicalType(field parquet.Field) string {
	switch field.Type().Kind() {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "UNKNOWN"
	}
}

func logicalType(field parquet.Field) string {
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}
