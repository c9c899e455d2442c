package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vegasq/framecat/frame"
)

// CSVFormatter renders a frame as CSV
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes the frame as CSV with a header row. Missing values
// render as empty fields.
func (c *CSVFormatter) Format(f *frame.Frame) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(f.Names()); err != nil {
		return err
	}

	record := make([]string, f.NCols())
	for i := 0; i < f.NRows(); i++ {
		for col := 0; col < f.NCols(); col++ {
			record[col] = formatValue(cellValue(f.Column(col), i))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue converts a cell value to string for CSV output
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		// Sanitize against CSV injection by prefixing dangerous characters
		// that could trigger formula execution in spreadsheet applications
		if len(val) > 0 {
			firstChar := val[0]
			if firstChar == '=' || firstChar == '+' || firstChar == '-' || firstChar == '@' || firstChar == '\t' || firstChar == '\r' || firstChar == '\n' || firstChar == '|' {
				// Escape existing single quotes and prefix with quote to prevent formula injection
				return "'" + strings.ReplaceAll(val, "'", "''")
			}
		}
		return val
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", val)
	}
}
