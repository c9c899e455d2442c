package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/framecat/frame"
)

// TableFormatter renders a frame as an aligned plain-text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes the frame as a bordered table with the column names as
// the header. Missing values render as "NA".
func (t *TableFormatter) Format(f *frame.Frame) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(f.Names())
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	record := make([]string, f.NCols())
	for i := 0; i < f.NRows(); i++ {
		for col := 0; col < f.NCols(); col++ {
			v := cellValue(f.Column(col), i)
			if v == nil {
				record[col] = "NA"
			} else {
				record[col] = formatValue(v)
			}
		}
		table.Append(record)
	}
	table.Render()
	return nil
}
