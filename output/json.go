package output

import (
	"encoding/json"
	"io"

	"github.com/vegasq/framecat/frame"
)

// JSONFormatter renders a frame as JSON Lines
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes the frame as JSON Lines (one JSON object per row).
// Missing values render as null.
func (j *JSONFormatter) Format(f *frame.Frame) error {
	encoder := json.NewEncoder(j.writer)
	names := f.Names()
	for i := 0; i < f.NRows(); i++ {
		row := make(map[string]interface{}, len(names))
		for c, name := range names {
			row[name] = cellValue(f.Column(c), i)
		}
		if err := encoder.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
