// Package output provides formatters for rendering frames to various
// output formats.
//
// This package defines the Formatter interface and provides
// implementations for common output formats. All formatters work with
// frames and render missing values in a format-appropriate way.
//
// # Supported Formats
//
//   - JSON Lines: One JSON object per line (suitable for streaming);
//     missing values become null
//   - CSV: Comma-separated values with header row; missing values become
//     empty fields
//   - Table: aligned plain-text table; missing values render as NA
//
// # Basic Usage
//
// Using the JSON formatter:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(f); err != nil {
//	    log.Fatal(err)
//	}
//
// Selecting a formatter by name:
//
//	formatter, ok := output.New("csv", os.Stdout)
//	if !ok {
//	    log.Fatal("unknown format")
//	}
//
// # Writing to Different Destinations
//
// Change output destination dynamically:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//
//	file, err := os.Create("output.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	formatter.SetOutput(file)
//	if err := formatter.Format(f); err != nil {
//	    log.Fatal(err)
//	}
//
// # Formatter Interface
//
// Implement custom formatters by satisfying the Formatter interface:
//
//	type Formatter interface {
//	    Format(f *frame.Frame) error
//	    SetOutput(w io.Writer)
//	}
package output
