package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/frame"
)

// Reader reads a parquet file into a frame.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader creates a new parquet reader for the specified file path.
//
// The file is opened and validated as a parquet file. Returns an error if
// the file doesn't exist or is not a valid parquet file.
//
// Example:
//
//	reader, err := NewReader("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reader.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close closes the parquet reader and releases associated resources.
//
// Should be called when done reading to avoid resource leaks. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadAll reads the whole file into a frame.
//
// Column storage types follow the parquet schema (see ExtractSchema);
// nulls become missing values. If a column turns out to hold values wider
// than its declared type, the builder widens mid-read. The entire file is
// loaded into memory, so this method may not be suitable for very large
// files.
func (r *Reader) ReadAll() (*frame.Frame, error) {
	fields := r.pqFile.Schema().Fields()
	names := make([]string, len(fields))
	builders := make([]*column.Builder, len(fields))
	nrows := int(r.pqFile.NumRows())
	for i, f := range fields {
		if len(f.Fields()) > 0 {
			return nil, fmt.Errorf("nested parquet column %q is not supported", f.Name())
		}
		st, err := stypeOf(f)
		if err != nil {
			return nil, err
		}
		names[i] = f.Name()
		builders[i] = column.NewBuilder(st, nrows)
	}

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for i, name := range names {
			if err := pushValue(builders[i], row[name]); err != nil {
				return nil, fmt.Errorf("failed to read column %q: %w", name, err)
			}
		}
	}

	cols := make([]column.Column, len(builders))
	for i, b := range builders {
		cols[i] = b.Seal()
	}
	f, err := frame.New(names, cols)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble frame: %w", err)
	}
	return f, nil
}

// pushValue appends one decoded parquet value to a builder, widening the
// builder when the value does not fit its current family.
func pushValue(b *column.Builder, v interface{}) error {
	switch x := v.(type) {
	case nil:
		b.PushNA()
	case bool:
		b.PushBool(x)
	case int32:
		b.PushInt(int64(x))
	case int64:
		b.PushInt(x)
	case float32:
		if err := widenFor(b, column.Float64); err != nil {
			return err
		}
		b.PushFloat(float64(x))
	case float64:
		if err := widenFor(b, column.Float64); err != nil {
			return err
		}
		b.PushFloat(x)
	case string:
		b.PushStr(x)
	case []byte:
		b.PushStr(string(x))
	case time.Time:
		b.PushInt(x.UnixNano())
	default:
		if err := b.ChangeType(column.Obj); err != nil {
			return err
		}
		b.PushObj(v)
	}
	return nil
}

func widenFor(b *column.Builder, st column.SType) error {
	if b.Stype().LType() == column.LReal || b.Stype().LType() == column.LObject {
		return nil
	}
	return b.ChangeType(st)
}

// ReadFrame reads one parquet file into a frame.
func ReadFrame(path string) (*frame.Frame, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return r.ReadAll()
}

// ReadFrameGlob reads all parquet files matching a glob pattern and
// concatenates them row-wise.
//
// The pattern can include wildcards:
//   - * matches any sequence of non-separator characters
//   - ? matches any single non-separator character
//   - [range] matches any character in range
//
// When the pattern matches more than one file (or contains wildcards), the
// result is tagged with a "_file" column holding each row's source path.
// Column storage types are promoted to a common type across files before
// binding. Returns an error if no files match the pattern or if any file
// fails to read.
func ReadFrameGlob(pattern string) (*frame.Frame, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		return ReadFrame(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	// Limit number of files to prevent resource exhaustion
	const maxFiles = 1000
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	frames := make([]*frame.Frame, 0, len(matches))
	for _, path := range matches {
		f, err := ReadFrame(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		tagged, err := withFileColumn(f, path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, tagged)
	}
	return frame.Rbind(frames...)
}

// withFileColumn appends a constant "_file" column carrying the source
// path of every row.
func withFileColumn(f *frame.Frame, path string) (*frame.Frame, error) {
	names := append(append([]string(nil), f.Names()...), "_file")
	cols := make([]column.Column, 0, f.NCols()+1)
	for i := 0; i < f.NCols(); i++ {
		cols = append(cols, f.Column(i))
	}
	cols = append(cols, column.ConstStr(path, f.NRows()))
	return frame.New(names, cols)
}
