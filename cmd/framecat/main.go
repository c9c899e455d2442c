// Command framecat reads Apache Parquet files and evaluates columnar
// queries against them: column selection, row filtering, grouping and
// aggregation, with JSON Lines, CSV, table or parquet output.
//
// Example usage:
//
//	framecat data.parquet
//	framecat --select name,age --filter "age >= 30" data.parquet
//	framecat --by city --agg "mean(age),count()" --format table data.parquet
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/framecat/column"
	"github.com/vegasq/framecat/config"
	"github.com/vegasq/framecat/expr"
	"github.com/vegasq/framecat/frame"
	"github.com/vegasq/framecat/output"
	"github.com/vegasq/framecat/parallel"
	"github.com/vegasq/framecat/reader"
	"github.com/vegasq/framecat/writer"
)

type options struct {
	selectCols string
	filter     string
	by         string
	agg        string
	format     string
	out        string
	toParquet  string
	schema     bool
	configPath string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "framecat [flags] <file.parquet>",
		Short: "Query Parquet files with columnar select/filter/group-by",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args[0], cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&opts.selectCols, "select", "", "comma-separated columns to keep (default: all)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "row filter, e.g. \"age >= 30\"")
	cmd.Flags().StringVar(&opts.by, "by", "", "comma-separated grouping columns")
	cmd.Flags().StringVar(&opts.agg, "agg", "", "aggregations, e.g. \"mean(age),sum(x),count()\"")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format: json, csv, table")
	cmd.Flags().StringVar(&opts.out, "out", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&opts.toParquet, "to-parquet", "", "write the result to a parquet file instead of formatting it")
	cmd.Flags().BoolVar(&opts.schema, "schema", false, "show the file's column layout instead of data")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file (YAML)")
	return cmd
}

func run(opts *options, path string, stdout io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	dst := stdout
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		dst = file
	}

	if opts.schema {
		return runSchema(path, opts.format, dst)
	}

	f, err := reader.ReadFrameGlob(path)
	if err != nil {
		return err
	}

	rows, cols, by, err := buildQuery(opts)
	if err != nil {
		return err
	}

	pool := parallel.NewPool(cfg.Workers)
	pool.SetMinRows(cfg.MinParallelRows)
	result, err := expr.Eval(f, rows, cols, by, &expr.Options{Pool: pool, Strict: cfg.Strict})
	if err != nil {
		return err
	}

	if opts.toParquet != "" {
		return writer.WriteFrame(result, opts.toParquet)
	}

	formatter, ok := output.New(opts.format, dst)
	if !ok {
		return fmt.Errorf("unsupported format %q (supported: json, csv, table)", opts.format)
	}
	return formatter.Format(result)
}

// buildQuery translates the flat flag values into an expression tree.
func buildQuery(opts *options) (rows expr.Node, cols expr.Node, by []string, err error) {
	if opts.filter != "" {
		if rows, err = parseFilter(opts.filter); err != nil {
			return nil, nil, nil, err
		}
	}
	if opts.by != "" {
		by = splitList(opts.by)
	}
	switch {
	case opts.agg != "":
		if cols, err = parseAggs(opts.agg); err != nil {
			return nil, nil, nil, err
		}
	case opts.selectCols != "":
		names := splitList(opts.selectCols)
		kids := make([]expr.Node, len(names))
		for i, name := range names {
			kids[i] = expr.Col(name)
		}
		cols = expr.List(kids...)
	}
	return rows, cols, by, nil
}

// parseFilter parses a single "column op literal" comparison.
func parseFilter(s string) (expr.Node, error) {
	ops := []struct {
		sym string
		op  expr.BinOp
	}{
		{">=", expr.OpGe}, {"<=", expr.OpLe}, {"==", expr.OpEq},
		{"!=", expr.OpNe}, {">", expr.OpGt}, {"<", expr.OpLt},
	}
	for _, o := range ops {
		idx := strings.Index(s, o.sym)
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(s[:idx])
		lit := strings.TrimSpace(s[idx+len(o.sym):])
		if name == "" || lit == "" {
			break
		}
		return expr.Bin(o.op, expr.Col(name), expr.Lit(parseLiteral(lit))), nil
	}
	return nil, fmt.Errorf("cannot parse filter %q (expected \"column op literal\")", s)
}

// parseLiteral interprets a flag literal as bool, int, float or string.
func parseLiteral(s string) interface{} {
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return int(v)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return strings.Trim(s, "'\"")
}

var reducers = map[string]expr.Reducer{
	"count":   expr.RCount,
	"sum":     expr.RSum,
	"mean":    expr.RMean,
	"min":     expr.RMin,
	"max":     expr.RMax,
	"sd":      expr.RSd,
	"first":   expr.RFirst,
	"last":    expr.RLast,
	"median":  expr.RMedian,
	"nunique": expr.RNUnique,
}

// parseAggs parses a comma-separated list of "func(column)" calls into a
// dict expression whose output names are "func_column".
func parseAggs(s string) (expr.Node, error) {
	var names []string
	var kids []expr.Node
	for _, part := range splitList(s) {
		open := strings.Index(part, "(")
		if open < 0 || !strings.HasSuffix(part, ")") {
			return nil, fmt.Errorf("cannot parse aggregation %q (expected \"func(column)\")", part)
		}
		fn := strings.TrimSpace(part[:open])
		arg := strings.TrimSpace(part[open+1 : len(part)-1])
		r, ok := reducers[fn]
		if !ok {
			return nil, fmt.Errorf("unknown aggregation %q", fn)
		}
		if arg == "" {
			if r != expr.RCount {
				return nil, fmt.Errorf("aggregation %q requires a column", fn)
			}
			names = append(names, "count")
			kids = append(kids, expr.Count())
			continue
		}
		names = append(names, fn+"_"+arg)
		kids = append(kids, expr.Reduce(r, expr.Col(arg)))
	}
	return expr.Dict(names, kids), nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// runSchema prints the column layout the reader would assign to the
// file's parquet schema.
func runSchema(path string, format string, dst io.Writer) error {
	infos, err := reader.ExtractSchema(path)
	if err != nil {
		return err
	}
	names := make([]string, len(infos))
	types := make([]string, len(infos))
	physical := make([]string, len(infos))
	logical := make([]string, len(infos))
	optional := make([]bool, len(infos))
	for i, info := range infos {
		names[i] = info.Name
		types[i] = info.Type
		physical[i] = info.PhysicalType
		logical[i] = info.LogicalType
		optional[i] = info.Optional
	}
	f, err := frameOfSchema(names, types, physical, logical, optional)
	if err != nil {
		return err
	}
	formatter, ok := output.New(format, dst)
	if !ok {
		return fmt.Errorf("unsupported format %q (supported: json, csv, table)", format)
	}
	return formatter.Format(f)
}

func frameOfSchema(names, types, physical, logical []string, optional []bool) (*frame.Frame, error) {
	return frame.New(
		[]string{"name", "type", "physical_type", "logical_type", "optional"},
		[]column.Column{
			column.Strs(names),
			column.Strs(types),
			column.Strs(physical),
			column.Strs(logical),
			column.Bools(optional),
		},
	)
}
