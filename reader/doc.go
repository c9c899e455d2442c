// Package reader provides functionality for reading Apache Parquet files
// into frames.
//
// This package offers a simple, high-level API for loading parquet files
// columnar-first: each parquet column lands in a column builder, nulls
// become missing values, and the storage types follow the file's schema.
// It supports both single-file and multi-file (glob pattern) operations.
//
// # Basic Usage
//
// Reading a single parquet file:
//
//	f, err := reader.ReadFrame("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(f.NRows(), f.Names())
//
// # Multi-file Operations
//
// Reading multiple files using glob patterns:
//
//	f, err := reader.ReadFrameGlob("data/*.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// The frame includes a "_file" column with each row's source file.
//
// # Schema Introspection
//
// Inspecting how a file's columns will be typed:
//
//	infos, err := reader.ExtractSchema("data.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, info := range infos {
//	    fmt.Printf("%s: %s\n", info.Name, info.Stype)
//	}
//
// The package uses github.com/parquet-go/parquet-go for the underlying
// parquet file operations.
package reader
