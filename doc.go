// Package frame is a small columnar table engine: typed Series with an
// explicit validity mask for missing cells, DataFrames built from series,
// maps or records, table display, and Apache Arrow / Parquet interop.
//
// Reductions over a DataFrame live in the agg subpackage.
package frame
