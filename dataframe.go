package frame

import (
	"fmt"
	"sort"
)

// DataFrame is an ordered collection of equally long Series.
type DataFrame struct {
	columns []*Series
	height  int
}

// ============================================================================
// Creation
// ============================================================================

// NewDataFrame creates a DataFrame from the given series.
// All series must have the same length and distinct names. nil series are
// skipped.
func NewDataFrame(series ...*Series) (*DataFrame, error) {
	df := &DataFrame{columns: make([]*Series, 0, len(series))}

	seen := make(map[string]bool, len(series))
	for _, s := range series {
		if s == nil {
			continue
		}
		if seen[s.Name()] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, s.Name())
		}
		seen[s.Name()] = true

		if len(df.columns) == 0 {
			df.height = s.Len()
		} else if s.Len() != df.height {
			return nil, fmt.Errorf("column %s has length %d, expected %d: %w", s.Name(), s.Len(), df.height, ErrLengthMismatch)
		}
		df.columns = append(df.columns, s)
	}

	return df, nil
}

// FromMapOptions configures FromMap and FromRecords.
type FromMapOptions struct {
	// Order fixes the column order. Columns present in the data but not
	// listed here follow in lexical order. Without Order every column is
	// placed in lexical order.
	Order []string

	// Schema declares the dtype of individual columns. Columns not listed
	// have their dtype inferred from their values.
	Schema map[string]DType
}

// DefaultFromMapOptions returns options with no explicit order or schema.
func DefaultFromMapOptions() FromMapOptions {
	return FromMapOptions{}
}

// FromMap creates a DataFrame from a map of column name to values.
//
// A value is either a slice (any element type, nil elements are missing
// cells) or a scalar. Scalars are broadcast to the height of the slice
// columns, or form a single row when every value is a scalar.
func FromMap(data map[string]interface{}, opts ...FromMapOptions) (*DataFrame, error) {
	opt := DefaultFromMapOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	names, err := columnOrder(data, opt.Order)
	if err != nil {
		return nil, err
	}

	columns := make(map[string][]interface{}, len(names))
	scalars := make(map[string]interface{})
	height := -1
	for _, name := range names {
		values, ok := toInterfaceSlice(data[name])
		if !ok {
			scalars[name] = data[name]
			continue
		}
		if height >= 0 && len(values) != height {
			return nil, fmt.Errorf("column %s has length %d, expected %d: %w", name, len(values), height, ErrLengthMismatch)
		}
		height = len(values)
		columns[name] = values
	}
	if height < 0 {
		height = 1
	}
	for name, v := range scalars {
		values := make([]interface{}, height)
		for i := range values {
			values[i] = v
		}
		columns[name] = values
	}

	series := make([]*Series, len(names))
	for i, name := range names {
		var s *Series
		if dt, ok := opt.Schema[name]; ok {
			s, err = NewSeriesFromValues(name, columns[name], dt)
		} else {
			s, err = NewSeriesFromValues(name, columns[name])
		}
		if err != nil {
			return nil, err
		}
		series[i] = s
	}

	return NewDataFrame(series...)
}

// FromRecords creates a DataFrame from row records. A key missing from a
// record becomes a missing cell in that row.
func FromRecords(records []map[string]interface{}, opts ...FromMapOptions) (*DataFrame, error) {
	keys := make(map[string]interface{})
	for _, rec := range records {
		for k := range rec {
			keys[k] = nil
		}
	}

	opt := DefaultFromMapOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	// Declared-but-absent columns still appear, fully missing.
	for _, name := range opt.Order {
		keys[name] = nil
	}
	for name := range opt.Schema {
		keys[name] = nil
	}

	data := make(map[string]interface{}, len(keys))
	for k := range keys {
		values := make([]interface{}, len(records))
		for i, rec := range records {
			values[i] = rec[k]
		}
		data[k] = values
	}

	return FromMap(data, opt)
}

// columnOrder resolves the final column order for FromMap.
func columnOrder(data map[string]interface{}, order []string) ([]string, error) {
	names := make([]string, 0, len(data))
	placed := make(map[string]bool, len(data))
	for _, name := range order {
		if _, ok := data[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
		}
		if placed[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
		}
		placed[name] = true
		names = append(names, name)
	}

	rest := make([]string, 0, len(data)-len(names))
	for name := range data {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(names, rest...), nil
}

// AddColumn appends a column, replacing any column with the same name in
// place. Lengths are not checked, so callers assembling frames this way
// should validate before handing the frame to code that relies on a
// consistent height.
func (df *DataFrame) AddColumn(series *Series) *DataFrame {
	if series == nil {
		return df
	}
	for i, col := range df.columns {
		if col.Name() == series.Name() {
			df.columns[i] = series
			return df
		}
	}
	if len(df.columns) == 0 {
		df.height = series.Len()
	}
	df.columns = append(df.columns, series)
	return df
}

// ============================================================================
// Attributes
// ============================================================================

// Height returns the number of rows in the DataFrame.
func (df *DataFrame) Height() int {
	return df.height
}

// Width returns the number of columns in the DataFrame.
func (df *DataFrame) Width() int {
	return len(df.columns)
}

// Shape returns (height, width).
func (df *DataFrame) Shape() (int, int) {
	return df.height, len(df.columns)
}

// Columns returns the column names in order.
func (df *DataFrame) Columns() []string {
	names := make([]string, len(df.columns))
	for i, col := range df.columns {
		names[i] = col.Name()
	}
	return names
}

// DTypes returns the column dtypes in order.
func (df *DataFrame) DTypes() []DType {
	dtypes := make([]DType, len(df.columns))
	for i, col := range df.columns {
		dtypes[i] = col.DType()
	}
	return dtypes
}

// Schema returns the DataFrame schema.
func (df *DataFrame) Schema() *Schema {
	return &Schema{names: df.Columns(), dtypes: df.DTypes()}
}

// ============================================================================
// Access
// ============================================================================

// Column returns the column at index, or nil if out of range.
func (df *DataFrame) Column(index int) *Series {
	if index < 0 || index >= len(df.columns) {
		return nil
	}
	return df.columns[index]
}

// ColumnByName returns the column with the given name, or nil if not found.
func (df *DataFrame) ColumnByName(name string) *Series {
	for _, col := range df.columns {
		if col.Name() == name {
			return col
		}
	}
	return nil
}

// Series returns the columns in order.
func (df *DataFrame) Series() []*Series {
	return append([]*Series{}, df.columns...)
}

// Row returns row index as a name -> value map, with nil for missing cells.
func (df *DataFrame) Row(index int) map[string]interface{} {
	row := make(map[string]interface{}, len(df.columns))
	for _, col := range df.columns {
		row[col.Name()] = col.Get(index)
	}
	return row
}

// ToDicts returns every row as a name -> value map.
func (df *DataFrame) ToDicts() []map[string]interface{} {
	rows := make([]map[string]interface{}, df.height)
	for i := range rows {
		rows[i] = df.Row(i)
	}
	return rows
}

// String returns a formatted table representation of the DataFrame.
func (df *DataFrame) String() string {
	return df.StringWithConfig(GetDisplayConfig())
}
