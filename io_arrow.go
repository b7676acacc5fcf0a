package frame

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ============================================================================
// Arrow Export
// ============================================================================

// ToArrow exports a DataFrame to an Arrow Record. Missing cells become Arrow
// nulls. The caller is responsible for calling Release() on the returned
// Record.
func (df *DataFrame) ToArrow(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, len(df.columns))
	for i, col := range df.columns {
		arrowType, err := dtypeToArrowType(col.DType())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
		fields[i] = arrow.Field{Name: col.Name(), Type: arrowType, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, col := range df.columns {
		if err := appendSeries(builder.Field(i), col); err != nil {
			return nil, fmt.Errorf("column %s: %w", col.Name(), err)
		}
	}

	return builder.NewRecord(), nil
}

// ToArrowTable exports a DataFrame to an Arrow Table.
// The caller is responsible for calling Release() on the returned Table.
func (df *DataFrame) ToArrowTable(mem memory.Allocator) (arrow.Table, error) {
	record, err := df.ToArrow(mem)
	if err != nil {
		return nil, err
	}
	defer record.Release()

	return array.NewTableFromRecords(record.Schema(), []arrow.Record{record}), nil
}

// dtypeToArrowType converts a DType to an Arrow DataType
func dtypeToArrowType(dtype DType) (arrow.DataType, error) {
	switch dtype {
	case Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case Float32:
		return arrow.PrimitiveTypes.Float32, nil
	case Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case UInt64:
		return arrow.PrimitiveTypes.Uint64, nil
	case UInt32:
		return arrow.PrimitiveTypes.Uint32, nil
	case Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case String:
		return arrow.BinaryTypes.String, nil
	case Null:
		return arrow.Null, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, dtype)
	}
}

// appendSeries appends every cell of s to the field builder b.
func appendSeries(b array.Builder, s *Series) error {
	valid := s.Validity()

	switch fb := b.(type) {
	case *array.Float64Builder:
		fb.AppendValues(s.Float64(), valid)
	case *array.Float32Builder:
		fb.AppendValues(s.Float32(), valid)
	case *array.Int64Builder:
		fb.AppendValues(s.Int64(), valid)
	case *array.Int32Builder:
		fb.AppendValues(s.Int32(), valid)
	case *array.Uint64Builder:
		fb.AppendValues(s.UInt64(), valid)
	case *array.Uint32Builder:
		fb.AppendValues(s.UInt32(), valid)
	case *array.BooleanBuilder:
		fb.AppendValues(s.Bool(), valid)
	case *array.StringBuilder:
		fb.AppendValues(s.Strings(), valid)
	case *array.NullBuilder:
		for i := 0; i < s.Len(); i++ {
			fb.AppendNull()
		}
	default:
		return fmt.Errorf("%w: arrow builder %T", ErrUnsupportedType, b)
	}
	return nil
}

// ============================================================================
// Arrow Import
// ============================================================================

// NewDataFrameFromArrow creates a DataFrame from an Arrow Record.
func NewDataFrameFromArrow(record arrow.Record) (*DataFrame, error) {
	if record == nil {
		return nil, fmt.Errorf("record is nil")
	}

	schema := record.Schema()
	numCols := int(record.NumCols())
	series := make([]*Series, numCols)

	for i := 0; i < numCols; i++ {
		name := schema.Field(i).Name
		s, err := arrowChunksToSeries(name, []arrow.Array{record.Column(i)})
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		series[i] = s
	}

	return NewDataFrame(series...)
}

// NewDataFrameFromArrowTable creates a DataFrame from an Arrow Table,
// concatenating the chunks of every column.
func NewDataFrameFromArrowTable(table arrow.Table) (*DataFrame, error) {
	if table == nil {
		return nil, fmt.Errorf("table is nil")
	}

	schema := table.Schema()
	numCols := int(table.NumCols())
	series := make([]*Series, numCols)

	for i := 0; i < numCols; i++ {
		name := schema.Field(i).Name
		s, err := arrowChunksToSeries(name, table.Column(i).Data().Chunks())
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		series[i] = s
	}

	return NewDataFrame(series...)
}

// arrowChunksToSeries converts one or more Arrow arrays of the same type
// into a single Series.
func arrowChunksToSeries(name string, chunks []arrow.Array) (*Series, error) {
	total := 0
	for _, c := range chunks {
		total += c.Len()
	}
	valid := make([]bool, 0, total)

	var (
		f64  []float64
		f32  []float32
		i64  []int64
		i32  []int32
		u64  []uint64
		u32  []uint32
		bls  []bool
		strs []string
		dt   = Null
	)

	for _, chunk := range chunks {
		n := chunk.Len()
		for i := 0; i < n; i++ {
			valid = append(valid, chunk.IsValid(i))
		}

		switch a := chunk.(type) {
		case *array.Float64:
			dt = Float64
			for i := 0; i < n; i++ {
				f64 = append(f64, a.Value(i))
			}
		case *array.Float32:
			dt = Float32
			for i := 0; i < n; i++ {
				f32 = append(f32, a.Value(i))
			}
		case *array.Int64:
			dt = Int64
			for i := 0; i < n; i++ {
				i64 = append(i64, a.Value(i))
			}
		case *array.Int32:
			dt = Int32
			for i := 0; i < n; i++ {
				i32 = append(i32, a.Value(i))
			}
		case *array.Uint64:
			dt = UInt64
			for i := 0; i < n; i++ {
				u64 = append(u64, a.Value(i))
			}
		case *array.Uint32:
			dt = UInt32
			for i := 0; i < n; i++ {
				u32 = append(u32, a.Value(i))
			}
		case *array.Boolean:
			dt = Bool
			for i := 0; i < n; i++ {
				bls = append(bls, a.Value(i))
			}
		case *array.String:
			dt = String
			for i := 0; i < n; i++ {
				strs = append(strs, a.Value(i))
			}
		case *array.LargeString:
			dt = String
			for i := 0; i < n; i++ {
				strs = append(strs, a.Value(i))
			}
		case *array.Null:
		default:
			return nil, fmt.Errorf("%w: arrow array %T", ErrUnsupportedType, chunk)
		}
	}

	switch dt {
	case Float64:
		return newSeries(name, dt, f64, total, valid), nil
	case Float32:
		return newSeries(name, dt, f32, total, valid), nil
	case Int64:
		return newSeries(name, dt, i64, total, valid), nil
	case Int32:
		return newSeries(name, dt, i32, total, valid), nil
	case UInt64:
		return newSeries(name, dt, u64, total, valid), nil
	case UInt32:
		return newSeries(name, dt, u32, total, valid), nil
	case Bool:
		return newSeries(name, dt, bls, total, valid), nil
	case String:
		return newSeries(name, dt, strs, total, valid), nil
	default:
		return NewSeriesNull(name, total), nil
	}
}
