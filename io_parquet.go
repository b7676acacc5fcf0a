package frame

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"golang.org/x/sync/errgroup"
)

// ParquetReadOptions configures Parquet reading behavior
type ParquetReadOptions struct {
	Columns []string // Only read these columns (nil = all)
	MaxRows int      // Max rows to read (0 = unlimited)
}

// DefaultParquetReadOptions returns default Parquet reading options
func DefaultParquetReadOptions() ParquetReadOptions {
	return ParquetReadOptions{}
}

// ReadParquet reads a Parquet file into a DataFrame
func ReadParquet(path string, opts ...ParquetReadOptions) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return ReadParquetFromReader(f, stat.Size(), opts...)
}

// colBuilder accumulates the cells of one column while rows are read.
type colBuilder struct {
	dtype    DType
	valid    []bool
	f64Data  []float64
	f32Data  []float32
	i64Data  []int64
	i32Data  []int32
	boolData []bool
	strData  []string
}

func (b *colBuilder) appendNull() {
	b.valid = append(b.valid, false)
	switch b.dtype {
	case Float64:
		b.f64Data = append(b.f64Data, 0)
	case Float32:
		b.f32Data = append(b.f32Data, 0)
	case Int64:
		b.i64Data = append(b.i64Data, 0)
	case Int32:
		b.i32Data = append(b.i32Data, 0)
	case Bool:
		b.boolData = append(b.boolData, false)
	default:
		b.strData = append(b.strData, "")
	}
}

func (b *colBuilder) append(val parquet.Value) {
	if val.IsNull() {
		b.appendNull()
		return
	}
	b.valid = append(b.valid, true)
	switch b.dtype {
	case Float64:
		b.f64Data = append(b.f64Data, val.Double())
	case Float32:
		b.f32Data = append(b.f32Data, val.Float())
	case Int64:
		b.i64Data = append(b.i64Data, val.Int64())
	case Int32:
		b.i32Data = append(b.i32Data, val.Int32())
	case Bool:
		b.boolData = append(b.boolData, val.Boolean())
	default:
		b.strData = append(b.strData, string(val.ByteArray()))
	}
}

// merge appends the cells of other, which must share b's dtype.
func (b *colBuilder) merge(other *colBuilder) {
	b.valid = append(b.valid, other.valid...)
	b.f64Data = append(b.f64Data, other.f64Data...)
	b.f32Data = append(b.f32Data, other.f32Data...)
	b.i64Data = append(b.i64Data, other.i64Data...)
	b.i32Data = append(b.i32Data, other.i32Data...)
	b.boolData = append(b.boolData, other.boolData...)
	b.strData = append(b.strData, other.strData...)
}

// truncate drops everything past n cells.
func (b *colBuilder) truncate(n int) {
	if len(b.valid) <= n {
		return
	}
	b.valid = b.valid[:n]
	switch b.dtype {
	case Float64:
		b.f64Data = b.f64Data[:n]
	case Float32:
		b.f32Data = b.f32Data[:n]
	case Int64:
		b.i64Data = b.i64Data[:n]
	case Int32:
		b.i32Data = b.i32Data[:n]
	case Bool:
		b.boolData = b.boolData[:n]
	default:
		b.strData = b.strData[:n]
	}
}

func (b *colBuilder) series(name string) *Series {
	n := len(b.valid)
	switch b.dtype {
	case Float64:
		return newSeries(name, Float64, b.f64Data, n, b.valid)
	case Float32:
		return newSeries(name, Float32, b.f32Data, n, b.valid)
	case Int64:
		return newSeries(name, Int64, b.i64Data, n, b.valid)
	case Int32:
		return newSeries(name, Int32, b.i32Data, n, b.valid)
	case Bool:
		return newSeries(name, Bool, b.boolData, n, b.valid)
	default:
		return newSeries(name, String, b.strData, n, b.valid)
	}
}

// parquetProjection maps leaf column indices of the file onto output columns.
type parquetProjection struct {
	names   []string
	dtypes  []DType
	byIndex map[int]int // parquet leaf index -> output position
}

func (p parquetProjection) newBuilders() []colBuilder {
	builders := make([]colBuilder, len(p.names))
	for i := range builders {
		builders[i].dtype = p.dtypes[i]
	}
	return builders
}

// readRows reads every row of rows into builders, stopping once limit rows
// were read (limit <= 0 = unlimited).
func (p parquetProjection) readRows(rows parquet.Rows, builders []colBuilder, limit int) error {
	rowBuf := make([]parquet.Row, 1000)
	count := 0
	for {
		n, err := rows.ReadRows(rowBuf)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read rows: %w", err)
		}

		for _, row := range rowBuf[:n] {
			if limit > 0 && count >= limit {
				return nil
			}
			seen := make([]bool, len(builders))
			for _, val := range row {
				pos, ok := p.byIndex[val.Column()]
				if !ok || seen[pos] {
					continue
				}
				seen[pos] = true
				builders[pos].append(val)
			}
			for pos, ok := range seen {
				if !ok {
					builders[pos].appendNull()
				}
			}
			count++
		}

		if err != nil || n == 0 {
			return nil
		}
	}
}

// ReadParquetFromReader reads Parquet data from an io.ReaderAt into a DataFrame
func ReadParquetFromReader(r io.ReaderAt, size int64, opts ...ParquetReadOptions) (*DataFrame, error) {
	opt := DefaultParquetReadOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}

	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	proj, err := projectParquet(pf.Schema(), opt.Columns)
	if err != nil {
		return nil, err
	}

	rowGroups := pf.RowGroups()
	cfg := GetParallelConfig()

	var builders []colBuilder
	if cfg.shouldParallelize(int(pf.NumRows())) && len(rowGroups) > 1 {
		builders, err = readParquetParallel(rowGroups, proj, cfg.numWorkers())
	} else {
		builders = proj.newBuilders()
		for _, rg := range rowGroups {
			remaining := 0
			if opt.MaxRows > 0 {
				remaining = opt.MaxRows - rowCount(builders)
				if remaining <= 0 {
					break
				}
			}
			rows := rg.Rows()
			err = proj.readRows(rows, builders, remaining)
			rows.Close()
			if err != nil {
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}

	columns := make([]*Series, len(proj.names))
	for i, name := range proj.names {
		if opt.MaxRows > 0 {
			builders[i].truncate(opt.MaxRows)
		}
		columns[i] = builders[i].series(name)
	}

	return NewDataFrame(columns...)
}

func rowCount(builders []colBuilder) int {
	if len(builders) == 0 {
		return 0
	}
	return len(builders[0].valid)
}

// readParquetParallel reads row groups concurrently and concatenates them in
// row-group order.
func readParquetParallel(rowGroups []parquet.RowGroup, proj parquetProjection, workers int) ([]colBuilder, error) {
	parts := make([][]colBuilder, len(rowGroups))

	var g errgroup.Group
	g.SetLimit(workers)
	for idx := range rowGroups {
		g.Go(func() error {
			builders := proj.newBuilders()
			rows := rowGroups[idx].Rows()
			defer rows.Close()
			if err := proj.readRows(rows, builders, 0); err != nil {
				return fmt.Errorf("row group %d: %w", idx, err)
			}
			parts[idx] = builders
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := proj.newBuilders()
	for _, part := range parts {
		for i := range merged {
			merged[i].merge(&part[i])
		}
	}
	return merged, nil
}

// projectParquet resolves which top-level fields to read. Only flat schemas
// are supported: every selected field must be a leaf.
func projectParquet(schema *parquet.Schema, columns []string) (parquetProjection, error) {
	leafIndex := make(map[string]int)
	for i, path := range schema.Columns() {
		if len(path) == 1 {
			leafIndex[path[0]] = i
		}
	}
	fieldType := make(map[string]parquet.Type)
	var allNames []string
	for _, f := range schema.Fields() {
		if f.Leaf() {
			fieldType[f.Name()] = f.Type()
			allNames = append(allNames, f.Name())
		}
	}

	names := columns
	if len(names) == 0 {
		names = allNames
	}

	proj := parquetProjection{
		names:   make([]string, len(names)),
		dtypes:  make([]DType, len(names)),
		byIndex: make(map[int]int, len(names)),
	}
	for i, name := range names {
		idx, ok := leafIndex[name]
		if !ok {
			return proj, fmt.Errorf("parquet: %w: %s", ErrColumnNotFound, name)
		}
		proj.names[i] = name
		proj.dtypes[i] = parquetTypeToDType(fieldType[name])
		proj.byIndex[idx] = i
	}
	return proj, nil
}

func parquetTypeToDType(t parquet.Type) DType {
	if t == nil {
		return String
	}
	switch t.Kind() {
	case parquet.Boolean:
		return Bool
	case parquet.Int32:
		return Int32
	case parquet.Int64:
		return Int64
	case parquet.Float:
		return Float32
	case parquet.Double:
		return Float64
	default:
		return String
	}
}

// ============================================================================
// Parquet Writing
// ============================================================================

// ParquetWriteOptions configures Parquet writing behavior
type ParquetWriteOptions struct {
	Compression  string // "snappy", "gzip", "zstd", "none" (default "snappy")
	RowGroupSize int    // Rows per row group (default 1000000)
}

// DefaultParquetWriteOptions returns default Parquet writing options
func DefaultParquetWriteOptions() ParquetWriteOptions {
	return ParquetWriteOptions{
		Compression:  "snappy",
		RowGroupSize: 1000000,
	}
}

// WriteParquet writes a DataFrame to a Parquet file
func (df *DataFrame) WriteParquet(path string, opts ...ParquetWriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return df.WriteParquetToWriter(f, opts...)
}

// WriteParquetToWriter writes a DataFrame to an io.Writer. Every column is
// written as an optional leaf so missing cells survive the round trip.
// UInt columns are widened to signed Parquet integers and Null columns are
// written as all-null strings.
func (df *DataFrame) WriteParquetToWriter(w io.Writer, opts ...ParquetWriteOptions) error {
	opt := DefaultParquetWriteOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.RowGroupSize <= 0 {
		opt.RowGroupSize = DefaultParquetWriteOptions().RowGroupSize
	}

	if len(df.columns) == 0 {
		return fmt.Errorf("parquet: cannot write a DataFrame without columns")
	}

	group := make(parquet.Group, len(df.columns))
	for _, col := range df.columns {
		group[col.Name()] = parquet.Optional(dtypeToParquetNode(col.DType()))
	}
	schema := parquet.NewSchema("dataframe", group)

	// Group fields are ordered by name, so leaf indices differ from the
	// DataFrame column order.
	leaves := schema.Columns()
	ordered := make([]*Series, len(leaves))
	for i, path := range leaves {
		ordered[i] = df.ColumnByName(path[0])
	}

	writerOpts := []parquet.WriterOption{schema}
	switch opt.Compression {
	case "snappy":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Snappy))
	case "gzip":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Gzip))
	case "zstd":
		writerOpts = append(writerOpts, parquet.Compression(&parquet.Zstd))
	case "none", "":
	default:
		return fmt.Errorf("parquet: unknown compression %q", opt.Compression)
	}

	pw := parquet.NewWriter(w, writerOpts...)

	const batchSize = 1000
	rows := make([]parquet.Row, 0, batchSize)
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		if _, err := pw.WriteRows(rows); err != nil {
			return fmt.Errorf("failed to write rows: %w", err)
		}
		rows = rows[:0]
		return nil
	}

	for i := 0; i < df.height; i++ {
		row := make(parquet.Row, len(ordered))
		for j, col := range ordered {
			row[j] = toParquetValue(col.Get(i)).Level(0, definitionLevel(col, i), j)
		}
		rows = append(rows, row)

		if len(rows) >= batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
		if (i+1)%opt.RowGroupSize == 0 {
			if err := flush(); err != nil {
				return err
			}
			if err := pw.Flush(); err != nil {
				return fmt.Errorf("failed to flush row group: %w", err)
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	return pw.Close()
}

func definitionLevel(s *Series, i int) int {
	if s.IsNull(i) {
		return 0
	}
	return 1
}

func dtypeToParquetNode(dtype DType) parquet.Node {
	switch dtype {
	case Float64:
		return parquet.Leaf(parquet.DoubleType)
	case Float32:
		return parquet.Leaf(parquet.FloatType)
	case Int64, UInt64, UInt32:
		return parquet.Leaf(parquet.Int64Type)
	case Int32:
		return parquet.Leaf(parquet.Int32Type)
	case Bool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

func toParquetValue(v interface{}) parquet.Value {
	if v == nil {
		return parquet.NullValue()
	}

	switch x := v.(type) {
	case float64:
		return parquet.DoubleValue(x)
	case float32:
		return parquet.FloatValue(x)
	case int64:
		return parquet.Int64Value(x)
	case int32:
		return parquet.Int32Value(x)
	case uint64:
		return parquet.Int64Value(int64(x))
	case uint32:
		return parquet.Int64Value(int64(x))
	case bool:
		return parquet.BooleanValue(x)
	case string:
		return parquet.ByteArrayValue([]byte(x))
	}

	return parquet.ByteArrayValue([]byte(FormatValue(v)))
}
