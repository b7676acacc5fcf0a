package frame

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func writeParquetBuffer(t *testing.T, df *DataFrame, opts ...ParquetWriteOptions) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	if err := df.WriteParquetToWriter(&buf, opts...); err != nil {
		t.Fatalf("failed to write Parquet: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParquetReadWrite(t *testing.T) {
	df, err := NewDataFrame(
		NewSeriesInt64("id", []int64{1, 2, 3, 4, 5}),
		NewSeriesFloat64WithNulls("value", []float64{1.1, 0, 3.3, 4.4, 5.5}, []bool{true, false, true, true, true}),
		NewSeriesBool("flag", []bool{true, false, true, false, true}),
		NewSeriesStringWithNulls("name", []string{"a", "b", "", "d", "e"}, []bool{true, true, false, true, true}),
		NewSeriesFloat32("f32", []float32{0.5, 1, 1.5, 2, 2.5}),
		NewSeriesInt32("i32", []int32{-1, -2, -3, -4, -5}),
	)
	if err != nil {
		t.Fatalf("failed to create DataFrame: %v", err)
	}

	parquetPath := filepath.Join(t.TempDir(), "test.parquet")
	if err := df.WriteParquet(parquetPath); err != nil {
		t.Fatalf("failed to write Parquet: %v", err)
	}
	if info, err := os.Stat(parquetPath); err != nil || info.Size() == 0 {
		t.Fatalf("parquet file missing or empty: %v", err)
	}

	df2, err := ReadParquet(parquetPath)
	if err != nil {
		t.Fatalf("failed to read Parquet: %v", err)
	}

	if df2.Height() != df.Height() || df2.Width() != df.Width() {
		t.Errorf("shape mismatch: got (%d, %d), want (%d, %d)", df2.Height(), df2.Width(), df.Height(), df.Width())
	}
	for _, name := range df.Columns() {
		want, got := df.ColumnByName(name), df2.ColumnByName(name)
		if got == nil {
			t.Errorf("column %s missing after round trip", name)
			continue
		}
		if got.DType() != want.DType() {
			t.Errorf("column %s dtype = %s, want %s", name, got.DType(), want.DType())
		}
		if diff := cmp.Diff(want.ToList(), got.ToList()); diff != "" {
			t.Errorf("column %s mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestParquetWidensUnsignedAndNull(t *testing.T) {
	df, _ := NewDataFrame(
		NewSeriesUInt32("u", []uint32{1, 2}),
		NewSeriesNull("n", 2),
	)

	r := writeParquetBuffer(t, df)
	df2, err := ReadParquetFromReader(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("failed to read Parquet: %v", err)
	}
	if got := df2.ColumnByName("u"); got.DType() != Int64 || got.Get(1) != int64(2) {
		t.Errorf("u = (%s, %v), want Int64 values", got.DType(), got.ToList())
	}
	if got := df2.ColumnByName("n"); got.NullCount() != 2 {
		t.Errorf("n NullCount() = %d, want 2", got.NullCount())
	}
}

func TestParquetColumnSelection(t *testing.T) {
	df, _ := NewDataFrame(
		NewSeriesInt64("c", []int64{7, 8, 9}),
		NewSeriesInt64("a", []int64{1, 2, 3}),
		NewSeriesInt64("b", []int64{4, 5, 6}),
	)
	r := writeParquetBuffer(t, df)

	df2, err := ReadParquetFromReader(r, int64(r.Len()), ParquetReadOptions{Columns: []string{"c", "a"}})
	if err != nil {
		t.Fatalf("failed to read Parquet: %v", err)
	}
	if !reflect.DeepEqual(df2.Columns(), []string{"c", "a"}) {
		t.Errorf("Columns() = %v, want [c a]", df2.Columns())
	}
	if !reflect.DeepEqual(df2.ColumnByName("c").Int64(), []int64{7, 8, 9}) {
		t.Errorf("c = %v", df2.ColumnByName("c").Int64())
	}

	_, err = ReadParquetFromReader(r, int64(r.Len()), ParquetReadOptions{Columns: []string{"zzz"}})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestParquetMaxRows(t *testing.T) {
	df, _ := NewDataFrame(NewSeriesInt64("x", []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}))
	r := writeParquetBuffer(t, df, ParquetWriteOptions{Compression: "none", RowGroupSize: 3})

	df2, err := ReadParquetFromReader(r, int64(r.Len()), ParquetReadOptions{MaxRows: 5})
	if err != nil {
		t.Fatalf("failed to read Parquet: %v", err)
	}
	if !reflect.DeepEqual(df2.Column(0).Int64(), []int64{1, 2, 3, 4, 5}) {
		t.Errorf("x = %v, want first 5 rows", df2.Column(0).Int64())
	}
}

func TestParquetParallelRowGroups(t *testing.T) {
	defer goleak.VerifyNone(t)

	original := GetParallelConfig()
	defer SetParallelConfig(original)
	SetParallelConfig(&ParallelConfig{MinRowsForParallel: 1, MaxWorkers: 2, Enabled: true})

	n := 250
	ids := make([]int64, n)
	valid := make([]bool, n)
	for i := range ids {
		ids[i] = int64(i)
		valid[i] = i%7 != 0
	}
	df, _ := NewDataFrame(NewSeriesInt64WithNulls("id", ids, valid))
	r := writeParquetBuffer(t, df, ParquetWriteOptions{Compression: "zstd", RowGroupSize: 40})

	df2, err := ReadParquetFromReader(r, int64(r.Len()))
	if err != nil {
		t.Fatalf("failed to read Parquet: %v", err)
	}
	if diff := cmp.Diff(df.Column(0).ToList(), df2.Column(0).ToList()); diff != "" {
		t.Errorf("parallel read changed rows (-want +got):\n%s", diff)
	}

	limited, err := ReadParquetFromReader(r, int64(r.Len()), ParquetReadOptions{MaxRows: 45})
	if err != nil {
		t.Fatalf("failed to read Parquet: %v", err)
	}
	if limited.Height() != 45 {
		t.Errorf("Height() = %d, want 45", limited.Height())
	}
}

func TestParquetWriteErrors(t *testing.T) {
	empty, _ := NewDataFrame()
	var buf bytes.Buffer
	if err := empty.WriteParquetToWriter(&buf); err == nil {
		t.Error("expected error writing a DataFrame without columns")
	}

	df, _ := NewDataFrame(NewSeriesInt64("x", []int64{1}))
	if err := df.WriteParquetToWriter(&buf, ParquetWriteOptions{Compression: "lzma"}); err == nil {
		t.Error("expected error for unknown compression")
	}

	if _, err := ReadParquet(filepath.Join(t.TempDir(), "missing.parquet")); err == nil {
		t.Error("expected error for missing file")
	}
}
