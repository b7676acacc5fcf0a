package frame

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// ============================================================================
// Constructors
// ============================================================================

func TestNewSeriesTyped(t *testing.T) {
	tests := []struct {
		series *Series
		dtype  DType
		first  interface{}
	}{
		{NewSeriesFloat64("a", []float64{1.5, 2}), Float64, 1.5},
		{NewSeriesFloat32("a", []float32{1.5, 2}), Float32, float32(1.5)},
		{NewSeriesInt64("a", []int64{1, 2}), Int64, int64(1)},
		{NewSeriesInt32("a", []int32{1, 2}), Int32, int32(1)},
		{NewSeriesUInt64("a", []uint64{1, 2}), UInt64, uint64(1)},
		{NewSeriesUInt32("a", []uint32{1, 2}), UInt32, uint32(1)},
		{NewSeriesBool("a", []bool{true, false}), Bool, true},
		{NewSeriesString("a", []string{"x", "y"}), String, "x"},
	}

	for _, tc := range tests {
		s := tc.series
		if s.DType() != tc.dtype {
			t.Errorf("DType() = %s, want %s", s.DType(), tc.dtype)
		}
		if s.Len() != 2 {
			t.Errorf("%s: Len() = %d, want 2", tc.dtype, s.Len())
		}
		if s.HasNulls() {
			t.Errorf("%s: HasNulls() = true, want false", tc.dtype)
		}
		if got := s.Get(0); got != tc.first {
			t.Errorf("%s: Get(0) = %#v, want %#v", tc.dtype, got, tc.first)
		}
	}
}

func TestNewSeriesCopiesInput(t *testing.T) {
	data := []int64{1, 2, 3}
	s := NewSeriesInt64("a", data)
	data[0] = 100
	if s.Get(0) != int64(1) {
		t.Error("constructor should copy its input")
	}

	vals := s.Values().([]int64)
	vals[1] = 100
	if s.Get(1) != int64(2) {
		t.Error("Values() should return a copy")
	}
}

func TestNewSeriesWithNulls(t *testing.T) {
	s := NewSeriesFloat64WithNulls("a", []float64{1, 0, 3}, []bool{true, false, true})

	if s.NullCount() != 1 {
		t.Errorf("NullCount() = %d, want 1", s.NullCount())
	}
	if !s.IsNull(1) || s.IsValid(1) {
		t.Error("cell 1 should be missing")
	}
	if s.Get(1) != nil {
		t.Errorf("Get(1) = %v, want nil", s.Get(1))
	}
	if !reflect.DeepEqual(s.ToList(), []interface{}{1.0, nil, 3.0}) {
		t.Errorf("ToList() = %v", s.ToList())
	}

	// An all-true mask is dropped.
	all := NewSeriesStringWithNulls("b", []string{"x"}, []bool{true})
	if all.Validity() != nil {
		t.Error("all-valid mask should normalize to nil")
	}

	// A short mask treats the tail as valid.
	short := NewSeriesInt32WithNulls("c", []int32{1, 2, 3}, []bool{false})
	if short.NullCount() != 1 || short.IsNull(2) {
		t.Errorf("short mask: NullCount() = %d", short.NullCount())
	}
}

func TestNewSeriesNull(t *testing.T) {
	s := NewSeriesNull("n", 3)
	if s.DType() != Null || s.Len() != 3 || s.NullCount() != 3 {
		t.Errorf("NewSeriesNull = (%s, %d, %d)", s.DType(), s.Len(), s.NullCount())
	}
	if s.Values() != nil {
		t.Error("Null series has no values")
	}
	if NewSeriesNull("n", -1).Len() != 0 {
		t.Error("negative length should clamp to 0")
	}
}

func TestNewSeriesFromValues(t *testing.T) {
	s, err := NewSeriesFromValues("a", []interface{}{0, nil, nil, nil})
	if err != nil {
		t.Fatalf("NewSeriesFromValues failed: %v", err)
	}
	if s.DType() != Int64 || s.NullCount() != 3 {
		t.Errorf("got (%s, %d nulls), want (Int64, 3 nulls)", s.DType(), s.NullCount())
	}
	if s.Get(0) != int64(0) {
		t.Errorf("Get(0) = %#v, want int64(0)", s.Get(0))
	}

	f, err := NewSeriesFromValues("f", []interface{}{1, 2, nil}, Float64)
	if err != nil {
		t.Fatalf("explicit dtype failed: %v", err)
	}
	if !reflect.DeepEqual(f.ToList(), []interface{}{1.0, 2.0, nil}) {
		t.Errorf("ToList() = %v", f.ToList())
	}

	u, err := NewSeriesFromValues("u", []interface{}{uint32(1), 2}, UInt32)
	if err != nil || u.Get(1) != uint32(2) {
		t.Errorf("UInt32 cast = (%v, %v)", u, err)
	}
}

func TestNewSeriesFromValuesErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []interface{}
		dtype  []DType
		err    error
	}{
		{"mixed kinds", []interface{}{"a", 1}, nil, ErrTypeMismatch},
		{"string as int", []interface{}{"a"}, []DType{Int64}, ErrTypeMismatch},
		{"int32 overflow", []interface{}{int64(1) << 40}, []DType{Int32}, ErrTypeMismatch},
		{"negative unsigned", []interface{}{-1}, []DType{UInt64}, ErrTypeMismatch},
		{"value in null column", []interface{}{1}, []DType{Null}, ErrTypeMismatch},
		{"unsupported value", []interface{}{[]int{1}}, nil, ErrUnsupportedType},
		{"unknown dtype", []interface{}{1}, []DType{DType(99)}, ErrUnsupportedType},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSeriesFromValues("x", tc.values, tc.dtype...)
			if !errors.Is(err, tc.err) {
				t.Errorf("error = %v, want %v", err, tc.err)
			}
		})
	}
}

// ============================================================================
// Access
// ============================================================================

func TestSeriesOutOfRange(t *testing.T) {
	s := NewSeriesInt64("a", []int64{1})
	if s.Get(-1) != nil || s.Get(1) != nil {
		t.Error("out-of-range Get should return nil")
	}
	if s.IsValid(5) {
		t.Error("out-of-range IsValid should be false")
	}
}

func TestSeriesTypedAccessors(t *testing.T) {
	s := NewSeriesInt64("a", []int64{1, 2})
	if len(s.Int64()) != 2 {
		t.Errorf("Int64() length = %d, want 2", len(s.Int64()))
	}
	if s.Float64() != nil || s.Strings() != nil || s.Bool() != nil {
		t.Error("mismatched accessors should return nil")
	}
}

func TestSeriesRename(t *testing.T) {
	s := NewSeriesString("a", []string{"x"})
	r := s.Rename("b")
	if r.Name() != "b" || s.Name() != "a" {
		t.Errorf("Rename: got %q / %q", r.Name(), s.Name())
	}
	if r.Get(0) != "x" {
		t.Error("renamed series should keep its data")
	}
}

func TestSeriesString(t *testing.T) {
	s := NewSeriesInt64WithNulls("values", []int64{1, 0}, []bool{true, false})
	str := s.String()
	for _, want := range []string{"Series: 'values' (Int64)", "length: 2", "null"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() missing %q:\n%s", want, str)
		}
	}
}
