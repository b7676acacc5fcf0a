package frame

import (
	"errors"
	"strings"
	"testing"
)

// ============================================================================
// DType Tests
// ============================================================================

func TestDType_String(t *testing.T) {
	tests := []struct {
		dtype    DType
		expected string
	}{
		{Float64, "Float64"},
		{Float32, "Float32"},
		{Int64, "Int64"},
		{Int32, "Int32"},
		{UInt64, "UInt64"},
		{UInt32, "UInt32"},
		{Bool, "Bool"},
		{String, "String"},
		{Null, "Null"},
	}

	for _, tc := range tests {
		if got := tc.dtype.String(); got != tc.expected {
			t.Errorf("DType(%d).String() = %q, want %q", tc.dtype, got, tc.expected)
		}
	}

	if got := DType(200).String(); !strings.HasPrefix(got, "Unknown") {
		t.Errorf("unknown DType.String() = %q, want prefix 'Unknown'", got)
	}
}

func TestDType_Predicates(t *testing.T) {
	tests := []struct {
		dtype                            DType
		numeric, float, integer, signed bool
		size                             int
	}{
		{Float64, true, true, false, true, 8},
		{Float32, true, true, false, true, 4},
		{Int64, true, false, true, true, 8},
		{Int32, true, false, true, true, 4},
		{UInt64, true, false, true, false, 8},
		{UInt32, true, false, true, false, 4},
		{Bool, false, false, false, false, 1},
		{String, false, false, false, false, -1},
		{Null, false, false, false, false, 0},
	}

	for _, tc := range tests {
		if got := tc.dtype.IsNumeric(); got != tc.numeric {
			t.Errorf("%s.IsNumeric() = %v, want %v", tc.dtype, got, tc.numeric)
		}
		if got := tc.dtype.IsFloat(); got != tc.float {
			t.Errorf("%s.IsFloat() = %v, want %v", tc.dtype, got, tc.float)
		}
		if got := tc.dtype.IsInteger(); got != tc.integer {
			t.Errorf("%s.IsInteger() = %v, want %v", tc.dtype, got, tc.integer)
		}
		if got := tc.dtype.IsSigned(); got != tc.signed {
			t.Errorf("%s.IsSigned() = %v, want %v", tc.dtype, got, tc.signed)
		}
		if got := tc.dtype.Size(); got != tc.size {
			t.Errorf("%s.Size() = %d, want %d", tc.dtype, got, tc.size)
		}
	}
}

func TestSupertype(t *testing.T) {
	tests := []struct {
		a, b DType
		want DType
		ok   bool
	}{
		{Int64, Int64, Int64, true},
		{String, String, String, true},
		{Null, Bool, Bool, true},
		{Float32, Null, Float32, true},
		{Int32, Int64, Int64, true},
		{UInt32, Int32, Int64, true},
		{UInt32, UInt64, UInt64, true},
		{Int64, UInt64, Float64, true},
		{Int32, UInt64, Float64, true},
		{UInt32, Int64, Int64, true},
		{UInt64, Float32, Float64, true},
		{Int64, Float64, Float64, true},
		{Int64, String, Null, false},
		{Bool, Float64, Null, false},
		{Bool, String, Null, false},
	}

	for _, tc := range tests {
		got, ok := Supertype(tc.a, tc.b)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("Supertype(%s, %s) = (%s, %v), want (%s, %v)", tc.a, tc.b, got, ok, tc.want, tc.ok)
		}
		// Symmetric.
		back, backOK := Supertype(tc.b, tc.a)
		if back != got || backOK != ok {
			t.Errorf("Supertype(%s, %s) is not symmetric", tc.a, tc.b)
		}
	}
}

// ============================================================================
// Schema Tests
// ============================================================================

func TestNewSchema(t *testing.T) {
	schema, err := NewSchema([]string{"a", "b", "c"}, []DType{Float64, Int64, String})
	if err != nil {
		t.Fatalf("NewSchema failed: %v", err)
	}
	if schema.Len() != 3 {
		t.Errorf("Schema.Len() = %d, want 3", schema.Len())
	}

	_, err = NewSchema([]string{"a", "b"}, []DType{Float64, Int64, String})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	_, err = NewSchema([]string{"a", "b", "a"}, []DType{Float64, Int64, String})
	if !errors.Is(err, ErrDuplicateColumn) {
		t.Errorf("expected ErrDuplicateColumn, got %v", err)
	}
}

func TestSchema_Copies(t *testing.T) {
	schema, _ := NewSchema([]string{"a", "b"}, []DType{Float64, Int64})

	names := schema.Names()
	names[0] = "modified"
	if schema.Names()[0] != "a" {
		t.Error("Names() should return a copy")
	}

	dtypes := schema.DTypes()
	dtypes[0] = Bool
	if schema.DTypes()[0] != Float64 {
		t.Error("DTypes() should return a copy")
	}
}

func TestSchema_Lookup(t *testing.T) {
	schema, _ := NewSchema([]string{"a", "b", "c"}, []DType{Float64, Int64, String})

	if dt, ok := schema.GetDType("b"); !ok || dt != Int64 {
		t.Errorf("GetDType('b') = (%v, %v), want (Int64, true)", dt, ok)
	}
	if dt, ok := schema.GetDType("x"); ok || dt != Null {
		t.Errorf("GetDType('x') = (%v, %v), want (Null, false)", dt, ok)
	}
	if idx, ok := schema.GetIndex("c"); !ok || idx != 2 {
		t.Errorf("GetIndex('c') = (%d, %v), want (2, true)", idx, ok)
	}
	if idx, ok := schema.GetIndex("x"); ok || idx != -1 {
		t.Errorf("GetIndex('x') = (%d, %v), want (-1, false)", idx, ok)
	}

	m := schema.Map()
	if len(m) != 3 || m["a"] != Float64 || m["c"] != String {
		t.Errorf("Map() = %v", m)
	}
}

func TestSchema_String(t *testing.T) {
	schema, _ := NewSchema([]string{"a", "b"}, []DType{Float64, Int64})

	str := schema.String()
	for _, want := range []string{"Schema{", "a: Float64", "b: Int64"} {
		if !strings.Contains(str, want) {
			t.Errorf("Schema.String() = %q, missing %q", str, want)
		}
	}
}
