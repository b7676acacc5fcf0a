package frame

import (
	"fmt"
)

// Series is a named, typed column. Values live in a typed Go slice; missing
// cells are tracked in a separate validity mask so that no value of the
// column's type ever doubles as a missing marker.
type Series struct {
	name   string
	dtype  DType
	data   interface{} // []float64, []float32, []int64, []int32, []uint64, []uint32, []bool, []string; nil for Null
	valid  []bool      // nil when every cell is valid
	length int
}

// ============================================================================
// Creation
// ============================================================================

// NewSeriesFloat64 creates a Float64 Series from a Go slice.
// The data is copied.
func NewSeriesFloat64(name string, data []float64) *Series {
	return newSeries(name, Float64, append([]float64{}, data...), len(data), nil)
}

// NewSeriesFloat32 creates a Float32 Series from a Go slice.
func NewSeriesFloat32(name string, data []float32) *Series {
	return newSeries(name, Float32, append([]float32{}, data...), len(data), nil)
}

// NewSeriesInt64 creates an Int64 Series from a Go slice.
func NewSeriesInt64(name string, data []int64) *Series {
	return newSeries(name, Int64, append([]int64{}, data...), len(data), nil)
}

// NewSeriesInt32 creates an Int32 Series from a Go slice.
func NewSeriesInt32(name string, data []int32) *Series {
	return newSeries(name, Int32, append([]int32{}, data...), len(data), nil)
}

// NewSeriesUInt64 creates a UInt64 Series from a Go slice.
func NewSeriesUInt64(name string, data []uint64) *Series {
	return newSeries(name, UInt64, append([]uint64{}, data...), len(data), nil)
}

// NewSeriesUInt32 creates a UInt32 Series from a Go slice.
func NewSeriesUInt32(name string, data []uint32) *Series {
	return newSeries(name, UInt32, append([]uint32{}, data...), len(data), nil)
}

// NewSeriesBool creates a Bool Series from a Go slice.
func NewSeriesBool(name string, data []bool) *Series {
	return newSeries(name, Bool, append([]bool{}, data...), len(data), nil)
}

// NewSeriesString creates a String Series from a Go slice.
func NewSeriesString(name string, data []string) *Series {
	return newSeries(name, String, append([]string{}, data...), len(data), nil)
}

// NewSeriesFloat64WithNulls creates a Float64 Series with null values.
// The valid slice indicates which values are valid (true) vs null (false).
// Positions past the end of valid are treated as valid.
func NewSeriesFloat64WithNulls(name string, data []float64, valid []bool) *Series {
	return newSeries(name, Float64, append([]float64{}, data...), len(data), valid)
}

// NewSeriesFloat32WithNulls creates a Float32 Series with null values.
func NewSeriesFloat32WithNulls(name string, data []float32, valid []bool) *Series {
	return newSeries(name, Float32, append([]float32{}, data...), len(data), valid)
}

// NewSeriesInt64WithNulls creates an Int64 Series with null values.
func NewSeriesInt64WithNulls(name string, data []int64, valid []bool) *Series {
	return newSeries(name, Int64, append([]int64{}, data...), len(data), valid)
}

// NewSeriesInt32WithNulls creates an Int32 Series with null values.
func NewSeriesInt32WithNulls(name string, data []int32, valid []bool) *Series {
	return newSeries(name, Int32, append([]int32{}, data...), len(data), valid)
}

// NewSeriesUInt64WithNulls creates a UInt64 Series with null values.
func NewSeriesUInt64WithNulls(name string, data []uint64, valid []bool) *Series {
	return newSeries(name, UInt64, append([]uint64{}, data...), len(data), valid)
}

// NewSeriesUInt32WithNulls creates a UInt32 Series with null values.
func NewSeriesUInt32WithNulls(name string, data []uint32, valid []bool) *Series {
	return newSeries(name, UInt32, append([]uint32{}, data...), len(data), valid)
}

// NewSeriesBoolWithNulls creates a Bool Series with null values.
func NewSeriesBoolWithNulls(name string, data []bool, valid []bool) *Series {
	return newSeries(name, Bool, append([]bool{}, data...), len(data), valid)
}

// NewSeriesStringWithNulls creates a String Series with null values.
func NewSeriesStringWithNulls(name string, data []string, valid []bool) *Series {
	return newSeries(name, String, append([]string{}, data...), len(data), valid)
}

// NewSeriesNull creates a Series of n missing cells with the Null dtype.
func NewSeriesNull(name string, n int) *Series {
	if n < 0 {
		n = 0
	}
	return &Series{
		name:   name,
		dtype:  Null,
		valid:  make([]bool, n),
		length: n,
	}
}

// NewSeriesFromValues builds a Series from boxed Go values. nil entries
// become missing cells. Without an explicit dtype the type is inferred from
// the non-nil values; with one, every non-nil value must be castable to it.
func NewSeriesFromValues(name string, values []interface{}, dtype ...DType) (*Series, error) {
	var dt DType
	if len(dtype) > 0 {
		dt = dtype[0]
	} else {
		inferred, err := inferDType(values)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		dt = inferred
	}

	n := len(values)
	valid := make([]bool, n)
	for i, v := range values {
		valid[i] = v != nil
	}

	bad := func(i int) error {
		return fmt.Errorf("column %s: value %d (%T) is not %s: %w", name, i, values[i], dt, ErrTypeMismatch)
	}

	switch dt {
	case Float64:
		data := make([]float64, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			f, ok := castFloat64(v)
			if !ok {
				return nil, bad(i)
			}
			data[i] = f
		}
		return newSeries(name, dt, data, n, valid), nil

	case Float32:
		data := make([]float32, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			f, ok := castFloat64(v)
			if !ok {
				return nil, bad(i)
			}
			data[i] = float32(f)
		}
		return newSeries(name, dt, data, n, valid), nil

	case Int64:
		data := make([]int64, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			x, ok := castInt64(v)
			if !ok {
				return nil, bad(i)
			}
			data[i] = x
		}
		return newSeries(name, dt, data, n, valid), nil

	case Int32:
		data := make([]int32, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			x, ok := castInt64(v)
			if !ok || int64(int32(x)) != x {
				return nil, bad(i)
			}
			data[i] = int32(x)
		}
		return newSeries(name, dt, data, n, valid), nil

	case UInt64:
		data := make([]uint64, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			x, ok := castUint64(v)
			if !ok {
				return nil, bad(i)
			}
			data[i] = x
		}
		return newSeries(name, dt, data, n, valid), nil

	case UInt32:
		data := make([]uint32, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			x, ok := castUint64(v)
			if !ok || uint64(uint32(x)) != x {
				return nil, bad(i)
			}
			data[i] = uint32(x)
		}
		return newSeries(name, dt, data, n, valid), nil

	case Bool:
		data := make([]bool, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			b, ok := v.(bool)
			if !ok {
				return nil, bad(i)
			}
			data[i] = b
		}
		return newSeries(name, dt, data, n, valid), nil

	case String:
		data := make([]string, n)
		for i, v := range values {
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				return nil, bad(i)
			}
			data[i] = s
		}
		return newSeries(name, dt, data, n, valid), nil

	case Null:
		for i, v := range values {
			if v != nil {
				return nil, bad(i)
			}
		}
		return NewSeriesNull(name, n), nil

	default:
		return nil, fmt.Errorf("column %s: %w: %s", name, ErrUnsupportedType, dt)
	}
}

// newSeries takes ownership of data. valid is copied and dropped when it
// marks every cell valid.
func newSeries(name string, dtype DType, data interface{}, length int, valid []bool) *Series {
	return &Series{
		name:   name,
		dtype:  dtype,
		data:   data,
		valid:  normalizeValidity(valid, length),
		length: length,
	}
}

func normalizeValidity(valid []bool, n int) []bool {
	if valid == nil {
		return nil
	}
	out := make([]bool, n)
	allValid := true
	for i := range out {
		if i < len(valid) {
			out[i] = valid[i]
		} else {
			out[i] = true
		}
		if !out[i] {
			allValid = false
		}
	}
	if allValid {
		return nil
	}
	return out
}

// ============================================================================
// Properties
// ============================================================================

// Name returns the series name
func (s *Series) Name() string {
	return s.name
}

// DType returns the data type
func (s *Series) DType() DType {
	return s.dtype
}

// Len returns the number of elements
func (s *Series) Len() int {
	return s.length
}

// NullCount returns the number of missing cells.
func (s *Series) NullCount() int {
	if s.valid == nil {
		return 0
	}
	n := 0
	for _, ok := range s.valid {
		if !ok {
			n++
		}
	}
	return n
}

// HasNulls returns true if the series contains at least one missing cell.
func (s *Series) HasNulls() bool {
	return s.NullCount() > 0
}

// IsValid returns true if the cell at index holds a value.
// Out-of-range indices are reported as not valid.
func (s *Series) IsValid(index int) bool {
	if index < 0 || index >= s.length {
		return false
	}
	return s.valid == nil || s.valid[index]
}

// IsNull returns true if the cell at index is missing.
func (s *Series) IsNull(index int) bool {
	return !s.IsValid(index)
}

// Validity returns a copy of the validity mask. A nil result means every
// cell is valid.
func (s *Series) Validity() []bool {
	if s.valid == nil {
		return nil
	}
	return append([]bool{}, s.valid...)
}

// ============================================================================
// Access
// ============================================================================

// Get returns the value at index boxed in an interface, or nil when the
// cell is missing or the index is out of range.
func (s *Series) Get(index int) interface{} {
	if !s.IsValid(index) {
		return nil
	}
	switch d := s.data.(type) {
	case []float64:
		return d[index]
	case []float32:
		return d[index]
	case []int64:
		return d[index]
	case []int32:
		return d[index]
	case []uint64:
		return d[index]
	case []uint32:
		return d[index]
	case []bool:
		return d[index]
	case []string:
		return d[index]
	default:
		return nil
	}
}

// ToList returns every cell boxed, with nil for missing cells.
func (s *Series) ToList() []interface{} {
	out := make([]interface{}, s.length)
	for i := range out {
		out[i] = s.Get(i)
	}
	return out
}

// Values returns a copy of the underlying typed slice. Missing cells hold
// the zero value of the type; use IsNull to tell them apart.
func (s *Series) Values() interface{} {
	switch d := s.data.(type) {
	case []float64:
		return append([]float64{}, d...)
	case []float32:
		return append([]float32{}, d...)
	case []int64:
		return append([]int64{}, d...)
	case []int32:
		return append([]int32{}, d...)
	case []uint64:
		return append([]uint64{}, d...)
	case []uint32:
		return append([]uint32{}, d...)
	case []bool:
		return append([]bool{}, d...)
	case []string:
		return append([]string{}, d...)
	default:
		return nil
	}
}

// Float64 returns the data as []float64, or nil if the dtype differs.
func (s *Series) Float64() []float64 {
	d, _ := s.data.([]float64)
	return d
}

// Float32 returns the data as []float32, or nil if the dtype differs.
func (s *Series) Float32() []float32 {
	d, _ := s.data.([]float32)
	return d
}

// Int64 returns the data as []int64, or nil if the dtype differs.
func (s *Series) Int64() []int64 {
	d, _ := s.data.([]int64)
	return d
}

// Int32 returns the data as []int32, or nil if the dtype differs.
func (s *Series) Int32() []int32 {
	d, _ := s.data.([]int32)
	return d
}

// UInt64 returns the data as []uint64, or nil if the dtype differs.
func (s *Series) UInt64() []uint64 {
	d, _ := s.data.([]uint64)
	return d
}

// UInt32 returns the data as []uint32, or nil if the dtype differs.
func (s *Series) UInt32() []uint32 {
	d, _ := s.data.([]uint32)
	return d
}

// Bool returns the data as []bool, or nil if the dtype differs.
func (s *Series) Bool() []bool {
	d, _ := s.data.([]bool)
	return d
}

// Strings returns the data as []string, or nil if the dtype differs.
func (s *Series) Strings() []string {
	d, _ := s.data.([]string)
	return d
}

// Rename returns a series sharing this series' data under a new name.
func (s *Series) Rename(name string) *Series {
	out := *s
	out.name = name
	return &out
}

// String returns a formatted table representation of the Series.
func (s *Series) String() string {
	return SeriesStringWithConfig(s, GetDisplayConfig())
}
