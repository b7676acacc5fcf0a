package frame

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ============================================================================
// Value Kinds
// ============================================================================

// DTypeOf returns the dtype a single Go value maps to.
// nil maps to Null. Unsupported values return ok == false.
func DTypeOf(v interface{}) (dt DType, ok bool) {
	switch v.(type) {
	case nil:
		return Null, true
	case float64:
		return Float64, true
	case float32:
		return Float32, true
	case int, int8, int16, int64:
		return Int64, true
	case int32:
		return Int32, true
	case uint, uint8, uint16, uint64:
		return UInt64, true
	case uint32:
		return UInt32, true
	case bool:
		return Bool, true
	case string:
		return String, true
	default:
		return Null, false
	}
}

// inferDType folds the dtypes of all non-nil values into their supertype.
func inferDType(values []interface{}) (DType, error) {
	dt := Null
	for i, v := range values {
		vt, ok := DTypeOf(v)
		if !ok {
			return Null, fmt.Errorf("value %d (%T): %w", i, v, ErrUnsupportedType)
		}
		st, ok := Supertype(dt, vt)
		if !ok {
			return Null, fmt.Errorf("value %d: cannot mix %s and %s: %w", i, dt, vt, ErrTypeMismatch)
		}
		dt = st
	}
	return dt, nil
}

// toInterfaceSlice converts any slice value to []interface{}.
// ok is false when v is not a slice.
func toInterfaceSlice(v interface{}) (out []interface{}, ok bool) {
	if vs, isIface := v.([]interface{}); isIface {
		return vs, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out = make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ============================================================================
// Casts
// ============================================================================

func castFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	}
	if i, ok := castInt64(v); ok {
		return float64(i), true
	}
	if u, ok := castUint64(v); ok {
		return float64(u), true
	}
	return 0, false
}

func castInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint:
		if uint64(x) <= math.MaxInt64 {
			return int64(x), true
		}
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}

func castUint64(v interface{}) (uint64, bool) {
	switch x := v.(type) {
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	}
	if i, ok := castInt64(v); ok && i >= 0 {
		return uint64(i), true
	}
	return 0, false
}

// ============================================================================
// Formatting
// ============================================================================

// FormatValue renders a cell value as text. Integers print in base 10,
// floats in their shortest round-trip %g form with a trailing ".0" unless it
// already carries a point, an exponent or is NaN/Inf, bools as true/false and strings verbatim. nil renders
// as "null".
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
