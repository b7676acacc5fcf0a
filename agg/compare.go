package agg

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"

	frame "github.com/mweidwork/training-frames"
)

// naturalGreater reports whether a > b under the natural ordering of their
// type. a and b come from the same column and so share a Go type.
// Comparisons involving NaN are false.
func naturalGreater(a, b interface{}) bool {
	switch x := a.(type) {
	case float64:
		return x > b.(float64)
	case float32:
		return x > b.(float32)
	case int64:
		return x > b.(int64)
	case int32:
		return x > b.(int32)
	case uint64:
		return x > b.(uint64)
	case uint32:
		return x > b.(uint32)
	case string:
		return x > b.(string)
	case bool:
		return x && !b.(bool)
	default:
		return false
	}
}

// hexKey is the row-wise ordering key: the UTF-8 bytes of keyText(v), hex
// encoded. Keys compare lexicographically as strings.
func hexKey(v interface{}) string {
	return hex.EncodeToString([]byte(keyText(v)))
}

// keyText is the text a cell is ranked by in MaxHorizontal. It differs from
// frame.FormatValue for bools (True/False) and floats, which widen to
// float64 and print as reprFloat does. Everything else prints as
// FormatValue.
func keyText(v interface{}) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "True"
		}
		return "False"
	case float64:
		return reprFloat(x)
	case float32:
		return reprFloat(float64(x))
	default:
		return frame.FormatValue(v)
	}
}

// reprFloat prints the shortest round-trip digits of f. Decimal exponents in
// [-4, 16) use positional notation with at least one fractional digit
// (1000000.0, 0.0001); the rest use e-notation (1e+16, 1e-05). Non-finite
// values print as inf, -inf and nan.
func reprFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
