package agg

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	frame "github.com/mweidwork/training-frames"
)

// MeanColumn names the Series returned by MeanHorizontal.
const MeanColumn = "mean"

// Mean returns a single-row table with one Float64 column per input column
// holding the arithmetic mean of its non-missing cells, or a missing cell
// when the column has none.
func (a *Aggregator) Mean(df *frame.DataFrame) (out *frame.DataFrame, err error) {
	defer func(start time.Time) { a.observe(OpMean, df, start, err) }(time.Now())

	if err := checkShape(df); err != nil {
		return nil, err
	}

	names := df.Columns()
	means := make(map[string]interface{}, len(names))
	schema := make(map[string]frame.DType, len(names))
	for _, col := range df.Series() {
		var (
			total float64
			count int
		)
		for i := 0; i < df.Height(); i++ {
			v := col.Get(i)
			if v == nil {
				continue
			}
			f, err := toFloat(v)
			if err != nil {
				return nil, &TypeConversionError{Column: col.Name(), Row: i, Value: v, Err: err}
			}
			total += f
			count++
		}

		schema[col.Name()] = frame.Float64
		if count > 0 {
			means[col.Name()] = total / float64(count)
		} else {
			means[col.Name()] = nil
		}
	}

	return frame.FromMap(means, frame.FromMapOptions{Order: names, Schema: schema})
}

// MeanHorizontal returns a Float64 Series named mean holding, for every row,
// the arithmetic mean of its non-missing cells, or a missing cell when the
// row has none.
func (a *Aggregator) MeanHorizontal(df *frame.DataFrame) (out *frame.Series, err error) {
	defer func(start time.Time) { a.observe(OpMeanHorizontal, df, start, err) }(time.Now())

	if err := checkShape(df); err != nil {
		return nil, err
	}

	cols := df.Series()
	means := make([]float64, df.Height())
	valid := make([]bool, df.Height())
	for i := range means {
		var (
			total float64
			count int
		)
		for _, col := range cols {
			v := col.Get(i)
			if v == nil {
				continue
			}
			f, err := toFloat(v)
			if err != nil {
				return nil, &TypeConversionError{Column: col.Name(), Row: i, Value: v, Err: err}
			}
			total += f
			count++
		}
		if count > 0 {
			means[i] = total / float64(count)
			valid[i] = true
		}
	}

	return frame.NewSeriesFloat64WithNulls(MeanColumn, means, valid), nil
}

// decimalText matches the numeric text toFloat accepts: an optional sign,
// then decimal digits (single underscores may separate digits) with an
// optional fraction and exponent, or inf, infinity or nan in any case.
var decimalText = regexp.MustCompile(`^[+-]?(?:(?i:inf|infinity|nan)|(?:\d(?:_?\d)*(?:\.(?:\d(?:_?\d)*)?)?|\.\d(?:_?\d)*)(?:[eE][+-]?\d(?:_?\d)*)?)$`)

// toFloat coerces a cell to float64. Numbers convert directly, bools become
// 1 or 0 and strings are parsed as decimal floats after trimming spaces.
func toFloat(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		text := strings.TrimSpace(x)
		if !decimalText.MatchString(text) {
			return 0, fmt.Errorf("invalid decimal %q", x)
		}
		if strings.EqualFold(strings.TrimLeft(text, "+-"), "nan") {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
		if err != nil {
			return 0, err
		}
		return f, nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}
