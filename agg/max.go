package agg

import (
	"time"

	frame "github.com/mweidwork/training-frames"
)

// MaxValueColumn names the Series returned by MaxHorizontal.
const MaxValueColumn = "max_value"

// Max returns a single-row table holding the largest non-missing value of
// every column under the column's natural ordering: numeric for numbers,
// lexicographic for strings, false < true for bools. The first maximum wins,
// so a leading NaN is kept and later NaNs are ignored. A column without any
// value yields a missing cell. Result dtypes follow the retained values.
func (a *Aggregator) Max(df *frame.DataFrame) (out *frame.DataFrame, err error) {
	defer func(start time.Time) { a.observe(OpMax, df, start, err) }(time.Now())

	if err := checkShape(df); err != nil {
		return nil, err
	}

	names := df.Columns()
	maxima := make(map[string]interface{}, len(names))
	for _, col := range df.Series() {
		var best interface{}
		for i := 0; i < df.Height(); i++ {
			v := col.Get(i)
			if v == nil {
				continue
			}
			if best == nil || naturalGreater(v, best) {
				best = v
			}
		}
		maxima[col.Name()] = best
	}

	return frame.FromMap(maxima, frame.FromMapOptions{Order: names})
}

// MaxHorizontal returns, for every row, the non-missing cell whose text form
// has the greatest hex-encoded UTF-8 representation. This is a byte-wise
// string comparison, not a numeric one: 9 beats 10, "a" beats True and 19.0
// beats 1000000.0. Ties keep the leftmost cell and a row without values
// yields a missing cell.
//
// The Series is named max_value. Its dtype is the supertype of the input
// dtypes (see frame.Supertype); a mix without one produces a String series
// holding the text forms the picks were ranked by.
func (a *Aggregator) MaxHorizontal(df *frame.DataFrame) (out *frame.Series, err error) {
	defer func(start time.Time) { a.observe(OpMaxHorizontal, df, start, err) }(time.Now())

	if err := checkShape(df); err != nil {
		return nil, err
	}

	dtype := horizontalDType(df)
	cols := df.Series()
	values := make([]interface{}, df.Height())
	for i := range values {
		var (
			best    interface{}
			bestKey string
		)
		for _, col := range cols {
			v := col.Get(i)
			if v == nil {
				continue
			}
			key := hexKey(v)
			if best == nil || key > bestKey {
				best, bestKey = v, key
			}
		}
		if best != nil && dtype == frame.String {
			best = keyText(best)
		}
		values[i] = best
	}

	return frame.NewSeriesFromValues(MaxValueColumn, values, dtype)
}

// horizontalDType folds the column dtypes into the dtype of a row-wise
// result. Null columns contribute nothing.
func horizontalDType(df *frame.DataFrame) frame.DType {
	dt := frame.Null
	for _, t := range df.DTypes() {
		st, ok := frame.Supertype(dt, t)
		if !ok {
			return frame.String
		}
		dt = st
	}
	return dt
}
