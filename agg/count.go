package agg

import (
	"time"

	frame "github.com/mweidwork/training-frames"
)

// Count returns a single-row table with one Int64 column per input column
// holding the number of missing cells in that column. Note that this counts
// missing cells, not present ones.
func (a *Aggregator) Count(df *frame.DataFrame) (out *frame.DataFrame, err error) {
	defer func(start time.Time) { a.observe(OpCount, df, start, err) }(time.Now())

	if err := checkShape(df); err != nil {
		return nil, err
	}

	names := df.Columns()
	counts := make(map[string]interface{}, len(names))
	schema := make(map[string]frame.DType, len(names))
	for _, col := range df.Series() {
		var missing int64
		for i := 0; i < df.Height(); i++ {
			if col.IsNull(i) {
				missing++
			}
		}
		counts[col.Name()] = missing
		schema[col.Name()] = frame.Int64
	}

	return frame.FromMap(counts, frame.FromMapOptions{Order: names, Schema: schema})
}
