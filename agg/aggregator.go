// Package agg computes row-scanning reductions over a frame.DataFrame: a
// missing-cell count, column and row maxima, and column and row means.
//
// Every reduction validates the table shape, performs one full scan and
// builds a new result; the input is never modified. A failed reduction
// returns no partial result.
package agg

import (
	"time"

	"go.uber.org/zap"

	frame "github.com/mweidwork/training-frames"
)

// Reduction names, as used in logs and by the CLI.
const (
	OpCount          = "count"
	OpMax            = "max"
	OpMaxHorizontal  = "max_horizontal"
	OpMean           = "mean"
	OpMeanHorizontal = "mean_horizontal"
)

// Ops lists every reduction name in a stable order.
var Ops = []string{OpCount, OpMax, OpMaxHorizontal, OpMean, OpMeanHorizontal}

// ValidOp reports whether op names a reduction.
func ValidOp(op string) bool {
	for _, o := range Ops {
		if o == op {
			return true
		}
	}
	return false
}

// Aggregator runs reductions. It holds no state besides its logger and is
// safe for concurrent use.
type Aggregator struct {
	logger *zap.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger reductions report to. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// New returns an Aggregator. Without options it logs nothing.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAggregator = New()

// Count returns the number of missing cells per column. See Aggregator.Count.
func Count(df *frame.DataFrame) (*frame.DataFrame, error) { return defaultAggregator.Count(df) }

// Max returns the maximum per column. See Aggregator.Max.
func Max(df *frame.DataFrame) (*frame.DataFrame, error) { return defaultAggregator.Max(df) }

// MaxHorizontal returns the maximum per row. See Aggregator.MaxHorizontal.
func MaxHorizontal(df *frame.DataFrame) (*frame.Series, error) {
	return defaultAggregator.MaxHorizontal(df)
}

// Mean returns the mean per column. See Aggregator.Mean.
func Mean(df *frame.DataFrame) (*frame.DataFrame, error) { return defaultAggregator.Mean(df) }

// MeanHorizontal returns the mean per row. See Aggregator.MeanHorizontal.
func MeanHorizontal(df *frame.DataFrame) (*frame.Series, error) {
	return defaultAggregator.MeanHorizontal(df)
}

// Run dispatches to the reduction named op. Per-column reductions come back
// as a DataFrame, per-row reductions as a single-column DataFrame holding
// the result Series.
func (a *Aggregator) Run(op string, df *frame.DataFrame) (*frame.DataFrame, error) {
	switch op {
	case OpCount:
		return a.Count(df)
	case OpMax:
		return a.Max(df)
	case OpMean:
		return a.Mean(df)
	case OpMaxHorizontal, OpMeanHorizontal:
		var (
			s   *frame.Series
			err error
		)
		if op == OpMaxHorizontal {
			s, err = a.MaxHorizontal(df)
		} else {
			s, err = a.MeanHorizontal(df)
		}
		if err != nil {
			return nil, err
		}
		return frame.NewDataFrame(s)
	default:
		return nil, &UnknownOpError{Op: op}
	}
}

// UnknownOpError occurs when Run is asked for a reduction that does not exist.
type UnknownOpError struct{ Op string }

// Error returns a textual representation of this UnknownOpError
func (e *UnknownOpError) Error() string {
	return "agg: unknown reduction " + e.Op
}

// observe logs the outcome of one reduction.
func (a *Aggregator) observe(op string, df *frame.DataFrame, start time.Time, err error) {
	if !a.logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	fields := []zap.Field{zap.String("op", op), zap.Duration("elapsed", time.Since(start))}
	if df != nil {
		fields = append(fields, zap.Int("rows", df.Height()), zap.Int("columns", df.Width()))
	}
	if err != nil {
		a.logger.Debug("aggregation failed", append(fields, zap.Error(err))...)
		return
	}
	a.logger.Debug("aggregation finished", fields...)
}
