package agg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	frame "github.com/mweidwork/training-frames"
)

var (
	// ErrTypeConversion matches every *TypeConversionError.
	ErrTypeConversion = errors.New("agg: value cannot be converted to float64")

	// ErrShape matches every *ShapeError.
	ErrShape = errors.New("agg: columns have inconsistent lengths")

	// ErrNilTable is returned when a reduction is handed a nil table.
	ErrNilTable = errors.New("agg: nil table")
)

// TypeConversionError occurs when a mean reduction meets a cell that has no
// float64 interpretation.
type TypeConversionError struct {
	Column string
	Row    int
	Value  interface{}
	Err    error
}

// Error returns a textual representation of this TypeConversionError
func (e *TypeConversionError) Error() string {
	msg := fmt.Sprintf("agg: column %q row %d: cannot convert %v (%T) to float64", e.Column, e.Row, e.Value, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying parse error, if any.
func (e *TypeConversionError) Unwrap() error { return e.Err }

// Is reports whether target is ErrTypeConversion.
func (e *TypeConversionError) Is(target error) bool { return target == ErrTypeConversion }

// ShapeError occurs when the columns of a table do not all have the table's
// height. Err lists one entry per offending column.
type ShapeError struct {
	Height int
	Err    *multierror.Error
}

// Error returns a textual representation of this ShapeError
func (e *ShapeError) Error() string {
	return fmt.Sprintf("agg: columns have inconsistent lengths (height %d): %s", e.Height, e.Err.Error())
}

// Unwrap returns the per-column errors.
func (e *ShapeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// Columns returns the number of offending columns.
func (e *ShapeError) Columns() int { return e.Err.Len() }

func listFormat(errs []error) string {
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "; ")
}

// checkShape verifies that every column is as long as the table before a
// scan starts.
func checkShape(df *frame.DataFrame) error {
	if df == nil {
		return ErrNilTable
	}

	var result *multierror.Error
	height := df.Height()
	for _, col := range df.Series() {
		if col.Len() != height {
			result = multierror.Append(result, fmt.Errorf("column %q has length %d", col.Name(), col.Len()))
		}
	}
	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return &ShapeError{Height: height, Err: result}
}
