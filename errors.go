package frame

import "errors"

// Sentinel errors returned (wrapped) by the constructors and IO functions.
var (
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrColumnNotFound  = errors.New("column not found")
)
