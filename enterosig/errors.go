package enterosig

import (
	"errors"
	"fmt"
)

// Sub-causes of a data-validity failure. Check with errors.Is.
var (
	// ErrNoTaxaResolved indicates that not a single input taxon could be
	// matched against the reference vocabulary, leaving nothing to project.
	ErrNoTaxaResolved = errors.New("no input taxa resolve against the reference taxa")
	// ErrEmptySample indicates a sample whose abundance sums to zero after
	// reconciliation, which would make the projection degenerate.
	ErrEmptySample = errors.New("sample abundance sums to zero after reconciliation")
	// ErrBadTable indicates a structurally unusable input table.
	ErrBadTable = errors.New("malformed abundance table")
)

// DataError is the single domain error kind: the input data cannot be
// projected. It always wraps one of the sentinel sub-causes above.
type DataError struct {
	Cause  error
	Detail string
}

// Error implements the error interface.
func (e *DataError) Error() string {
	if e.Detail == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%v: %s", e.Cause, e.Detail)
}

// Unwrap exposes the sub-cause for errors.Is.
func (e *DataError) Unwrap() error {
	return e.Cause
}

func dataErrorf(cause error, format string, args ...any) *DataError {
	return &DataError{Cause: cause, Detail: fmt.Sprintf(format, args...)}
}
