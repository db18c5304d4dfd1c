package capture

import "errors"

var (
	// ErrArityMismatch indicates the parameter name and value slices differ
	// in length.
	ErrArityMismatch = errors.New("capture: names and values length mismatch")

	// ErrNilNames indicates a missing parameter name.
	ErrNilNames = errors.New("capture: parameter name is required")
)
