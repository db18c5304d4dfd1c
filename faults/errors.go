package faults

import "errors"

var (
	// ErrNilError indicates a nil error was passed to Record.
	ErrNilError = errors.New("faults: error is required")
)
