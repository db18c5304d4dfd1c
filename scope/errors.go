package scope

import "errors"

var (
	// ErrEmptyName is returned by Factory.Begin when the operation name is
	// empty.
	ErrEmptyName = errors.New("scope: operation name is required")

	// ErrSinkClosed is returned by sink writes after Close.
	ErrSinkClosed = errors.New("scope: sink closed")
)
