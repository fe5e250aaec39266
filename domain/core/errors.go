package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInputUnreadable = errors.New("input file could not be read as CSV or XLSX")
	ErrEmptyInput      = fmt.Errorf("%w: no header row", ErrInputUnreadable)
	ErrInputTooLarge   = fmt.Errorf("%w: file too large", ErrInputUnreadable)

	// Coordinate errors
	ErrCoordinatesUnavailable = errors.New("latitude/longitude columns not found")
	ErrNoValidPoints          = errors.New("no rows with valid coordinates")

	// Selection errors
	ErrNoSelection   = errors.New("no grouping or label column selected")
	ErrUnknownColumn = errors.New("unknown column")
)

// NewUnknownColumnError reports a selected column that is not in the table header
func NewUnknownColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

// NewUnreadableError wraps a parser failure for the given format
func NewUnreadableError(format string, err error) error {
	return fmt.Errorf("%w (%s): %v", ErrInputUnreadable, format, err)
}
