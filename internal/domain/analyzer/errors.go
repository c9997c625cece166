package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrSchema        = errors.New("schema error")
	ErrEmptyDataset  = errors.New("empty dataset")
	ErrInvalidRange  = errors.New("invalid range")
	ErrNotNormalized = errors.New("table not normalized")
)

// SchemaError names the required columns a table is missing.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", ErrSchema, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// RangeError reports a filter bound that is not numeric.
type RangeError struct {
	Bound string // "min" or "max"
	Value string
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %s bound %q is not a number", ErrInvalidRange, e.Bound, e.Value)
}

func (e *RangeError) Unwrap() []error { return []error{ErrInvalidRange, e.Err} }
