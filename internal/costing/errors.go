package costing

import (
	"errors"
	"fmt"
)

// ErrNoIngredients signals an empty ingredient list. Callers should show an
// advisory and suppress all derived output; it is not a zero-cost result.
var ErrNoIngredients = errors.New("no ingredients")

var (
	ErrInvalidPortions = errors.New("portion count must be at least 1")
	ErrNegativeMargin  = errors.New("profit margin must not be negative")
	ErrMarginSaturated = errors.New("profit margin must be below 100%")
	ErrNegativeValue   = errors.New("value must not be negative")
	ErrNotFinite       = errors.New("value must be a finite number")
	// ErrOverflow is returned when finite inputs produce a total or price
	// that no longer fits in a float64.
	ErrOverflow = errors.New("computed cost is out of range")
)

// RowError reports an invalid value in a single ingredient row.
type RowError struct {
	Row   int
	Name  string
	Field string
	Err   error
}

func (e *RowError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("row %d (%s): %s: %v", e.Row+1, e.Name, e.Field, e.Err)
	}
	return fmt.Sprintf("row %d: %s: %v", e.Row+1, e.Field, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
