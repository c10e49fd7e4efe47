package candycane

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is wrapped by every parameter validation error.
var ErrInvalidParameter = errors.New("invalid parameter")

// ParamError reports a construction parameter that would produce degenerate
// or self intersecting geometry.
type ParamError struct {
	Field  string // snake_case parameter name, i.e. "outer_radius"
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("candycane: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParameter }

func paramErr(field string, value float64, reason string) error {
	return &ParamError{Field: field, Value: value, Reason: reason}
}

// checkFinite returns an error for the first NaN or infinite value.
// fields and values are matched by index.
func checkFinite(fields []string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return paramErr(fields[i], v, "not finite")
		}
	}
	return nil
}
