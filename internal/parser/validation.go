package parser

import (
	"fmt"
	"time"

	"golang.org/x/exp/constraints"
)

// CreateRangeValidator creates a validation function for numeric types with min/max constraints.
// A nil bound is not checked.
func CreateRangeValidator[T constraints.Integer | constraints.Float](min, max *T) func(T) error {
	return func(v T) error {
		if min != nil && v < *min {
			return fmt.Errorf("value %v is less than minimum %v", v, *min)
		}
		if max != nil && v > *max {
			return fmt.Errorf("value %v is greater than maximum %v", v, *max)
		}
		return nil
	}
}

// CreateDurationRangeValidator creates a validation function for duration values with min/max constraints.
func CreateDurationRangeValidator(min, max *time.Duration) func(time.Duration) error {
	return func(v time.Duration) error {
		if min != nil && v < *min {
			return fmt.Errorf("duration %s is less than minimum %s", v, *min)
		}
		if max != nil && v > *max {
			return fmt.Errorf("duration %s is greater than maximum %s", v, *max)
		}
		return nil
	}
}

// CreateOneOfValidator creates a validation function accepting only the listed values.
func CreateOneOfValidator[T comparable](allowed ...T) func(T) error {
	return func(v T) error {
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fmt.Errorf("value %v is not one of %v", v, allowed)
	}
}
