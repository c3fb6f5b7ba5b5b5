// Package parser provides a generic framework for converting string literals
// into typed values and validating them. It is the building block for the
// conversion table used by the flag parser.
//
// # Key Design Principles
//
//  1. Type Safety Through Generics: every parser is a Parser[T], so the
//     conversion table can wrap it without runtime type switches.
//
//  2. Composable Validation: validation is separated from parsing and can be
//     composed with WithValidation and ChainValidators.
//
//  3. No Whitespace Trimming: command-line tokens arrive already split by the
//     shell, so a literal such as " 42" is malformed rather than silently
//     accepted.
//
// # Usage Examples
//
//	// An int64 parser restricted to a port range
//	port := NewIntParser().WithRange(1, 65535)
//
//	// A duration parser with an extra constraint
//	p := WithValidation(
//	    NewDurationParser(),
//	    func(d time.Duration) error {
//	        if d%time.Second != 0 {
//	            return fmt.Errorf("duration must be a whole number of seconds")
//	        }
//	        return nil
//	    },
//	)
package parser

import (
	"fmt"
)

// Parser is the core interface for parsing and validating values of type T.
type Parser[T any] interface {
	// Parse converts a string value to type T.
	Parse(value string) (T, error)

	// Validate checks if a parsed value meets additional constraints.
	Validate(value T) error

	// ParseAndValidate calls Parse followed by Validate.
	ParseAndValidate(value string) (T, error)
}

// BaseParser provides a foundation for implementing parsers.
// It handles the common ParseAndValidate logic.
type BaseParser[T any] struct {
	ParseFunc    func(string) (T, error)
	ValidateFunc func(T) error
}

// Parse implements the Parser interface.
func (p *BaseParser[T]) Parse(value string) (T, error) {
	if p.ParseFunc == nil {
		var zero T
		return zero, fmt.Errorf("parse function not implemented")
	}
	return p.ParseFunc(value)
}

// Validate implements the Parser interface.
func (p *BaseParser[T]) Validate(value T) error {
	if p.ValidateFunc == nil {
		return nil
	}
	return p.ValidateFunc(value)
}

// ParseAndValidate implements the Parser interface.
func (p *BaseParser[T]) ParseAndValidate(value string) (T, error) {
	parsed, err := p.Parse(value)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := p.Validate(parsed); err != nil {
		var zero T
		return zero, err
	}

	return parsed, nil
}

// Validator is a function type for value validation.
type Validator[T any] func(value T) error

// ChainValidators combines multiple validators into a single validator.
// All validators must pass for the value to be considered valid.
func ChainValidators[T any](validators ...Validator[T]) Validator[T] {
	return func(value T) error {
		for _, validator := range validators {
			if validator == nil {
				continue
			}
			if err := validator(value); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithValidation wraps an existing parser with additional validation.
func WithValidation[T any](parser Parser[T], validators ...Validator[T]) Parser[T] {
	return &BaseParser[T]{
		ParseFunc: parser.Parse,
		ValidateFunc: func(value T) error {
			// First run the original validation
			if err := parser.Validate(value); err != nil {
				return err
			}
			return ChainValidators(validators...)(value)
		},
	}
}

// Func adapts a parser into a plain conversion function that parses and
// validates in one step.
func Func[T any](p Parser[T]) func(string) (T, error) {
	return p.ParseAndValidate
}
