package dflags

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"spheric.cloud/xiter"

	"github.com/apstndb/dflags/conversion"
)

// ErrNoConversion is wrapped by UnsupportedTypeError.
var ErrNoConversion = errors.New("no conversion registered")

// Problems: reported according to the ErrorPolicy, parsing continues.
type (
	// UnknownFlagError is reported when a flag token matches no registered flag.
	UnknownFlagError struct {
		Token string
	}

	// AmbiguousFlagError is reported when a flag token matches several flags.
	// None of the candidates is assigned.
	AmbiguousFlagError struct {
		Token      string
		Candidates []FlagID
	}

	// MissingValueError is reported when a non-boolean flag is followed by
	// another flag or by the end of input.
	MissingValueError struct {
		Flag FlagID
	}
)

// Fatal errors: parsing stops immediately.
type (
	// ConversionError is returned when a value cannot be converted to the
	// flag's type.
	ConversionError struct {
		Flag FlagID
		Err  *conversion.ConversionError
	}

	// ValidationError is returned when a flag's validator rejects a value.
	// The flag keeps its previous value.
	ValidationError struct {
		Flag  FlagID
		Value any
		Err   error
	}

	// UnsupportedTypeError is returned when no conversion exists for the
	// flag's type.
	UnsupportedTypeError struct {
		Flag FlagID
		Type conversion.TypeTag
	}

	// TypeMismatchError is returned when a value of the wrong Go type is
	// stored through a Handle.
	TypeMismatchError struct {
		Want conversion.TypeTag
		Got  string
	}
)

func (e *UnknownFlagError) Error() string {
	return fmt.Sprintf("unknown flag: %s", e.Token)
}

func (e *AmbiguousFlagError) Error() string {
	candidates := slices.Collect(xiter.Map(slices.Values(e.Candidates), FlagID.FQN))
	return fmt.Sprintf("ambiguous flag %s: could be any of %s", e.Token, strings.Join(candidates, ", "))
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("missing value for flag %s", e.Flag)
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("flag %s: %v", e.Flag, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("flag %s: invalid value %v: %v", e.Flag, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("flag %s: %v for type %s", e.Flag, ErrNoConversion, e.Type)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrNoConversion
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}

// IsFatal reports whether err aborts parsing regardless of the ErrorPolicy.
func IsFatal(err error) bool {
	var (
		convErr        *ConversionError
		validationErr  *ValidationError
		unsupportedErr *UnsupportedTypeError
		mismatchErr    *TypeMismatchError
	)
	return errors.As(err, &convErr) ||
		errors.As(err, &validationErr) ||
		errors.As(err, &unsupportedErr) ||
		errors.As(err, &mismatchErr)
}

// ErrorPolicy decides what happens to non-fatal problems.
type ErrorPolicy int

const (
	// PolicyLog logs problems at error level and continues.
	PolicyLog ErrorPolicy = iota
	// PolicyCollect records problems in Result.Problems and continues.
	PolicyCollect
	// PolicyFailFast returns the first problem as the error.
	PolicyFailFast
)

func (p ErrorPolicy) String() string {
	switch p {
	case PolicyLog:
		return "log"
	case PolicyCollect:
		return "collect"
	case PolicyFailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}
