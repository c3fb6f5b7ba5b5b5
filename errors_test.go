package dflags_test

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/conversion"
)

func TestIsFatal(t *testing.T) {
	t.Parallel()

	id := dflags.NewFlagID("app", "level")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unknown", &dflags.UnknownFlagError{Token: "--x"}, false},
		{"ambiguous", &dflags.AmbiguousFlagError{Token: "--x", Candidates: []dflags.FlagID{id}}, false},
		{"missing value", &dflags.MissingValueError{Flag: id}, false},
		{"conversion", &dflags.ConversionError{Flag: id, Err: &conversion.ConversionError{Type: conversion.Int64, Literal: "x", Err: strconv.ErrSyntax}}, true},
		{"validation", &dflags.ValidationError{Flag: id, Value: 1, Err: errors.New("bad")}, true},
		{"unsupported", &dflags.UnsupportedTypeError{Flag: id, Type: "time.Duration"}, true},
		{"type mismatch", &dflags.TypeMismatchError{Want: conversion.Int64, Got: "string"}, true},
		{"wrapped", fmt.Errorf("startup: %w", &dflags.ValidationError{Flag: id, Err: errors.New("bad")}), true},
		{"other", errors.New("other"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dflags.IsFatal(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	id := dflags.NewFlagID("app", "level")
	convErr := &dflags.ConversionError{
		Flag: id,
		Err:  &conversion.ConversionError{Type: conversion.Int64, Literal: "x", Err: strconv.ErrSyntax},
	}

	assert.EqualError(t, &dflags.UnknownFlagError{Token: "--x"}, "unknown flag: --x")
	assert.EqualError(t, &dflags.MissingValueError{Flag: id}, "missing value for flag app.level")
	assert.EqualError(t, convErr, `flag app.level: cannot convert "x" to int64: invalid syntax`)
	assert.ErrorIs(t, convErr, strconv.ErrSyntax)
	assert.EqualError(t, &dflags.UnsupportedTypeError{Flag: id, Type: "time.Duration"},
		"flag app.level: no conversion registered for type time.Duration")
	assert.EqualError(t, &dflags.TypeMismatchError{Want: conversion.Int64, Got: "string"},
		"type mismatch: want int64, got string")
}

func TestErrorPolicyString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "log", dflags.PolicyLog.String())
	assert.Equal(t, "collect", dflags.PolicyCollect.String())
	assert.Equal(t, "fail-fast", dflags.PolicyFailFast.String())
	assert.Equal(t, "ErrorPolicy(9)", dflags.ErrorPolicy(9).String())
}
