package parser

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// EnumParser parses string values into enum types, ignoring case.
type EnumParser[T comparable] struct {
	BaseParser[T]
	values map[string]T
}

// NewEnumParser creates an enum parser accepting the keys of values.
func NewEnumParser[T comparable](values map[string]T) *EnumParser[T] {
	normalizedValues := make(map[string]T, len(values))
	for k, v := range values {
		normalizedValues[strings.ToUpper(k)] = v
	}

	parser := &EnumParser[T]{
		values: normalizedValues,
	}

	parser.BaseParser = BaseParser[T]{
		ParseFunc: parser.parseEnum,
	}

	return parser
}

func (p *EnumParser[T]) parseEnum(value string) (T, error) {
	if result, ok := p.values[strings.ToUpper(value)]; ok {
		return result, nil
	}

	var zero T
	validValues := slices.Sorted(maps.Keys(p.values))
	return zero, fmt.Errorf("invalid value %q, must be one of: %s", value, strings.Join(validValues, ", "))
}
