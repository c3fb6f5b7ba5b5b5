package parser

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// BoolParser parses boolean values.
// It uses strconv.ParseBool which accepts:
// "1", "t", "T", "true", "TRUE", "True",
// "0", "f", "F", "false", "FALSE", "False".
type BoolParser struct {
	BaseParser[bool]
}

// NewBoolParser creates a new boolean parser.
func NewBoolParser() *BoolParser {
	return &BoolParser{
		BaseParser: BaseParser[bool]{
			ParseFunc: strconv.ParseBool,
		},
	}
}

// IntParser parses base-10 int64 values with optional range validation.
type IntParser struct {
	BaseParser[int64]
	min *int64
	max *int64
}

// NewIntParser creates a new integer parser.
func NewIntParser() *IntParser {
	return &IntParser{
		BaseParser: BaseParser[int64]{
			ParseFunc: func(value string) (int64, error) {
				return strconv.ParseInt(value, 10, 64)
			},
		},
	}
}

// WithRange adds range validation to the integer parser.
func (p *IntParser) WithRange(min, max int64) *IntParser {
	p.min = &min
	p.max = &max
	p.ValidateFunc = CreateRangeValidator(p.min, p.max)
	return p
}

// WithMin adds minimum value validation.
func (p *IntParser) WithMin(min int64) *IntParser {
	p.min = &min
	p.ValidateFunc = CreateRangeValidator(p.min, p.max)
	return p
}

// WithMax adds maximum value validation.
func (p *IntParser) WithMax(max int64) *IntParser {
	p.max = &max
	p.ValidateFunc = CreateRangeValidator(p.min, p.max)
	return p
}

// NewInt32Parser creates a parser for base-10 int32 values.
// Literals outside the int32 range are rejected by strconv.
func NewInt32Parser() *BaseParser[int32] {
	return &BaseParser[int32]{
		ParseFunc: func(value string) (int32, error) {
			v, err := strconv.ParseInt(value, 10, 32)
			return int32(v), err
		},
	}
}

// NewFloat64Parser creates a parser for float64 values.
func NewFloat64Parser() *BaseParser[float64] {
	return &BaseParser[float64]{
		ParseFunc: func(value string) (float64, error) {
			return strconv.ParseFloat(value, 64)
		},
	}
}

// NewFloat32Parser creates a parser for float32 values.
func NewFloat32Parser() *BaseParser[float32] {
	return &BaseParser[float32]{
		ParseFunc: func(value string) (float32, error) {
			v, err := strconv.ParseFloat(value, 32)
			return float32(v), err
		},
	}
}

// NewBigIntParser creates a parser for arbitrary-precision base-10 integers.
func NewBigIntParser() *BaseParser[*big.Int] {
	return &BaseParser[*big.Int]{
		ParseFunc: func(value string) (*big.Int, error) {
			n, ok := new(big.Int).SetString(value, 10)
			if !ok {
				return nil, fmt.Errorf("invalid integer literal %q", value)
			}
			return n, nil
		},
	}
}

// NewDecimalParser creates a parser for arbitrary-precision decimals.
// The parsed value keeps the literal's exponent but its String form is
// normalized, so "1.50" formats as "1.5".
func NewDecimalParser() *BaseParser[decimal.Decimal] {
	return &BaseParser[decimal.Decimal]{
		ParseFunc: decimal.NewFromString,
	}
}

// DurationParser parses duration values with optional range validation.
type DurationParser struct {
	BaseParser[time.Duration]
	min *time.Duration
	max *time.Duration
}

// NewDurationParser creates a new duration parser.
func NewDurationParser() *DurationParser {
	return &DurationParser{
		BaseParser: BaseParser[time.Duration]{
			ParseFunc: time.ParseDuration,
		},
	}
}

// WithRange adds range validation to the duration parser.
func (p *DurationParser) WithRange(min, max time.Duration) *DurationParser {
	p.min = &min
	p.max = &max
	p.ValidateFunc = CreateDurationRangeValidator(p.min, p.max)
	return p
}

// WithMin adds minimum duration validation.
func (p *DurationParser) WithMin(min time.Duration) *DurationParser {
	p.min = &min
	p.ValidateFunc = CreateDurationRangeValidator(p.min, p.max)
	return p
}

// WithMax adds maximum duration validation.
func (p *DurationParser) WithMax(max time.Duration) *DurationParser {
	p.max = &max
	p.ValidateFunc = CreateDurationRangeValidator(p.min, p.max)
	return p
}

// StringParser parses string values with optional validation.
type StringParser struct {
	BaseParser[string]
	minLen *int
	maxLen *int
}

// NewStringParser creates a new string parser.
// It returns the value as-is without any processing.
func NewStringParser() *StringParser {
	return &StringParser{
		BaseParser: BaseParser[string]{
			ParseFunc: func(value string) (string, error) {
				return value, nil
			},
		},
	}
}

// WithLengthRange adds length validation.
func (p *StringParser) WithLengthRange(min, max int) *StringParser {
	p.minLen = &min
	p.maxLen = &max
	p.ValidateFunc = p.validateString
	return p
}

func (p *StringParser) validateString(value string) error {
	if p.minLen != nil && len(value) < *p.minLen {
		return fmt.Errorf("string length %d is less than minimum %d", len(value), *p.minLen)
	}
	if p.maxLen != nil && len(value) > *p.maxLen {
		return fmt.Errorf("string length %d is greater than maximum %d", len(value), *p.maxLen)
	}
	return nil
}
