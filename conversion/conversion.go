// Package conversion maps value types to string conversion functions.
//
// A Table holds user registered conversions keyed by TypeTag. When no
// conversion is registered for a tag, ForType falls back to the built-in
// default for the standard tags (string, bool, int32, int64, float32,
// float64, bigint and decimal). Registered conversions shadow the defaults;
// Unregister removes a tag completely, including its default.
package conversion

import (
	"fmt"
	"maps"
	"math/big"
	"reflect"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/apstndb/dflags/internal/parser"
)

// TypeTag identifies the value type of a flag in the conversion table.
type TypeTag string

// Built-in type tags.
const (
	String     TypeTag = "string"
	Bool       TypeTag = "bool"
	Int32      TypeTag = "int32"
	Int64      TypeTag = "int64"
	Float32    TypeTag = "float32"
	Float64    TypeTag = "float64"
	BigInt     TypeTag = "bigint"
	BigDecimal TypeTag = "decimal"
)

// Func converts a literal into a value of the tag's Go type.
type Func func(value string) (any, error)

// ConversionError is returned when a literal cannot be converted.
type ConversionError struct {
	Type    TypeTag
	Literal string
	Err     error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Literal, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// TagOf returns the tag for T: a built-in tag for the standard types, the
// reflect type string (e.g. "time.Duration") for everything else.
func TagOf[T any]() TypeTag {
	var zero T
	switch any(zero).(type) {
	case string:
		return String
	case bool:
		return Bool
	case int32:
		return Int32
	case int64:
		return Int64
	case float32:
		return Float32
	case float64:
		return Float64
	case *big.Int:
		return BigInt
	case decimal.Decimal:
		return BigDecimal
	}
	return TypeTag(reflect.TypeFor[T]().String())
}

func wrap[T any](tag TypeTag, fn func(string) (T, error)) Func {
	return func(value string) (any, error) {
		v, err := fn(value)
		if err != nil {
			return nil, &ConversionError{Type: tag, Literal: value, Err: err}
		}
		return v, nil
	}
}

var defaults = map[TypeTag]Func{
	String:     wrap(String, parser.Func[string](parser.NewStringParser())),
	Bool:       wrap(Bool, parser.Func[bool](parser.NewBoolParser())),
	Int32:      wrap(Int32, parser.Func[int32](parser.NewInt32Parser())),
	Int64:      wrap(Int64, parser.Func[int64](parser.NewIntParser())),
	Float32:    wrap(Float32, parser.Func[float32](parser.NewFloat32Parser())),
	Float64:    wrap(Float64, parser.Func[float64](parser.NewFloat64Parser())),
	BigInt:     wrap(BigInt, parser.Func[*big.Int](parser.NewBigIntParser())),
	BigDecimal: wrap(BigDecimal, parser.Func[decimal.Decimal](parser.NewDecimalParser())),
}

// IsBuiltin reports whether tag has a built-in default conversion.
func IsBuiltin(tag TypeTag) bool {
	_, ok := defaults[tag]
	return ok
}

// Table is a conversion table. The zero value is ready to use and serves
// the built-in defaults.
type Table struct {
	mu          sync.RWMutex
	conversions map[TypeTag]Func
	removed     map[TypeTag]struct{}
}

// NewTable creates a table holding only the built-in defaults.
func NewTable() *Table {
	return &Table{}
}

// RegisterFunc installs fn for tag, replacing any earlier registration.
func (t *Table) RegisterFunc(tag TypeTag, fn Func) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conversions == nil {
		t.conversions = make(map[TypeTag]Func)
	}
	t.conversions[tag] = fn
	delete(t.removed, tag)
}

// Unregister removes the conversion for tag. A later ForType(tag) reports
// no conversion, even when tag has a built-in default.
func (t *Table) Unregister(tag TypeTag) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.conversions, tag)
	if t.removed == nil {
		t.removed = make(map[TypeTag]struct{})
	}
	t.removed[tag] = struct{}{}
}

// ForType returns the registered conversion for tag, else the built-in
// default, else false.
func (t *Table) ForType(tag TypeTag) (Func, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if fn, ok := t.conversions[tag]; ok {
		return fn, true
	}
	if _, ok := t.removed[tag]; ok {
		return nil, false
	}
	fn, ok := defaults[tag]
	return fn, ok
}

// Clone returns an independent copy of t.
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return &Table{
		conversions: maps.Clone(t.conversions),
		removed:     maps.Clone(t.removed),
	}
}

// Register installs fn as the conversion for TagOf[T]. Errors returned by
// fn are wrapped in *ConversionError.
func Register[T any](t *Table, fn func(string) (T, error)) {
	tag := TagOf[T]()
	t.RegisterFunc(tag, wrap(tag, fn))
}

// RegisterParser installs p, parsing and validating, as the conversion for TagOf[T].
func RegisterParser[T any](t *Table, p parser.Parser[T]) {
	Register(t, p.ParseAndValidate)
}

// Convert looks up the conversion for T and applies it to value.
func Convert[T any](t *Table, value string) (T, error) {
	var zero T
	tag := TagOf[T]()
	fn, ok := t.ForType(tag)
	if !ok {
		return zero, fmt.Errorf("no conversion registered for %s", tag)
	}
	v, err := fn(value)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("conversion for %s returned %T", tag, v)
	}
	return typed, nil
}
