// Package scan registers the flags declared as fields of a struct.
//
// Every exported field of type *dflags.Flag[T] becomes a flag. Struct tags
// refine the metadata:
//
//	type ServerFlags struct {
//		Port    *dflags.Flag[int64]  `flag:"port" alt:"p" desc:"listen port" default:"8080" validate:"gte=1,lte=65535"`
//		Verbose *dflags.Flag[bool]   `desc:"log every request"`
//		Secret  *dflags.Flag[string] `flag:"-"`
//	}
//
// The flag name defaults to the field name with a lower-case first letter.
// Nil fields are allocated. A struct may describe itself in usage output by
// implementing Describer.
package scan

import (
	"errors"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/conversion"
)

// Describer is implemented by flag structs that describe their owner.
type Describer interface {
	FlagDescription() string
}

// Error reports a field that cannot be registered.
type Error struct {
	Owner string
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("scan %s: %v", e.Owner, e.Err)
	}
	return fmt.Sprintf("scan %s.%s: %v", e.Owner, e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrNotStructPointer   = errors.New("not a pointer to a struct")
	ErrNotFlag            = errors.New("flag tag on a field that is not a *dflags.Flag")
	ErrDuplicateOwner     = errors.New("owner is already described")
	ErrValidateNotAllowed = errors.New("validate tag requires a bool, number or string flag")
)

var handleType = reflect.TypeFor[dflags.Handle]()

// Option configures a scan.
type Option func(*scanner)

// WithOwner overrides the owner, which defaults to the struct's package
// path and type name.
func WithOwner(owner string) Option {
	return func(s *scanner) {
		s.owner = owner
	}
}

// WithConversions sets the table used to parse default tags.
func WithConversions(t *conversion.Table) Option {
	return func(s *scanner) {
		s.conversions = t
	}
}

// WithValidate sets the validator used for validate tags.
func WithValidate(v *validator.Validate) Option {
	return func(s *scanner) {
		s.validate = v
	}
}

type scanner struct {
	owner       string
	conversions *conversion.Table
	validate    *validator.Validate
}

// Struct registers the flag fields of the struct ptr points to in r. Fields
// with problems are skipped and reported together as *Error values; the
// remaining fields are registered.
func Struct(r *dflags.Registry, ptr any, opts ...Option) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return &Error{Owner: fmt.Sprintf("%T", ptr), Err: ErrNotStructPointer}
	}
	v = v.Elem()
	t := v.Type()

	s := &scanner{
		owner:       t.PkgPath() + "." + t.Name(),
		conversions: conversion.NewTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.validate == nil {
		s.validate = validator.New()
	}

	var errs []error
	if d, ok := ptr.(Describer); ok {
		if _, described := r.OwnerDescription(s.owner); described {
			errs = append(errs, &Error{Owner: s.owner, Err: ErrDuplicateOwner})
		} else {
			r.DescribeOwner(s.owner, d.FlagDescription())
		}
	}

	for i := range t.NumField() {
		field := t.Field(i)
		m, ok, err := s.field(field, v.Field(i))
		if err != nil {
			errs = append(errs, &Error{Owner: s.owner, Field: field.Name, Err: err})
			continue
		}
		if ok {
			r.Add(m)
		}
	}
	return errors.Join(errs...)
}

func (s *scanner) field(field reflect.StructField, fv reflect.Value) (dflags.Metadata, bool, error) {
	tag, tagged := field.Tag.Lookup("flag")
	if tag == "-" || !field.IsExported() {
		return dflags.Metadata{}, false, nil
	}
	if !field.Type.Implements(handleType) || field.Type.Kind() != reflect.Pointer {
		if tagged {
			return dflags.Metadata{}, false, ErrNotFlag
		}
		return dflags.Metadata{}, false, nil
	}

	if fv.IsNil() {
		fv.Set(reflect.New(field.Type.Elem()))
	}
	h := fv.Interface().(dflags.Handle)

	if def, ok := field.Tag.Lookup("default"); ok {
		if err := s.setDefault(h, def); err != nil {
			return dflags.Metadata{}, false, err
		}
	}
	if rule := field.Tag.Get("validate"); rule != "" {
		if err := s.setValidator(h, rule); err != nil {
			return dflags.Metadata{}, false, err
		}
	}

	name := tag
	if name == "" {
		name = lowerFirst(field.Name)
	}
	return dflags.Metadata{
		ID:          dflags.NewFlagID(s.owner, name),
		Alt:         field.Tag.Get("alt"),
		Description: field.Tag.Get("desc"),
		Type:        h.Type(),
		Handle:      h,
	}, true, nil
}

func (s *scanner) setDefault(h dflags.Handle, literal string) error {
	fn, ok := s.conversions.ForType(h.Type())
	if !ok {
		return fmt.Errorf("default %q: %w for %s", literal, dflags.ErrNoConversion, h.Type())
	}
	v, err := fn(literal)
	if err != nil {
		return fmt.Errorf("default: %w", err)
	}
	return h.SetValue(v)
}

func (s *scanner) setValidator(h dflags.Handle, rule string) error {
	t := reflect.TypeOf(h.Value())
	if t == nil {
		return ErrValidateNotAllowed
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return ErrValidateNotAllowed
	}

	validate := s.validate
	h.SetValidatorFunc(func(v any) error {
		return validate.Var(v, rule)
	})
	return nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
