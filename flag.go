package dflags

import (
	"cmp"
	"fmt"
	"sync"

	"github.com/apstndb/dflags/conversion"
)

// FlagID identifies a flag by the owner that declared it and its name.
type FlagID struct {
	Owner string
	Name  string
}

// NewFlagID returns the FlagID for owner and name.
func NewFlagID(owner, name string) FlagID {
	return FlagID{Owner: owner, Name: name}
}

// FQN returns the fully-qualified name, owner + "." + name.
func (id FlagID) FQN() string {
	return id.Owner + "." + id.Name
}

func (id FlagID) String() string {
	return id.FQN()
}

// Compare orders flag IDs by FQN.
func (id FlagID) Compare(other FlagID) int {
	return cmp.Compare(id.FQN(), other.FQN())
}

// Validator checks a converted value before it is stored in a flag.
type Validator[T any] func(value T) error

// Handle is the type-erased view of a Flag used by the registry, the
// argument parser and metadata scanners.
type Handle interface {
	// Type returns the conversion tag of the flag's value type.
	Type() conversion.TypeTag
	// Value returns the current value.
	Value() any
	// SetValue stores v without running the validator.
	SetValue(v any) error
	// Accept validates v and stores it. The flag is unchanged on failure.
	Accept(v any) error
	// SetValidatorFunc replaces the validator with fn.
	SetValidatorFunc(fn func(any) error)
}

// Flag is a named cell holding a value of type T. The zero value holds the
// zero T and has no validator.
type Flag[T any] struct {
	mu        sync.RWMutex
	value     T
	validator Validator[T]
}

// New returns a flag holding def.
func New[T any](def T) *Flag[T] {
	return &Flag[T]{value: def}
}

// Get returns the current value, the default if the flag was never set.
func (f *Flag[T]) Get() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// Set overwrites the value. It does not run the validator.
func (f *Flag[T]) Set(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.value = v
}

// Validator attaches fn, replacing any previous validator, and returns f.
func (f *Flag[T]) Validator(fn Validator[T]) *Flag[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validator = fn
	return f
}

func (f *Flag[T]) String() string {
	return fmt.Sprint(f.Get())
}

// Type implements Handle.
func (f *Flag[T]) Type() conversion.TypeTag {
	return conversion.TagOf[T]()
}

// Value implements Handle.
func (f *Flag[T]) Value() any {
	return f.Get()
}

// SetValue implements Handle.
func (f *Flag[T]) SetValue(v any) error {
	typed, err := f.typed(v)
	if err != nil {
		return err
	}
	f.Set(typed)
	return nil
}

// Accept implements Handle.
func (f *Flag[T]) Accept(v any) error {
	typed, err := f.typed(v)
	if err != nil {
		return err
	}

	// The validator runs unlocked so it may read other flags, or this one.
	f.mu.RLock()
	validator := f.validator
	f.mu.RUnlock()
	if validator != nil {
		if err := validator(typed); err != nil {
			return err
		}
	}
	f.Set(typed)
	return nil
}

// SetValidatorFunc implements Handle.
func (f *Flag[T]) SetValidatorFunc(fn func(any) error) {
	if fn == nil {
		f.Validator(nil)
		return
	}
	f.Validator(func(v T) error { return fn(v) })
}

func (f *Flag[T]) typed(v any) (T, error) {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, &TypeMismatchError{Want: f.Type(), Got: fmt.Sprintf("%T", v)}
	}
	return typed, nil
}
