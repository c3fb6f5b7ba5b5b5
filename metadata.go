package dflags

import (
	"cmp"

	"github.com/apstndb/dflags/conversion"
)

// Metadata describes a registered flag. It is what metadata scanners feed
// into a Registry and what usage printers read back.
type Metadata struct {
	ID          FlagID
	Alt         string
	Description string
	Type        conversion.TypeTag
	Handle      Handle
}

// CompareMetadata orders metadata by FlagID, breaking ties by alias and
// description so that sorting is deterministic.
func CompareMetadata(a, b Metadata) int {
	return cmp.Or(
		a.ID.Compare(b.ID),
		cmp.Compare(a.Alt, b.Alt),
		cmp.Compare(a.Description, b.Description),
	)
}

// IsBool reports whether the flag is a boolean switch.
func (m Metadata) IsBool() bool {
	return m.Type == conversion.Bool
}

// DefineOption configures the metadata recorded by Define.
type DefineOption func(*Metadata)

// WithDescription sets the flag description shown in usage output.
func WithDescription(desc string) DefineOption {
	return func(m *Metadata) {
		m.Description = desc
	}
}

// WithAlt registers an alternative name resolved like the flag's own name.
func WithAlt(alt string) DefineOption {
	return func(m *Metadata) {
		m.Alt = alt
	}
}

// MetadataFor builds the metadata of f declared as owner.name.
func MetadataFor[T any](f *Flag[T], owner, name string, opts ...DefineOption) Metadata {
	m := Metadata{
		ID:     NewFlagID(owner, name),
		Type:   f.Type(),
		Handle: f,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Define creates a flag holding def and adds it to r as owner.name.
func Define[T any](r *Registry, owner, name string, def T, opts ...DefineOption) *Flag[T] {
	f := New(def)
	r.Add(MetadataFor(f, owner, name, opts...))
	return f
}
