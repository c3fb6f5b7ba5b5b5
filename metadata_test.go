package dflags_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/apstndb/dflags"
	"github.com/apstndb/dflags/conversion"
)

func TestMetadataFor(t *testing.T) {
	t.Parallel()

	f := dflags.New(false)
	m := dflags.MetadataFor(f, "app", "verbose", dflags.WithDescription("chatty"), dflags.WithAlt("v"))

	assert.Equal(t, dflags.NewFlagID("app", "verbose"), m.ID)
	assert.Equal(t, "chatty", m.Description)
	assert.Equal(t, "v", m.Alt)
	assert.Equal(t, conversion.Bool, m.Type)
	assert.True(t, m.IsBool())
	assert.Same(t, f, m.Handle)
}

func TestCompareMetadata(t *testing.T) {
	t.Parallel()

	ms := []dflags.Metadata{
		{ID: dflags.NewFlagID("b", "a")},
		{ID: dflags.NewFlagID("a", "b"), Alt: "z"},
		{ID: dflags.NewFlagID("a", "b"), Alt: "y"},
	}
	slices.SortFunc(ms, dflags.CompareMetadata)

	assert.Equal(t, []dflags.Metadata{
		{ID: dflags.NewFlagID("a", "b"), Alt: "y"},
		{ID: dflags.NewFlagID("a", "b"), Alt: "z"},
		{ID: dflags.NewFlagID("b", "a")},
	}, ms)
}
