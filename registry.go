package dflags

import (
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Registry indexes flag metadata by name, by owner and by fully-qualified
// name. It is append-only and safe for concurrent use.
type Registry struct {
	mu sync.RWMutex

	byName  map[string][]Metadata
	byOwner map[string][]Metadata
	byFQN   map[string][]Metadata

	ownerDescriptions map[string]string

	// Sorted views, rebuilt lazily after Add.
	sorted bool
	all    []Metadata
	owners []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:            make(map[string][]Metadata),
		byOwner:           make(map[string][]Metadata),
		byFQN:             make(map[string][]Metadata),
		ownerDescriptions: make(map[string]string),
	}
}

// Add inserts m into every index. Duplicates are not rejected; a duplicated
// name or FQN is reported as ambiguous when it is looked up.
func (r *Registry) Add(m Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[m.ID.Name] = append(r.byName[m.ID.Name], m)
	if m.Alt != "" && m.Alt != m.ID.Name {
		r.byName[m.Alt] = append(r.byName[m.Alt], m)
	}
	r.byOwner[m.ID.Owner] = append(r.byOwner[m.ID.Owner], m)
	r.byFQN[m.ID.FQN()] = append(r.byFQN[m.ID.FQN()], m)
	r.sorted = false
}

// ByName returns the flags registered under name, including those using it
// as an alternative name, ordered by FlagID.
func (r *Registry) ByName(name string) []Metadata {
	return r.lookup(r.byName, name)
}

// ByOwner returns the flags declared by owner, ordered by FlagID.
func (r *Registry) ByOwner(owner string) []Metadata {
	return r.lookup(r.byOwner, owner)
}

// ByFQN returns the flag whose fully-qualified name is fqn. The second
// result is false when no flag, or more than one, has that name.
func (r *Registry) ByFQN(fqn string) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ms := r.byFQN[fqn]; len(ms) == 1 {
		return ms[0], true
	}
	return Metadata{}, false
}

// Owners returns the owners with at least one flag, sorted.
func (r *Registry) Owners() []string {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.owners)
}

// All returns every registered flag ordered by FlagID.
func (r *Registry) All() []Metadata {
	r.ensureSorted()

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.all)
}

// Len returns the number of registered flags.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.SumBy(lo.Values(r.byOwner), func(ms []Metadata) int { return len(ms) })
}

// DescribeOwner records a description of owner, shown above its flags in
// usage output. It replaces an earlier description.
func (r *Registry) DescribeOwner(owner, desc string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ownerDescriptions[owner] = desc
}

// OwnerDescription returns the description recorded for owner.
func (r *Registry) OwnerDescription(owner string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, ok := r.ownerDescriptions[owner]
	return desc, ok
}

// resolve finds the flags a token names: by name first, then by FQN.
func (r *Registry) resolve(name string) []Metadata {
	if ms := r.ByName(name); len(ms) > 0 {
		return ms
	}
	return r.lookup(r.byFQN, name)
}

func (r *Registry) lookup(index map[string][]Metadata, key string) []Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ms := slices.Clone(index[key])
	slices.SortStableFunc(ms, CompareMetadata)
	return ms
}

func (r *Registry) ensureSorted() {
	r.mu.RLock()
	sorted := r.sorted
	r.mu.RUnlock()
	if sorted {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sorted {
		return
	}

	r.all = slices.SortedStableFunc(
		slices.Values(lo.Flatten(lo.Values(r.byOwner))),
		CompareMetadata,
	)
	r.owners = lo.Keys(r.byOwner)
	slices.Sort(r.owners)
	r.sorted = true
}
