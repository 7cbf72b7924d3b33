package flavor

import (
	"fmt"
	"sync"
)

// Registry holds an open set of flavors by name. Lookups are safe for
// concurrent use with registrations.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Flavor
	order  []string
}

// NewRegistry creates a registry seeded with the given flavors.
// Seeding errors are impossible for distinct names; duplicates panic, since
// they indicate a programming error at construction time.
func NewRegistry(seed ...Flavor) *Registry {
	r := &Registry{byName: make(map[string]Flavor)}
	for _, f := range seed {
		if err := r.Register(f); err != nil {
			panic(fmt.Sprintf("flavor: seeding registry: %v", err))
		}
	}
	return r
}

// Register adds a flavor to the registry. Empty names and duplicates are
// rejected.
func (r *Registry) Register(f Flavor) error {
	if f.name == "" {
		return fmt.Errorf("register flavor: empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[f.name]; exists {
		return fmt.Errorf("register flavor: %q already registered", f.name)
	}

	r.byName[f.name] = f
	r.order = append(r.order, f.name)
	return nil
}

// Lookup resolves a flavor by its exact name.
// Unknown names yield (zero, false) — absence, not failure.
func (r *Registry) Lookup(name string) (Flavor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.byName[name]
	return f, ok
}

// Resolve returns the Options a named flavor implies.
func (r *Registry) Resolve(name string) (Options, bool) {
	f, ok := r.Lookup(name)
	return f.opts, ok
}

// Names returns all registered flavor names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// All returns all registered flavors in registration order.
func (r *Registry) All() []Flavor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	flavors := make([]Flavor, 0, len(r.order))
	for _, name := range r.order {
		flavors = append(flavors, r.byName[name])
	}
	return flavors
}

// DefaultRegistry is the global registry, seeded with the builtin flavors.
//
//nolint:gochecknoglobals // Global registry is intentional for flavor lookup
var DefaultRegistry = NewRegistry(CommonMark, GitHub)

// Lookup resolves a flavor by name in the default registry.
func Lookup(name string) (Flavor, bool) {
	return DefaultRegistry.Lookup(name)
}

// Resolve returns the Options a named flavor implies, from the default
// registry.
func Resolve(name string) (Options, bool) {
	return DefaultRegistry.Resolve(name)
}

// Register adds a flavor to the default registry.
func Register(f Flavor) error {
	return DefaultRegistry.Register(f)
}

// Names returns all flavor names in the default registry.
func Names() []string {
	return DefaultRegistry.Names()
}
