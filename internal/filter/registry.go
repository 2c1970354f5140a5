package filter

import (
	"fmt"
	"sync"
)

// Registry maps filter names and short aliases to their Spec. Modeled on
// the teacher's synthetic/parsers.Registry (name/extension → Parser),
// retargeted to filter names/aliases → Spec. Guarded by a mutex even
// though registration only happens from package init()s at program
// startup, matching the teacher's own defensive locking.
type Registry struct {
	mu      sync.RWMutex
	specs   map[string]*Spec
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty filter registry.
func NewRegistry() *Registry {
	return &Registry{
		specs:   make(map[string]*Spec),
		aliases: make(map[string]string),
	}
}

// Register adds spec under its canonical name and aliases. It panics on a
// duplicate name or alias: per spec §4.3, "duplicates are a compile-time
// programmer error" — a bug in this program, not a user-facing condition.
func (r *Registry) Register(spec Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.specs[spec.Name]; exists {
		panic(fmt.Sprintf("filter: duplicate registration for name %q", spec.Name))
	}
	s := spec
	r.specs[spec.Name] = &s

	for _, alias := range spec.Aliases {
		if _, exists := r.aliases[alias]; exists {
			panic(fmt.Sprintf("filter: duplicate registration for alias %q", alias))
		}
		if _, exists := r.specs[alias]; exists {
			panic(fmt.Sprintf("filter: alias %q collides with a canonical filter name", alias))
		}
		r.aliases[alias] = spec.Name
	}
}

// Get resolves a name (canonical or alias) to its Spec, case-sensitively
// per spec §4.3.
func (r *Registry) Get(name string) (*Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if spec, ok := r.specs[name]; ok {
		return spec, true
	}
	if canonical, ok := r.aliases[name]; ok {
		return r.specs[canonical], true
	}
	return nil, false
}

// List returns every registered Spec, keyed by canonical name.
func (r *Registry) List() map[string]*Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*Spec, len(r.specs))
	for name, spec := range r.specs {
		out[name] = spec
	}
	return out
}

// Default is the global registry every built-in filter file registers
// itself into via init().
var Default = NewRegistry()

// Register adds spec to the default registry.
func Register(spec Spec) { Default.Register(spec) }

// Get resolves name against the default registry.
func Get(name string) (*Spec, bool) { return Default.Get(name) }
