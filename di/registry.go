package di

import (
	"fmt"
	"sort"
)

// Registry accumulates Definitions and produces the immutable descriptor store
// consumed by Factory.Build.
//
// It is intentionally:
// - append-only
// - build-time only
// - fail-late: the first registration error is kept and reported by Definitions
//
// Expected usage:
//
//	defs, err := di.NewRegistry().Register(a).Register(b).Definitions()
type Registry struct {
	items map[string]*Definition
	order []string
	err   error
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: map[string]*Definition{}}
}

// Register validates and stores a definition and returns the registry for chaining.
// Once an error has been recorded, later registrations are ignored.
func (r *Registry) Register(def *Definition) *Registry {
	if r.err != nil {
		return r
	}
	if err := def.Validate(); err != nil {
		r.err = err
		return r
	}
	if _, exists := r.items[def.Name]; exists {
		r.err = DuplicateBeanError{Name: def.Name}
		return r
	}
	r.items[def.Name] = def
	r.order = append(r.order, def.Name)
	return r
}

// RegisterAll registers every definition in order.
func (r *Registry) RegisterAll(defs ...*Definition) *Registry {
	for _, def := range defs {
		r.Register(def)
	}
	return r
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int { return len(r.items) }

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Definitions returns a copy of the store keyed by bean name, or the first
// registration error.
func (r *Registry) Definitions() (map[string]*Definition, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]*Definition, len(r.items))
	for k, v := range r.items {
		out[k] = v
	}
	return out, nil
}

// MustDefinitions returns the store or panics with the registration error.
// Useful in examples/tests where a broken registry should fail fast.
func (r *Registry) MustDefinitions() map[string]*Definition {
	defs, err := r.Definitions()
	if err != nil {
		panic(fmt.Errorf("di: registry: %w", err))
	}
	return defs
}

// sortedNames returns the keys of m in ascending order.
func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
