package di

import "reflect"

// Beans is the instance map produced by Factory.Build: bean name to instance.
// A bean vetoed by an interceptor is present with a nil value.
type Beans map[string]any

// Get returns the bean called name. See ResolveByName.
func (b Beans) Get(name string) (any, error) { return ResolveByName(b, name) }

// Single returns the only bean assignable to t.
func (b Beans) Single(t reflect.Type) (any, error) { return ResolveByType(b, t, nil) }

// OfType returns every non-nil bean assignable to t, keyed by name.
func (b Beans) OfType(t reflect.Type) map[string]any {
	names := candidates(b, t, nil)
	out := make(map[string]any, len(names))
	for _, name := range names {
		out[name] = b[name]
	}
	return out
}

// Names returns the bean names in ascending order, vetoed beans included.
func (b Beans) Names() []string { return sortedNames(b) }
