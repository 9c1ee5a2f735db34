package di

import (
	"reflect"
	"sort"
)

// Reference is a dependency site: a field of Owner to be filled with one bean.
// Name, when set, selects the bean explicitly; otherwise Type is matched.
type Reference struct {
	Owner any
	Field string
	Type  reflect.Type
	Name  string
}

// Resolve returns the single bean satisfying ref.
//
// An explicit name is an exact lookup. Otherwise the bean is matched by type and
// the owner's own runtime type is never a candidate for itself.
func Resolve(ref Reference, beans Beans) (any, error) {
	if ref.Name != "" {
		return ResolveByName(beans, ref.Name)
	}
	return ResolveByType(beans, ref.Type, reflect.TypeOf(ref.Owner))
}

// ResolveByName returns the bean registered under name. A missing or vetoed (nil)
// entry is a NoSuchBeanError.
func ResolveByName(beans Beans, name string) (any, error) {
	bean, ok := beans[name]
	if !ok || isNil(bean) {
		return nil, NoSuchBeanError{Name: name}
	}
	return bean, nil
}

// ResolveByType returns the only bean assignable to requested whose runtime type is
// not exclude. Zero matches is a NoSuchBeanError, more than one a NoUniqueBeanError.
func ResolveByType(beans Beans, requested, exclude reflect.Type) (any, error) {
	names := candidates(beans, requested, exclude)
	switch len(names) {
	case 0:
		return nil, NoSuchBeanError{Type: TypeName(requested)}
	case 1:
		return beans[names[0]], nil
	default:
		return nil, NoUniqueBeanError{Type: TypeName(requested), Candidates: names}
	}
}

// candidates returns the sorted names of non-nil beans assignable to requested.
// A nil exclude excludes nothing.
func candidates(beans Beans, requested, exclude reflect.Type) []string {
	if requested == nil {
		return nil
	}
	var names []string
	for name, bean := range beans {
		if isNil(bean) {
			continue
		}
		t := reflect.TypeOf(bean)
		if exclude != nil && t == exclude {
			continue
		}
		if t.AssignableTo(requested) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// isNil reports whether v is nil or a typed nil (pointer, map, func, ...).
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
