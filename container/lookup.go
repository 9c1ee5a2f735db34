package container

import (
	"fmt"
	"reflect"

	"github.com/sghaida/bring/di"
)

// Get returns the only bean assignable to T.
func Get[T any](c *Container) (T, error) {
	var zero T
	v, err := c.BeanOfType(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// GetNamed returns the bean called name as a T.
func GetNamed[T any](c *Container, name string) (T, error) {
	var zero T
	v, err := c.Bean(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, di.BeanTypeError{
			Name: name,
			Want: reflect.TypeFor[T]().String(),
			Got:  fmt.Sprintf("%T", v),
		}
	}
	return t, nil
}

// All returns every bean assignable to T by name.
func All[T any](c *Container) map[string]T {
	found := c.BeansOfType(reflect.TypeFor[T]())
	out := make(map[string]T, len(found))
	for name, v := range found {
		out[name] = v.(T)
	}
	return out
}

// MustGet is Get for wiring code; it panics when the lookup fails.
func MustGet[T any](c *Container) T {
	v, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return v
}
