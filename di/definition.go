package di

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Class describes how instances of one runtime type are created and wired.
//
// Type is the class identity: the runtime type of the instances (usually a pointer
// to a struct). Name is an optional declared bean name; when empty, BeanName falls
// back to DefaultName(Type).
type Class struct {
	Type reflect.Type
	Name string

	// New is the zero-argument constructor. It is nil for classes that are only
	// produced by factory methods.
	New func() (any, error)

	// Fields lists the slots visible to the injection passes.
	Fields []Field
}

// ClassOf describes *T built by ctor. A nil ctor yields a class without constructor.
func ClassOf[T any](ctor func() *T, fields ...Field) *Class {
	c := &Class{Type: reflect.TypeFor[*T](), Fields: fields}
	if ctor != nil {
		c.New = func() (any, error) { return ctor(), nil }
	}
	return c
}

// ClassOfE is ClassOf for constructors that can fail.
func ClassOfE[T any](ctor func() (*T, error), fields ...Field) *Class {
	c := &Class{Type: reflect.TypeFor[*T](), Fields: fields}
	if ctor != nil {
		c.New = func() (any, error) { return ctor() }
	}
	return c
}

// Produces describes the type R returned by a factory method. It has no constructor.
func Produces[R any](fields ...Field) *Class {
	return &Class{Type: reflect.TypeFor[R](), Fields: fields}
}

// Named sets the declared bean name and returns the class for chaining.
func (c *Class) Named(name string) *Class {
	c.Name = name
	return c
}

// BeanName returns the declared name, or the default name derived from Type.
func (c *Class) BeanName() string {
	if c.Name != "" {
		return c.Name
	}
	return DefaultName(c.Type)
}

// TypeName returns the package-qualified type name of the class.
func (c *Class) TypeName() string { return TypeName(c.Type) }

// TypeName returns the package-qualified name of t with pointer indirections
// removed, e.g. "books.HarryPotterQuoter" for *books.HarryPotterQuoter.
// DependsOn lists are matched against this form.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// DefaultName derives a bean name from a type: the simple type name with a
// lower-case first letter (HarryPotterQuoter -> harryPotterQuoter).
func DefaultName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if name == "" {
		return t.String()
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToLower(r)) + name[size:]
}

// FactoryMethod is a method of a configuration bean that produces another bean.
// Factory methods take no externally supplied arguments.
type FactoryMethod struct {
	Name   string
	Invoke func(owner any) (any, error)
}

// Method describes a factory method fn on configuration type C.
func Method[C any, R any](name string, fn func(*C) R) *FactoryMethod {
	return MethodE(name, func(c *C) (R, error) { return fn(c), nil })
}

// MethodE is Method for factory methods that can fail.
func MethodE[C any, R any](name string, fn func(*C) (R, error)) *FactoryMethod {
	return &FactoryMethod{
		Name: name,
		Invoke: func(owner any) (any, error) {
			c, ok := owner.(*C)
			if !ok {
				return nil, fmt.Errorf("factory method %s: owner is %T, want %s", name, owner, reflect.TypeFor[*C]())
			}
			r, err := fn(c)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	}
}

// Definition is the descriptor of one named bean.
//
// Factory and Configuration are both set for factory-declared beans and both nil
// for plain components. DependsOn optionally restricts the explicit injection pass
// to fields whose TypeName is listed.
type Definition struct {
	Name          string
	Class         *Class
	Factory       *FactoryMethod
	Configuration *Class
	DependsOn     []string
}

// Component returns the definition of a plain component.
func Component(name string, class *Class, dependsOn ...string) *Definition {
	return &Definition{Name: name, Class: class, DependsOn: dependsOn}
}

// Bean returns the definition of a bean produced by method on the configuration class.
func Bean(name string, class, configuration *Class, method *FactoryMethod, dependsOn ...string) *Definition {
	return &Definition{
		Name:          name,
		Class:         class,
		Factory:       method,
		Configuration: configuration,
		DependsOn:     dependsOn,
	}
}

// IsFactory reports whether the bean is produced by a factory method.
func (d *Definition) IsFactory() bool { return d.Factory != nil }

// Validate checks the structural invariants of the definition.
func (d *Definition) Validate() error {
	if d == nil {
		return ErrNilDefinition
	}
	invalid := func(reason string) error { return InvalidDefinitionError{Name: d.Name, Reason: reason} }

	switch {
	case d.Name == "":
		return invalid("empty name")
	case d.Class == nil || d.Class.Type == nil:
		return invalid("missing class")
	case (d.Factory == nil) != (d.Configuration == nil):
		return invalid("factory method and configuration class must be set together")
	case d.Factory != nil && d.Factory.Invoke == nil:
		return invalid("factory method " + d.Factory.Name + " has no invoker")
	case d.Configuration != nil && d.Configuration.Type == nil:
		return invalid("configuration class has no type")
	}
	return nil
}
