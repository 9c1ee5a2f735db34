package di

import (
	"fmt"
	"reflect"
)

// Field is an injectable slot of a class.
//
// Inject marks the field for the implicit injection pass; Ref optionally names the
// bean to inject. Fields with Inject=false are only filled by the explicit pass,
// when their TypeName appears in the definition's DependsOn list.
type Field struct {
	Name   string
	Type   reflect.Type
	Inject bool
	Ref    string

	// Assign writes value into target. When nil, the target must implement Injectable.
	Assign func(target, value any) error
}

// Injectable is implemented by beans that assign their own dependency fields.
type Injectable interface {
	InjectField(name string, value any) error
}

// FieldProvider is implemented by beans that describe their own fields. It takes
// precedence over the fields of the class the bean was declared with.
type FieldProvider interface {
	BeanFields() []Field
}

// Inject declares a field of *T of type D, filled by type during the implicit pass.
func Inject[T any, D any](name string, set func(*T, D)) Field {
	return typedField(name, true, "", set)
}

// InjectNamed declares a field of *T filled with the bean called ref.
func InjectNamed[T any, D any](name, ref string, set func(*T, D)) Field {
	return typedField(name, true, ref, set)
}

// Declare declares a field of *T that is not marked for injection. It is only
// filled when a DependsOn list names its type.
func Declare[T any, D any](name string, set func(*T, D)) Field {
	return typedField(name, false, "", set)
}

func typedField[T any, D any](name string, inject bool, ref string, set func(*T, D)) Field {
	return Field{
		Name:   name,
		Type:   reflect.TypeFor[D](),
		Inject: inject,
		Ref:    ref,
		Assign: func(target, value any) error {
			t, ok := target.(*T)
			if !ok {
				return fmt.Errorf("target is %T, want %s", target, reflect.TypeFor[*T]())
			}
			d, ok := value.(D)
			if !ok {
				return fmt.Errorf("value is %T, want %s", value, reflect.TypeFor[D]())
			}
			set(t, d)
			return nil
		},
	}
}

// assign writes value into the field of bean and converts failures (including
// panics in the assigner) into an InjectionError.
func (f Field) assign(bean, value any) (err error) {
	fail := func(cause error) error {
		return InjectionError{
			Source: TypeName(reflect.TypeOf(value)),
			Target: TypeName(reflect.TypeOf(bean)),
			Field:  f.Name,
			Cause:  cause,
		}
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fail(fmt.Errorf("panic: %v", rec))
		}
	}()

	if f.Assign != nil {
		if aerr := f.Assign(bean, value); aerr != nil {
			return fail(aerr)
		}
		return nil
	}
	if inj, ok := bean.(Injectable); ok {
		if ierr := inj.InjectField(f.Name, value); ierr != nil {
			return fail(ierr)
		}
		return nil
	}
	return fail(ErrNoAssigner)
}
