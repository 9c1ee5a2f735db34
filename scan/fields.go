package scan

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/sghaida/bring/di"
)

// TagInject is the struct tag marking a field for the implicit injection pass.
// An empty value injects by type, a non-empty value names the bean to inject.
const TagInject = "inject"

// ErrUnexportedField is returned for inject tags on fields reflection cannot set.
var ErrUnexportedField = errors.New("scan: inject tag on unexported field")

type discovered struct {
	fields []di.Field
	err    error
}

var fieldCache sync.Map // reflect.Type -> discovered

// Fields returns the injectable fields of t as discovered from its struct tags,
// cached per type. It is the di.FieldSource of scanned containers: the factory asks
// it for runtime types no definition declares.
func Fields(t reflect.Type) ([]di.Field, error) {
	if t == nil {
		return nil, nil
	}
	if d, ok := fieldCache.Load(t); ok {
		return d.(discovered).fields, d.(discovered).err
	}
	fields, err := fieldsOf(t)
	d, _ := fieldCache.LoadOrStore(t, discovered{fields: fields, err: err})
	return d.(discovered).fields, d.(discovered).err
}

// fieldsOf discovers the injectable fields of t once. t may be a struct or a pointer
// to one; other kinds have no fields.
//
//   - `inject:""` marks a field injected by type
//   - `inject:"name"` marks a field injected by bean name
//   - exported untagged pointer and interface fields are declared so that a
//     DependsOn list can fill them; value fields never hold a bean
func fieldsOf(t reflect.Type) ([]di.Field, error) {
	st := t
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, nil
	}
	owner := reflect.PointerTo(st)

	var fields []di.Field
	for i := range st.NumField() {
		sf := st.Field(i)
		ref, tagged := sf.Tag.Lookup(TagInject)

		if tagged && !sf.IsExported() {
			return nil, fmt.Errorf("%s.%s: %w", di.TypeName(st), sf.Name, ErrUnexportedField)
		}
		if !tagged && (!sf.IsExported() || sf.Anonymous || !declarable(sf.Type)) {
			continue
		}

		fields = append(fields, di.Field{
			Name:   sf.Name,
			Type:   sf.Type,
			Inject: tagged,
			Ref:    ref,
			Assign: setter(owner, sf),
		})
	}
	return fields, nil
}

func declarable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	default:
		return false
	}
}

// setter returns an assigner writing into field sf of a *struct of type owner.
func setter(owner reflect.Type, sf reflect.StructField) func(target, value any) error {
	index := sf.Index
	return func(target, value any) error {
		tv := reflect.ValueOf(target)
		if tv.Type() != owner || tv.IsNil() {
			return fmt.Errorf("target is %T, want %s", target, owner)
		}
		vv := reflect.ValueOf(value)
		if !vv.IsValid() || !vv.Type().AssignableTo(sf.Type) {
			return fmt.Errorf("value is %T, want %s", value, sf.Type)
		}
		tv.Elem().FieldByIndex(index).Set(vv)
		return nil
	}
}
