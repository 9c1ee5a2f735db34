package di

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Factory builds Beans from Definitions.
//
// A Factory is not safe for concurrent Build calls. Each Build is single threaded
// and runs to completion or fails; a failed build returns no beans.
type Factory struct {
	chain        *Chain
	logger       *zap.Logger
	interceptors []Interceptor
	fieldSource  FieldSource
}

// FieldSource discovers the fields of a runtime type that no definition declares,
// such as the concrete product of a factory method declared with an interface type.
type FieldSource func(t reflect.Type) ([]Field, error)

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithLogger sets the logger used by the factory and its default chain.
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithInterceptors appends interceptors to the factory chain.
func WithInterceptors(interceptors ...Interceptor) FactoryOption {
	return func(f *Factory) { f.interceptors = append(f.interceptors, interceptors...) }
}

// WithChain starts the factory chain from a copy of chain. Interceptors given
// through WithInterceptors are appended to the copy; chain itself is not modified.
func WithChain(chain *Chain) FactoryOption {
	return func(f *Factory) {
		if chain != nil {
			f.chain = chain
		}
	}
}

// WithFieldSource sets how fields are discovered for beans whose runtime type
// matches no declared class.
func WithFieldSource(source FieldSource) FactoryOption {
	return func(f *Factory) { f.fieldSource = source }
}

// NewFactory returns a factory with an empty interceptor chain and a no-op logger.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	if f.chain == nil {
		f.chain = NewChain(f.logger)
	} else {
		f.chain = f.chain.clone()
	}
	f.chain.Add(f.interceptors...)
	return f
}

// Chain returns the interceptor chain of the factory.
func (f *Factory) Chain() *Chain { return f.chain }

// Build constructs every bean described by defs and wires their fields.
//
// Order of work:
//  1. plain components (sorted by name), each passed through the chain
//  2. factory-declared beans, invoked on their configuration bean, each passed through the chain
//  3. implicit injection of fields marked Inject
//  4. explicit injection of fields whose type name is listed in DependsOn
func (f *Factory) Build(defs map[string]*Definition) (Beans, error) {
	plain := make(map[string]*Definition)
	declared := make(map[string]*Definition)
	for key, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if def.Name != key {
			return nil, InvalidDefinitionError{Name: def.Name, Reason: "registered under " + key}
		}
		if def.IsFactory() {
			declared[def.Name] = def
		} else {
			plain[def.Name] = def
		}
	}

	components := make(Beans, len(plain))
	for _, name := range sortedNames(plain) {
		bean, err := f.createComponent(plain[name])
		if err != nil {
			return nil, err
		}
		components[name] = bean
	}

	produced := make(Beans, len(declared))
	for _, name := range sortedNames(declared) {
		bean, err := f.createDeclared(declared[name], components)
		if err != nil {
			return nil, err
		}
		produced[name] = bean
	}

	// Names cannot collide here: defs is keyed by name and every key matches its
	// definition, so a plain and a factory-declared bean never share one.
	beans := make(Beans, len(components)+len(produced))
	for name, bean := range components {
		beans[name] = bean
	}
	for name, bean := range produced {
		beans[name] = bean
	}

	classes := classIndex(defs)
	if err := f.injectMarked(defs, beans, classes); err != nil {
		return nil, err
	}
	if err := f.injectDependsOn(defs, beans, classes); err != nil {
		return nil, err
	}

	f.logger.Debug("beans built", zap.Int("count", len(beans)))
	return beans, nil
}

func (f *Factory) createComponent(def *Definition) (any, error) {
	if def.Class.New == nil {
		return nil, InstantiationError{Name: def.Name, Cause: ErrNoConstructor}
	}
	bean, err := invoke(def.Name, def.Class.New)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("component created", zap.String("bean", def.Name), zap.String("type", def.Class.TypeName()))
	return f.chain.Apply(bean, def.Name), nil
}

func (f *Factory) createDeclared(def *Definition, components Beans) (any, error) {
	ownerName := def.Configuration.BeanName()
	owner, ok := components[ownerName]
	if !ok || isNil(owner) {
		return nil, NoSuchBeanError{Name: ownerName}
	}
	bean, err := invoke(def.Name, func() (any, error) { return def.Factory.Invoke(owner) })
	if err != nil {
		return nil, err
	}
	f.logger.Debug("bean created by factory method",
		zap.String("bean", def.Name),
		zap.String("configuration", ownerName),
		zap.String("method", def.Factory.Name),
	)
	return f.chain.Apply(bean, def.Name), nil
}

// invoke calls fn and converts errors, panics and nil results into an InstantiationError.
func invoke(name string, fn func() (any, error)) (bean any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			bean = nil
			err = InstantiationError{Name: name, Cause: fmt.Errorf("panic: %v", rec)}
		}
	}()
	bean, err = fn()
	if err != nil {
		return nil, InstantiationError{Name: name, Cause: err}
	}
	if isNil(bean) {
		return nil, InstantiationError{Name: name, Cause: ErrNilInstance}
	}
	return bean, nil
}

// classIndex maps runtime types to the classes declared for them.
func classIndex(defs map[string]*Definition) map[reflect.Type]*Class {
	index := make(map[reflect.Type]*Class, len(defs))
	for _, name := range sortedNames(defs) {
		def := defs[name]
		if _, seen := index[def.Class.Type]; !seen {
			index[def.Class.Type] = def.Class
		}
	}
	return index
}

// fieldsOf returns the fields of bean, in order of preference: its own when it is a
// FieldProvider, its definition's class when the runtime type matches, the class
// declared for its runtime type (interceptor replacements), its definition's class
// when the bean is assignable to it and the class declares fields, and finally the
// fields discovered by the field source for the runtime type.
func (f *Factory) fieldsOf(name string, bean any, def *Definition, classes map[reflect.Type]*Class) ([]Field, error) {
	if fp, ok := bean.(FieldProvider); ok {
		return fp.BeanFields(), nil
	}
	t := reflect.TypeOf(bean)
	if def != nil && t == def.Class.Type {
		return def.Class.Fields, nil
	}
	if c, ok := classes[t]; ok {
		return c.Fields, nil
	}
	if def != nil && t.AssignableTo(def.Class.Type) && len(def.Class.Fields) > 0 {
		return def.Class.Fields, nil
	}
	if f.fieldSource == nil {
		return nil, nil
	}
	fields, err := f.fieldSource(t)
	if err != nil {
		return nil, InvalidDefinitionError{Name: name, Reason: "fields of " + TypeName(t) + ": " + err.Error()}
	}
	return fields, nil
}

func (f *Factory) injectMarked(defs map[string]*Definition, beans Beans, classes map[reflect.Type]*Class) error {
	for _, name := range sortedNames(beans) {
		bean := beans[name]
		if isNil(bean) {
			continue
		}
		fields, err := f.fieldsOf(name, bean, defs[name], classes)
		if err != nil {
			return err
		}
		for _, field := range fields {
			if !field.Inject {
				continue
			}
			if err := f.inject(name, bean, field, beans); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Factory) injectDependsOn(defs map[string]*Definition, beans Beans, classes map[reflect.Type]*Class) error {
	for _, name := range sortedNames(defs) {
		def := defs[name]
		if len(def.DependsOn) == 0 {
			continue
		}
		bean := beans[name]
		if isNil(bean) {
			continue
		}
		wanted := make(map[string]struct{}, len(def.DependsOn))
		for _, typeName := range def.DependsOn {
			wanted[typeName] = struct{}{}
		}
		fields, err := f.fieldsOf(name, bean, def, classes)
		if err != nil {
			return err
		}
		for _, field := range fields {
			if _, ok := wanted[TypeName(field.Type)]; !ok {
				continue
			}
			if err := f.inject(name, bean, field, beans); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Factory) inject(name string, bean any, field Field, beans Beans) error {
	dep, err := Resolve(Reference{Owner: bean, Field: field.Name, Type: field.Type, Name: field.Ref}, beans)
	if err != nil {
		return err
	}
	if err := field.assign(bean, dep); err != nil {
		return err
	}
	f.logger.Debug("field injected",
		zap.String("bean", name),
		zap.String("field", field.Name),
		zap.String("dependency", TypeName(reflect.TypeOf(dep))),
	)
	return nil
}
