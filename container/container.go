// Package container is the application facing side of the bean factory: it scans a
// package, builds every bean once and serves lookups by name or type.
package container

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/sghaida/bring/di"
)

// ErrEmptyPackage is returned when no package to scan is given.
var ErrEmptyPackage = errors.New("container: package is empty, specify the package name")

// Source produces the definitions found in a package.
type Source interface {
	Scan(pkg string) (map[string]*di.Definition, error)
}

// FieldDiscoverer is implemented by sources that can describe the fields of runtime
// types their definitions do not declare. scan.Scanner implements it.
type FieldDiscoverer interface {
	Fields(t reflect.Type) ([]di.Field, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(pkg string) (map[string]*di.Definition, error)

// Scan implements Source.
func (f SourceFunc) Scan(pkg string) (map[string]*di.Definition, error) { return f(pkg) }

// Option configures a Container.
type Option func(*settings)

type settings struct {
	logger       *zap.Logger
	interceptors []di.Interceptor
	registerer   prometheus.Registerer
	fieldSource  di.FieldSource
}

// WithLogger sets the logger handed to the bean factory.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithInterceptors appends interceptors to the factory chain.
func WithInterceptors(interceptors ...di.Interceptor) Option {
	return func(s *settings) { s.interceptors = append(s.interceptors, interceptors...) }
}

// WithFieldSource overrides the field discovery handed to the bean factory. By
// default a source implementing FieldDiscoverer supplies it.
func WithFieldSource(source di.FieldSource) Option {
	return func(s *settings) { s.fieldSource = source }
}

// WithRegisterer sets where NewFromConfig registers the metrics interceptor.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *settings) { s.registerer = reg }
}

// Container holds the beans built from one package. It is read-only after New
// returns and safe for concurrent use.
type Container struct {
	pkg   string
	beans di.Beans
}

// New scans pkg once through source and builds every bean found.
func New(source Source, pkg string, opts ...Option) (*Container, error) {
	if pkg == "" {
		return nil, ErrEmptyPackage
	}
	if source == nil {
		return nil, errors.New("container: nil source")
	}

	s := settings{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	defs, err := source.Scan(pkg)
	if err != nil {
		return nil, fmt.Errorf("container: scan %q: %w", pkg, err)
	}

	if s.fieldSource == nil {
		if fd, ok := source.(FieldDiscoverer); ok {
			s.fieldSource = fd.Fields
		}
	}
	factory := di.NewFactory(
		di.WithLogger(s.logger),
		di.WithInterceptors(s.interceptors...),
		di.WithFieldSource(s.fieldSource),
	)
	beans, err := factory.Build(defs)
	if err != nil {
		return nil, fmt.Errorf("container: build %q: %w", pkg, err)
	}

	s.logger.Info("container ready",
		zap.String("package", pkg),
		zap.Int("beans", len(beans)),
	)
	return &Container{pkg: pkg, beans: beans}, nil
}

// Package returns the scanned package.
func (c *Container) Package() string { return c.pkg }

// Bean returns the bean called name.
func (c *Container) Bean(name string) (any, error) { return c.beans.Get(name) }

// BeanOfType returns the only bean assignable to t.
func (c *Container) BeanOfType(t reflect.Type) (any, error) { return c.beans.Single(t) }

// BeansOfType returns every bean assignable to t by name; the map is empty when none match.
func (c *Container) BeansOfType(t reflect.Type) map[string]any { return c.beans.OfType(t) }

// Names returns every bean name in ascending order, vetoed beans included.
func (c *Container) Names() []string { return c.beans.Names() }

// Len returns the number of beans, vetoed beans included.
func (c *Container) Len() int { return len(c.beans) }
