// Package scan discovers bean definitions from types registered in a Catalog.
//
// Packages register their components from init:
//
//	func init() {
//		scan.Default.Add(
//			scan.Component[HarryPotterQuoter](scan.Named("hp")),
//			scan.Configuration[QuoterConfig](),
//			scan.Bean("Dune", (*QuoterConfig).Dune),
//		)
//	}
//
// and a Scanner turns the registrations below a package path into definitions.
package scan

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sghaida/bring/di"
)

// Default is the process wide catalog used by init-time registration.
var Default = NewCatalog()

type kind int

const (
	kindComponent kind = iota
	kindConfiguration
	kindBean
)

func (k kind) String() string {
	switch k {
	case kindConfiguration:
		return "configuration"
	case kindBean:
		return "bean"
	default:
		return "component"
	}
}

// Entry is one registration: a component, a configuration or a factory-declared bean.
type Entry struct {
	kind      kind
	name      string
	pkg       string
	class     *di.Class
	owner     reflect.Type // configuration type of a factory-declared bean
	method    *di.FactoryMethod
	dependsOn []string
	err       error
}

// Name is the bean name the entry registers.
func (e Entry) Name() string { return e.name }

// Package is the import path the entry is scanned under.
func (e Entry) Package() string { return e.pkg }

// Err reports a registration that cannot produce a definition.
func (e Entry) Err() error { return e.err }

// Option configures a registration.
type Option func(*options)

type options struct {
	name      string
	dependsOn []string
	ctor      any
}

// Named overrides the default bean name.
func Named(name string) Option {
	return func(o *options) { o.name = name }
}

// DependsOn lists the type names (see di.TypeName) filled by the explicit injection pass.
func DependsOn(typeNames ...string) Option {
	return func(o *options) { o.dependsOn = append(o.dependsOn, typeNames...) }
}

// Constructor replaces the zero value constructor of a component or configuration.
func Constructor[T any](fn func() *T) Option {
	return func(o *options) { o.ctor = fn }
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Component registers *T as a plain component.
func Component[T any](opts ...Option) Entry {
	return component[T](kindComponent, opts)
}

// Configuration registers *T as a configuration component, the owner of factory methods.
func Configuration[T any](opts ...Option) Entry {
	return component[T](kindConfiguration, opts)
}

func component[T any](k kind, opts []Option) Entry {
	o := apply(opts)
	t := reflect.TypeFor[*T]()
	e := Entry{
		kind:      k,
		name:      o.name,
		pkg:       t.Elem().PkgPath(),
		dependsOn: o.dependsOn,
	}
	if e.name == "" {
		e.name = di.DefaultName(t)
	}

	ctor := func() *T { return new(T) }
	if o.ctor != nil {
		fn, ok := o.ctor.(func() *T)
		if !ok {
			e.err = fmt.Errorf("scan: %s %s: constructor is %T, want %s", k, e.name, o.ctor, reflect.TypeFor[func() *T]())
			return e
		}
		ctor = fn
	}

	fields, err := Fields(t)
	if err != nil {
		e.err = fmt.Errorf("scan: %s %s: %w", k, e.name, err)
		return e
	}
	e.class = di.ClassOf(ctor, fields...).Named(e.name)
	return e
}

// Bean registers the result of method fn on configuration C as a factory-declared bean.
// Its default name is the method name with a lower-case first letter.
func Bean[C any, R any](method string, fn func(*C) R, opts ...Option) Entry {
	o := apply(opts)
	owner := reflect.TypeFor[*C]()
	e := Entry{
		kind:      kindBean,
		name:      o.name,
		pkg:       owner.Elem().PkgPath(),
		owner:     owner,
		dependsOn: o.dependsOn,
	}
	if e.name == "" {
		e.name = lowerFirst(method)
	}
	switch {
	case method == "":
		e.err = fmt.Errorf("scan: bean of %s: empty method name", di.TypeName(owner))
		return e
	case fn == nil:
		e.err = fmt.Errorf("scan: bean %s: nil factory method", e.name)
		return e
	}

	fields, err := Fields(reflect.TypeFor[R]())
	if err != nil {
		e.err = fmt.Errorf("scan: bean %s: %w", e.name, err)
		return e
	}
	e.class = di.Produces[R](fields...)
	e.method = di.Method(method, fn)
	return e
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// Catalog collects registrations. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// Add appends entries and returns the catalog for chaining.
func (c *Catalog) Add(entries ...Entry) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entries...)
	return c
}

// Len returns the number of registrations.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Entries returns a copy of the registrations in registration order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Entry(nil), c.entries...)
}
