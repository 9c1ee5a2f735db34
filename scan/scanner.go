package scan

import (
	"errors"
	"reflect"
	"strings"

	"github.com/sghaida/bring/di"
)

// Scanner turns catalog registrations into bean definitions.
type Scanner struct {
	catalog *Catalog
}

// New returns a scanner over catalog; a nil catalog means Default.
func New(catalog *Catalog) *Scanner {
	if catalog == nil {
		catalog = Default
	}
	return &Scanner{catalog: catalog}
}

// Scan returns the definitions of every registration whose package path equals pkg
// or is nested under it. A package without registrations yields an empty map.
//
// Registration errors, duplicate names and invalid definitions of the matched
// entries are joined into the returned error.
func (s *Scanner) Scan(pkg string) (map[string]*di.Definition, error) {
	pkg = strings.TrimSuffix(pkg, "/")

	var matched []Entry
	for _, e := range s.catalog.Entries() {
		if inPackage(e.pkg, pkg) {
			matched = append(matched, e)
		}
	}

	// configuration names by type, so that factory-declared beans find their owner
	// even when the configuration was registered under a custom name
	owners := make(map[reflect.Type]*di.Class)
	for _, e := range matched {
		if e.err == nil && e.kind == kindConfiguration {
			owners[e.class.Type] = e.class
		}
	}

	var errs []error
	reg := di.NewRegistry()
	for _, e := range matched {
		if e.err != nil {
			errs = append(errs, e.err)
			continue
		}
		reg.Register(e.definition(owners))
	}

	defs, err := reg.Definitions()
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return defs, nil
}

func (e Entry) definition(owners map[reflect.Type]*di.Class) *di.Definition {
	if e.kind != kindBean {
		return di.Component(e.name, e.class, e.dependsOn...)
	}
	configuration, ok := owners[e.owner]
	if !ok {
		// unregistered owner: Build reports the missing configuration bean
		configuration = &di.Class{Type: e.owner}
	}
	return di.Bean(e.name, e.class, configuration, e.method, e.dependsOn...)
}

// Fields implements the field discovery used by containers built from this scanner.
// See the package level Fields.
func (s *Scanner) Fields(t reflect.Type) ([]di.Field, error) { return Fields(t) }

func inPackage(path, pkg string) bool {
	if pkg == "" {
		return false
	}
	return path == pkg || strings.HasPrefix(path, pkg+"/")
}
