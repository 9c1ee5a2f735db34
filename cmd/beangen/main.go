// cmd/beangen/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"
)

// DefaultDIImport is the import path of the di package used by generated code.
const DefaultDIImport = "github.com/sghaida/bring/di"

// FieldSpec describes one injectable field of a generated class.
type FieldSpec struct {
	// Field is the Go field name on the owner struct.
	Field string `json:"field"`

	// Type is the Go type of the dependency.
	Type string `json:"type"`

	// Inject marks the field for the implicit injection pass.
	Inject bool `json:"inject"`

	// Ref names the bean to inject; empty means by type. Requires Inject.
	Ref string `json:"ref"`
}

// ComponentSpec describes a plain component or a configuration.
type ComponentSpec struct {
	Name string `json:"name"`

	// Type is the struct type name; instances are *Type.
	Type string `json:"type"`

	// Constructor is a func() *Type (or func() (*Type, error) with ConstructorReturnsError).
	// Empty means new(Type).
	Constructor             string `json:"constructor"`
	ConstructorReturnsError bool   `json:"constructorReturnsError"`

	DependsOn []string    `json:"dependsOn"`
	Fields    []FieldSpec `json:"fields"`
}

// BeanSpec describes a bean produced by a method of a configuration.
type BeanSpec struct {
	Name string `json:"name"`

	// Method is the method name on *Configuration.Type.
	Method       string `json:"method"`
	Returns      string `json:"returns"`
	ReturnsError bool   `json:"returnsError"`

	// ImplType is the struct type behind Returns; required when Fields is not empty.
	ImplType string `json:"implType"`

	DependsOn []string    `json:"dependsOn"`
	Fields    []FieldSpec `json:"fields"`
}

// ConfigurationSpec is a component owning factory methods.
type ConfigurationSpec struct {
	ComponentSpec
	Beans []BeanSpec `json:"beans"`
}

// ImportSpec models one Go import: optional alias and full import path.
type ImportSpec struct {
	Alias string `json:"alias"`
	Path  string `json:"path"`
}

// Spec is the full input schema consumed by the generator.
type Spec struct {
	Package string `json:"package"`

	// Func is the name of the generated registration function (default Register).
	Func string `json:"func"`

	// DIImport overrides the di import path.
	DIImport string `json:"diImport"`

	Imports        []ImportSpec        `json:"imports"`
	Components     []ComponentSpec     `json:"components"`
	Configurations []ConfigurationSpec `json:"configurations"`
}

// run executes the generator logic and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stderr io.Writer) int {
	flags := flag.NewFlagSet("beangen", flag.ContinueOnError)
	flags.SetOutput(stderr)

	specPath := flags.String("spec", "", "path to beans.json")
	outPath := flags.String("out", "", "output .gen.go file path")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*specPath) == "" || strings.TrimSpace(*outPath) == "" {
		_, _ = fmt.Fprintln(stderr, "usage: beangen -spec <beans.json> -out <file.gen.go>")
		return 2
	}

	specBytes, err := os.ReadFile(*specPath)
	must(err)

	var spec Spec
	must(json.Unmarshal(specBytes, &spec))

	applyDefaults(&spec)
	validateSpec(&spec)

	src, err := generate(&spec)
	must(err)

	must(writeFileAtomic(filepath.Clean(*outPath), src, 0o644))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// applyDefaults fills optional spec values: function name, di import and bean names.
func applyDefaults(spec *Spec) {
	if strings.TrimSpace(spec.Func) == "" {
		spec.Func = "Register"
	}
	if strings.TrimSpace(spec.DIImport) == "" {
		spec.DIImport = DefaultDIImport
	}
	for i := range spec.Components {
		c := &spec.Components[i]
		if c.Name == "" {
			c.Name = lowerFirst(c.Type)
		}
	}
	for i := range spec.Configurations {
		c := &spec.Configurations[i]
		if c.Name == "" {
			c.Name = lowerFirst(c.Type)
		}
		for j := range c.Beans {
			b := &c.Beans[j]
			if b.Name == "" {
				b.Name = lowerFirst(b.Method)
			}
		}
	}
}

// validateSpec validates semantic correctness of the input specification.
// It panics with a descriptive error, the generator has no partial output.
func validateSpec(spec *Spec) {
	var missingFields []string

	requireNonEmpty := func(fieldName, value string) {
		if strings.TrimSpace(value) == "" {
			missingFields = append(missingFields, fieldName)
		}
	}

	requireNonEmpty("package", spec.Package)
	if len(spec.Components) == 0 && len(spec.Configurations) == 0 {
		missingFields = append(missingFields, "components or configurations (must have at least 1)")
	}
	for i, c := range spec.Components {
		requireNonEmpty(fmt.Sprintf("components[%d].type", i), c.Type)
	}
	for i, c := range spec.Configurations {
		requireNonEmpty(fmt.Sprintf("configurations[%d].type", i), c.Type)
		for j, b := range c.Beans {
			requireNonEmpty(fmt.Sprintf("configurations[%d].beans[%d].method", i, j), b.Method)
			requireNonEmpty(fmt.Sprintf("configurations[%d].beans[%d].returns", i, j), b.Returns)
		}
	}

	if len(missingFields) > 0 {
		panic(fmt.Errorf("spec missing required fields: %v", missingFields))
	}

	seenNames := make(map[string]struct{})
	checkName := func(name string) {
		if _, ok := seenNames[name]; ok {
			panic(fmt.Errorf("duplicate bean name: %s", name))
		}
		seenNames[name] = struct{}{}
	}
	checkFields := func(owner string, fields []FieldSpec) {
		seenFields := make(map[string]struct{}, len(fields))
		for _, f := range fields {
			if f.Field == "" || f.Type == "" {
				panic(fmt.Errorf("%s: each field must have field/type; got: %+v", owner, f))
			}
			if f.Ref != "" && !f.Inject {
				panic(fmt.Errorf("%s: field %s has a ref but is not marked inject", owner, f.Field))
			}
			if _, ok := seenFields[f.Field]; ok {
				panic(fmt.Errorf("%s: duplicate field: %s", owner, f.Field))
			}
			seenFields[f.Field] = struct{}{}
		}
	}

	for _, c := range spec.Components {
		checkName(c.Name)
		checkFields(c.Name, c.Fields)
	}
	for _, c := range spec.Configurations {
		checkName(c.Name)
		checkFields(c.Name, c.Fields)
		for _, b := range c.Beans {
			checkName(b.Name)
			if len(b.Fields) > 0 && b.ImplType == "" {
				panic(fmt.Errorf("%s: fields require implType", b.Name))
			}
			checkFields(b.Name, b.Fields)
		}
	}
}

// generate renders and formats the registration file.
func generate(spec *Spec) ([]byte, error) {
	imports := []ImportSpec{{Path: spec.DIImport}}
	if path.Base(spec.DIImport) != "di" {
		imports[0].Alias = "di"
	}
	for _, imp := range spec.Imports {
		ensureImport(&imports, imp)
	}

	var out strings.Builder
	if err := genTemplate.Execute(&out, templateData{Spec: spec, Imports: imports}); err != nil {
		return nil, err
	}

	src, err := format.Source([]byte(out.String()))
	if err != nil {
		return nil, fmt.Errorf("gofmt/format failed: %w\n%s", err, out.String())
	}
	return src, nil
}

// templateData is the input passed to the Go template.
type templateData struct {
	Spec    *Spec
	Imports []ImportSpec
}

func ensureImport(imports *[]ImportSpec, required ImportSpec) {
	if strings.TrimSpace(required.Path) == "" {
		return
	}
	for _, existing := range *imports {
		if existing.Path == required.Path {
			return
		}
	}
	*imports = append(*imports, required)
}

func lowerFirst(s string) string {
	s = strings.TrimLeft(s, "*")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// constructorExpr renders the constructor argument of di.ClassOf / di.ClassOfE.
func constructorExpr(c ComponentSpec) string {
	if c.Constructor != "" {
		return c.Constructor
	}
	if c.ConstructorReturnsError {
		return fmt.Sprintf("func() (*%s, error) { return new(%s), nil }", c.Type, c.Type)
	}
	return fmt.Sprintf("func() *%s { return new(%s) }", c.Type, c.Type)
}

// fieldExpr renders one typed field helper call.
func fieldExpr(owner string, f FieldSpec) string {
	set := fmt.Sprintf("func(t *%s, d %s) { t.%s = d }", owner, f.Type, f.Field)
	switch {
	case f.Inject && f.Ref != "":
		return fmt.Sprintf("di.InjectNamed(%q, %q, %s)", f.Field, f.Ref, set)
	case f.Inject:
		return fmt.Sprintf("di.Inject(%q, %s)", f.Field, set)
	default:
		return fmt.Sprintf("di.Declare(%q, %s)", f.Field, set)
	}
}

// argList renders call arguments: lead alone when there are no fields, otherwise
// lead followed by one field helper per line.
func argList(indent, lead, owner string, fields []FieldSpec) string {
	if len(fields) == 0 {
		return lead
	}
	var sb strings.Builder
	if lead != "" {
		sb.WriteString(lead + ",")
	}
	for _, f := range fields {
		sb.WriteString("\n" + indent + "\t" + fieldExpr(owner, f) + ",")
	}
	sb.WriteString("\n" + indent)
	return sb.String()
}

func dependsOnExpr(deps []string) string {
	var sb strings.Builder
	for _, d := range deps {
		fmt.Fprintf(&sb, ", %q", d)
	}
	return sb.String()
}

// genTemplate is the Go source template used to generate the registration code.
var genTemplate = template.Must(
	template.New("beangen").Funcs(template.FuncMap{
		"ctor":      constructorExpr,
		"args":      argList,
		"dependsOn": dependsOnExpr,
	}).Parse(`// Code generated by beangen; DO NOT EDIT.

package {{.Spec.Package}}

import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Spec.Func}} adds the bean definitions of package {{.Spec.Package}} to r.
func {{.Spec.Func}}(r *di.Registry) *di.Registry {
{{- range .Spec.Components}}
	r.Register(di.Component({{printf "%q" .Name}}, di.ClassOf{{if .ConstructorReturnsError}}E{{end}}({{args "\t" (ctor .) .Type .Fields}}){{dependsOn .DependsOn}}))
{{- end}}
{{- range $c := .Spec.Configurations}}
	r.Register(di.Component({{printf "%q" $c.Name}}, di.ClassOf{{if $c.ConstructorReturnsError}}E{{end}}({{args "\t" (ctor $c.ComponentSpec) $c.Type $c.Fields}}){{dependsOn $c.DependsOn}}))
{{- range $c.Beans}}
	r.Register(di.Bean({{printf "%q" .Name}},
		di.Produces[{{.Returns}}]({{args "\t\t" "" .ImplType .Fields}}),
		di.ClassOf[{{$c.Type}}](nil).Named({{printf "%q" $c.Name}}),
		di.Method{{if .ReturnsError}}E{{end}}({{printf "%q" .Method}}, (*{{$c.Type}}).{{.Method}}){{dependsOn .DependsOn}},
	))
{{- end}}
{{- end}}
	return r
}
`),
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes to a temporary file in the same directory and renames it
// over targetPath, so readers never observe partial writes.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	targetDir := filepath.Dir(targetPath)

	tmpFile, err := createTempFile(targetDir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}

// must panics if err is non-nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
