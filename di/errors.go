package di

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNilDefinition is returned when a nil *Definition is registered or built.
	ErrNilDefinition = errors.New("di: nil definition")

	// ErrNoAssigner is returned when a Field has no Assign function and the target
	// does not implement Injectable.
	ErrNoAssigner = errors.New("di: field has no assigner")

	// ErrNoConstructor is the cause of an InstantiationError for a plain component
	// whose class has no zero-argument constructor.
	ErrNoConstructor = errors.New("di: class has no zero-argument constructor")

	// ErrNilInstance is the cause of an InstantiationError when a constructor or a
	// factory method returns nil.
	ErrNilInstance = errors.New("di: constructor or factory method returned nil")
)

// InstantiationError is returned when a constructor or factory method fails.
// Cause holds the original error (or the recovered panic converted to an error).
type InstantiationError struct {
	Name  string
	Cause error
}

// Error implements the error interface.
func (e InstantiationError) Error() string {
	// Example: di: could not instantiate bean "book": boom
	msg := "di: could not instantiate bean " + strconv.Quote(e.Name)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the original cause.
func (e InstantiationError) Unwrap() error { return e.Cause }

// NoSuchBeanError is returned when a name or type lookup finds no candidate.
// Exactly one of Name and Type is set.
type NoSuchBeanError struct {
	Name string
	Type string
}

// Error implements the error interface.
func (e NoSuchBeanError) Error() string {
	if e.Name != "" {
		// Example: di: no bean named "hp"
		return "di: no bean named " + strconv.Quote(e.Name)
	}
	// Example: di: no bean of type "books.Quoter"
	return "di: no bean of type " + strconv.Quote(e.Type)
}

// NoUniqueBeanError is returned when a type lookup finds more than one candidate
// and no explicit name was given.
type NoUniqueBeanError struct {
	Type string

	// Candidates are the competing bean names, sorted.
	Candidates []string
}

// Error implements the error interface.
func (e NoUniqueBeanError) Error() string {
	// Example: di: expected single bean of type "books.Quoter" but found 2: [dune hp]
	return "di: expected single bean of type " + strconv.Quote(e.Type) +
		" but found " + strconv.Itoa(len(e.Candidates)) +
		": [" + strings.Join(e.Candidates, " ") + "]"
}

// InjectionError is returned when a resolved dependency cannot be written into its
// target field.
type InjectionError struct {
	// Source is the type name of the dependency being injected.
	Source string
	// Target is the type name of the bean receiving it.
	Target string
	Field  string
	Cause  error
}

// Error implements the error interface.
func (e InjectionError) Error() string {
	// Example: di: unable to inject "books.HarryPotterQuoter" into "books.HarryPotter.quoter": ...
	msg := "di: unable to inject " + strconv.Quote(e.Source) +
		" into " + strconv.Quote(e.Target+"."+e.Field)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the original cause.
func (e InjectionError) Unwrap() error { return e.Cause }

// DuplicateBeanError is returned when two definitions claim the same bean name.
type DuplicateBeanError struct{ Name string }

// Error implements the error interface.
func (e DuplicateBeanError) Error() string {
	return "di: duplicate bean name " + strconv.Quote(e.Name)
}

// InvalidDefinitionError is returned by Definition.Validate.
type InvalidDefinitionError struct {
	Name   string
	Reason string
}

// Error implements the error interface.
func (e InvalidDefinitionError) Error() string {
	return "di: invalid definition " + strconv.Quote(e.Name) + ": " + e.Reason
}

// BeanTypeError is returned by typed lookups when the bean exists but has a
// different type than requested.
type BeanTypeError struct {
	Name string
	Want string
	Got  string
}

// Error implements the error interface.
func (e BeanTypeError) Error() string {
	return "di: bean " + strconv.Quote(e.Name) + " is " + e.Got + ", not " + e.Want
}
