package di_test

import (
	"errors"

	"github.com/sghaida/bring/di"
)

//
// -----------------------------------------------------------------------------
// Shared fixtures
// -----------------------------------------------------------------------------

type Quoter interface{ Quote() string }

type HarryPotterQuoter struct{}

func (*HarryPotterQuoter) Quote() string { return "It does not do to dwell on dreams." }

type DuneQuoter struct{}

func (*DuneQuoter) Quote() string { return "Fear is the mind-killer." }

// HarryPotter is a book that needs a Quoter.
type HarryPotter struct {
	quoter Quoter
}

// Reader also needs a Quoter, resolved by type.
type Reader struct {
	quoter Quoter
}

// Library has two fields that are not marked for injection.
type Library struct {
	quoter Quoter
	reader *Reader
}

// Node refers to its own type.
type Node struct {
	next *Node
}

// QuoterConfig is a configuration class declaring factory-method beans.
type QuoterConfig struct {
	events *[]string
}

func (c *QuoterConfig) Dune() *DuneQuoter {
	if c.events != nil {
		*c.events = append(*c.events, "factory:dune")
	}
	return &DuneQuoter{}
}

// selfWired assigns its own fields through the Injectable capability.
type selfWired struct {
	quoter Quoter
}

func (s *selfWired) InjectField(name string, value any) error {
	if name != "quoter" {
		return errors.New("unknown field " + name)
	}
	s.quoter = value.(Quoter)
	return nil
}

// describedReader reports its own fields.
type describedReader struct {
	quoter Quoter
}

func (r *describedReader) BeanFields() []di.Field {
	return []di.Field{
		di.Inject("quoter", func(t *describedReader, q Quoter) { t.quoter = q }),
	}
}

func hpClass() *di.Class { return di.ClassOf(func() *HarryPotterQuoter { return &HarryPotterQuoter{} }) }

func duneClass() *di.Class { return di.ClassOf(func() *DuneQuoter { return &DuneQuoter{} }) }

func bookClass() *di.Class {
	return di.ClassOf(func() *HarryPotter { return &HarryPotter{} },
		di.Inject("quoter", func(b *HarryPotter, q Quoter) { b.quoter = q }),
	)
}

func readerClass() *di.Class {
	return di.ClassOf(func() *Reader { return &Reader{} },
		di.Inject("quoter", func(r *Reader, q Quoter) { r.quoter = q }),
	)
}

func defsOf(defs ...*di.Definition) map[string]*di.Definition {
	return di.NewRegistry().RegisterAll(defs...).MustDefinitions()
}
