// Package di is the bean resolution and instantiation engine of bring.
//
// It consumes a set of Definitions (produced by an external scanner or by the
// beangen generator) and turns them into a Beans map:
//
//   - plain components are constructed first through their zero-argument constructor
//   - factory-declared beans are then produced by calling a method on their already
//     built configuration bean
//   - every new instance passes through an ordered Chain of Interceptors; a nil result
//     stops the chain for that bean
//   - two injection passes fill dependency fields: the implicit pass over fields marked
//     for injection, then the explicit pass driven by a definition's DependsOn list
//
// Resolution is by explicit name or by unique type match. There is no implicit
// tie-break: two assignable candidates is always a NoUniqueBeanError.
//
// Injection never walks struct fields at build time. Each Class carries an explicit
// list of Fields, and each Field assigns through its own typed closure (see Inject,
// InjectNamed and Declare) or through the Injectable capability interface.
//
// Quick example
//
//	reg := di.NewRegistry().
//		Register(di.Component("quoter", di.ClassOf(NewHarryPotterQuoter))).
//		Register(di.Component("book", di.ClassOf(NewBook,
//			di.Inject("quoter", func(b *Book, q Quoter) { b.quoter = q }),
//		)))
//
//	defs, err := reg.Definitions()
//	...
//	beans, err := di.NewFactory().Build(defs)
//
// Import
//
//	"github.com/sghaida/bring/di"
package di
