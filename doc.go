// Package bring is a small inversion of control container for Go.
//
// A set of named bean definitions goes in, a map of fully wired bean instances
// comes out. Building happens in two phases: plain components are constructed first,
// then factory-declared beans are produced by calling a method on their configuration
// bean. Every new instance passes through an interceptor chain that may replace it or
// veto it. Fields are then injected in two passes: fields marked for injection, then
// fields required by a definition's depends-on list.
//
// Dependencies are resolved by explicit bean name, or by type when no name is given.
// A type lookup succeeds only when exactly one bean is assignable to the requested
// type.
//
// Subpackages:
//   - di: definitions, resolution, interceptor chain and the bean factory
//   - scan: a catalog of declared types and the package scanner that turns it into definitions
//   - interceptors: lifecycle, veto, logging and metrics interceptors
//   - container: the facade that scans a package, builds it and serves lookups
//   - config, logging: YAML/.env/environment configuration and zap loggers
//   - cmd/beangen: generates typed registration code from a JSON bean spec
//   - examples/quoter: runnable example wiring quoters with both registration styles
package bring
