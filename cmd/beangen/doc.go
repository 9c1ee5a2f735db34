// Command beangen generates bean definitions without reflection.
//
// beangen reads a small JSON description of the components, configurations and
// factory-method beans of one package and writes a Go file with a single
// registration function built on the typed helpers of package di (ClassOf,
// Inject, InjectNamed, Declare, Produces, Method). Field assignment in the
// generated code is a plain Go assignment, so unexported fields work and no
// struct tags are needed.
//
// Spec format (beans.json)
//
//	{
//	  "package": "quoter",
//	  "components": [
//	    { "name": "hp", "type": "HarryPotterQuoter", "constructor": "NewHarryPotterQuoter" },
//	    { "type": "Reader",
//	      "fields": [ { "field": "quoter", "type": "Quoter", "inject": true, "ref": "hp" } ] },
//	    { "type": "Library", "dependsOn": ["quoter.Reader"],
//	      "fields": [ { "field": "reader", "type": "*Reader" } ] }
//	  ],
//	  "configurations": [
//	    { "type": "QuoterConfig",
//	      "beans": [ { "method": "Dune", "returns": "Quoter" } ] }
//	  ]
//	}
//
// Names default to the type (components, configurations) or method (beans) with a
// lower-case first letter. A field with "inject" is filled by the implicit pass, by
// name when "ref" is set; other fields are only filled when a dependsOn list names
// their type.
//
// Typical go:generate usage
//
//	//go:generate go run ../../cmd/beangen -spec ./beans.json -out ./beans.gen.go
//
// Generated API
//
//	func Register(r *di.Registry) *di.Registry
//
// The function name can be changed with "func". Imports needed by field or return
// types are listed under "imports" as {"alias": "...", "path": "..."}.
//
// Invalid specs make beangen panic with a descriptive message; output is written
// atomically (temp file + rename) and formatted with go/format.
package main
