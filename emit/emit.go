// Package emit implements the Emission Buffer (SPEC_FULL.md §3, §4.4): the
// per-path accumulator every plugin writes its output into, and the
// serialization step that turns pending AST fragments plus symbolic
// import references into final source text.
package emit

import "github.com/pgsourcerer/pgsourcerer/symbol"

// ImportRefKind classifies an ImportRef.
type ImportRefKind string

const (
	// ImportPackage is an ordinary third-party or built-in module import.
	ImportPackage ImportRefKind = "package"
	// ImportRelative is a plain relative-path import the plugin already
	// knows the target file for.
	ImportRelative ImportRefKind = "relative"
	// ImportSymbol is resolved against a symbol.Registry at serialization
	// time; the plugin only knows the symbol.Ref, not the file it will
	// end up living in.
	ImportSymbol ImportRefKind = "symbol"
)

// ImportRef is one import a pending AST emission declares it needs.
// Several ImportRefs of one emission targeting the same source are merged
// into one grouped import declaration by SerializeAST. A later EmitAST for
// the same path replaces the earlier emission and its ImportRefs.
type ImportRef struct {
	Kind ImportRefKind

	// ImportPackage / ImportRelative.
	From    string
	Names   []string
	Types   []string
	Default string

	// ImportSymbol.
	Ref symbol.Ref
}

// UnresolvedRef is a symbolic import reference that had no registered
// Symbol at serialization time.
type UnresolvedRef struct {
	Ref    symbol.Ref
	Plugin string
	File   string
}

// Conflict is one output path more than one plugin wrote to.
type Conflict struct {
	Path    string
	Plugins []string
}
