// Package importresolve implements the Import Resolver (SPEC_FULL.md
// §4.7): resolving one symbolic import reference against the Symbol
// Registry into the concrete import statement emit.Buffer.SerializeAST
// merges into a file's final import declarations.
package importresolve

import "github.com/pgsourcerer/pgsourcerer/symbol"

// Resolve looks up ref in symbols and, if found, computes the
// ImportStatement a file at fromFile needs to reference it. It reports
// ok=false rather than an error when the reference can't be resolved: the
// all-or-nothing failure boundary is validation, not each individual
// resolution (SPEC_FULL.md §4.8).
func Resolve(ref symbol.Ref, fromFile string, symbols *symbol.Registry) (symbol.ImportStatement, bool) {
	sym, ok := symbols.Resolve(ref)
	if !ok {
		return symbol.ImportStatement{}, false
	}
	return symbols.ImportFor(sym, fromFile), true
}
