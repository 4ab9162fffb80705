// Package validate implements Validation (SPEC_FULL.md §4.8): the final
// aggregation pass over the Emission Buffer and Symbol Registry that
// turns their accumulated problems into the engine's external error
// taxonomy.
package validate

import (
	"fmt"

	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// UndefinedReferenceError is raised when a plugin emitted a symbolic
// import that no registered Symbol ever satisfied.
type UndefinedReferenceError struct {
	Ref    symbol.Ref
	Plugin string
	File   string
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("validate: %s:%s referenced undefined symbol %s in %s", e.Plugin, e.File, e.Ref.Key(), e.File)
}

// EmitConflictError is raised when more than one plugin wrote to the same
// output path.
type EmitConflictError struct {
	Path    string
	Plugins []string
}

func (e *EmitConflictError) Error() string {
	return fmt.Sprintf("validate: %s was emitted by more than one plugin: %v", e.Path, e.Plugins)
}

// SymbolCollisionError is raised when more than one plugin registered the
// same (file, name) symbol.
type SymbolCollisionError struct {
	File    string
	Symbol  string
	Plugins []string
}

func (e *SymbolCollisionError) Error() string {
	return fmt.Sprintf("validate: symbol %s in %s was registered by more than one plugin: %v", e.Symbol, e.File, e.Plugins)
}

// Run aggregates validation in the order SPEC_FULL.md §4.8 describes:
// undefined references first, then emit conflicts, then symbol
// collisions. It returns the first problem it finds (of any kind) rather
// than every problem, matching the engine's fail-fast error model.
func Run(buf *emit.Buffer, symbols *symbol.Registry) error {
	if refs := buf.UnresolvedRefs(); len(refs) > 0 {
		r := refs[0]
		return &UndefinedReferenceError{Ref: r.Ref, Plugin: r.Plugin, File: r.File}
	}
	if conflicts := buf.Validate(); len(conflicts) > 0 {
		c := conflicts[0]
		return &EmitConflictError{Path: c.Path, Plugins: c.Plugins}
	}
	if collisions := symbols.Validate(); len(collisions) > 0 {
		c := collisions[0]
		return &SymbolCollisionError{File: c.File, Symbol: c.Symbol, Plugins: c.Plugins}
	}
	return nil
}
