// Package symbol implements the Symbol Registry (SPEC_FULL.md §3, §4.3):
// the table every plugin-declared export is registered into, and the
// lookup/import-path machinery other plugins use to reference them.
package symbol

// Ref identifies a request for a previously-registered Symbol, keyed on
// the same (capability, entity[, shape]) triple a plugin used to register
// it.
type Ref struct {
	Capability string
	Entity     string
	Shape      string // "" if the symbol isn't shape-specific
}

// Key returns the canonical "capability:entity[:shape]" string the
// registry indexes Symbols by.
func (r Ref) Key() string {
	if r.Shape == "" {
		return r.Capability + ":" + r.Entity
	}
	return r.Capability + ":" + r.Entity + ":" + r.Shape
}

// Symbol is one exported identifier a plugin registered.
type Symbol struct {
	Name       string
	File       string
	Capability string
	Entity     string
	Shape      string
	IsType     bool // exported as a type-only declaration
	IsDefault  bool // exported as the file's default export
}

// Ref returns the Ref a request for this Symbol would use.
func (s Symbol) Ref() Ref {
	return Ref{Capability: s.Capability, Entity: s.Entity, Shape: s.Shape}
}

// ImportStatement is what ImportFor computes for a single symbol reference
// from a given file: a relative path plus the import's classification.
// emit.Buffer merges several of these (and plain package imports) per
// source file into grouped import declarations.
type ImportStatement struct {
	From     string
	Name     string
	Default  bool
	TypeOnly bool
}

// Collision is one (file, name) pair registered by more than one plugin.
type Collision struct {
	File    string
	Symbol  string
	Plugins []string
}
