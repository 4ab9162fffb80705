package emit

import (
	"fmt"
	"strings"

	"github.com/pgsourcerer/pgsourcerer/importresolve"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// mergedImport accumulates every reference to one import source for a
// single output file, preserving first-seen order within each bucket.
type mergedImport struct {
	from string

	namedOrder []string
	namedSet   map[string]bool

	typeOrder []string
	typeSet   map[string]bool

	defaultName string
}

func newMergedImport(from string) *mergedImport {
	return &mergedImport{from: from, namedSet: map[string]bool{}, typeSet: map[string]bool{}}
}

func (m *mergedImport) addNamed(name string) {
	if name == "" || m.namedSet[name] {
		return
	}
	m.namedSet[name] = true
	m.namedOrder = append(m.namedOrder, name)
}

func (m *mergedImport) addType(name string) {
	if name == "" || m.typeSet[name] {
		return
	}
	m.typeSet[name] = true
	m.typeOrder = append(m.typeOrder, name)
}

// valueLine renders the default/named import declaration for this source,
// if it has one.
func (m *mergedImport) valueLine() (string, bool) {
	switch {
	case m.defaultName != "" && len(m.namedOrder) > 0:
		return fmt.Sprintf("import %s, { %s } from %q", m.defaultName, strings.Join(m.namedOrder, ", "), m.from), true
	case m.defaultName != "":
		return fmt.Sprintf("import %s from %q", m.defaultName, m.from), true
	case len(m.namedOrder) > 0:
		return fmt.Sprintf("import { %s } from %q", strings.Join(m.namedOrder, ", "), m.from), true
	default:
		return "", false
	}
}

// typeLine renders the type-only import declaration for this source, if
// it has one.
func (m *mergedImport) typeLine() (string, bool) {
	if len(m.typeOrder) == 0 {
		return "", false
	}
	return fmt.Sprintf("import type { %s } from %q", strings.Join(m.typeOrder, ", "), m.from), true
}

// mergeImports resolves and merges every ImportRef for one output file,
// in first-seen-source order. Symbol references that fail to resolve are
// returned separately rather than aborting the merge; the all-or-nothing
// failure boundary sits at validation, not here (SPEC_FULL.md §4.8).
func mergeImports(path, plugin string, refs []ImportRef, symbols *symbol.Registry) ([]*mergedImport, []UnresolvedRef) {
	order := []string{}
	byFrom := map[string]*mergedImport{}
	get := func(from string) *mergedImport {
		m, ok := byFrom[from]
		if !ok {
			m = newMergedImport(from)
			byFrom[from] = m
			order = append(order, from)
		}
		return m
	}

	var unresolved []UnresolvedRef
	for _, ref := range refs {
		if ref.Kind == ImportSymbol {
			stmt, ok := importresolve.Resolve(ref.Ref, path, symbols)
			if !ok {
				unresolved = append(unresolved, UnresolvedRef{Ref: ref.Ref, Plugin: plugin, File: path})
				continue
			}
			m := get(stmt.From)
			switch {
			case stmt.Default:
				m.defaultName = stmt.Name
			case stmt.TypeOnly:
				m.addType(stmt.Name)
			default:
				m.addNamed(stmt.Name)
			}
			continue
		}

		m := get(ref.From)
		for _, n := range ref.Names {
			m.addNamed(n)
		}
		for _, typ := range ref.Types {
			m.addType(typ)
		}
		if ref.Default != "" {
			m.defaultName = ref.Default
		}
	}

	out := make([]*mergedImport, len(order))
	for i, from := range order {
		out[i] = byFrom[from]
	}
	return out, unresolved
}
