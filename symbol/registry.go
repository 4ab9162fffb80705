package symbol

import (
	"sort"
	"strings"
	"sync"
)

type regEntry struct {
	Symbol Symbol
	Plugin string
}

// Registry is the Symbol Registry: plugins register what they export, and
// other plugins resolve a Ref back to the Symbol (and its import path)
// without ever seeing each other's internals.
type Registry struct {
	mu sync.Mutex

	bySymbolKey map[string][]regEntry
	byFileName  map[string]map[string]struct{} // "file\x00name" -> plugin set

	sourceExt string
	targetExt string
}

// NewRegistry builds an empty Registry. By default it rewrites the
// source-language extension ".ts" to the emitted-output extension ".js"
// when computing import paths, matching the TypeScript-flavored reference
// plugins; call SetExtensions to target a different pair (or "", "" for
// no rewrite).
func NewRegistry() *Registry {
	return &Registry{
		bySymbolKey: map[string][]regEntry{},
		byFileName:  map[string]map[string]struct{}{},
		sourceExt:   ".ts",
		targetExt:   ".js",
	}
}

// SetExtensions configures the source/target extension rewrite ImportFor
// applies to computed paths.
func (r *Registry) SetExtensions(source, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sourceExt = source
	r.targetExt = target
}

// Register records that plugin exports sym. Re-registering the same
// (capability, entity, shape, plugin) replaces the prior Symbol; a
// different plugin registering the same ref is kept alongside it (and
// Resolve always returns the first-registered one), while a second
// registration at the same (file, name) is what Validate reports as a
// Collision.
func (r *Registry) Register(sym Symbol, plugin string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sym.Ref().Key()
	entries := r.bySymbolKey[key]
	replaced := false
	for i, e := range entries {
		if e.Plugin == plugin {
			entries[i].Symbol = sym
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, regEntry{Symbol: sym, Plugin: plugin})
	}
	r.bySymbolKey[key] = entries

	fnKey := sym.File + "\x00" + sym.Name
	set, ok := r.byFileName[fnKey]
	if !ok {
		set = map[string]struct{}{}
		r.byFileName[fnKey] = set
	}
	set[plugin] = struct{}{}
}

// Resolve returns the first Symbol registered against ref.
func (r *Registry) Resolve(ref Ref) (Symbol, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := r.bySymbolKey[ref.Key()]
	if len(entries) == 0 {
		return Symbol{}, false
	}
	return entries[0].Symbol, true
}

// ImportFor computes the relative-path import statement a file at
// fromFile needs to reference sym.
func (r *Registry) ImportFor(sym Symbol, fromFile string) ImportStatement {
	r.mu.Lock()
	sourceExt, targetExt := r.sourceExt, r.targetExt
	r.mu.Unlock()

	rel := relativeImportPath(fromFile, sym.File)
	rel = rewriteExtension(rel, sourceExt, targetExt)
	return ImportStatement{
		From:     rel,
		Name:     sym.Name,
		Default:  sym.IsDefault,
		TypeOnly: sym.IsType && !sym.IsDefault,
	}
}

// Validate returns every (file, name) pair registered by more than one
// plugin, sorted for determinism.
func (r *Registry) Validate() []Collision {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.byFileName))
	for k := range r.byFileName {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out []Collision
	for _, k := range keys {
		set := r.byFileName[k]
		if len(set) <= 1 {
			continue
		}
		parts := strings.SplitN(k, "\x00", 2)
		plugins := make([]string, 0, len(set))
		for p := range set {
			plugins = append(plugins, p)
		}
		sort.Strings(plugins)
		out = append(out, Collision{File: parts[0], Symbol: parts[1], Plugins: plugins})
	}
	return out
}
