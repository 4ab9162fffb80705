package inflect

import (
	"sort"
	"strings"
	"sync"
)

// Resolution is what Registry.Resolve recovers from a shape-suffixed
// identifier: the base entity name and the shape kind the suffix denotes
// ("" when the identifier carries no recognized suffix, i.e. it names the
// entity's row shape directly).
type Resolution struct {
	Entity string
	Kind   string
}

// Registry memoizes shape-name derivation: given "UserInsert" it recovers
// ("User", "insert") without the caller needing to carry that association
// itself. It exists for plugins and tooling that only have a bare
// identifier string to work from (a CLI flag, a file name); ir.Shape
// itself carries its Entity and Kind directly and never needs to consult
// a Registry (see Open Question 2 in SPEC_FULL.md).
type Registry struct {
	cfg Config

	mu       sync.Mutex
	suffixes []string // e.g. "Insert", "Update", "Patch", longest first
	cache    map[string]Resolution
}

// NewRegistry builds a Registry for the given Inflection config and shape
// kinds (typically "insert", "update", "patch" — "row" carries no suffix).
func NewRegistry(cfg Config, kinds ...string) *Registry {
	r := &Registry{
		cfg:   cfg,
		cache: map[string]Resolution{},
	}
	for _, k := range kinds {
		r.suffixes = append(r.suffixes, cfg.ToPascal(k))
	}
	sort.Slice(r.suffixes, func(i, j int) bool { return len(r.suffixes[i]) > len(r.suffixes[j]) })
	return r
}

// Resolve recovers the (entity, kind) pair a shape-suffixed identifier was
// derived from, memoizing the result.
func (r *Registry) Resolve(identifier string) Resolution {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.cache[identifier]; ok {
		return res
	}
	res := Resolution{Entity: identifier}
	for _, suffix := range r.suffixes {
		if strings.HasSuffix(identifier, suffix) && len(identifier) > len(suffix) {
			res = Resolution{
				Entity: strings.TrimSuffix(identifier, suffix),
				Kind:   strings.ToLower(suffix),
			}
			break
		}
	}
	r.cache[identifier] = res
	return res
}

// Memoize registers the derived name for (entity, kind) so a later Resolve
// of that exact identifier is a cache hit, and returns the derived name.
func (r *Registry) Memoize(entity, kind string) string {
	derived := entity
	if kind != "" {
		derived = entity + r.cfg.ToPascal(kind)
	}
	r.mu.Lock()
	r.cache[derived] = Resolution{Entity: entity, Kind: kind}
	r.mu.Unlock()
	return derived
}
