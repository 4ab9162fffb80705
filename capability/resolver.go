package capability

// Resolver builds an execution Plan from a fixed set of providers and a
// declared request list, per SPEC_FULL.md §4.5.
type Resolver struct {
	Providers []ProviderPlugin
}

// NewResolver builds a Resolver over the given providers.
func NewResolver(providers ...ProviderPlugin) *Resolver {
	return &Resolver{Providers: providers}
}

// Resolve builds the pending request list (the declared requests plus a
// synthetic request per singleton provider), expands every provider's
// Requires to a fixed point, and topologically sorts the result. Ties are
// broken by processing requests in declaration order and expanding each
// provider's Requires depth-first in the order it declares them, so two
// runs over the same providers and requests always produce the same Plan.
func (r *Resolver) Resolve(declared []Request) (*Plan, error) {
	pending := append([]Request{}, declared...)
	for _, p := range r.Providers {
		if p.Singleton() {
			pending = append(pending, Request{Kind: p.Kind(), Params: p.SingletonParams()})
		}
	}

	nodes := map[MemoKey]*Node{}
	var order []MemoKey
	visited := map[MemoKey]bool{}

	var visit func(req Request, stack []MemoKey) (MemoKey, error)
	visit = func(req Request, stack []MemoKey) (MemoKey, error) {
		candidates := matchProviders(r.Providers, req.Kind, req.Params)
		if len(candidates) == 0 {
			return "", &NoProviderError{Kind: req.Kind, Params: req.Params, RequestedBy: req.RequestedBy}
		}
		if len(candidates) > 1 {
			names := make([]string, len(candidates))
			for i, c := range candidates {
				names[i] = c.Name()
			}
			return "", &AmbiguousProviderError{Kind: req.Kind, Params: req.Params, Candidates: names}
		}

		provider := candidates[0]
		params := req.Params
		if provider.Singleton() {
			params = provider.SingletonParams()
		}
		key := memoKey(provider.Name(), params)

		for _, s := range stack {
			if s == key {
				return "", cycleFrom(stack, key)
			}
		}
		if visited[key] {
			return key, nil
		}

		newStack := append(append([]MemoKey{}, stack...), key)
		var depKeys []MemoKey
		for _, spec := range provider.Requires(params) {
			depKey, err := visit(Request{Kind: spec.Kind, Params: spec.Params, RequestedBy: provider.Name()}, newStack)
			if err != nil {
				return "", err
			}
			depKeys = append(depKeys, depKey)
		}

		visited[key] = true
		if _, exists := nodes[key]; !exists {
			nodes[key] = &Node{Key: key, Plugin: provider, Params: params, Dependencies: depKeys}
			order = append(order, key)
		}
		return key, nil
	}

	for _, req := range pending {
		if _, err := visit(req, nil); err != nil {
			return nil, err
		}
	}

	plan := &Plan{byKey: nodes}
	for _, k := range order {
		plan.Nodes = append(plan.Nodes, nodes[k])
	}
	return plan, nil
}

func matchProviders(providers []ProviderPlugin, kind Key, params Params) []ProviderPlugin {
	var out []ProviderPlugin
	for _, p := range providers {
		if p.Kind().ProvidesFor(kind) && p.CanProvide(params) {
			out = append(out, p)
		}
	}
	return out
}

func cycleFrom(stack []MemoKey, key MemoKey) *CycleError {
	idx := 0
	for i, k := range stack {
		if k == key {
			idx = i
			break
		}
	}
	var edges [][2]string
	for i := idx; i < len(stack)-1; i++ {
		edges = append(edges, [2]string{string(stack[i]), string(stack[i+1])})
	}
	if len(stack) > 0 {
		edges = append(edges, [2]string{string(stack[len(stack)-1]), string(key)})
	}
	return &CycleError{Edges: edges}
}
