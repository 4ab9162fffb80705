// Package capability implements the Capability Resolver (SPEC_FULL.md §3,
// §4.5): the request/provider matching, fixed-point Requires expansion,
// and DAG topological sort that turns a plugin set plus a request list
// into an ordered execution Plan.
package capability

import (
	"encoding/json"
	"sort"
	"strings"
)

// Key is a capability name, e.g. "types" or "schemas:zod". A provider's
// Key matches a request for requested whenever it equals requested or
// begins with it: a requester asking for "schemas" accepts any provider
// whose Key equals or begins with "schemas".
type Key string

// ProvidesFor reports whether a provider declaring this Key satisfies a
// request for requested.
func (k Key) ProvidesFor(requested Key) bool {
	return strings.HasPrefix(string(k), string(requested))
}

// Params is a provider's invocation parameters. Two Params values are
// considered the same request iff their canonical JSON forms match; nil
// values are treated as absent.
type Params map[string]any

// CanonicalJSON renders p as a stable, key-sorted JSON object, omitting
// nil-valued entries, for use as (part of) a memoization key.
func CanonicalJSON(p Params) string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if v == nil {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		kb, _ := json.Marshal(k)
		vb, _ := json.Marshal(p[k])
		parts = append(parts, string(kb)+":"+string(vb))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// RequestSpec is what a provider's Requires method returns: one
// sub-request it needs satisfied before it can run.
type RequestSpec struct {
	Kind   Key
	Params Params
}

// Request is a top-level or provider-declared request for a capability.
type Request struct {
	Kind        Key
	Params      Params
	RequestedBy string // plugin name, "" for orchestrator-level requests
}

// MemoKey uniquely identifies one resolved (provider, params) node.
type MemoKey string

func memoKey(pluginName string, params Params) MemoKey {
	return MemoKey(pluginName + "|" + CanonicalJSON(params))
}

// ProviderPlugin is the minimal surface the Resolver needs from a plugin.
// It is declared independently of the plugin package (rather than
// importing it) so that package can depend on this one without a cycle;
// any plugin.Plugin value satisfies this interface structurally.
type ProviderPlugin interface {
	Name() string
	Kind() Key
	CanProvide(params Params) bool
	Requires(params Params) []RequestSpec
	Singleton() bool
	SingletonParams() Params
}

// Node is one resolved entry in a Plan: a provider bound to concrete
// params, with its dependencies' MemoKeys in Requires-declared order.
type Node struct {
	Key          MemoKey
	Plugin       ProviderPlugin
	Params       Params
	Dependencies []MemoKey
}

// Plan is the Capability Resolver's output: every Node needed to satisfy
// the declared requests, in an order where every Node's dependencies
// precede it.
type Plan struct {
	Nodes []*Node

	byKey map[MemoKey]*Node
}

// Node looks up a resolved Node by its MemoKey.
func (p *Plan) Node(key MemoKey) (*Node, bool) {
	n, ok := p.byKey[key]
	return n, ok
}
