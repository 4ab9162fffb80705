package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name      string
	kind      Key
	requires  func(Params) []RequestSpec
	singleton bool
}

func (f *fakeProvider) Name() string                        { return f.name }
func (f *fakeProvider) Kind() Key                            { return f.kind }
func (f *fakeProvider) CanProvide(Params) bool               { return true }
func (f *fakeProvider) Singleton() bool                      { return f.singleton }
func (f *fakeProvider) SingletonParams() Params              { return nil }
func (f *fakeProvider) Requires(p Params) []RequestSpec {
	if f.requires == nil {
		return nil
	}
	return f.requires(p)
}

func TestResolveSimpleChain(t *testing.T) {
	types := &fakeProvider{name: "tstypes", kind: "types"}
	zod := &fakeProvider{name: "zodschema", kind: "schemas:zod", requires: func(Params) []RequestSpec {
		return []RequestSpec{{Kind: "types"}}
	}}
	r := NewResolver(types, zod)

	plan, err := r.Resolve([]Request{{Kind: "schemas:zod"}})
	require.NoError(t, err)
	require.Len(t, plan.Nodes, 2)
	assert.Equal(t, "tstypes", plan.Nodes[0].Plugin.Name(), "dependency must precede dependent")
	assert.Equal(t, "zodschema", plan.Nodes[1].Plugin.Name())
	assert.Equal(t, []MemoKey{plan.Nodes[0].Key}, plan.Nodes[1].Dependencies)
}

func TestResolveDiamondDependencyDeduplicates(t *testing.T) {
	types := &fakeProvider{name: "tstypes", kind: "types"}
	zod := &fakeProvider{name: "zodschema", kind: "schemas:zod", requires: func(Params) []RequestSpec {
		return []RequestSpec{{Kind: "types"}}
	}}
	queries := &fakeProvider{name: "kyselyquery", kind: "queries", requires: func(Params) []RequestSpec {
		return []RequestSpec{{Kind: "types"}}
	}}
	routes := &fakeProvider{name: "httproutes", kind: "http-routes", requires: func(Params) []RequestSpec {
		return []RequestSpec{{Kind: "queries"}, {Kind: "schemas:zod"}}
	}}
	r := NewResolver(types, zod, queries, routes)

	plan, err := r.Resolve([]Request{{Kind: "http-routes"}})
	require.NoError(t, err)
	require.Len(t, plan.Nodes, 4, "types must only appear once despite two requesters")
}

func TestResolveNoProvider(t *testing.T) {
	r := NewResolver()
	_, err := r.Resolve([]Request{{Kind: "types"}})
	require.Error(t, err)
	var npe *NoProviderError
	assert.ErrorAs(t, err, &npe)
}

func TestResolveAmbiguousProvider(t *testing.T) {
	a := &fakeProvider{name: "a", kind: "types"}
	b := &fakeProvider{name: "b", kind: "types"}
	r := NewResolver(a, b)
	_, err := r.Resolve([]Request{{Kind: "types"}})
	require.Error(t, err)
	var ape *AmbiguousProviderError
	assert.ErrorAs(t, err, &ape)
}

func TestResolveCycle(t *testing.T) {
	a := &fakeProvider{name: "a", kind: "a"}
	b := &fakeProvider{name: "b", kind: "b"}
	a.requires = func(Params) []RequestSpec { return []RequestSpec{{Kind: "b"}} }
	b.requires = func(Params) []RequestSpec { return []RequestSpec{{Kind: "a"}} }
	r := NewResolver(a, b)
	_, err := r.Resolve([]Request{{Kind: "a"}})
	require.Error(t, err)
	var ce *CycleError
	assert.ErrorAs(t, err, &ce)
}

func TestResolveSingletonSharedAcrossRequesters(t *testing.T) {
	logger := &fakeProvider{name: "logger", kind: "util:logger", singleton: true}
	userA := &fakeProvider{name: "userA", kind: "feature:a", requires: func(Params) []RequestSpec {
		return []RequestSpec{{Kind: "util:logger"}}
	}}
	userB := &fakeProvider{name: "userB", kind: "feature:b", requires: func(Params) []RequestSpec {
		return []RequestSpec{{Kind: "util:logger"}}
	}}
	r := NewResolver(logger, userA, userB)
	plan, err := r.Resolve([]Request{{Kind: "feature:a"}, {Kind: "feature:b"}})
	require.NoError(t, err)

	var loggerCount int
	for _, n := range plan.Nodes {
		if n.Plugin.Name() == "logger" {
			loggerCount++
		}
	}
	assert.Equal(t, 1, loggerCount)
}

func TestKeyProvidesForPrefixMatch(t *testing.T) {
	assert.True(t, Key("schemas:zod").ProvidesFor("schemas"))
	assert.True(t, Key("schemas").ProvidesFor("schemas"))
	assert.False(t, Key("schemas").ProvidesFor("schemas:zod"))
}
