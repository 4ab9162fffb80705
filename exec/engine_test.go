package exec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/inflect"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/plugin"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

type fakePlugin struct {
	name     string
	kind     capability.Key
	requires []capability.RequestSpec
	provide  func(deps []any, ctx *plugin.Context) (any, error)
}

func (f *fakePlugin) Name() string                                      { return f.name }
func (f *fakePlugin) Kind() capability.Key                              { return f.kind }
func (f *fakePlugin) CanProvide(capability.Params) bool                 { return true }
func (f *fakePlugin) Singleton() bool                                   { return false }
func (f *fakePlugin) SingletonParams() capability.Params                { return nil }
func (f *fakePlugin) Requires(capability.Params) []capability.RequestSpec { return f.requires }
func (f *fakePlugin) Provide(params capability.Params, deps []any, ctx *plugin.Context) (any, error) {
	return f.provide(deps, ctx)
}

func newTestEngine(t *testing.T, providers ...capability.ProviderPlugin) (*Engine, *capability.Plan) {
	t.Helper()
	r := capability.NewResolver(providers...)
	plan, err := r.Resolve([]capability.Request{{Kind: providers[len(providers)-1].Kind()}})
	require.NoError(t, err)
	return NewEngine(plan, &ir.IR{}, inflect.DefaultConfig(), symbol.NewRegistry(), emit.NewBuffer()), plan
}

func TestEngineRunsInDependencyOrder(t *testing.T) {
	var ranOrder []string
	types := &fakePlugin{name: "tstypes", kind: "types", provide: func(deps []any, ctx *plugin.Context) (any, error) {
		ranOrder = append(ranOrder, "tstypes")
		return "types-result", nil
	}}
	zod := &fakePlugin{name: "zodschema", kind: "schemas:zod", requires: []capability.RequestSpec{{Kind: "types"}}, provide: func(deps []any, ctx *plugin.Context) (any, error) {
		ranOrder = append(ranOrder, "zodschema")
		assert.Equal(t, []any{"types-result"}, deps)
		return "zod-result", nil
	}}
	engine, _ := newTestEngine(t, types, zod)
	require.NoError(t, engine.Run())
	assert.Equal(t, []string{"tstypes", "zodschema"}, ranOrder)
}

func TestEngineWrapsPluginError(t *testing.T) {
	broken := &fakePlugin{name: "broken", kind: "types", provide: func([]any, *plugin.Context) (any, error) {
		return nil, errors.New("boom")
	}}
	engine, _ := newTestEngine(t, broken)
	err := engine.Run()
	require.Error(t, err)
	var pe *PluginExecutionFailed
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "broken", pe.Plugin)
}

func TestEngineWrapsPluginPanic(t *testing.T) {
	broken := &fakePlugin{name: "broken", kind: "types", provide: func([]any, *plugin.Context) (any, error) {
		panic("unexpected")
	}}
	engine, _ := newTestEngine(t, broken)
	err := engine.Run()
	require.Error(t, err)
	var pe *PluginExecutionFailed
	require.ErrorAs(t, err, &pe)
}

func TestContextRequestRejectsUndeclaredDependency(t *testing.T) {
	types := &fakePlugin{name: "tstypes", kind: "types", provide: func([]any, *plugin.Context) (any, error) {
		return "types-result", nil
	}}
	sneaky := &fakePlugin{name: "sneaky", kind: "schemas:zod", provide: func(deps []any, ctx *plugin.Context) (any, error) {
		return ctx.Request("types", nil)
	}}
	engine, _ := newTestEngine(t, types, sneaky)
	err := engine.Run()
	require.Error(t, err)
}
