// Package exec implements the Execution Engine (SPEC_FULL.md §4.6): the
// single-threaded walk over a capability.Plan that invokes each plugin in
// dependency order and memoizes its result.
package exec

import (
	"fmt"

	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/inflect"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/plugin"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// PluginExecutionFailed wraps any error (or recovered panic) a plugin's
// Provide raised, attributing it to the plugin by name.
type PluginExecutionFailed struct {
	Plugin string
	Cause  error
}

func (e *PluginExecutionFailed) Error() string {
	return fmt.Sprintf("exec: plugin %q failed: %s", e.Plugin, e.Cause)
}

func (e *PluginExecutionFailed) Unwrap() error { return e.Cause }

type result struct {
	value any
	err   error
}

// Engine walks a capability.Plan synchronously, invoking each plugin once
// its dependencies have resolved.
type Engine struct {
	plan       *capability.Plan
	ir         *ir.IR
	inflection inflect.Config
	symbols    *symbol.Registry
	emission   *emit.Buffer

	results map[capability.MemoKey]result
}

// NewEngine builds an Engine for the given Plan and shared collaborators.
func NewEngine(plan *capability.Plan, irv *ir.IR, infl inflect.Config, symbols *symbol.Registry, emission *emit.Buffer) *Engine {
	return &Engine{
		plan:       plan,
		ir:         irv,
		inflection: infl,
		symbols:    symbols,
		emission:   emission,
		results:    map[capability.MemoKey]result{},
	}
}

// Run executes every node in the plan's topological order, stopping at
// the first failure.
func (e *Engine) Run() error {
	for _, node := range e.plan.Nodes {
		deps := make([]any, len(node.Dependencies))
		for i, depKey := range node.Dependencies {
			r, ok := e.results[depKey]
			if !ok {
				return fmt.Errorf("exec: dependency %q of %q resolved out of order", depKey, node.Plugin.Name())
			}
			deps[i] = r.value
			if r.err != nil {
				return r.err
			}
		}

		v, err := e.invoke(node, deps)
		if err != nil {
			wrapped := &PluginExecutionFailed{Plugin: node.Plugin.Name(), Cause: err}
			e.results[node.Key] = result{err: wrapped}
			return wrapped
		}
		e.results[node.Key] = result{value: v}
	}
	return nil
}

func (e *Engine) invoke(node *capability.Node, deps []any) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	p, ok := node.Plugin.(plugin.Plugin)
	if !ok {
		return nil, fmt.Errorf("exec: provider %q does not implement the full plugin contract", node.Plugin.Name())
	}

	declared := make(map[string]capability.MemoKey, len(node.Dependencies))
	for i, spec := range p.Requires(node.Params) {
		if i < len(node.Dependencies) {
			declared[requestIdentity(spec.Kind, spec.Params)] = node.Dependencies[i]
		}
	}

	ctx := plugin.NewContext(e.ir, e.inflection, e.symbols, e.emission, node.Plugin.Name(), func(kind capability.Key, params capability.Params) (any, error) {
		depKey, ok := declared[requestIdentity(kind, params)]
		if !ok {
			return nil, fmt.Errorf("exec: %q requested %q without declaring it in Requires", node.Plugin.Name(), kind)
		}
		r, ok := e.results[depKey]
		if !ok {
			return nil, fmt.Errorf("exec: dependency %q of %q not yet resolved", depKey, node.Plugin.Name())
		}
		return r.value, r.err
	})

	return p.Provide(node.Params, deps, ctx)
}

func requestIdentity(kind capability.Key, params capability.Params) string {
	return string(kind) + "|" + capability.CanonicalJSON(params)
}
