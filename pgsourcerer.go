// Package pgsourcerer is the Orchestrator (SPEC_FULL.md §4.9): it wires
// the IR builder, Symbol Registry, Emission Buffer, Capability Resolver,
// Execution Engine, Import Resolver and Validation into the single
// Generate entry point.
package pgsourcerer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/catalog"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/exec"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/symbol"
	"github.com/pgsourcerer/pgsourcerer/validate"
)

// Input is what Generate needs: one catalog snapshot per independently
// built schema, plus the Config describing which plugins to run and how.
type Input struct {
	Snapshots []catalog.Snapshot
	Config    *Config
}

// Generate runs the full pipeline: build the Semantic IR, instantiate the
// Symbol Registry and Emission Buffer, resolve the capability DAG,
// execute it in dependency order, serialize pending AST emissions,
// validate the result, and return the final path -> source map.
func Generate(ctx context.Context, in Input) (map[string]string, error) {
	cfg := in.Config
	if cfg == nil {
		return nil, ErrMissingConfig
	}

	irv, err := buildIR(ctx, in.Snapshots, cfg)
	if err != nil {
		return nil, err
	}

	symbols := symbol.NewRegistry()
	symbols.SetExtensions(cfg.SourceExt, cfg.TargetExt)
	buffer := emit.NewBuffer()

	providers := make([]capability.ProviderPlugin, len(cfg.Plugins))
	requests := make([]capability.Request, len(cfg.Plugins))
	for i, p := range cfg.Plugins {
		providers[i] = p
		requests[i] = capability.Request{Kind: p.Kind()}
	}

	plan, err := capability.NewResolver(providers...).Resolve(requests)
	if err != nil {
		return nil, err
	}

	engine := exec.NewEngine(plan, irv, cfg.Inflection, symbols, buffer)
	if err := engine.Run(); err != nil {
		return nil, err
	}

	if err := buffer.SerializeAST(cfg.Printer, symbols); err != nil {
		return nil, err
	}

	if err := validate.Run(buffer, symbols); err != nil {
		return nil, err
	}

	return buffer.Emissions(), nil
}

// buildIR builds one ir.IR per snapshot. Independent schema snapshots are
// built concurrently via errgroup (there is no shared mutable state
// between them); a single snapshot is built inline without the overhead
// of spinning up a goroutine for it.
func buildIR(ctx context.Context, snapshots []catalog.Snapshot, cfg *Config) (*ir.IR, error) {
	irConfig := ir.Config{Schemas: cfg.Schemas, Role: cfg.Role, Inflection: cfg.Inflection}

	if len(snapshots) <= 1 {
		if len(snapshots) == 0 {
			return &ir.IR{}, nil
		}
		return ir.Build(snapshots[0], irConfig)
	}

	results := make([]*ir.IR, len(snapshots))
	g, _ := errgroup.WithContext(ctx)
	for i, snap := range snapshots {
		i, snap := i, snap
		g.Go(func() error {
			built, err := ir.Build(snap, irConfig)
			if err != nil {
				return err
			}
			results[i] = built
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &ir.IR{}
	for _, r := range results {
		merged.Entities = append(merged.Entities, r.Entities...)
	}
	return merged, nil
}
