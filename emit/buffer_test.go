package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

func TestEmitAndEmissions(t *testing.T) {
	b := NewBuffer()
	b.Emit("types/User.ts", "export interface User {}\n", "tstypes")
	assert.Equal(t, map[string]string{"types/User.ts": "export interface User {}\n"}, b.Emissions())
}

func TestAppendEmitRequiresSameOwner(t *testing.T) {
	b := NewBuffer()
	b.Emit("a.ts", "first\n", "pluginA")
	b.AppendEmit("a.ts", "second\n", "pluginA")
	assert.Equal(t, "first\nsecond\n", b.Emissions()["a.ts"])

	b.AppendEmit("a.ts", "third\n", "pluginB")
	assert.Equal(t, "first\nsecond\n", b.Emissions()["a.ts"], "append from a non-owning plugin is discarded")

	conflicts := b.Validate()
	require.Len(t, conflicts, 1)
	assert.Equal(t, []string{"pluginA", "pluginB"}, conflicts[0].Plugins)
}

func TestValidateDetectsConflict(t *testing.T) {
	b := NewBuffer()
	b.Emit("shared.ts", "a", "pluginA")
	b.Emit("shared.ts", "b", "pluginB")
	conflicts := b.Validate()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "shared.ts", conflicts[0].Path)
	assert.Equal(t, []string{"pluginA", "pluginB"}, conflicts[0].Plugins)
}

func TestSerializeASTMergesImports(t *testing.T) {
	symbols := symbol.NewRegistry()
	symbols.Register(symbol.Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User", IsType: true}, "tstypes")

	b := NewBuffer()
	prog := astprog.NewTextProgram(astprog.Line("export function getUser() {}"))
	b.EmitAST("queries/userQueries.ts", prog, "kyselyquery", "", []ImportRef{
		{Kind: ImportSymbol, Ref: symbol.Ref{Capability: "types", Entity: "User"}},
		{Kind: ImportPackage, From: "kysely", Names: []string{"sql"}},
	})

	err := b.SerializeAST(astprog.TextPrinter, symbols)
	require.NoError(t, err)

	out := b.Emissions()["queries/userQueries.ts"]
	assert.Contains(t, out, `import type { User } from "../types/User.js"`)
	assert.Contains(t, out, `import { sql } from "kysely"`)
	assert.Contains(t, out, "export function getUser() {}")
	assert.Empty(t, b.UnresolvedRefs())
}

func TestSerializeASTRecordsUnresolvedRefs(t *testing.T) {
	symbols := symbol.NewRegistry()
	b := NewBuffer()
	prog := astprog.NewTextProgram(astprog.Line("body"))
	b.EmitAST("a.ts", prog, "pluginA", "", []ImportRef{
		{Kind: ImportSymbol, Ref: symbol.Ref{Capability: "missing", Entity: "Nope"}},
	})

	err := b.SerializeAST(astprog.TextPrinter, symbols)
	require.NoError(t, err)

	refs := b.UnresolvedRefs()
	require.Len(t, refs, 1)
	assert.Equal(t, "pluginA", refs[0].Plugin)
	assert.Equal(t, "a.ts", refs[0].File)
}

func TestSerializeASTMergesTwoBatchesOfNamedImports(t *testing.T) {
	b := NewBuffer()
	prog := astprog.NewTextProgram(astprog.Line("body"))
	b.EmitAST("a.ts", prog, "pluginA", "", []ImportRef{
		{Kind: ImportPackage, From: "x", Names: []string{"a"}},
		{Kind: ImportPackage, From: "x", Names: []string{"b"}},
	})
	err := b.SerializeAST(astprog.TextPrinter, symbol.NewRegistry())
	require.NoError(t, err)
	assert.Contains(t, b.Emissions()["a.ts"], `import { a, b } from "x"`)
}

func TestSerializeASTIsIdempotent(t *testing.T) {
	b := NewBuffer()
	prog := astprog.NewTextProgram(astprog.Line("body"))
	b.EmitAST("a.ts", prog, "pluginA", "", nil)
	symbols := symbol.NewRegistry()
	require.NoError(t, b.SerializeAST(astprog.TextPrinter, symbols))
	first := b.Emissions()["a.ts"]
	require.NoError(t, b.SerializeAST(astprog.TextPrinter, symbols))
	assert.Equal(t, first, b.Emissions()["a.ts"])
}
