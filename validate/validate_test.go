package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

func TestRunPassesWhenClean(t *testing.T) {
	buf := emit.NewBuffer()
	buf.Emit("a.ts", "ok", "pluginA")
	symbols := symbol.NewRegistry()
	assert.NoError(t, Run(buf, symbols))
}

func TestRunReportsUndefinedReferenceFirst(t *testing.T) {
	buf := emit.NewBuffer()
	buf.Emit("shared.ts", "a", "pluginA")
	buf.Emit("shared.ts", "b", "pluginB") // would also be an emit conflict
	prog := astprog.NewTextProgram(astprog.Line("body"))
	buf.EmitAST("b.ts", prog, "pluginC", "", []emit.ImportRef{
		{Kind: emit.ImportSymbol, Ref: symbol.Ref{Capability: "missing", Entity: "Nope"}},
	})
	require.NoError(t, buf.SerializeAST(astprog.TextPrinter, symbol.NewRegistry()))

	err := Run(buf, symbol.NewRegistry())
	require.Error(t, err)
	var ure *UndefinedReferenceError
	assert.ErrorAs(t, err, &ure)
}

func TestRunReportsEmitConflict(t *testing.T) {
	buf := emit.NewBuffer()
	buf.Emit("shared.ts", "a", "pluginA")
	buf.Emit("shared.ts", "b", "pluginB")

	err := Run(buf, symbol.NewRegistry())
	require.Error(t, err)
	var ece *EmitConflictError
	assert.ErrorAs(t, err, &ece)
}

func TestRunReportsSymbolCollision(t *testing.T) {
	buf := emit.NewBuffer()
	symbols := symbol.NewRegistry()
	symbols.Register(symbol.Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User"}, "tstypes")
	symbols.Register(symbol.Symbol{Name: "User", File: "types/User.ts", Capability: "other", Entity: "User"}, "other")

	err := Run(buf, symbols)
	require.Error(t, err)
	var sce *SymbolCollisionError
	assert.ErrorAs(t, err, &sce)
}
