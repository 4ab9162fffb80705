package importresolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgsourcerer/pgsourcerer/symbol"
)

func TestResolveFoundSymbol(t *testing.T) {
	registry := symbol.NewRegistry()
	registry.Register(symbol.Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User", IsType: true}, "tstypes")

	stmt, ok := Resolve(symbol.Ref{Capability: "types", Entity: "User"}, "queries/userQueries.ts", registry)
	require.True(t, ok)
	assert.Equal(t, "../types/User.js", stmt.From)
	assert.True(t, stmt.TypeOnly)
}

func TestResolveMissingSymbol(t *testing.T) {
	registry := symbol.NewRegistry()
	_, ok := Resolve(symbol.Ref{Capability: "types", Entity: "Nope"}, "queries/userQueries.ts", registry)
	assert.False(t, ok)
}
