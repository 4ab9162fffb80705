package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterResolve(t *testing.T) {
	r := NewRegistry()
	sym := Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User", IsType: true}
	r.Register(sym, "tstypes")

	got, ok := r.Resolve(Ref{Capability: "types", Entity: "User"})
	require.True(t, ok)
	assert.Equal(t, sym, got)

	_, ok = r.Resolve(Ref{Capability: "types", Entity: "Missing"})
	assert.False(t, ok)
}

func TestImportForSameDirectory(t *testing.T) {
	r := NewRegistry()
	sym := Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User", IsType: true}
	r.Register(sym, "tstypes")

	stmt := r.ImportFor(sym, "types/userQueries.ts")
	assert.Equal(t, "./User.js", stmt.From)
	assert.True(t, stmt.TypeOnly)
}

func TestImportForParentDirectory(t *testing.T) {
	r := NewRegistry()
	sym := Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User", IsType: true}
	r.Register(sym, "tstypes")

	stmt := r.ImportFor(sym, "routes/userRoutes.ts")
	assert.Equal(t, "../types/User.js", stmt.From)
}

func TestImportForDefaultExport(t *testing.T) {
	r := NewRegistry()
	sym := Symbol{Name: "userSchema", File: "schemas/user.ts", Capability: "schemas:zod", Entity: "User", IsDefault: true}
	r.Register(sym, "zodschema")

	stmt := r.ImportFor(sym, "queries/userQueries.ts")
	assert.Equal(t, "../schemas/user.js", stmt.From)
	assert.True(t, stmt.Default)
	assert.False(t, stmt.TypeOnly)
}

func TestValidateDetectsCollision(t *testing.T) {
	r := NewRegistry()
	r.Register(Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User"}, "tstypes")
	r.Register(Symbol{Name: "User", File: "types/User.ts", Capability: "other", Entity: "User"}, "other-plugin")

	collisions := r.Validate()
	require.Len(t, collisions, 1)
	assert.Equal(t, "types/User.ts", collisions[0].File)
	assert.Equal(t, "User", collisions[0].Symbol)
	assert.Equal(t, []string{"other-plugin", "tstypes"}, collisions[0].Plugins)
}

func TestRegisterIdempotentForSamePlugin(t *testing.T) {
	r := NewRegistry()
	r.Register(Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User"}, "tstypes")
	r.Register(Symbol{Name: "User", File: "types/User.ts", Capability: "types", Entity: "User"}, "tstypes")

	assert.Empty(t, r.Validate())
}
