package tstypes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pgsourcerer/pgsourcerer/ir"
)

func TestRowShapeFindsRowKind(t *testing.T) {
	e := ir.Entity{
		Name: "User",
		Shapes: []ir.Shape{
			{Kind: ir.ShapeInsert},
			{Kind: ir.ShapeRow, Fields: []ir.Field{{Name: "id", TypeName: "int4"}}},
		},
	}
	row, ok := RowShape(e)
	assert.True(t, ok)
	assert.Equal(t, ir.ShapeRow, row.Kind)
}

func TestRowShapeAbsent(t *testing.T) {
	_, ok := RowShape(ir.Entity{Shapes: []ir.Shape{{Kind: ir.ShapeInsert}}})
	assert.False(t, ok)
}

func TestFilePath(t *testing.T) {
	assert.Equal(t, "types/User.ts", FilePath("User"))
}

func TestRenderInterfaceOptionalAndNullable(t *testing.T) {
	shape := ir.Shape{Fields: []ir.Field{
		{Name: "id", TypeName: "int8"},
		{Name: "email", TypeName: "text", Nullable: true},
		{Name: "tags", TypeName: "text", IsArray: true, Optional: true},
	}}
	out := renderInterface("User", shape)
	assert.Contains(t, out, "id: number;")
	assert.Contains(t, out, "email: string | null;")
	assert.Contains(t, out, "tags?: string[];")
}

func TestScalarTSType(t *testing.T) {
	assert.Equal(t, "number", scalarTSType("int4"))
	assert.Equal(t, "boolean", scalarTSType("bool"))
	assert.Equal(t, "string", scalarTSType("uuid"))
	assert.Equal(t, "unknown", scalarTSType("jsonb"))
	assert.Equal(t, "unknown", scalarTSType("box"))
}
