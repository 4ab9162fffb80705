// Package tstypes is a reference plugin providing the "types" capability:
// one TypeScript interface declaration per table/view entity's row shape.
package tstypes

import (
	"fmt"
	"strings"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/plugin"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// Kind is the capability this plugin provides.
const Kind capability.Key = "types"

// Plugin emits a row-shape interface per table/view entity.
type Plugin struct{}

// New builds a tstypes Plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string                                      { return "tstypes" }
func (p *Plugin) Kind() capability.Key                               { return Kind }
func (p *Plugin) CanProvide(capability.Params) bool                  { return true }
func (p *Plugin) Requires(capability.Params) []capability.RequestSpec { return nil }
func (p *Plugin) Singleton() bool                                    { return false }
func (p *Plugin) SingletonParams() capability.Params                 { return nil }

// Provide emits types/<Entity>.ts for every table/view entity.
func (p *Plugin) Provide(params capability.Params, deps []any, ctx *plugin.Context) (any, error) {
	for _, e := range ctx.IR.Entities {
		if e.Kind != ir.EntityTable && e.Kind != ir.EntityView {
			continue
		}
		row, ok := RowShape(e)
		if !ok {
			continue
		}

		path := FilePath(e.Name)
		prog := astprog.NewTextProgram(astprog.Line(renderInterface(e.Name, row)))
		ctx.File(path).EmitAST(prog, "", nil)
		ctx.Register(symbol.Symbol{
			Name:       e.Name,
			File:       path,
			Capability: string(Kind),
			Entity:     e.Name,
			IsType:     true,
		})
	}
	return nil, nil
}

// FilePath is the output path tstypes uses for an entity's row type.
// Other plugins locate that file through the Symbol Registry, not through
// this function.
func FilePath(entityName string) string {
	return fmt.Sprintf("types/%s.ts", entityName)
}

// RowShape finds an entity's row-kind Shape.
func RowShape(e ir.Entity) (ir.Shape, bool) {
	for _, s := range e.Shapes {
		if s.Kind == ir.ShapeRow {
			return s, true
		}
	}
	return ir.Shape{}, false
}

func renderInterface(name string, shape ir.Shape) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export interface %s {\n", name)
	for _, f := range shape.Fields {
		optional := ""
		if f.Optional {
			optional = "?"
		}
		fmt.Fprintf(&b, "  %s%s: %s;\n", f.Name, optional, tsType(f))
	}
	b.WriteString("}")
	return b.String()
}

func tsType(f ir.Field) string {
	base := scalarTSType(f.TypeName)
	if f.IsArray {
		base += "[]"
	}
	if f.Nullable {
		base += " | null"
	}
	return base
}

func scalarTSType(pgType string) string {
	switch pgType {
	case "int2", "int4", "int8", "float4", "float8", "numeric", "_int2", "_int4", "_int8":
		return "number"
	case "bool":
		return "boolean"
	case "text", "varchar", "bpchar", "char", "uuid", "date", "timestamp", "timestamptz", "time":
		return "string"
	case "json", "jsonb":
		return "unknown"
	case "unknown":
		return "unknown"
	default:
		return "unknown"
	}
}
