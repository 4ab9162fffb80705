// Package zodschema is a reference plugin providing the "schemas:zod"
// capability: one Zod validation schema per table/view entity's row
// shape, symbolically importing the corresponding row type from
// plugins/tstypes.
package zodschema

import (
	"fmt"
	"strings"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/plugin"
	"github.com/pgsourcerer/pgsourcerer/plugins/tstypes"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// Kind is the capability this plugin provides.
const Kind capability.Key = "schemas:zod"

// Plugin emits a Zod schema per table/view entity.
type Plugin struct{}

// New builds a zodschema Plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string              { return "zodschema" }
func (p *Plugin) Kind() capability.Key      { return Kind }
func (p *Plugin) CanProvide(capability.Params) bool { return true }
func (p *Plugin) Singleton() bool           { return false }
func (p *Plugin) SingletonParams() capability.Params { return nil }

// Requires the row types tstypes registers.
func (p *Plugin) Requires(capability.Params) []capability.RequestSpec {
	return []capability.RequestSpec{{Kind: tstypes.Kind}}
}

// Provide emits schemas/<entity>.ts for every table/view entity.
func (p *Plugin) Provide(params capability.Params, deps []any, ctx *plugin.Context) (any, error) {
	for _, e := range ctx.IR.Entities {
		if e.Kind != ir.EntityTable && e.Kind != ir.EntityView {
			continue
		}
		row, ok := tstypes.RowShape(e)
		if !ok {
			continue
		}

		varName := ctx.Inflection.ToCamel(e.Name) + "Schema"
		path := FilePath(e.Name)
		prog := astprog.NewTextProgram(astprog.Line(renderSchema(varName, row)))
		ctx.File(path).EmitAST(prog, "", []emit.ImportRef{
			{Kind: emit.ImportPackage, From: "zod", Names: []string{"z"}},
			{Kind: emit.ImportSymbol, Ref: symbol.Ref{Capability: string(tstypes.Kind), Entity: e.Name}},
		})
		ctx.Register(symbol.Symbol{
			Name:       varName,
			File:       path,
			Capability: string(Kind),
			Entity:     e.Name,
			IsDefault:  true,
		})
	}
	return nil, nil
}

// FilePath is the output path for an entity's Zod schema.
func FilePath(entityName string) string {
	return fmt.Sprintf("schemas/%s.ts", strings.ToLower(entityName[:1])+entityName[1:])
}

func renderSchema(varName string, shape ir.Shape) string {
	var b strings.Builder
	fmt.Fprintf(&b, "const %s = z.object({\n", varName)
	for _, f := range shape.Fields {
		expr := zodExpr(f)
		if f.Optional {
			expr += ".optional()"
		}
		fmt.Fprintf(&b, "  %s: %s,\n", f.Name, expr)
	}
	b.WriteString("});\nexport default " + varName + ";")
	return b.String()
}

func zodExpr(f ir.Field) string {
	var expr string
	switch {
	case f.IsArray:
		expr = "z.array(" + zodScalar(f.TypeName) + ")"
	default:
		expr = zodScalar(f.TypeName)
	}
	if f.Nullable {
		expr += ".nullable()"
	}
	return expr
}

func zodScalar(pgType string) string {
	switch pgType {
	case "int2", "int4", "int8", "float4", "float8", "numeric", "_int2", "_int4", "_int8":
		return "z.number()"
	case "bool":
		return "z.boolean()"
	case "uuid":
		return "z.string().uuid()"
	case "text", "varchar", "bpchar", "char", "date", "timestamp", "timestamptz", "time":
		return "z.string()"
	default:
		return "z.unknown()"
	}
}
