// Package httproutes is a reference plugin providing the "http-routes"
// capability: one route handler per table/view entity, wiring together a
// query function (plugins/kyselyquery) and a validation schema
// (plugins/zodschema) via two independent symbolic imports — the engine's
// diamond-dependency demonstration (SPEC_FULL.md §8 Scenario D).
package httproutes

import (
	"fmt"
	"strings"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/plugin"
	"github.com/pgsourcerer/pgsourcerer/plugins/kyselyquery"
	"github.com/pgsourcerer/pgsourcerer/plugins/tstypes"
	"github.com/pgsourcerer/pgsourcerer/plugins/zodschema"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// Kind is the capability this plugin provides.
const Kind capability.Key = "http-routes"

// Plugin emits an HTTP route handler per table/view entity.
type Plugin struct{}

// New builds an httproutes Plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string                      { return "httproutes" }
func (p *Plugin) Kind() capability.Key               { return Kind }
func (p *Plugin) CanProvide(capability.Params) bool  { return true }
func (p *Plugin) Singleton() bool                    { return false }
func (p *Plugin) SingletonParams() capability.Params { return nil }

// Requires both queries and the zod schemas, the two hops this plugin
// joins together.
func (p *Plugin) Requires(capability.Params) []capability.RequestSpec {
	return []capability.RequestSpec{{Kind: kyselyquery.Kind}, {Kind: zodschema.Kind}}
}

// Provide emits routes/<entity>Routes.ts for every table/view entity.
func (p *Plugin) Provide(params capability.Params, deps []any, ctx *plugin.Context) (any, error) {
	for _, e := range ctx.IR.Entities {
		if e.Kind != ir.EntityTable && e.Kind != ir.EntityView {
			continue
		}
		if _, ok := tstypes.RowShape(e); !ok {
			continue
		}

		handlerName := "handle" + e.Name + "Route"
		path := fmt.Sprintf("routes/%sRoutes.ts", strings.ToLower(e.Name[:1])+e.Name[1:])
		prog := astprog.NewTextProgram(astprog.Line(renderHandler(handlerName, e.Name)))
		ctx.File(path).EmitAST(prog, "", []emit.ImportRef{
			{Kind: emit.ImportSymbol, Ref: symbol.Ref{Capability: string(kyselyquery.Kind), Entity: e.Name}},
			{Kind: emit.ImportSymbol, Ref: symbol.Ref{Capability: string(zodschema.Kind), Entity: e.Name}},
		})
		ctx.Register(symbol.Symbol{
			Name:       handlerName,
			File:       path,
			Capability: string(Kind),
			Entity:     e.Name,
		})
	}
	return nil, nil
}

func renderHandler(handlerName, entityName string) string {
	queryFn := "get" + entityName
	schemaName := firstLower(entityName) + "Schema"
	var b strings.Builder
	fmt.Fprintf(&b, "export async function %s(req: Request): Promise<Response> {\n", handlerName)
	fmt.Fprintf(&b, "  const result = await %s(Number(req.params.id));\n", queryFn)
	fmt.Fprintf(&b, "  return Response.json(%s.parse(result));\n", schemaName)
	b.WriteString("}")
	return b.String()
}

func firstLower(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
