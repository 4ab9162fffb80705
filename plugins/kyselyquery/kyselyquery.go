// Package kyselyquery is a reference plugin providing the "queries"
// capability: one query function per table/view entity, returning the
// entity's row type imported from plugins/tstypes.
package kyselyquery

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
const Kind capability.Key = "queries"

// Plugin emits a query function per table/view entity.
type Plugin struct{}

// New builds a kyselyquery Plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string                       { return "kyselyquery" }
func (p *Plugin) Kind() capability.Key                { return Kind }
func (p *Plugin) CanProvide(capability.Params) bool   { return true }
func (p *Plugin) Singleton() bool                     { return false }
func (p *Plugin) SingletonParams() capability.Params  { return nil }

// Requires the row types tstypes registers.
func (p *Plugin) Requires(capability.Params) []capability.RequestSpec {
	return []capability.RequestSpec{{Kind: tstypes.Kind}}
}

// Provide emits queries/<entity>Queries.ts for every table/view entity.
func (p *Plugin) Provide(params capability.Params, deps []any, ctx *plugin.Context) (any, error) {
	for _, e := range ctx.IR.Entities {
		if e.Kind != ir.EntityTable && e.Kind != ir.EntityView {
			continue
		}
		if _, ok := tstypes.RowShape(e); !ok {
			continue
		}

		fnName := "get" + e.Name
		path := FilePath(e.Name)
		prog := astprog.NewTextProgram(astprog.Line(renderQuery(fnName, e.Name, e.PgName)))
		ctx.File(path).EmitAST(prog, "", []emit.ImportRef{
			{Kind: emit.ImportPackage, From: "kysely", Names: []string{"sql"}},
			{Kind: emit.ImportSymbol, Ref: symbol.Ref{Capability: string(tstypes.Kind), Entity: e.Name}},
		})
		ctx.Register(symbol.Symbol{
			Name:       fnName,
			File:       path,
			Capability: string(Kind),
			Entity:     e.Name,
		})
	}
	return nil, nil
}

// FilePath is the output path for an entity's query function.
func FilePath(entityName string) string {
	return fmt.Sprintf("queries/%sQueries.ts", strings.ToLower(entityName[:1])+entityName[1:])
}

func renderQuery(fnName, typeName, tableName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "export async function %s(id: number): Promise<%s | undefined> {\n", fnName, typeName)
	fmt.Fprintf(&b, "  return sql<%s>`select * from %s where id = ${id}`.execute();\n", typeName, tableName)
	b.WriteString("}")
	return b.String()
}
