// Package gostructs is a reference plugin providing the "types:go"
// capability: one Go struct per table/view entity's row shape, built with
// jennifer instead of the text-template approach the TypeScript-flavored
// reference plugins use. It exists to prove the astprog.Program/Printer
// contract is not itself TypeScript-shaped: Program wraps a *jen.File, and
// Printer renders it through jennifer's own formatter.
package gostructs

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/google/uuid"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/plugin"
	"github.com/pgsourcerer/pgsourcerer/plugins/tstypes"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// Kind is the capability this plugin provides.
const Kind capability.Key = "types:go"

// uuidImportPath is pinned against the real uuid.UUID type rather than
// left as a bare string literal, so a renamed or vendored google/uuid
// would fail to compile here instead of silently drifting from what
// scalarGoType's jen.Qual call emits.
var uuidImportPath = uuid.UUID{}

// PackageName is the package every emitted struct belongs to.
const PackageName = "models"

// Plugin emits a Go struct per table/view entity.
type Plugin struct{}

// New builds a gostructs Plugin.
func New() *Plugin { return &Plugin{} }

func (p *Plugin) Name() string                                       { return "gostructs" }
func (p *Plugin) Kind() capability.Key                                { return Kind }
func (p *Plugin) CanProvide(capability.Params) bool                  { return true }
func (p *Plugin) Requires(capability.Params) []capability.RequestSpec { return nil }
func (p *Plugin) Singleton() bool                                     { return false }
func (p *Plugin) SingletonParams() capability.Params                  { return nil }

// Provide emits models/<entity>.go for every table/view entity.
func (p *Plugin) Provide(params capability.Params, deps []any, ctx *plugin.Context) (any, error) {
	for _, e := range ctx.IR.Entities {
		if e.Kind != ir.EntityTable && e.Kind != ir.EntityView {
			continue
		}
		row, ok := tstypes.RowShape(e)
		if !ok {
			continue
		}

		path := FilePath(e.Name)
		program := NewProgram(PackageName)
		program.file.Type().Id(e.Name).Struct(structFields(row)...)
		ctx.File(path).EmitAST(program, "", nil)
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

// FilePath is the output path for an entity's Go struct.
func FilePath(entityName string) string {
	return fmt.Sprintf("models/%s.go", strings.ToLower(entityName))
}

func structFields(shape ir.Shape) []jen.Code {
	fields := make([]jen.Code, 0, len(shape.Fields))
	for _, f := range shape.Fields {
		stmt := jen.Id(f.Name)
		stmt.Add(goType(f))
		stmt.Tag(map[string]string{"json": f.ColumnName})
		fields = append(fields, stmt)
	}
	return fields
}

func goType(f ir.Field) jen.Code {
	base := scalarGoType(f.TypeName)
	if f.IsArray {
		return jen.Index().Add(base)
	}
	if f.Nullable {
		return jen.Op("*").Add(base)
	}
	return base
}

func scalarGoType(pgType string) jen.Code {
	switch pgType {
	case "int2", "int4":
		return jen.Int32()
	case "int8":
		return jen.Int64()
	case "float4":
		return jen.Float32()
	case "float8", "numeric":
		return jen.Float64()
	case "bool":
		return jen.Bool()
	case "uuid":
		return jen.Qual("github.com/google/uuid", "UUID")
	case "date", "timestamp", "timestamptz", "time":
		return jen.Qual("time", "Time")
	case "text", "varchar", "bpchar", "char":
		return jen.String()
	case "json", "jsonb":
		return jen.Qual("encoding/json", "RawMessage")
	default:
		return jen.Any()
	}
}

// Program wraps a *jen.File so it satisfies astprog.Program. Prepend adds
// every resolved import line as a leading comment, since jennifer manages
// Go imports itself from the Qual calls made while building the file body.
type Program struct {
	file *jen.File
}

// NewProgram builds a Program for the named Go package.
func NewProgram(packageName string) *Program {
	return &Program{file: jen.NewFile(packageName)}
}

// Prepend implements astprog.Program.
func (p *Program) Prepend(stmts ...astprog.Statement) {
	for _, s := range stmts {
		if line, ok := s.(astprog.Line); ok {
			p.file.HeaderComment(string(line))
		}
	}
}

// Printer renders a *Program through jennifer's own formatter.
func Printer(prog astprog.Program) (string, error) {
	p, ok := prog.(*Program)
	if !ok {
		return "", fmt.Errorf("gostructs: Printer requires *Program, got %T", prog)
	}
	var buf bytes.Buffer
	if err := p.file.Render(&buf); err != nil {
		return "", fmt.Errorf("gostructs: rendering file: %w", err)
	}
	return buf.String(), nil
}
