// Package plugin defines the Plugin Contract (SPEC_FULL.md §6.2): the
// interface every generator plugin implements, and the Context the
// Execution Engine hands each plugin when it runs.
package plugin

import (
	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/capability"
	"github.com/pgsourcerer/pgsourcerer/emit"
	"github.com/pgsourcerer/pgsourcerer/inflect"
	"github.com/pgsourcerer/pgsourcerer/ir"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

// Plugin is the full contract a generator plugin implements. Its method
// set matches capability.ProviderPlugin, plus Provide; a Plugin value can
// always be passed anywhere a capability.ProviderPlugin is expected.
type Plugin interface {
	// Name is the plugin's identity, used in error attribution and
	// memoization keys.
	Name() string
	// Kind is the capability this plugin provides.
	Kind() capability.Key
	// CanProvide reports whether this plugin can satisfy a request with
	// the given params (a plugin declaring Kind "schemas:zod" might still
	// decline params asking for a dialect it doesn't support).
	CanProvide(params capability.Params) bool
	// Requires returns the sub-requests this plugin needs satisfied
	// before Provide runs, given the params it was resolved with.
	Requires(params capability.Params) []capability.RequestSpec
	// Singleton reports whether every request for this plugin's Kind
	// resolves to the same shared node regardless of requested params.
	Singleton() bool
	// SingletonParams is the fixed params a singleton plugin is always
	// invoked with; ignored if Singleton is false.
	SingletonParams() capability.Params
	// Provide runs the plugin: deps holds the results of Requires, in
	// the same order Requires returned them.
	Provide(params capability.Params, deps []any, ctx *Context) (any, error)
}

// RequestFunc is the engine-provided synchronous lookup a Context uses to
// answer ctx.Request calls: it fails if the given request wasn't declared
// in the calling plugin's Requires.
type RequestFunc func(kind capability.Key, params capability.Params) (any, error)

// Context is what the Execution Engine hands a plugin's Provide method.
type Context struct {
	IR         *ir.IR
	Inflection inflect.Config
	Symbols    *symbol.Registry
	Emission   *emit.Buffer

	pluginName string
	request    RequestFunc
}

// NewContext builds a Context for the named plugin.
func NewContext(irv *ir.IR, infl inflect.Config, symbols *symbol.Registry, emission *emit.Buffer, pluginName string, request RequestFunc) *Context {
	return &Context{
		IR:         irv,
		Inflection: infl,
		Symbols:    symbols,
		Emission:   emission,
		pluginName: pluginName,
		request:    request,
	}
}

// Request performs a synchronous lookup into the engine's memoization
// table for one of this plugin's declared Requires results.
func (c *Context) Request(kind capability.Key, params capability.Params) (any, error) {
	return c.request(kind, params)
}

// File returns a convenience builder scoped to path, attributing every
// emission through it to this plugin.
func (c *Context) File(path string) *FileBuilder {
	return &FileBuilder{buf: c.Emission, path: path, plugin: c.pluginName}
}

// Register records a symbol this plugin exports, so other plugins can
// resolve and import it.
func (c *Context) Register(sym symbol.Symbol) {
	c.Symbols.Register(sym, c.pluginName)
}

// FileBuilder is a thin per-path wrapper over emit.Buffer that threads the
// owning plugin's name through automatically.
type FileBuilder struct {
	buf    *emit.Buffer
	path   string
	plugin string
}

// Emit sets this file's content.
func (f *FileBuilder) Emit(content string) {
	f.buf.Emit(f.path, content, f.plugin)
}

// EmitAST registers an AST fragment for this file.
func (f *FileBuilder) EmitAST(program astprog.Program, header string, imports []emit.ImportRef) {
	f.buf.EmitAST(f.path, program, f.plugin, header, imports)
}

// Append appends to this file's existing content.
func (f *FileBuilder) Append(content string) {
	f.buf.AppendEmit(f.path, content, f.plugin)
}
