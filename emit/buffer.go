package emit

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pgsourcerer/pgsourcerer/astprog"
	"github.com/pgsourcerer/pgsourcerer/symbol"
)

type pendingAST struct {
	program astprog.Program
	plugin  string
	header  string
	imports []ImportRef
}

// Buffer is the Emission Buffer: every plugin's output accumulates here,
// keyed by output path, until the orchestrator calls SerializeAST and
// Validate.
type Buffer struct {
	mu sync.Mutex

	emissions     map[string]string
	astEmissions  map[string]*pendingAST
	contentOwner  map[string]string          // path -> plugin that last wrote content
	pluginsByPath map[string]map[string]bool // every plugin that ever touched a path

	unresolved []UnresolvedRef
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{
		emissions:     map[string]string{},
		astEmissions:  map[string]*pendingAST{},
		contentOwner:  map[string]string{},
		pluginsByPath: map[string]map[string]bool{},
	}
}

func (b *Buffer) trackPlugin(path, plugin string) {
	set, ok := b.pluginsByPath[path]
	if !ok {
		set = map[string]bool{}
		b.pluginsByPath[path] = set
	}
	set[plugin] = true
}

// Emit sets the content for path, overwriting anything previously emitted
// there and making plugin the path's content owner for future AppendEmit
// calls.
func (b *Buffer) Emit(path, content, plugin string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackPlugin(path, plugin)
	b.contentOwner[path] = plugin
	delete(b.astEmissions, path)
	b.emissions[path] = content
}

// EmitAST registers an AST fragment for path to be rendered once
// SerializeAST runs. header, if non-empty, is prepended verbatim ahead of
// the printed body (e.g. a "// Code generated" banner).
func (b *Buffer) EmitAST(path string, program astprog.Program, plugin, header string, imports []ImportRef) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackPlugin(path, plugin)
	b.contentOwner[path] = plugin
	delete(b.emissions, path)
	b.astEmissions[path] = &pendingAST{program: program, plugin: plugin, header: header, imports: imports}
}

// AppendEmit appends content to path's existing emission, but only if
// plugin is already that path's content owner; otherwise the append is
// silently discarded, though plugin is still recorded against the path
// for conflict detection.
func (b *Buffer) AppendEmit(path, content, plugin string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trackPlugin(path, plugin)
	if owner, ok := b.contentOwner[path]; !ok || owner != plugin {
		return
	}
	b.emissions[path] += content
}

// Emissions returns a snapshot of every finalized (non-AST-pending)
// emission.
func (b *Buffer) Emissions() map[string]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]string, len(b.emissions))
	for k, v := range b.emissions {
		out[k] = v
	}
	return out
}

// UnresolvedRefs returns every symbolic import SerializeAST failed to
// resolve.
func (b *Buffer) UnresolvedRefs() []UnresolvedRef {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]UnresolvedRef, len(b.unresolved))
	copy(out, b.unresolved)
	return out
}

// Validate returns every output path more than one plugin wrote to,
// sorted by path.
func (b *Buffer) Validate() []Conflict {
	b.mu.Lock()
	defer b.mu.Unlock()

	paths := make([]string, 0, len(b.pluginsByPath))
	for p := range b.pluginsByPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var conflicts []Conflict
	for _, p := range paths {
		set := b.pluginsByPath[p]
		if len(set) <= 1 {
			continue
		}
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		conflicts = append(conflicts, Conflict{Path: p, Plugins: names})
	}
	return conflicts
}

// SerializeAST resolves and merges every pending AST emission's imports
// through symbols, prepends the merged import declarations to each
// Program, renders it with printer, and stores the result as a regular
// emission. It is idempotent: emissions already serialized (or emitted
// directly via Emit) are left untouched by a repeated call.
func (b *Buffer) SerializeAST(printer astprog.Printer, symbols *symbol.Registry) error {
	b.mu.Lock()
	paths := make([]string, 0, len(b.astEmissions))
	for p := range b.astEmissions {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	b.mu.Unlock()

	for _, path := range paths {
		b.mu.Lock()
		entry, ok := b.astEmissions[path]
		b.mu.Unlock()
		if !ok {
			continue
		}

		merged, unresolved := mergeImports(path, entry.plugin, entry.imports, symbols)

		var prelude []astprog.Statement
		for _, m := range merged {
			if line, ok := m.valueLine(); ok {
				prelude = append(prelude, astprog.Line(line))
			}
			if line, ok := m.typeLine(); ok {
				prelude = append(prelude, astprog.Line(line))
			}
		}
		entry.program.Prepend(prelude...)

		body, err := printer(entry.program)
		if err != nil {
			return fmt.Errorf("emit: printing %s: %w", path, err)
		}

		var out strings.Builder
		if entry.header != "" {
			out.WriteString(entry.header)
			out.WriteString("\n")
		}
		out.WriteString(body)

		b.mu.Lock()
		b.unresolved = append(b.unresolved, unresolved...)
		b.emissions[path] = out.String()
		delete(b.astEmissions, path)
		b.mu.Unlock()
	}
	return nil
}
