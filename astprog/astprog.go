// Package astprog defines the abstract program/printer contract the
// emission buffer serializes through. It intentionally says nothing about
// what a "program" looks like in any particular target language: a plugin
// author supplies a Program implementation and a Printer, and the engine
// only ever calls Prepend before handing the result to the printer.
package astprog

import (
	"fmt"
	"strings"
)

// Statement is an opaque fragment a Program can be asked to prepend. The
// engine never inspects a Statement's contents; it only ever passes back
// the Line values it builds from resolved imports.
type Statement interface {
	isStatement()
}

// Line is the simplest Statement: one line of already-rendered source text.
type Line string

func (Line) isStatement() {}

// Program is the contract the emission buffer's import-merge step needs
// from a target-language AST: the ability to prepend statements (merged
// import declarations) ahead of whatever body the plugin already built.
type Program interface {
	Prepend(stmts ...Statement)
}

// Printer renders a Program to its final source text. Plugins provide
// their own; the engine only ever calls the one it was configured with.
type Printer func(Program) (string, error)

// TextProgram is a reference Program made of Line statements, used by the
// text-oriented reference plugins (and by tests).
type TextProgram struct {
	lines []Statement
}

// NewTextProgram builds a TextProgram from an initial body.
func NewTextProgram(body ...Statement) *TextProgram {
	return &TextProgram{lines: body}
}

// Prepend implements Program.
func (p *TextProgram) Prepend(stmts ...Statement) {
	p.lines = append(append([]Statement{}, stmts...), p.lines...)
}

// Lines returns the program's statements in order.
func (p *TextProgram) Lines() []Statement {
	return p.lines
}

// TextPrinter renders a *TextProgram whose statements are all Line values.
func TextPrinter(p Program) (string, error) {
	tp, ok := p.(*TextProgram)
	if !ok {
		return "", fmt.Errorf("astprog: TextPrinter requires *TextProgram, got %T", p)
	}
	var b strings.Builder
	for _, s := range tp.lines {
		line, ok := s.(Line)
		if !ok {
			return "", fmt.Errorf("astprog: TextPrinter requires Line statements, got %T", s)
		}
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String(), nil
}
