// Package inflect implements the engine's Inflection component: the
// snake_case/PascalCase/camelCase transforms and singular/plural rules
// every other component derives identifiers through, plus the shape-name
// memoization registry used to recover an entity name from a
// shape-suffixed identifier.
package inflect

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Config is a record of the four transforms the rest of the engine is
// built against. DefaultConfig wires them to go-openapi/inflect and
// golang.org/x/text/cases; a caller that wants different pluralization
// rules (an irregular-noun dictionary, a different locale for casing)
// supplies its own Config instead of reaching into this package's
// internals.
type Config struct {
	ToPascal    func(string) string
	ToCamel     func(string) string
	Pluralize   func(string) string
	Singularize func(string) string
}

// DefaultConfig returns the engine's default Inflection.
func DefaultConfig() Config {
	return Config{
		ToPascal:    ToPascal,
		ToCamel:     ToCamel,
		Pluralize:   inflect.Pluralize,
		Singularize: inflect.Singularize,
	}
}

var titleCaser = cases.Title(language.English)

// splitWords breaks a snake_case, kebab-case, or already-mixed-case
// identifier into its constituent words.
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_' && runes[i-1] != '-':
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

// ToPascal converts snake_case (or any word-separated identifier) to
// PascalCase, e.g. "user_account" -> "UserAccount".
func ToPascal(s string) string {
	words := splitWords(s)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(titleCaser.String(strings.ToLower(w)))
	}
	return b.String()
}

// ToCamel converts snake_case to camelCase, e.g. "user_account" ->
// "userAccount".
func ToCamel(s string) string {
	pascal := ToPascal(s)
	if pascal == "" {
		return pascal
	}
	r := []rune(pascal)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
