package render

import (
	"strings"
	"text/template"
	"unicode"

	"github.com/jinzhu/inflection"
)

var helperFuncs = template.FuncMap{
	"upper":    strings.ToUpper,
	"lower":    strings.ToLower,
	"title":    Title,
	"snake":    SnakeCase,
	"plural":   inflection.Plural,
	"singular": inflection.Singular,
}

// SnakeCase lowercases s, turns spaces and dashes into underscores, and drops
// every other character that is not a letter, digit, or underscore.
func SnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('_')
		case r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Title upper-cases the first letter of every space, dash, or underscore
// separated word.
func Title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	start := true
	for _, r := range s {
		if r == ' ' || r == '-' || r == '_' {
			start = true
			b.WriteRune(r)
			continue
		}
		if start {
			r = unicode.ToUpper(r)
			start = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
