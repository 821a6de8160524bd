package generator

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SymbolName derives the C identifier stem for an input file from its base
// name. Every rune that is not a letter, a number or '_' becomes '_'.
// A leading digit is left alone.
func SymbolName(path string) string {
	return sanitize(filepath.Base(path))
}

// GuardName derives the include guard stem from an output basename. Unlike
// SymbolName it uses the whole basename, directories included. Upper-casing
// uses full case mapping, so "ß" becomes "SS".
func GuardName(basename string) string {
	return cases.Upper(language.Und).String(sanitize(basename))
}

// sanitize is idempotent. Invalid UTF-8 decodes to utf8.RuneError, one
// byte at a time, so each bad byte becomes a single '_'.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
