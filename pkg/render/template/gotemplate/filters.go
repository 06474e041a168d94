package gotemplate

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/flosch/pongo2/v6"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filters registered on every engine. Case conversion is locale-neutral so
// generated identifiers do not depend on the host language.
var defaultFilters = map[string]pongo2.FilterFunction{
	"trim":       filterTrim,
	"lowerfirst": filterLowerFirst,
	"upperfirst": filterUpperFirst,
	"pascal":     caseFilter(toPascal),
	"camel":      caseFilter(toCamel),
	"snake":      caseFilter(func(s string) string { return joinWords(s, "_") }),
	"kebab":      caseFilter(func(s string) string { return joinWords(s, "-") }),
}

func registerDefaultFilters() {
	for name, fn := range defaultFilters {
		if !pongo2.FilterExists(name) {
			_ = pongo2.RegisterFilter(name, fn)
		}
	}
}

func caseFilter(convert func(string) string) pongo2.FilterFunction {
	return func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		if in.Len() <= 0 {
			return pongo2.AsValue(""), nil
		}
		return pongo2.AsValue(convert(in.String())), nil
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterLowerFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(mapFirstRune(in.String(), unicode.ToLower)), nil
}

func filterUpperFirst(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(mapFirstRune(in.String(), unicode.ToUpper)), nil
}

// mapFirstRune applies fn to the first non-whitespace rune, keeping any
// leading whitespace.
func mapFirstRune(s string, fn func(rune) rune) string {
	for i, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		size := utf8.RuneLen(r)
		return s[:i] + string(fn(r)) + s[i+size:]
	}
	return s
}

// splitWords breaks identifiers on separators and lower-to-upper case
// boundaries: "userID", "user_id" and "User Id" all give [user id].
func splitWords(s string) []string {
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

func toPascal(s string) string {
	words := splitWords(s)
	// Casers keep state, so each call gets its own.
	caser := cases.Title(language.Und, cases.NoLower)
	for i, word := range words {
		words[i] = caser.String(word)
	}
	return strings.Join(words, "")
}

func toCamel(s string) string {
	return mapFirstRune(toPascal(s), unicode.ToLower)
}

func joinWords(s, sep string) string {
	return strings.Join(splitWords(s), sep)
}
