// Package naming canonicalizes raw schema and property names into
// target-language identifiers and resolves collisions deterministically.
// All state is scoped to one Registry, created fresh per generation run.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// splitWords breaks a raw name into words at separator characters
// (underscore, hyphen, dot, whitespace and any other non-alphanumeric rune)
// and at camelCase boundaries. Characters outside the identifier alphabet are
// dropped; they only contribute the boundary.
func splitWords(in string) []string {
	var (
		words   []string
		current []rune
	)

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	runes := []rune(in)
	length := len(runes)

	for idx := 0; idx < length; idx++ {
		r := runes[idx]

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}

		// camelCase boundary: an upper rune starts a new word when the
		// previous rune is lower, or when the next rune is lower (end of an
		// acronym run, e.g. "HTMLParser" -> "HTML", "Parser").
		if idx > 0 && unicode.IsUpper(r) &&
			((idx+1 < length && unicode.IsLower(runes[idx+1])) || unicode.IsLower(runes[idx-1])) {
			flush()
		}

		current = append(current, r)
	}
	flush()

	return words
}

// titleWord normalizes one word to Title case.
func titleWord(word string) string {
	return titleCaser.String(strings.ToLower(word))
}

// joinPascal joins words into a PascalCase identifier.
func joinPascal(words []string) string {
	var sb strings.Builder
	for _, word := range words {
		sb.WriteString(titleWord(word))
	}
	return sb.String()
}

// joinCamel joins words into a camelCase identifier.
func joinCamel(words []string) string {
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		sb.WriteString(titleWord(word))
	}
	return sb.String()
}

// countSpecials returns the count of non-alphanumeric runes in a raw name.
func countSpecials(raw string) int {
	count := 0
	for _, r := range raw {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// startsWithDigit reports whether the identifier begins with a digit.
func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
