package column

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// QualifiedTitle derives a header label from a field key: camelCase and
// PascalCase boundaries split into words, path and namespace separators
// become spaces, and each word is title-cased.
//
//	"id"           -> "Id"
//	"full_name"    -> "Full Name"
//	"user.email"   -> "User Email"
//	"createdAt"    -> "Created At"
//	"HTTPStatus"   -> "Http Status"
func QualifiedTitle(key string) string {
	words := splitWords(key)
	if len(words) == 0 {
		return ""
	}
	// Casers are stateful, so one per call.
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

func isSeparator(r rune) bool {
	switch r {
	case '.', '_', '-', '/', '\\', ':':
		return true
	}
	return unicode.IsSpace(r)
}

func splitWords(s string) []string {
	runes := []rune(s)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
