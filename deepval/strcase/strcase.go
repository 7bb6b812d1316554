// Package strcase converts identifiers between casing conventions and
// produces URL-safe slugs.
package strcase

import (
	"strings"
	"unicode"
)

// splitWords breaks an identifier into lowercase words. Boundaries are
// non-alphanumeric runs, lower-to-upper transitions, and the last capital of
// an acronym run ("HTTPServer" splits into "http", "server").
func splitWords(s string) []string {
	var words []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				flush()
			} else if i > 0 && unicode.IsUpper(runes[i-1]) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// Camel converts s to camelCase.
func Camel(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Pascal converts s to PascalCase.
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Snake converts s to snake_case.
func Snake(s string) string {
	return strings.Join(splitWords(s), "_")
}

// Kebab converts s to kebab-case.
func Kebab(s string) string {
	return strings.Join(splitWords(s), "-")
}

// Title converts s to space-separated Title Case.
func Title(s string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Slugify produces a URL-safe slug: ASCII letters are lowercased, digits and
// hyphens pass through, whitespace becomes a hyphen, and everything else is
// dropped. Runs of hyphens collapse and leading or trailing hyphens are
// trimmed.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r) || r == '_':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
