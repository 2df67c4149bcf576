package sanitizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeEmail trims and lowercases an address so that lookups and
// uniqueness checks are case-insensitive. The local part is otherwise kept
// as typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskEmail keeps the first character of the local part and the full domain,
// e.g. "reader@example.com" becomes "r*****@example.com". Input that is not
// shaped like an address is fully masked.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return strings.Repeat("*", len([]rune(email)))
	}

	runes := []rune(local)
	if len(runes) == 1 {
		return "*@" + domain
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1) + "@" + domain
}

// CollapseWhitespace trims s and replaces every internal whitespace run with
// a single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// NormalizeText composes s into Unicode NFC and collapses its whitespace, so
// that visually identical catalog strings compare equal.
func NormalizeText(s string) string {
	return CollapseWhitespace(norm.NFC.String(s))
}
