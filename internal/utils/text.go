package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var indexPrefixRe = regexp.MustCompile(`^\s*\d+\s*[\.\-\)\:]?\s*`)

var leadingIndexRe = regexp.MustCompile(`^\s*(\d+)`)

// Normalize turns a display string into a comparable key: accents stripped,
// non-alphanumerics dropped, whitespace collapsed, upper-cased.
// "¿Cómo invierto?" and "como invierto" normalize to the same key.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Decompose so combining marks can be filtered out
	s = norm.NFKD.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark (accent) - drop
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.ToUpper(strings.Join(strings.Fields(b.String()), " "))
}

// Slugify is Normalize with internal spaces replaced by underscores,
// suitable for use inside machine identifiers.
func Slugify(s string) string {
	return strings.ReplaceAll(Normalize(s), " ", "_")
}

// Truncate shortens text to at most max runes. Text that already fits is
// returned unchanged; otherwise it is cut, preferring a word boundary, and
// ends with "..." within the limit.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= 3 {
		return string(runes[:max])
	}

	cut := string(runes[:max-3])
	if idx := strings.LastIndex(cut, " "); idx > max/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "..."
}

// StripIndexPrefix removes a leading "1. " / "2-" / "3) " style prefix that
// menu labels carry.
func StripIndexPrefix(s string) string {
	return indexPrefixRe.ReplaceAllString(s, "")
}

// LeadingIndex returns the integer a string starts with, or 0 if it does not
// start with one.
func LeadingIndex(s string) int {
	m := leadingIndexRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n := 0
	for _, d := range m[1] {
		n = n*10 + int(d-'0')
		if n > 1000 {
			return 0
		}
	}
	return n
}
