package document

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ContentMatches reports whether a and b are identical after canonicalizing
// line endings (CRLF to LF) and trimming trailing whitespace at the very end
// of the string. Interior whitespace is significant.
func ContentMatches(a, b string) bool {
	return normalizeContent(a) == normalizeContent(b)
}

func normalizeContent(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// NormalizeTitle returns the NFC form of a section title. Titles that
// differ only in Unicode composition refer to the same section.
func NormalizeTitle(title string) string {
	return norm.NFC.String(title)
}

// TitlesEqual compares two optional titles. Nil titles (preambles) match
// each other and nothing else; non-nil titles compare under NFC.
func TitlesEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return NormalizeTitle(*a) == NormalizeTitle(*b)
}

// IsBlank reports whether s is empty or whitespace-only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
