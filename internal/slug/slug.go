// Package slug turns arbitrary text into identifier-safe fragments.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nonWord matches runs of characters that may not appear in a slug.
// Underscores count as word characters and survive.
var nonWord = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Make lower-cases s, decomposes it (NFKD) dropping combining marks,
// collapses every run of disallowed characters into a single hyphen and
// trims hyphens from both ends.
//
// Make never fails. Input made only of symbols yields "".
func Make(s string) string {
	s = strings.ToLower(s)
	s = stripMarks(s)
	s = nonWord.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// stripMarks applies compatibility decomposition and removes nonspacing marks,
// so "é" becomes "e" and full-width letters become ASCII.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return norm.NFKD.String(s)
	}
	return out
}
