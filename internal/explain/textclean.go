// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// fillerPhrases are stripped from summaries as plain substring removals.
// The list mirrors the boilerplate the upstream summarizer tends to emit.
// Removal is not word-boundary aware: a phrase matched inside a longer
// word is stripped too. That quirk is kept deliberately so cleaned output
// stays byte-compatible with the indexed corpus.
var fillerPhrases = []string{
	"here's a", "here is a", "4-5 line",
	"for revision", "summary", "unfortunately",
	"the given text", "i can provide",
}

var (
	// parenRE matches a parenthetical aside on a single line, shortest
	// match first.
	parenRE = regexp.MustCompile(`\([^)\n]*\)`)

	whitespaceRE = regexp.MustCompile(`\s+`)
)

// CleanText normalizes a raw chunk summary for display: lower-cases,
// strips filler phrases and parenthetical asides, collapses whitespace,
// and capitalizes the first rune. Returns "" when the input reduces to
// nothing. Pure function.
func CleanText(raw string) string {
	text := strings.ToLower(raw)
	for _, phrase := range fillerPhrases {
		text = strings.ReplaceAll(text, phrase, "")
	}
	text = parenRE.ReplaceAllString(text, "")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return capitalize(strings.TrimSpace(text))
}

// normalizeKey reduces a cleaned summary to its dedup key: lower-case
// with everything but letters, digits, and spaces removed. Keys are for
// comparison only, never display.
func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// titleCase upper-cases the first letter of every word, lower-casing the
// rest. Any non-letter acts as a word boundary.
func titleCase(s string) string {
	var b strings.Builder
	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			inWord = true
		} else {
			b.WriteRune(r)
			inWord = false
		}
	}
	return b.String()
}
