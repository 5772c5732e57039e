package services

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// nameKeywords are tokens that commonly precede a customer name in a
// question ("customer X", "tickets for X"). They are never themselves
// part of an extracted name.
var nameKeywords = map[string]bool{
	"customer": true,
	"for":      true,
	"profile":  true,
	"tickets":  true,
	"about":    true,
}

// quotedSpan matches a single- or double-quoted substring.
var quotedSpan = regexp.MustCompile(`['"]([^'"]+)['"]`)

// ExtractCustomerName attempts to identify a customer name in free text
// using a three-tier fallback. The first tier that succeeds wins:
//
//  1. A quoted span is returned verbatim.
//  2. The token following a name keyword, with trailing possessive and
//     punctuation stripped, unless that token is itself a keyword.
//  3. The first two capitalised non-keyword tokens joined with a space.
//
// This is a heuristic, not a named-entity recogniser: sentence-initial
// capitalised words can be mis-extracted. Returns false when no tier
// succeeds.
func ExtractCustomerName(question string) (string, bool) {
	if m := quotedSpan.FindStringSubmatch(question); m != nil {
		return m[1], true
	}

	words := strings.Fields(question)

	for i, word := range words {
		if !nameKeywords[strings.ToLower(word)] || i+1 >= len(words) {
			continue
		}
		next := stripPossessive(words[i+1])
		if next != "" && !nameKeywords[strings.ToLower(next)] {
			return next, true
		}
	}

	var names []string
	for _, word := range words {
		if !startsUpper(word) {
			continue
		}
		cleaned := stripPossessive(word)
		if cleaned == "" || nameKeywords[strings.ToLower(cleaned)] {
			continue
		}
		names = append(names, cleaned)
		if len(names) == 2 {
			break
		}
	}
	if len(names) > 0 {
		return strings.Join(names, " "), true
	}

	return "", false
}

// stripPossessive removes a trailing possessive ('s) and trailing
// punctuation from a token: "Johnson's," becomes "Johnson".
func stripPossessive(token string) string {
	token = strings.TrimRight(token, ",.")
	token = strings.TrimSuffix(token, "'s")
	return strings.TrimRight(token, "'")
}

// startsUpper reports whether the token begins with an upper-case letter.
func startsUpper(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
