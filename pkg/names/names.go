// Package names derives canonical name components and gender codes
// from raw legislator data. It has no I/O.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parts are canonical name components. Nil means unknown.
type Parts struct {
	Given  *string
	Middle *string
	Family *string
}

// Normalize derives given, middle and family names.
//
// A non-empty givenName is used verbatim. familyNameRaw is split on
// whitespace and its last token is the family name, everything before
// it becomes the middle name. Compound surnames such as "Wasserman
// Schultz" or "De Los Santos" therefore lose their leading tokens to
// the middle name. Sources depend on this split, do not make it smarter.
//
// fullName is never split.
func Normalize(fullName, givenName, familyNameRaw string) Parts {
	var res Parts

	if givenName != "" {
		res.Given = &givenName
	}

	tokens := strings.Fields(familyNameRaw)
	switch len(tokens) {
	case 0:
	case 1:
		res.Family = &tokens[0]
	default:
		family := tokens[len(tokens)-1]
		middle := strings.Join(tokens[:len(tokens)-1], " ")
		res.Family = &family
		res.Middle = &middle
	}
	return res
}

// Gender reduces a gender string to its first character, upper-cased.
// Empty input gives nil. The result is not checked against known codes.
func Gender(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(raw)
	res := string(unicode.ToUpper(r))
	return &res
}

// FullName trims a full name and collapses internal whitespace.
// The result is the exact-match key for legislators without an
// external id.
func FullName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
