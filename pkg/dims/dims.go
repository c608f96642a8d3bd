// Package dims holds the closed enumerations of the reference dimensions
// (party, jurisdiction type, chamber) and the resolver that turns natural
// keys into surrogate ids.
//
// Raw strings from sources enter the system only through the Parse
// functions. Values outside the declared sets are reported as
// *ValidationError and never reach the store.
package dims

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a dimension value outside its declared set.
type ValidationError struct {
	// Dimension is the name of the dimension (party, chamber, ...).
	Dimension string
	// Value is the offending raw value.
	Value string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s value %q", e.Dimension, e.Value)
}

// IsValidationError reports whether err contains a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Party is a party abbreviation.
type Party string

const (
	Democratic  Party = "D"
	Republican  Party = "R"
	Independent Party = "I"
)

var partyLabels = map[string]Party{
	"d":                       Democratic,
	"democrat":                Democratic,
	"democratic":              Democratic,
	"democratic-farmer-labor": Democratic,
	"democratic-npl":          Democratic,
	"r":                       Republican,
	"republican":              Republican,
	"i":                       Independent,
	"independent":             Independent,
}

// ParseParty converts a party code or a known party label into Party.
// Third-party and nonpartisan labels are rejected.
func ParseParty(s string) (Party, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if res, ok := partyLabels[key]; ok {
		return res, nil
	}
	return "", &ValidationError{Dimension: "party", Value: s}
}

// JurisdictionType is the level of a jurisdiction.
type JurisdictionType string

const (
	StateJurisdiction   JurisdictionType = "state"
	FederalJurisdiction JurisdictionType = "federal"
)

// ParseJurisdictionType converts a raw string into JurisdictionType.
func ParseJurisdictionType(s string) (JurisdictionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "state":
		return StateJurisdiction, nil
	case "federal":
		return FederalJurisdiction, nil
	}
	return "", &ValidationError{Dimension: "jurisdiction type", Value: s}
}

// Chamber is the name of a legislative chamber.
type Chamber string

const (
	House  Chamber = "House"
	Senate Chamber = "Senate"
)

// ParseChamber converts chamber names and the role labels used by
// sources (lower/upper, rep/sen) into Chamber. Unicameral
// legislatures are rejected.
func ParseChamber(s string) (Chamber, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "house", "lower", "rep":
		return House, nil
	case "senate", "upper", "sen":
		return Senate, nil
	}
	return "", &ValidationError{Dimension: "chamber", Value: s}
}

// ParseAbbrev validates a two-letter jurisdiction code and returns it
// upper-cased.
func ParseAbbrev(s string) (string, error) {
	res := strings.ToUpper(strings.TrimSpace(s))
	if len(res) != 2 || !isUpperASCII(res[0]) || !isUpperASCII(res[1]) {
		return "", &ValidationError{Dimension: "jurisdiction abbreviation", Value: s}
	}
	return res, nil
}

func isUpperASCII(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
