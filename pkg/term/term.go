// Package term assembles Term rows from resolved ids and raw dates.
package term

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/civicdata/legisdb/pkg/schema"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

var (
	// ErrNoStartDate means the source gave no start date, so there is
	// no term to build.
	ErrNoStartDate = errors.New("term has no start date")

	// ErrInvalidDate means a date is not in YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid term date")
)

// Build creates a Term for a legislator in a district. The party,
// end date and election year are optional.
//
// Overlapping terms are allowed, Build does not look at other terms
// of the legislator.
func Build(
	legislatorID, districtID int64,
	partyID *int64,
	start string,
	end *string,
	year *int,
) (schema.Term, error) {
	var res schema.Term

	start = strings.TrimSpace(start)
	if start == "" {
		return res, ErrNoStartDate
	}
	if err := ParseDate(start); err != nil {
		return res, err
	}

	if end != nil {
		e := strings.TrimSpace(*end)
		if e == "" {
			end = nil
		} else {
			if err := ParseDate(e); err != nil {
				return res, err
			}
			end = &e
		}
	}

	if year != nil && *year <= 0 {
		year = nil
	}

	res = schema.Term{
		LegislatorID: legislatorID,
		DistrictID:   districtID,
		PartyID:      partyID,
		StartDate:    start,
		EndDate:      end,
		ElectionYear: year,
	}
	return res, nil
}

// ParseDate checks that s is a calendar date in YYYY-MM-DD format.
func ParseDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return nil
}
