// Package identity decides whether a raw record belongs to a legislator
// that is already stored or to a new one.
//
// Records with an external id (federal roster) are matched by that id
// only. Records without it (state files) are matched by exact normalized
// full name, and the lowest id wins. Two different people with the same
// name therefore collapse into one legislator. This is a known
// limitation, there is no fuzzy matching.
package identity

import (
	"context"
	"strings"
	"time"

	"github.com/civicdata/legisdb/pkg/names"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/civicdata/legisdb/pkg/schema"
)

// Lookup finds stored legislators by identity keys.
type Lookup interface {
	// LegislatorByExternalID returns the id of the legislator with the
	// given external id. The bool is false if there is none.
	LegislatorByExternalID(ctx context.Context, externalID string) (int64, bool, error)

	// LegislatorByName returns the lowest id of legislators with the given
	// full name. The bool is false if there is none.
	LegislatorByName(ctx context.Context, fullName string) (int64, bool, error)
}

// Ref is the result of identity resolution.
type Ref struct {
	// ID is the id of the matched legislator, zero when pending.
	ID int64

	// Existing is true if the record matched a stored legislator.
	Existing bool

	// Fields are the normalized legislator fields of the record. For a
	// pending Ref they are inserted, for an existing one they only fill
	// NULL columns.
	Fields schema.Legislator
}

// Fields normalizes a raw record into legislator columns.
// It returns record.ErrSourceShape if no full name can be derived.
func Fields(rec record.RawRecord) (schema.Legislator, error) {
	var res schema.Legislator

	full := names.FullName(rec.FullName)
	if full == "" {
		return res, record.ShapeError(rec.Ref, "no full name")
	}

	parts := names.Normalize(full, rec.GivenName, rec.FamilyName)
	res = schema.Legislator{
		FullName:   full,
		GivenName:  parts.Given,
		MiddleName: parts.Middle,
		FamilyName: parts.Family,
		Gender:     names.Gender(rec.Gender),
		BirthDate:  birthDate(rec.BirthDate),
	}

	if id := strings.TrimSpace(rec.ExternalID); id != "" {
		res.ExternalID = &id
	}
	return res, nil
}

// Resolve normalizes the record and looks it up by its identity key.
func Resolve(ctx context.Context, l Lookup, rec record.RawRecord) (Ref, error) {
	var res Ref
	fields, err := Fields(rec)
	if err != nil {
		return res, err
	}
	res.Fields = fields

	var id int64
	var ok bool
	if fields.ExternalID != nil {
		id, ok, err = l.LegislatorByExternalID(ctx, *fields.ExternalID)
	} else {
		id, ok, err = l.LegislatorByName(ctx, fields.FullName)
	}
	if err != nil {
		return res, err
	}

	if ok {
		res.ID = id
		res.Existing = true
	}
	return res, nil
}

// birthDate keeps only valid YYYY-MM-DD dates.
func birthDate(s string) *string {
	s = strings.TrimSpace(s)
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return nil
	}
	return &s
}
