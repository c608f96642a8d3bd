// Package record describes legislator records as they come from sources,
// before any normalization or identity resolution.
package record

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrSourceShape marks a record that cannot be used because required
// data is missing or malformed. Such records are skipped and counted,
// they never abort a run.
var ErrSourceShape = errors.New("source shape error")

// Origin tells which source a record came from.
type Origin int

const (
	// Federal records come from the congressional roster.
	Federal Origin = iota + 1
	// State records come from per-state legislature files.
	State
)

// String implements fmt.Stringer.
func (o Origin) String() string {
	switch o {
	case Federal:
		return "federal"
	case State:
		return "state"
	default:
		return "unknown"
	}
}

// RawRecord is an unnormalized legislator record.
type RawRecord struct {
	// Origin is the source kind of the record.
	Origin Origin

	// Ref locates the record inside its source (file path, array index).
	Ref string

	// SourceID is the identifier found in the source document, if any.
	// It is informational and is not used for identity.
	SourceID string

	// ExternalID is the stable cross-run identity key (bioguide id).
	// Empty for state records.
	ExternalID string

	FullName   string
	GivenName  string
	FamilyName string
	Gender     string

	// BirthDate is a YYYY-MM-DD date or empty.
	BirthDate string

	// Term is nil when the source has no usable term context.
	Term *TermContext
}

// TermContext carries raw term data. Values are not validated here:
// closed enumerations are enforced by the dimension resolver.
type TermContext struct {
	JurisdictionName   string
	JurisdictionAbbrev string
	JurisdictionType   string

	// Chamber is a raw chamber label (House, lower, rep, ...).
	Chamber string

	// District is a free-form district designation.
	District string

	// Party is a raw party label or code; empty if unknown.
	Party string

	StartDate string
	EndDate   string

	// ElectionYear is zero when unknown.
	ElectionYear int
}

// ShapeError creates an error that wraps ErrSourceShape with the
// location of the offending record.
func ShapeError(ref string, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w: %s: %s", ErrSourceShape, ref, msg)
}

// Source is a lazy, finite, non-restartable sequence of records.
//
// Next returns io.EOF after the last record. An error wrapping
// ErrSourceShape means the current element was skipped and iteration
// may continue; any other error is fatal.
type Source interface {
	// Name is a short label used in logs.
	Name() string

	// Len is the number of elements the source is going to produce,
	// including those that end up as shape errors.
	Len() int

	Next(ctx context.Context) (RawRecord, error)
}

// sliceSource serves records from memory.
type sliceSource struct {
	name string
	recs []RawRecord
	idx  int
}

// NewSliceSource creates a Source from in-memory records.
func NewSliceSource(name string, recs []RawRecord) Source {
	return &sliceSource{name: name, recs: recs}
}

func (s *sliceSource) Name() string { return s.name }

func (s *sliceSource) Len() int { return len(s.recs) }

func (s *sliceSource) Next(ctx context.Context) (RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return RawRecord{}, err
	}
	if s.idx >= len(s.recs) {
		return RawRecord{}, io.EOF
	}
	res := s.recs[s.idx]
	s.idx++
	return res, nil
}
