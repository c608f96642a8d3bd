package iopopulate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/db"
	"github.com/civicdata/legisdb/pkg/dims"
	"github.com/civicdata/legisdb/pkg/identity"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/civicdata/legisdb/pkg/schema"
	"github.com/civicdata/legisdb/pkg/term"
)

// loader turns raw records into rows of one session and keeps the
// counters of the run. It is used from a single goroutine.
type loader struct {
	sess db.Session
	res  *dims.Resolver
	sum  *legisdb.Summary
}

func newLoader(sess db.Session, sum *legisdb.Summary) *loader {
	return &loader{
		sess: sess,
		res:  dims.NewResolver(sess),
		sum:  sum,
	}
}

// skip counts a record dropped by a source-shape error.
func (l *loader) skip(err error) {
	l.sum.Skipped++
	slog.Warn("Skipping record", "run_id", l.sum.RunID, "reason", err)
}

// load stores the legislator of a record and its term, if any.
// Only store failures are returned; bad data is counted.
func (l *loader) load(ctx context.Context, rec record.RawRecord) error {
	ref, err := identity.Resolve(ctx, l.sess, rec)
	if errors.Is(err, record.ErrSourceShape) {
		l.skip(err)
		return nil
	}
	if err != nil {
		return LoadError(rec.Ref, err)
	}
	l.sum.Processed++

	id, err := l.legislator(ctx, ref)
	if err != nil {
		return LoadError(rec.Ref, err)
	}

	if err = l.storeTerm(ctx, id, rec); err != nil {
		return LoadError(rec.Ref, err)
	}
	return nil
}

// legislator inserts a new legislator or fills the empty columns of
// the matched one, and returns its id.
func (l *loader) legislator(ctx context.Context, ref identity.Ref) (int64, error) {
	if ref.Existing {
		if err := l.sess.FillLegislator(ctx, ref.ID, &ref.Fields); err != nil {
			return 0, err
		}
		l.sum.LegislatorsMatched++
		return ref.ID, nil
	}

	id, inserted, err := l.sess.InsertLegislator(ctx, &ref.Fields)
	if err != nil {
		return 0, err
	}
	if inserted {
		l.sum.LegislatorsInserted++
	} else {
		l.sum.LegislatorsMatched++
	}
	return id, nil
}

// storeTerm builds and stores the term of a record. Records without a
// usable term context and terms with invalid values are counted,
// not stored.
func (l *loader) storeTerm(ctx context.Context, legislatorID int64, rec record.RawRecord) error {
	tc := rec.Term
	if tc == nil || strings.TrimSpace(tc.District) == "" {
		l.sum.TermsNoContext++
		return nil
	}

	t, err := term.Build(legislatorID, 0, nil, tc.StartDate, &tc.EndDate, &tc.ElectionYear)
	if errors.Is(err, term.ErrNoStartDate) {
		l.sum.TermsNoContext++
		return nil
	}
	if err == nil {
		err = checkContext(tc)
	}
	if err != nil {
		l.reject(rec.Ref, err)
		return nil
	}

	err = l.resolve(ctx, tc, &t)
	if dims.IsValidationError(err) {
		l.reject(rec.Ref, err)
		return nil
	}
	if err != nil {
		return err
	}

	inserted, err := l.sess.InsertTerm(ctx, &t)
	if err != nil {
		return err
	}
	if inserted {
		l.sum.TermsInserted++
	} else {
		l.sum.TermsExisting++
	}
	return nil
}

func (l *loader) reject(ref string, err error) {
	l.sum.TermsRejected++
	slog.Warn("Rejecting term", "run_id", l.sum.RunID, "record", ref, "reason", err)
}

// checkContext validates the enumerated values of a term context, so
// a rejected term leaves no dimension rows behind.
func checkContext(tc *record.TermContext) error {
	if strings.TrimSpace(tc.Party) != "" {
		if _, err := dims.ParseParty(tc.Party); err != nil {
			return err
		}
	}
	if _, err := dims.ParseJurisdictionType(tc.JurisdictionType); err != nil {
		return err
	}
	if _, err := dims.ParseAbbrev(tc.JurisdictionAbbrev); err != nil {
		return err
	}
	_, err := dims.ParseChamber(tc.Chamber)
	return err
}

// resolve sets the district and party ids of the term, creating
// missing dimension rows.
func (l *loader) resolve(ctx context.Context, tc *record.TermContext, t *schema.Term) error {
	jurID, err := l.res.ResolveJurisdiction(ctx,
		tc.JurisdictionName, tc.JurisdictionAbbrev, tc.JurisdictionType)
	if err != nil {
		return err
	}
	chamberID, err := l.res.ResolveChamber(ctx, jurID, tc.Chamber)
	if err != nil {
		return err
	}
	t.DistrictID, err = l.res.ResolveDistrict(ctx, chamberID, tc.District)
	if err != nil {
		return err
	}

	if strings.TrimSpace(tc.Party) != "" {
		partyID, err := l.res.ResolveParty(ctx, tc.Party)
		if err != nil {
			return err
		}
		t.PartyID = &partyID
	}
	return nil
}
