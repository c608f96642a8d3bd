package iodb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/civicdata/legisdb/pkg/db"
	"github.com/civicdata/legisdb/pkg/schema"
)

// session implements db.Session on top of one transaction.
type session struct {
	tx      *sql.Tx
	dialect db.Dialect
	done    bool
}

// LegislatorByExternalID finds a legislator by external id.
func (s *session) LegislatorByExternalID(
	ctx context.Context,
	externalID string,
) (int64, bool, error) {
	q := `SELECT id FROM legislators WHERE external_id = $1`
	return s.queryID(ctx, "legislators", q, externalID)
}

// LegislatorByName finds the legislator with the lowest id among
// those with the given full name.
func (s *session) LegislatorByName(
	ctx context.Context,
	fullName string,
) (int64, bool, error) {
	q := `SELECT id FROM legislators WHERE full_name = $1
		ORDER BY id LIMIT 1`
	return s.queryID(ctx, "legislators", q, fullName)
}

// InsertLegislator adds a legislator row. A conflict on external_id
// leaves the stored row as is and returns its id.
func (s *session) InsertLegislator(
	ctx context.Context,
	l *schema.Legislator,
) (int64, bool, error) {
	q := `INSERT INTO legislators
		(external_id, full_name, given_name, middle_name, family_name,
		 gender, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id`

	var id int64
	err := s.tx.QueryRowContext(ctx, rebind(s.dialect, q),
		l.ExternalID, l.FullName, l.GivenName, l.MiddleName,
		l.FamilyName, l.Gender, l.BirthDate,
	).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) || l.ExternalID == nil {
		return 0, false, QueryError("legislators", err)
	}

	id, ok, err := s.LegislatorByExternalID(ctx, *l.ExternalID)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		return 0, false, QueryError("legislators",
			fmt.Errorf("legislator %s was neither inserted nor found",
				*l.ExternalID))
	}
	return id, false, nil
}

// FillLegislator sets NULL columns of a stored legislator.
// Identity columns (external_id, full_name) are not touched.
func (s *session) FillLegislator(
	ctx context.Context,
	id int64,
	l *schema.Legislator,
) error {
	q := `UPDATE legislators SET
		given_name = COALESCE(given_name, $2),
		middle_name = COALESCE(middle_name, $3),
		family_name = COALESCE(family_name, $4),
		gender = COALESCE(gender, $5),
		birth_date = COALESCE(birth_date, $6)
		WHERE id = $1`

	_, err := s.tx.ExecContext(ctx, rebind(s.dialect, q),
		id, l.GivenName, l.MiddleName, l.FamilyName, l.Gender, l.BirthDate,
	)
	if err != nil {
		return QueryError("legislators", err)
	}
	return nil
}

// EnsureParty finds or creates a party by abbreviation.
func (s *session) EnsureParty(ctx context.Context, abbr string) (int64, error) {
	ins := `INSERT INTO parties (abbreviation) VALUES ($1)
		ON CONFLICT (abbreviation) DO NOTHING`
	sel := `SELECT id FROM parties WHERE abbreviation = $1`
	return s.ensure(ctx, "parties", ins, sel, abbr)
}

// EnsureJurisdiction finds or creates a jurisdiction by (name, abbrev).
func (s *session) EnsureJurisdiction(
	ctx context.Context,
	name, abbrev, typ string,
) (int64, error) {
	ins := `INSERT INTO jurisdictions (name, abbrev, type) VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`
	if _, err := s.tx.ExecContext(ctx, rebind(s.dialect, ins),
		name, abbrev, typ); err != nil {
		return 0, QueryError("jurisdictions", err)
	}

	sel := `SELECT id FROM jurisdictions WHERE name = $1 AND abbrev = $2`
	id, ok, err := s.queryID(ctx, "jurisdictions", sel, name, abbrev)
	if err != nil {
		return 0, err
	}
	if !ok {
		// name or abbrev is taken by a different jurisdiction
		return 0, QueryError("jurisdictions",
			fmt.Errorf("jurisdiction %s (%s) conflicts with a stored one",
				name, abbrev))
	}
	return id, nil
}

// EnsureChamber finds or creates a chamber of a jurisdiction.
func (s *session) EnsureChamber(
	ctx context.Context,
	jurisdictionID int64,
	name string,
) (int64, error) {
	ins := `INSERT INTO chambers (jurisdiction_id, name) VALUES ($1, $2)
		ON CONFLICT (jurisdiction_id, name) DO NOTHING`
	sel := `SELECT id FROM chambers WHERE jurisdiction_id = $1 AND name = $2`
	return s.ensure(ctx, "chambers", ins, sel, jurisdictionID, name)
}

// EnsureDistrict finds or creates a district of a chamber.
func (s *session) EnsureDistrict(
	ctx context.Context,
	chamberID int64,
	number string,
) (int64, error) {
	ins := `INSERT INTO districts (chamber_id, district_number) VALUES ($1, $2)
		ON CONFLICT (chamber_id, district_number) DO NOTHING`
	sel := `SELECT id FROM districts
		WHERE chamber_id = $1 AND district_number = $2`
	return s.ensure(ctx, "districts", ins, sel, chamberID, number)
}

// InsertTerm adds a term unless the same (legislator, district, start
// date) is already stored.
func (s *session) InsertTerm(ctx context.Context, t *schema.Term) (bool, error) {
	q := `INSERT INTO terms
		(legislator_id, district_id, party_id, start_date, end_date,
		 election_year)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (legislator_id, district_id, start_date) DO NOTHING`

	res, err := s.tx.ExecContext(ctx, rebind(s.dialect, q),
		t.LegislatorID, t.DistrictID, t.PartyID, t.StartDate, t.EndDate,
		t.ElectionYear,
	)
	if err != nil {
		return false, QueryError("terms", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, QueryError("terms", err)
	}
	return n > 0, nil
}

// Commit commits the transaction.
func (s *session) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Commit(); err != nil {
		return CommitError(err)
	}
	return nil
}

// Rollback discards the transaction, after Commit it does nothing.
func (s *session) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback(); err != nil {
		return QueryError("*", err)
	}
	return nil
}

// ensure runs an insert-or-ignore statement followed by a select of
// the id of the row with the same natural key.
func (s *session) ensure(
	ctx context.Context,
	table, ins, sel string,
	args ...any,
) (int64, error) {
	if _, err := s.tx.ExecContext(ctx, rebind(s.dialect, ins), args...); err != nil {
		return 0, QueryError(table, err)
	}
	id, ok, err := s.queryID(ctx, table, sel, args...)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, QueryError(table, fmt.Errorf("row %v not found after insert", args))
	}
	return id, nil
}

func (s *session) queryID(
	ctx context.Context,
	table, q string,
	args ...any,
) (int64, bool, error) {
	var id int64
	err := s.tx.QueryRowContext(ctx, rebind(s.dialect, q), args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, QueryError(table, err)
	}
	return id, true, nil
}
