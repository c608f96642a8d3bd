package iopopulate_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/civicdata/legisdb/internal/iodb"
	"github.com/civicdata/legisdb/internal/iopopulate"
	"github.com/civicdata/legisdb/internal/ioschema"
	"github.com/civicdata/legisdb/internal/iotesting"
	"github.com/civicdata/legisdb/pkg/config"
	"github.com/civicdata/legisdb/pkg/db"
	"github.com/civicdata/legisdb/pkg/dims"
	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, withSchema bool) (*config.Config, db.Operator) {
	t.Helper()
	ctx := context.Background()

	cfg := iotesting.SQLiteConfig(t)
	op := iodb.NewOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { _ = op.Close() })

	if withSchema {
		require.NoError(t, ioschema.NewManager(op).Create(ctx))
	}
	return cfg, op
}

func count(t *testing.T, op db.Operator, table string) int {
	t.Helper()
	var res int
	err := op.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&res)
	require.NoError(t, err)
	return res
}

func federalTerm(chamber, district, party, start string) *record.TermContext {
	return &record.TermContext{
		JurisdictionName:   dims.FederalName,
		JurisdictionAbbrev: dims.FederalAbbrev,
		JurisdictionType:   "federal",
		Chamber:            chamber,
		District:           district,
		Party:              party,
		StartDate:          start,
	}
}

func stateTerm(chamber, district, party, start string) *record.TermContext {
	return &record.TermContext{
		JurisdictionName:   "Minnesota",
		JurisdictionAbbrev: "MN",
		JurisdictionType:   "state",
		Chamber:            chamber,
		District:           district,
		Party:              party,
		StartDate:          start,
	}
}

func federalRecords() []record.RawRecord {
	return []record.RawRecord{
		{
			Origin:     record.Federal,
			Ref:        "legislators-current.json[0]",
			ExternalID: "K000367",
			FullName:   "Amy Klobuchar",
			GivenName:  "Amy",
			FamilyName: "Klobuchar",
			Term:       federalTerm("sen", "MN", "Democrat", "2019-01-03"),
		},
		{
			Origin:     record.Federal,
			Ref:        "legislators-current.json[1]",
			ExternalID: "E000294",
			FullName:   "Tom Emmer",
			GivenName:  "Tom",
			FamilyName: "Emmer",
			Gender:     "M",
			Term:       federalTerm("rep", "MN-6", "Republican", "2023-01-03"),
		},
	}
}

func stateRecords() []record.RawRecord {
	return []record.RawRecord{
		{
			Origin:     record.State,
			Ref:        "mn/legislature/Amy-Klobuchar.yml",
			FullName:   "Amy  Klobuchar",
			GivenName:  "Amy",
			FamilyName: "Klobuchar",
			Gender:     "female",
			BirthDate:  "1960-05-25",
		},
		{
			Origin:     record.State,
			Ref:        "mn/legislature/Melissa-Hortman.yml",
			FullName:   "Melissa Hortman",
			GivenName:  "Melissa",
			FamilyName: "Hortman",
			Term: stateTerm("lower", "34B", "Democratic-Farmer-Labor",
				"2023-01-03"),
		},
	}
}

func TestPopulateIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	p := iopopulate.New(cfg, op)

	sum, err := p.Populate(ctx,
		record.NewSliceSource("federal", federalRecords()),
		record.NewSliceSource("state", stateRecords()),
	)
	require.NoError(t, err)
	assert.NotEmpty(t, sum.RunID)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 4, sum.Processed)
	assert.Equal(t, 3, sum.LegislatorsInserted)
	assert.Equal(t, 1, sum.LegislatorsMatched)
	assert.Equal(t, 3, sum.TermsInserted)
	assert.Equal(t, 1, sum.TermsNoContext)

	tables := map[string]int{
		"legislators":   3,
		"parties":       2,
		"jurisdictions": 2,
		"chambers":      3,
		"districts":     3,
		"terms":         3,
	}
	for k, v := range tables {
		assert.Equal(t, v, count(t, op, k), k)
	}

	sum2, err := p.Populate(ctx,
		record.NewSliceSource("federal", federalRecords()),
		record.NewSliceSource("state", stateRecords()),
	)
	require.NoError(t, err)
	assert.NotEqual(t, sum.RunID, sum2.RunID)
	assert.Equal(t, 0, sum2.LegislatorsInserted)
	assert.Equal(t, 4, sum2.LegislatorsMatched)
	assert.Equal(t, 0, sum2.TermsInserted)
	assert.Equal(t, 3, sum2.TermsExisting)

	for k, v := range tables {
		assert.Equal(t, v, count(t, op, k), k)
	}
}

func TestPopulateStateFillsFederal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	p := iopopulate.New(cfg, op)

	_, err := p.Populate(ctx,
		record.NewSliceSource("federal", federalRecords()),
		record.NewSliceSource("state", stateRecords()),
	)
	require.NoError(t, err)

	var gender sql.NullString
	var extID sql.NullString
	err = op.DB().QueryRow(
		"SELECT gender, external_id FROM legislators WHERE full_name = ?",
		"Amy Klobuchar",
	).Scan(&gender, &extID)
	require.NoError(t, err)
	assert.Equal(t, "F", gender.String, "state record fills NULL gender")
	assert.Equal(t, "K000367", extID.String)

	// filled columns are never overwritten
	recs := []record.RawRecord{{
		Origin:   record.State,
		Ref:      "mn/legislature/Tom-Emmer.yml",
		FullName: "Tom Emmer",
		Gender:   "female",
	}}
	_, err = p.Populate(ctx, record.NewSliceSource("state", recs))
	require.NoError(t, err)
	err = op.DB().QueryRow(
		"SELECT gender FROM legislators WHERE external_id = ?", "E000294",
	).Scan(&gender)
	require.NoError(t, err)
	assert.Equal(t, "M", gender.String)
}

func TestPopulateTermOutcomes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	p := iopopulate.New(cfg, op)

	rec := func(name string, tc *record.TermContext) record.RawRecord {
		return record.RawRecord{
			Origin: record.State, Ref: name, FullName: name, Term: tc,
		}
	}
	recs := []record.RawRecord{
		rec("No Term", nil),
		rec("No District", stateTerm("lower", " ", "D", "2023-01-03")),
		rec("No Start", stateTerm("lower", "1A", "D", "")),
		rec("Third Party", stateTerm("lower", "2A", "Progressive", "2023-01-03")),
		rec("Unicameral", stateTerm("legislature", "3", "R", "2023-01-03")),
		rec("Bad Date", stateTerm("upper", "4", "R", "2023-13-01")),
		rec("No Party", stateTerm("upper", "5", "", "2023-01-03")),
	}

	sum, err := p.Populate(ctx, record.NewSliceSource("state", recs))
	require.NoError(t, err)
	assert.Equal(t, 7, sum.LegislatorsInserted)
	assert.Equal(t, 3, sum.TermsNoContext)
	assert.Equal(t, 3, sum.TermsRejected)
	assert.Equal(t, 1, sum.TermsInserted)

	assert.Equal(t, 7, count(t, op, "legislators"))
	assert.Equal(t, 1, count(t, op, "terms"))
	assert.Equal(t, 0, count(t, op, "parties"),
		"rejected terms leave no dimension rows")
	assert.Equal(t, 1, count(t, op, "chambers"))
	assert.Equal(t, 1, count(t, op, "districts"))

	var partyID sql.NullInt64
	err = op.DB().QueryRow("SELECT party_id FROM terms").Scan(&partyID)
	require.NoError(t, err)
	assert.False(t, partyID.Valid)
}

// stubSource returns preset results, then io.EOF.
type stubSource struct {
	name string
	res  []stubResult
	idx  int
}

type stubResult struct {
	rec record.RawRecord
	err error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Len() int { return len(s.res) }

func (s *stubSource) Next(_ context.Context) (record.RawRecord, error) {
	if s.idx >= len(s.res) {
		return record.RawRecord{}, io.EOF
	}
	r := s.res[s.idx]
	s.idx++
	return r.rec, r.err
}

func TestPopulateSkipsShapeErrors(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	p := iopopulate.New(cfg, op)

	src := &stubSource{name: "state", res: []stubResult{
		{err: record.ShapeError("broken.yml", "cannot parse")},
		{rec: record.RawRecord{Origin: record.State, Ref: "noname.yml", FullName: "  "}},
		{rec: record.RawRecord{Origin: record.State, Ref: "ok.yml", FullName: "Jane Doe"}},
	}}

	sum, err := p.Populate(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Skipped)
	assert.Equal(t, 1, sum.Processed)
	assert.Equal(t, 1, count(t, op, "legislators"))
}

func TestPopulateRollback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	p := iopopulate.New(cfg, op)

	boom := errors.New("connection lost")
	src := &stubSource{name: "state", res: []stubResult{
		{rec: record.RawRecord{Origin: record.State, Ref: "a.yml", FullName: "Jane Doe",
			Term: stateTerm("upper", "1", "D", "2023-01-03")}},
		{err: boom},
	}}

	sum, err := p.Populate(ctx,
		record.NewSliceSource("federal", federalRecords()), src)
	require.Error(t, err)
	assert.Nil(t, sum)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.PopulateLoadError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, boom)

	for _, v := range []string{"legislators", "terms", "parties", "districts"} {
		assert.Equal(t, 0, count(t, op, v), v)
	}
}

func TestPopulatePreconditions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	src := record.NewSliceSource("federal", federalRecords())

	p := iopopulate.New(config.New(), iodb.NewOperator())
	_, err := p.Populate(ctx, src)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)

	cfg, op := setup(t, false)
	p = iopopulate.New(cfg, op)
	_, err = p.Populate(ctx, src)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.PopulateEmptyDatabaseError, gnErr.Code)

	_, err = p.Populate(ctx)
	gnErr, ok = err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.PopulateNoSourcesError, gnErr.Code)
}

func TestPopulateMetricsFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	cfg.Populate.MetricsFile = filepath.Join(t.TempDir(), "legisdb.prom")
	p := iopopulate.New(cfg, op)

	_, err := p.Populate(ctx, record.NewSliceSource("federal", federalRecords()))
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.Populate.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `legisdb_populate_terms{outcome="inserted"} 2`)
}

// TestPopulateSameNameCollapses documents the name-based identity of
// state records: two people with one name become one legislator.
func TestPopulateSameNameCollapses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	ctx := context.Background()
	cfg, op := setup(t, true)
	p := iopopulate.New(cfg, op)

	recs := []record.RawRecord{
		{Origin: record.State, Ref: "mn/legislature/a.yml", FullName: "Pat Doe",
			Term: stateTerm("upper", "10", "D", "2023-01-03")},
		{Origin: record.State, Ref: "mn/legislature/b.yml", FullName: "Pat  Doe",
			Term: stateTerm("lower", "12A", "R", "2023-01-03")},
	}

	sum, err := p.Populate(ctx, record.NewSliceSource("state", recs))
	require.NoError(t, err)
	assert.Equal(t, 1, sum.LegislatorsInserted)
	assert.Equal(t, 1, sum.LegislatorsMatched)
	assert.Equal(t, 2, sum.TermsInserted)
	assert.Equal(t, 1, count(t, op, "legislators"))
	assert.Equal(t, 2, count(t, op, "terms"))
}
