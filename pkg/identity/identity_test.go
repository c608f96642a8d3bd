package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/civicdata/legisdb/pkg/identity"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	byID   map[string]int64
	byName map[string]int64
	err    error
}

func (f fakeLookup) LegislatorByExternalID(
	_ context.Context, id string,
) (int64, bool, error) {
	res, ok := f.byID[id]
	return res, ok, f.err
}

func (f fakeLookup) LegislatorByName(
	_ context.Context, name string,
) (int64, bool, error) {
	res, ok := f.byName[name]
	return res, ok, f.err
}

func TestFields(t *testing.T) {
	rec := record.RawRecord{
		Origin:     record.Federal,
		ExternalID: " W000797 ",
		FullName:   "Debbie  Wasserman Schultz",
		GivenName:  "Debbie",
		FamilyName: "Wasserman Schultz",
		Gender:     "female",
		BirthDate:  "1966-09-27",
	}
	res, err := identity.Fields(rec)
	require.NoError(t, err)
	assert.Equal(t, "Debbie Wasserman Schultz", res.FullName)
	require.NotNil(t, res.ExternalID)
	assert.Equal(t, "W000797", *res.ExternalID)
	assert.Equal(t, "Debbie", *res.GivenName)
	assert.Equal(t, "Wasserman", *res.MiddleName)
	assert.Equal(t, "Schultz", *res.FamilyName)
	assert.Equal(t, "F", *res.Gender)
	assert.Equal(t, "1966-09-27", *res.BirthDate)
}

func TestFieldsOptional(t *testing.T) {
	rec := record.RawRecord{
		Origin:    record.State,
		SourceID:  "ocd-person/123",
		FullName:  "Cher",
		BirthDate: "1946",
	}
	res, err := identity.Fields(rec)
	require.NoError(t, err)
	assert.Nil(t, res.ExternalID, "state ids are not identity keys")
	assert.Nil(t, res.GivenName)
	assert.Nil(t, res.MiddleName)
	assert.Nil(t, res.FamilyName)
	assert.Nil(t, res.Gender)
	assert.Nil(t, res.BirthDate, "partial dates are dropped")
}

func TestFieldsNoName(t *testing.T) {
	_, err := identity.Fields(record.RawRecord{Ref: "mn/x.yml", FullName: "  "})
	assert.ErrorIs(t, err, record.ErrSourceShape)
	assert.Contains(t, err.Error(), "mn/x.yml")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	l := fakeLookup{
		byID:   map[string]int64{"K000367": 7},
		byName: map[string]int64{"Jane Doe": 3},
	}

	tests := []struct {
		msg      string
		rec      record.RawRecord
		id       int64
		existing bool
	}{
		{
			msg: "federal existing",
			rec: record.RawRecord{ExternalID: "K000367", FullName: "Amy Klobuchar"},
			id:  7, existing: true,
		},
		{
			msg: "federal new",
			rec: record.RawRecord{ExternalID: "S001203", FullName: "Tina Smith"},
		},
		{
			msg: "federal is not matched by name",
			rec: record.RawRecord{ExternalID: "D000001", FullName: "Jane Doe"},
		},
		{
			msg: "state by name",
			rec: record.RawRecord{Origin: record.State, FullName: " Jane   Doe "},
			id:  3, existing: true,
		},
		{
			msg: "state new",
			rec: record.RawRecord{Origin: record.State, FullName: "John Roe"},
		},
	}

	for _, v := range tests {
		res, err := identity.Resolve(ctx, l, v.rec)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.id, res.ID, v.msg)
		assert.Equal(t, v.existing, res.Existing, v.msg)
		assert.NotEmpty(t, res.Fields.FullName, v.msg)
	}
}

func TestResolveSameNameSameLegislator(t *testing.T) {
	ctx := context.Background()
	l := fakeLookup{byName: map[string]int64{"Pat Smith": 11}}

	r1, err := identity.Resolve(ctx, l,
		record.RawRecord{Origin: record.State, Ref: "mn/a.yml", FullName: "Pat Smith"})
	require.NoError(t, err)
	r2, err := identity.Resolve(ctx, l,
		record.RawRecord{Origin: record.State, Ref: "wi/b.yml", FullName: "Pat Smith"})
	require.NoError(t, err)
	assert.Equal(t, r1.ID, r2.ID)
}

func TestResolveLookupError(t *testing.T) {
	orig := errors.New("broken pipe")
	l := fakeLookup{err: orig}
	_, err := identity.Resolve(context.Background(), l,
		record.RawRecord{FullName: "Tina Smith"})
	assert.ErrorIs(t, err, orig)
}
