package iosources_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/civicdata/legisdb/internal/iosources"
	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/civicdata/legisdb/pkg/record"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewState(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	root := t.TempDir()

	writeFile(t, root, "mn/legislature/Jane-Doe.yml", `
id: ocd-person/0001
name: Jane Doe
given_name: Jane
family_name: Doe
gender: Female
birth_date: 1970-02-03
party:
- name: Republican
  end_date: 2020-01-01
- name: Democratic-Farmer-Labor
roles:
- type: upper
  district: 10
  start_date: 2017-01-03
  end_date: 2021-01-04
- type: lower
  district: 12A
  start_date: 2023-01-03
`)
	writeFile(t, root, "mn/legislature/No-Role.yml", `
given_name: Sam
family_name: Roe
roles:
- type: mayor
  start_date: 2019-01-01
`)
	writeFile(t, root, "ne/legislature/Uni.yml", `
name: Pat Uni
roles:
- type: legislature
  district: 3
  start_date: 2021-01-06
  end_date: 2023-01-04
`)
	writeFile(t, root, "wi/legislature/Broken.yml", "name: [unclosed")
	// files outside of legislature/ are ignored
	writeFile(t, root, "mn/executive/Gov.yml", "name: Gov Ernor")

	src, err := iosources.NewState(root)
	require.NoError(t, err)
	assert.Equal(t, "state", src.Name())
	assert.Equal(t, 4, src.Len())

	recs, errs := drain(t, src)
	require.Len(t, recs, 3)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), filepath.Join("wi", "legislature", "Broken.yml"))

	jane := recs[0]
	assert.Equal(t, record.State, jane.Origin)
	assert.Equal(t, "Jane Doe", jane.FullName)
	assert.Equal(t, "ocd-person/0001", jane.SourceID)
	assert.Empty(t, jane.ExternalID)
	assert.Equal(t, "1970-02-03", jane.BirthDate)
	require.NotNil(t, jane.Term)
	assert.Equal(t, "lower", jane.Term.Chamber, "open role wins")
	assert.Equal(t, "12A", jane.Term.District)
	assert.Equal(t, "2023-01-03", jane.Term.StartDate)
	assert.Equal(t, "Democratic-Farmer-Labor", jane.Term.Party)
	assert.Equal(t, "Minnesota", jane.Term.JurisdictionName)
	assert.Equal(t, "MN", jane.Term.JurisdictionAbbrev)
	assert.Equal(t, "state", jane.Term.JurisdictionType)

	sam := recs[1]
	assert.Equal(t, "Sam Roe", sam.FullName)
	assert.Nil(t, sam.Term, "no legislative role")

	pat := recs[2]
	require.NotNil(t, pat.Term)
	assert.Equal(t, "legislature", pat.Term.Chamber)
	assert.Equal(t, "3", pat.Term.District)
	assert.Equal(t, "2023-01-04", pat.Term.EndDate)
	assert.Equal(t, "Nebraska", pat.Term.JurisdictionName)
}

func TestNewStateMissingRoot(t *testing.T) {
	_, err := iosources.NewState(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourceDirNotFoundError, gnErr.Code)
}

func TestNewStateEmpty(t *testing.T) {
	src, err := iosources.NewState(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, src.Len())
	_, err = src.Next(context.Background())
	assert.Error(t, err)
}
