package ioschema

import (
	"strings"
	"testing"

	"github.com/civicdata/legisdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormatCollationSQL_FormatsCorrectly verifies SQL
// formatting.
func TestFormatCollationSQL_FormatsCorrectly(t *testing.T) {
	template := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE TEXT COLLATE "C"`

	result := formatCollationSQL(template, "legislators", "full_name")

	expected := `ALTER TABLE legislators ALTER COLUMN ` +
		`full_name TYPE TEXT COLLATE "C"`
	assert.Equal(t, expected, result)
}

// TestDDLStatements verifies tables come before their indexes and
// referenced tables come first.
func TestDDLStatements(t *testing.T) {
	stmts := ddlStatements()
	require.NotEmpty(t, stmts)

	pos := func(prefix string) int {
		for i, s := range stmts {
			if strings.HasPrefix(s, prefix) {
				return i
			}
		}
		return -1
	}

	legislators := pos("CREATE TABLE IF NOT EXISTS legislators")
	districts := pos("CREATE TABLE IF NOT EXISTS districts")
	terms := pos("CREATE TABLE IF NOT EXISTS terms")
	termsIdx := pos("CREATE UNIQUE INDEX IF NOT EXISTS idx_terms_natural_key")

	assert.True(t, legislators >= 0 && legislators < terms)
	assert.True(t, districts >= 0 && districts < terms)
	assert.Greater(t, termsIdx, terms)
}

func TestAddColumnStatements(t *testing.T) {
	existing := map[string]struct{}{
		"id": {}, "external_id": {}, "full_name": {}, "given_name": {},
		"middle_name": {}, "family_name": {}, "gender": {},
	}
	res := addColumnStatements("legislators", existing,
		schema.Columns(schema.Legislator{}))
	assert.Equal(t,
		[]string{"ALTER TABLE legislators ADD COLUMN birth_date DATE"}, res)

	existing["birth_date"] = struct{}{}
	res = addColumnStatements("legislators", existing,
		schema.Columns(schema.Legislator{}))
	assert.Empty(t, res)
}
