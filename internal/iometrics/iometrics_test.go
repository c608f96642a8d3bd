package iometrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/civicdata/legisdb/internal/iometrics"
	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary() *legisdb.Summary {
	return &legisdb.Summary{
		RunID:               "0b3c6a36-6d0f-4d3e-9d0b-3b6f6d1f4a11",
		Total:               12,
		Processed:           10,
		Skipped:             2,
		LegislatorsInserted: 7,
		LegislatorsMatched:  3,
		TermsInserted:       6,
		TermsExisting:       2,
		TermsRejected:       1,
		TermsNoContext:      1,
		Duration:            1500 * time.Millisecond,
	}
}

func TestNewRegistry(t *testing.T) {
	reg := iometrics.NewRegistry(summary())

	n, err := testutil.GatherAndCount(reg, "legisdb_populate_terms")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 3+2+4+1+1, n)
}

func TestWriteTextfile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	path := filepath.Join(t.TempDir(), "legisdb.prom")

	require.NoError(t, iometrics.WriteTextfile(path, summary()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	txt := string(data)
	assert.Contains(t, txt, `legisdb_populate_records{outcome="skipped"} 2`)
	assert.Contains(t, txt, `legisdb_populate_legislators{outcome="inserted"} 7`)
	assert.Contains(t, txt, `legisdb_populate_terms{outcome="rejected"} 1`)
	assert.Contains(t, txt, `legisdb_populate_duration_seconds 1.5`)
	assert.Contains(t, txt,
		`run_id="0b3c6a36-6d0f-4d3e-9d0b-3b6f6d1f4a11"`)
}

func TestWriteTextfileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "legisdb.prom")
	err := iometrics.WriteTextfile(path, summary())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.MetricsWriteError, gnErr.Code)
}
