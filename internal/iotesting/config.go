// Package iotesting provides shared configuration for integration tests.
package iotesting

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/civicdata/legisdb/pkg/config"
)

const (
	// TestDatabaseName is the PostgreSQL database used by integration
	// tests, so they never run against a production database.
	TestDatabaseName = "legisdb_test"

	// PostgresEnv enables PostgreSQL integration tests when set to a
	// true value.
	PostgresEnv = "LEGISDB_TEST_POSTGRES"
)

// SQLiteConfig returns a default configuration that points to a fresh
// SQLite file inside a temporary directory of the test.
func SQLiteConfig(t *testing.T) *config.Config {
	t.Helper()
	res := config.New()
	res.Update([]config.Option{
		config.OptDatabaseDriver("sqlite"),
		config.OptDatabasePath(filepath.Join(t.TempDir(), "legisdb.sqlite")),
	})
	return res
}

// PostgresConfig returns a configuration for the PostgreSQL test
// database. Connection settings come from DB_HOST, DB_PORT, DB_USER and
// DB_PASSWORD. The test is skipped unless LEGISDB_TEST_POSTGRES is set.
func PostgresConfig(t *testing.T) *config.Config {
	t.Helper()
	if ok, _ := strconv.ParseBool(os.Getenv(PostgresEnv)); !ok {
		t.Skipf("set %s=1 to run PostgreSQL integration tests", PostgresEnv)
	}

	opts := []config.Option{
		config.OptDatabaseDriver("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v, err := strconv.Atoi(os.Getenv("DB_PORT")); err == nil {
		opts = append(opts, config.OptDatabasePort(v))
	}
	if v := os.Getenv("DB_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}

	res := config.New()
	res.Update(opts)
	return res
}
