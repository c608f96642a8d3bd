package iotesting_test

import (
	"path/filepath"
	"testing"

	"github.com/civicdata/legisdb/internal/iotesting"
	"github.com/stretchr/testify/assert"
)

func TestSQLiteConfig(t *testing.T) {
	cfg := iotesting.SQLiteConfig(t)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "legisdb.sqlite", filepath.Base(cfg.Database.Path))
	assert.NotEqual(t, "legisdb.sqlite", cfg.Database.Path)

	other := iotesting.SQLiteConfig(t)
	assert.NotEqual(t, cfg.Database.Path, other.Database.Path)
}

func TestPostgresConfig(t *testing.T) {
	t.Setenv(iotesting.PostgresEnv, "1")
	t.Setenv("DB_HOST", "pg.test")
	t.Setenv("DB_PORT", "15432")

	cfg := iotesting.PostgresConfig(t)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, iotesting.TestDatabaseName, cfg.Database.Database)
	assert.Equal(t, "pg.test", cfg.Database.Host)
	assert.Equal(t, 15432, cfg.Database.Port)
}
