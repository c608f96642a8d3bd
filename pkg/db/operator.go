package db

import (
	"context"
	"database/sql"

	"github.com/civicdata/legisdb/pkg/config"
	"github.com/civicdata/legisdb/pkg/dims"
	"github.com/civicdata/legisdb/pkg/identity"
	"github.com/civicdata/legisdb/pkg/schema"
)

// Dialect is the SQL flavor of a connected database.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Operator defines the interface for basic database management operations.
// It provides connection lifecycle management and exposes *sql.DB for
// high-level components (SchemaManager, Populator) that run their own SQL.
//
// Schema creation and migration are handled by SchemaManager.
type Operator interface {
	// Connect opens a connection to the database configured by the driver
	// field of DatabaseConfig.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection.
	Close() error

	// DB returns the underlying database handle, nil if not connected.
	DB() *sql.DB

	// Dialect returns the SQL flavor of the connection.
	Dialect() Dialect

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables of the database.
	// Used during schema creation when overwriting existing data.
	DropAllTables(ctx context.Context) error

	// Begin starts a store session. All writes of a population run go
	// through one session and become visible only after Commit.
	Begin(ctx context.Context) (Session, error)
}

// Session is one transaction against the store.
//
// Insert and Ensure methods are insert-or-ignore: on a unique-key conflict
// the stored row wins and is left untouched.
type Session interface {
	identity.Lookup
	dims.Store

	// InsertLegislator stores a new legislator. If a legislator with the
	// same external id exists, its id is returned and the bool is false.
	InsertLegislator(ctx context.Context, l *schema.Legislator) (int64, bool, error)

	// FillLegislator sets columns of a stored legislator that are still
	// NULL. Columns that have a value are never overwritten.
	FillLegislator(ctx context.Context, id int64, l *schema.Legislator) error

	// InsertTerm stores a term unless a term with the same legislator,
	// district and start date exists. The bool is true if a row was added.
	InsertTerm(ctx context.Context, t *schema.Term) (bool, error)

	// Commit makes all writes of the session durable.
	Commit() error

	// Rollback discards all writes. It is a no-op after Commit, so it is
	// safe to defer.
	Rollback() error
}
