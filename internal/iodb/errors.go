package iodb

import (
	"fmt"
	"runtime"

	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for PostgreSQL connection failures.
func ConnectionError(host string, port int, database, user string,
	err error) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l | grep %s</em>

  3. Check your configuration file:
     <em>~/.config/legisdb/config.yaml</em>`

	vars := []any{host, port, host, user, database}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// SQLiteOpenError creates an error for SQLite open failures.
func SQLiteOpenError(path string, err error) error {
	msg := "Cannot open SQLite database <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to open sqlite %s: %w", path, err),
	}
}

// UnknownDriverError creates an error for unsupported drivers.
func UnknownDriverError(driver string) error {
	msg := "Database driver <em>%s</em> is not supported, use postgres or sqlite"
	vars := []any{driver}
	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// NotConnectedError creates an error for when database
// operation is attempted without connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: not connected to database", fn.Name()),
	}
}

// TableExistsCheckError creates an error for when checking
// a specific table fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to check table %s existence: %w",
			table, err),
	}
}

// QueryTablesError creates an error for when listing tables
// fails.
func QueryTablesError(err error) error {
	msg := "Cannot query database tables"
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to query tables: %w", err),
	}
}

// ScanTableError creates an error for when reading a table
// name fails.
func ScanTableError(err error) error {
	msg := "Cannot read table name"
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to scan table name: %w", err),
	}
}

// DropTableError creates an error for when dropping a table
// fails.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to drop table %s: %w", table, err),
	}
}

// BeginError creates an error for when a transaction cannot start.
func BeginError(err error) error {
	msg := "Cannot start database transaction"
	return &gn.Error{
		Code: errcode.DBBeginError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to begin transaction: %w", err),
	}
}

// QueryError creates an error for a failed statement of a session.
// The name of the calling method is added to the message.
func QueryError(table string, err error) error {
	msg := "Query on table <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query on %s: %w", fn.Name(), table, err),
	}
}

// CommitError creates an error for a failed commit.
func CommitError(err error) error {
	msg := "Cannot commit database transaction, no data was saved"
	return &gn.Error{
		Code: errcode.DBCommitError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to commit transaction: %w", err),
	}
}
