// Package iodb implements database operations for PostgreSQL (pgxpool)
// and SQLite (modernc.org/sqlite). This is an impure I/O package that
// implements contracts defined in pkg/.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/civicdata/legisdb/pkg/config"
	"github.com/civicdata/legisdb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// operator implements db.Operator interface. PostgreSQL connections
// go through a pgxpool.Pool exposed as *sql.DB, SQLite uses a single
// connection.
type operator struct {
	pool    *pgxpool.Pool
	db      *sql.DB
	dialect db.Dialect
}

// NewOperator creates a new database operator
// (without connecting).
func NewOperator() db.Operator {
	return &operator{}
}

// NewWithDB creates an operator on top of an already opened database
// handle. The operator takes ownership of the handle.
func NewWithDB(sqlDB *sql.DB, d db.Dialect) db.Operator {
	return &operator{db: sqlDB, dialect: d}
}

// Connect opens a connection according to cfg.Driver.
func (o *operator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	switch cfg.Driver {
	case string(db.Postgres), "":
		return o.connectPostgres(ctx, cfg)
	case string(db.SQLite):
		return o.connectSQLite(ctx, cfg.Path)
	default:
		return UnknownDriverError(cfg.Driver)
	}
}

// connectPostgres establishes a connection pool to PostgreSQL.
// Uses sensible hardcoded pool settings that work well for
// most use cases.
func (o *operator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// A run holds one transaction, a few connections are enough.
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.pool = pool
	o.db = stdlib.OpenDBFromPool(pool)
	o.dialect = db.Postgres
	slog.Debug("connected to postgres",
		"host", cfg.Host, "port", cfg.Port, "database", cfg.Database)
	return nil
}

// connectSQLite opens a SQLite file with foreign keys enforced.
func (o *operator) connectSQLite(ctx context.Context, path string) error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		path,
	)
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return SQLiteOpenError(path, err)
	}
	// SQLite allows one writer, the session transaction owns it.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return SQLiteOpenError(path, err)
	}

	o.db = sqlDB
	o.dialect = db.SQLite
	slog.Debug("connected to sqlite", "path", path)
	return nil
}

// Close releases all database connections.
func (o *operator) Close() error {
	var err error
	if o.db != nil {
		err = o.db.Close()
		o.db = nil
	}
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	return err
}

// DB returns the underlying database handle.
func (o *operator) DB() *sql.DB {
	return o.db
}

// Dialect returns the SQL flavor of the connection.
func (o *operator) Dialect() db.Dialect {
	return o.dialect
}

// TableExists checks if a table exists in the current
// database.
func (o *operator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`
	if o.dialect == db.SQLite {
		query = `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = $1
		)
	`
	}

	var exists bool
	err := o.db.QueryRowContext(ctx, rebind(o.dialect, query), tableName).
		Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables.
func (o *operator) HasTables(ctx context.Context) (bool, error) {
	tables, err := o.tableNames(ctx)
	if err != nil {
		return false, err
	}
	return len(tables) > 0, nil
}

// DropAllTables drops all tables of the database.
func (o *operator) DropAllTables(ctx context.Context) error {
	tables, err := o.tableNames(ctx)
	if err != nil {
		return err
	}

	dropSQL := "DROP TABLE IF EXISTS %s CASCADE"
	if o.dialect == db.SQLite {
		dropSQL = "DROP TABLE IF EXISTS %s"
		// tables are dropped in arbitrary order
		if _, err = o.db.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
			return DropTableError("*", err)
		}
		defer func() {
			_, _ = o.db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
		}()
	}

	for _, table := range tables {
		if _, err := o.db.ExecContext(ctx, fmt.Sprintf(dropSQL, table)); err != nil {
			return DropTableError(table, err)
		}
	}

	slog.Info("dropped tables", "count", len(tables))
	return nil
}

func (o *operator) tableNames(ctx context.Context) ([]string, error) {
	if o.db == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`
	if o.dialect == db.SQLite {
		query = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`
	}

	rows, err := o.db.QueryContext(ctx, query)
	if err != nil {
		return nil, QueryTablesError(err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, ScanTableError(err)
		}
		res = append(res, tableName)
	}

	if err := rows.Err(); err != nil {
		return nil, ScanTableError(err)
	}
	return res, nil
}

// Begin starts a store session.
func (o *operator) Begin(ctx context.Context) (db.Session, error) {
	if o.db == nil {
		return nil, NotConnectedError()
	}
	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, BeginError(err)
	}
	return &session{tx: tx, dialect: o.dialect}, nil
}
