// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality for PostgreSQL and
// runs generated DDL for SQLite.
package ioschema

import (
	"context"
	"log/slog"

	legisdb "github.com/civicdata/legisdb/pkg"
	"github.com/civicdata/legisdb/pkg/db"
	"github.com/civicdata/legisdb/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the legisdb.SchemaManager interface.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) legisdb.SchemaManager {
	return &manager{operator: op}
}

// Create creates the database schema. Tables and indexes that
// already exist are left as they are.
func (m *manager) Create(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	var err error
	switch m.operator.Dialect() {
	case db.SQLite:
		err = m.createSQLite(ctx)
	default:
		err = m.migratePostgres(ctx)
		if err == nil {
			// exact full name matches must not depend on locale
			err = m.setCollation(ctx)
		}
	}
	if err != nil {
		return CreateSchemaError(err)
	}

	slog.Info("schema created", "dialect", m.operator.Dialect())
	return nil
}

// Migrate updates the database schema to the latest version.
// For PostgreSQL it uses GORM AutoMigrate, for SQLite it creates
// missing tables and indexes and adds missing nullable columns.
func (m *manager) Migrate(ctx context.Context) error {
	if m.operator.DB() == nil {
		return NotConnectedError()
	}

	var err error
	switch m.operator.Dialect() {
	case db.SQLite:
		err = m.createSQLite(ctx)
		if err == nil {
			err = m.addColumnsSQLite(ctx)
		}
	default:
		err = m.migratePostgres(ctx)
	}
	if err != nil {
		return MigrateSchemaError(err)
	}

	slog.Info("schema migrated", "dialect", m.operator.Dialect())
	return nil
}

func (m *manager) migratePostgres(ctx context.Context) error {
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: m.operator.DB()}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	return schema.Migrate(gormDB.WithContext(ctx))
}

// createSQLite runs CREATE ... IF NOT EXISTS statements of all models
// in one transaction.
func (m *manager) createSQLite(ctx context.Context) error {
	tx, err := m.operator.DB().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range ddlStatements() {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// addColumnsSQLite adds columns that exist in models but not in
// tables created by an older version.
func (m *manager) addColumnsSQLite(ctx context.Context) error {
	sqlDB := m.operator.DB()
	for _, model := range schema.AllModels() {
		table := model.(schema.DDLGenerator).TableName()
		existing, err := sqliteColumns(ctx, sqlDB, table)
		if err != nil {
			return err
		}
		for _, q := range addColumnStatements(table, existing, schema.Columns(model)) {
			slog.Info("adding column", "table", table, "sql", q)
			if _, err = sqlDB.ExecContext(ctx, q); err != nil {
				return err
			}
		}
	}
	return nil
}

// setCollation sets "C" collation on text columns used for exact
// matches.
func (m *manager) setCollation(ctx context.Context) error {
	type columnDef struct {
		table, column string
	}

	columns := []columnDef{
		{"legislators", "full_name"},
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE TEXT COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table, col.column)
		if _, err := m.operator.DB().ExecContext(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}
