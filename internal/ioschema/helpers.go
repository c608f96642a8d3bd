package ioschema

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/civicdata/legisdb/pkg/schema"
)

// formatCollationSQL formats the collation SQL statement.
func formatCollationSQL(
	template string,
	table string,
	column string,
) string {
	return fmt.Sprintf(template, table, column)
}

// ddlStatements returns table and index DDL of all models in
// dependency order.
func ddlStatements() []string {
	var res []string
	for _, m := range schema.AllModels() {
		gen := m.(schema.DDLGenerator)
		res = append(res, gen.TableDDL())
		res = append(res, gen.IndexDDL()...)
	}
	return res
}

// addColumnStatements returns ALTER TABLE statements for model
// columns missing from the existing set.
func addColumnStatements(
	table string,
	existing map[string]struct{},
	cols []schema.Column,
) []string {
	var res []string
	for _, c := range cols {
		if _, ok := existing[c.Name]; ok {
			continue
		}
		res = append(res,
			fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, c.Name, c.DDL))
	}
	return res
}

func sqliteColumns(
	ctx context.Context,
	sqlDB *sql.DB,
	table string,
) (map[string]struct{}, error) {
	rows, err := sqlDB.QueryContext(ctx,
		"SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res[name] = struct{}{}
	}
	return res, rows.Err()
}
