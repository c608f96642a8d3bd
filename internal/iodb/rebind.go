package iodb

import (
	"strings"

	"github.com/civicdata/legisdb/pkg/db"
)

// rebind converts $N placeholders to ?N for SQLite.
// Queries must not contain '$' inside string literals.
func rebind(d db.Dialect, query string) string {
	if d != db.SQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}
