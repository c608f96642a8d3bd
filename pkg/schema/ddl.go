package schema

import (
	"fmt"
	"reflect"
	"strings"
)

// Column is a table column derived from `db` and `ddl` struct tags.
type Column struct {
	Name string
	DDL  string
}

// Columns returns the columns of a model in field order.
// Fields without both `db` and `ddl` tags (associations) are skipped.
func Columns(model any) []Column {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []Column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		ddlTag := field.Tag.Get("ddl")

		if dbTag != "" && ddlTag != "" {
			res = append(res, Column{Name: dbTag, DDL: ddlTag})
		}
	}
	return res
}

// generateDDL creates a CREATE TABLE statement from struct tags.
func generateDDL(model any, tableName string) string {
	var columns []string
	for _, c := range Columns(model) {
		columns = append(columns, fmt.Sprintf("    %s %s", c.Name, c.DDL))
	}

	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s\n);",
		tableName,
		strings.Join(columns, ",\n"))

	return ddl
}

// Legislator DDL methods
func (l Legislator) TableDDL() string {
	return generateDDL(l, l.TableName())
}

func (l Legislator) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_legislators_external_id ON legislators(external_id);",
		"CREATE INDEX IF NOT EXISTS idx_legislators_full_name ON legislators(full_name);",
	}
}

func (l Legislator) TableName() string {
	return "legislators"
}

// Party DDL methods
func (p Party) TableDDL() string {
	return generateDDL(p, p.TableName())
}

func (p Party) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_parties_abbreviation ON parties(abbreviation);",
	}
}

func (p Party) TableName() string {
	return "parties"
}

// Jurisdiction DDL methods
func (j Jurisdiction) TableDDL() string {
	return generateDDL(j, j.TableName())
}

func (j Jurisdiction) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_jurisdictions_name ON jurisdictions(name);",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_jurisdictions_abbrev ON jurisdictions(abbrev);",
	}
}

func (j Jurisdiction) TableName() string {
	return "jurisdictions"
}

// Chamber DDL methods
func (c Chamber) TableDDL() string {
	return generateDDL(c, c.TableName())
}

func (c Chamber) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_chambers_natural_key ON chambers(jurisdiction_id, name);",
	}
}

func (c Chamber) TableName() string {
	return "chambers"
}

// District DDL methods
func (d District) TableDDL() string {
	return generateDDL(d, d.TableName())
}

func (d District) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_districts_natural_key ON districts(chamber_id, district_number);",
	}
}

func (d District) TableName() string {
	return "districts"
}

// Term DDL methods
func (t Term) TableDDL() string {
	return generateDDL(t, t.TableName())
}

func (t Term) IndexDDL() []string {
	return []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_terms_natural_key ON terms(legislator_id, district_id, start_date);",
		"CREATE INDEX IF NOT EXISTS idx_terms_party_id ON terms(party_id);",
	}
}

func (t Term) TableName() string {
	return "terms"
}
