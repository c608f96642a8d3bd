// Package schema provides the canonical models of the legislator
// database. The same structs drive GORM AutoMigrate (PostgreSQL) and
// DDL generation from `db`/`ddl` tags (SQLite).
package schema

// DDLGenerator defines how Go models generate DDL for targets without
// GORM support.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE IF NOT EXISTS statement.
	TableDDL() string

	// IndexDDL returns CREATE INDEX IF NOT EXISTS statements.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Legislator is a person who held a seat in any chamber.
// Rows are never deleted; later runs may only fill NULL columns.
type Legislator struct {
	// ID is the surrogate key.
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey"`

	// ExternalID is a stable identifier from the federal roster (bioguide).
	// It is NULL for people known only from state files.
	ExternalID *string `db:"external_id" ddl:"TEXT" gorm:"type:text;uniqueIndex:idx_legislators_external_id"`

	// FullName is the normalized full name, never empty.
	FullName string `db:"full_name" ddl:"TEXT NOT NULL CHECK (full_name <> '')" gorm:"type:text;not null;index:idx_legislators_full_name;check:chk_legislators_full_name,full_name <> ''"`

	GivenName  *string `db:"given_name" ddl:"TEXT" gorm:"type:text"`
	MiddleName *string `db:"middle_name" ddl:"TEXT" gorm:"type:text"`
	FamilyName *string `db:"family_name" ddl:"TEXT" gorm:"type:text"`

	// Gender is a single upper-case character.
	Gender *string `db:"gender" ddl:"CHAR(1)" gorm:"type:char(1)"`

	// BirthDate in YYYY-MM-DD format.
	BirthDate *string `db:"birth_date" ddl:"DATE" gorm:"type:date"`
}

// Party is a political party, identified by its abbreviation.
type Party struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey"`

	// Abbreviation is one of D, R, I.
	Abbreviation string `db:"abbreviation" ddl:"VARCHAR(1) NOT NULL CHECK (abbreviation IN ('D', 'R', 'I'))" gorm:"type:varchar(1);not null;uniqueIndex:idx_parties_abbreviation;check:chk_parties_abbreviation,abbreviation IN ('D', 'R', 'I')"`
}

// Jurisdiction is a state or the federal government.
type Jurisdiction struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey"`

	Name string `db:"name" ddl:"TEXT NOT NULL" gorm:"type:text;not null;uniqueIndex:idx_jurisdictions_name"`

	// Abbrev is a two-letter code (USPS code, US for federal).
	Abbrev string `db:"abbrev" ddl:"VARCHAR(2) NOT NULL" gorm:"type:varchar(2);not null;uniqueIndex:idx_jurisdictions_abbrev"`

	// Type is 'state' or 'federal'.
	Type string `db:"type" ddl:"VARCHAR(16) NOT NULL CHECK (type IN ('state', 'federal'))" gorm:"type:varchar(16);not null;check:chk_jurisdictions_type,type IN ('state', 'federal')"`
}

// Chamber is a legislative chamber of a jurisdiction.
type Chamber struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey"`

	JurisdictionID int64 `db:"jurisdiction_id" ddl:"INTEGER NOT NULL REFERENCES jurisdictions(id)" gorm:"not null;uniqueIndex:idx_chambers_natural_key,priority:1"`

	Jurisdiction *Jurisdiction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// Name is 'House' or 'Senate'.
	Name string `db:"name" ddl:"VARCHAR(16) NOT NULL CHECK (name IN ('House', 'Senate'))" gorm:"type:varchar(16);not null;uniqueIndex:idx_chambers_natural_key,priority:2;check:chk_chambers_name,name IN ('House', 'Senate')"`
}

// District is a seat designation within a chamber.
type District struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey"`

	ChamberID int64 `db:"chamber_id" ddl:"INTEGER NOT NULL REFERENCES chambers(id)" gorm:"not null;uniqueIndex:idx_districts_natural_key,priority:1"`

	Chamber *Chamber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// DistrictNumber is free-form: "12", "12A", "AL", "MN-5".
	DistrictNumber string `db:"district_number" ddl:"TEXT NOT NULL" gorm:"type:text;not null;uniqueIndex:idx_districts_natural_key,priority:2"`
}

// Term links a legislator to a district for a period of time.
// Terms are append only: a changed term is a new row.
type Term struct {
	ID int64 `db:"id" ddl:"INTEGER PRIMARY KEY" gorm:"primaryKey"`

	LegislatorID int64 `db:"legislator_id" ddl:"INTEGER NOT NULL REFERENCES legislators(id)" gorm:"not null;uniqueIndex:idx_terms_natural_key,priority:1"`

	Legislator *Legislator `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	DistrictID int64 `db:"district_id" ddl:"INTEGER NOT NULL REFERENCES districts(id)" gorm:"not null;uniqueIndex:idx_terms_natural_key,priority:2"`

	District *District `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	PartyID *int64 `db:"party_id" ddl:"INTEGER REFERENCES parties(id)" gorm:"index:idx_terms_party_id"`

	Party *Party `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	// StartDate in YYYY-MM-DD format.
	StartDate string `db:"start_date" ddl:"DATE NOT NULL" gorm:"type:date;not null;uniqueIndex:idx_terms_natural_key,priority:3"`

	// EndDate is NULL for ongoing terms.
	EndDate *string `db:"end_date" ddl:"DATE" gorm:"type:date"`

	ElectionYear *int `db:"election_year" ddl:"INTEGER" gorm:"type:integer"`
}
