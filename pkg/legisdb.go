// Package legisdb contains version information and the high-level
// contracts of the legislator database: schema management and population.
// Implementations live in internal/io* packages.
package legisdb

import (
	"context"
	"time"

	"github.com/civicdata/legisdb/pkg/record"
)

var (
	// Version of legisdb, set by build flags.
	Version = "v0.1.0"
	// Build timestamp, set by build flags.
	Build = "n/a"
)

// SchemaManager creates and migrates the database schema.
// Both operations are idempotent and never touch loaded data.
type SchemaManager interface {
	// Create creates all tables and indexes that do not exist yet.
	Create(ctx context.Context) error

	// Migrate brings an existing schema to the latest version.
	Migrate(ctx context.Context) error
}

// Populator loads records from sources into the database.
// A run is one transaction: it either commits completely or leaves
// the database unchanged.
type Populator interface {
	Populate(ctx context.Context, sources ...record.Source) (*Summary, error)
}

// Summary describes the outcome of one population run.
type Summary struct {
	// RunID identifies the run in logs and metrics.
	RunID string

	// Total is the number of records announced by sources.
	Total int

	// Processed is the number of records that reached the store.
	Processed int

	// Skipped counts records dropped because of source-shape errors.
	Skipped int

	// LegislatorsInserted counts new legislator rows.
	LegislatorsInserted int

	// LegislatorsMatched counts records resolved to existing legislators.
	LegislatorsMatched int

	// TermsInserted counts new term rows.
	TermsInserted int

	// TermsExisting counts terms that were already stored.
	TermsExisting int

	// TermsRejected counts term contexts with values outside closed
	// enumerations or with malformed dates.
	TermsRejected int

	// TermsNoContext counts records without a usable term context
	// (no district, no start date).
	TermsNoContext int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}
