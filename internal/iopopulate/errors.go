package iopopulate

import (
	"fmt"

	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when populate
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Populate operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// NoSourcesError is returned when every source is disabled or none
// was given.
func NoSourcesError() error {
	msg := `No sources to load

<em>How to fix:</em>
  1. Do not use --skip-federal and --skip-state together
  2. Check populate.federal_source and populate.state_dir in config.yaml`

	return &gn.Error{
		Code: errcode.PopulateNoSourcesError,
		Msg:  msg,
		Err:  fmt.Errorf("no sources to load"),
	}
}

// EmptyDatabaseError is returned when the schema was not created yet.
func EmptyDatabaseError() error {
	msg := `Database has no tables

<em>How to fix:</em>
  Run <em>legisdb create</em> before <em>legisdb populate</em>`

	return &gn.Error{
		Code: errcode.PopulateEmptyDatabaseError,
		Msg:  msg,
		Err:  fmt.Errorf("database schema does not exist"),
	}
}

// LoadError wraps a fatal store error that happened while loading
// a record. The transaction is rolled back after it.
func LoadError(ref string, err error) error {
	msg := `Cannot load record <em>%s</em>, no data was saved`
	vars := []any{ref}

	return &gn.Error{
		Code: errcode.PopulateLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("load %s: %w", ref, err),
	}
}

// SourceError wraps a fatal error of a source iterator.
func SourceError(name string, err error) error {
	msg := `Cannot read source <em>%s</em>, no data was saved`
	vars := []any{name}

	return &gn.Error{
		Code: errcode.PopulateLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("source %s: %w", name, err),
	}
}

// CancelledError creates an error for when population is cancelled.
func CancelledError(err error) error {
	msg := "Population cancelled, no data was saved"

	return &gn.Error{
		Code: errcode.PopulateLoadError,
		Msg:  msg,
		Err:  fmt.Errorf("population cancelled: %w", err),
	}
}

// CommitError wraps a failure to commit the run.
func CommitError(err error) error {
	msg := "Cannot commit population run, no data was saved"

	return &gn.Error{
		Code: errcode.PopulateCommitError,
		Msg:  msg,
		Err:  fmt.Errorf("commit: %w", err),
	}
}
