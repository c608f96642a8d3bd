package iosources

import (
	"fmt"

	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
)

// FetchError creates an error for when the federal roster
// cannot be downloaded.
func FetchError(url string, err error) error {
	msg := `Cannot download federal roster

<em>URL:</em> %s

<em>Possible causes:</em>
  - No network connection
  - The URL moved or the server is down

<em>How to fix:</em>
  1. Check the URL in a browser
  2. Download the file and use <em>--federal /path/to/file.json</em>`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.SourceFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to fetch %s: %w", url, err),
	}
}

// ReadError creates an error for when a local source file
// cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read source file <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.SourceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read %s: %w", path, err),
	}
}

// DecodeError creates an error for a source document that is not
// a JSON array.
func DecodeError(location string, err error) error {
	msg := "Source <em>%s</em> is not a JSON array of legislators"
	vars := []any{location}
	return &gn.Error{
		Code: errcode.SourceDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to decode %s: %w", location, err),
	}
}

// DirNotFoundError creates an error for a missing state data
// directory.
func DirNotFoundError(dir string, err error) error {
	msg := `State data directory <em>%s</em> not found

<em>How to fix:</em>
  1. Clone the people repository:
     <em>git clone https://github.com/openstates/people</em>
  2. Point to its data directory:
     <em>legisdb populate --state-dir people/data</em>`

	vars := []any{dir}
	return &gn.Error{
		Code: errcode.SourceDirNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("state directory %s: %w", dir, err),
	}
}
