package iometrics

import (
	"fmt"

	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
)

// WriteError creates an error for when the metrics file cannot be
// written.
func WriteError(path string, err error) error {
	msg := "Cannot write metrics to <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.MetricsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to write metrics %s: %w", path, err),
	}
}
