package iopopulate

import (
	"errors"
	"testing"

	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError verifies error structure.
func TestNotConnectedError(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Contains(t, gnErr.Err.Error(), "not connected")
}

func TestErrorCodes(t *testing.T) {
	orig := errors.New("disk I/O error")

	tests := []struct {
		msg   string
		err   error
		code  gn.ErrorCode
		vars  int
		wraps bool
	}{
		{"no sources", NoSourcesError(), errcode.PopulateNoSourcesError, 0, false},
		{"empty db", EmptyDatabaseError(), errcode.PopulateEmptyDatabaseError, 0, false},
		{"load", LoadError("people/data/mn/legislature/a.yml", orig),
			errcode.PopulateLoadError, 1, true},
		{"source", SourceError("federal", orig), errcode.PopulateLoadError, 1, true},
		{"cancelled", CancelledError(orig), errcode.PopulateLoadError, 0, true},
		{"commit", CommitError(orig), errcode.PopulateCommitError, 0, true},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		assert.Len(t, gnErr.Vars, v.vars, v.msg)
		if v.wraps {
			assert.ErrorIs(t, gnErr.Err, orig, v.msg)
		}
	}
}
