package iosources_test

import (
	"errors"
	"testing"

	"github.com/civicdata/legisdb/internal/iosources"
	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("boom")

	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		loc  string
	}{
		{"fetch", iosources.FetchError("https://example.org/x.json", orig),
			errcode.SourceFetchError, "https://example.org/x.json"},
		{"read", iosources.ReadError("/tmp/x.json", orig),
			errcode.SourceReadError, "/tmp/x.json"},
		{"decode", iosources.DecodeError("/tmp/x.json", orig),
			errcode.SourceDecodeError, "/tmp/x.json"},
		{"dir", iosources.DirNotFoundError("/tmp/people", orig),
			errcode.SourceDirNotFoundError, "/tmp/people"},
	}

	for _, v := range tests {
		gnErr, ok := v.err.(*gn.Error)
		require.True(t, ok, v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.NotEmpty(t, gnErr.Msg, v.msg)
		require.Len(t, gnErr.Vars, 1, v.msg)
		assert.Equal(t, v.loc, gnErr.Vars[0], v.msg)
		assert.ErrorIs(t, gnErr.Err, orig, v.msg)
	}
}
