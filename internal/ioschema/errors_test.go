package ioschema

import (
	"errors"
	"testing"

	"github.com/civicdata/legisdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
}

// TestCollationError_Structure verifies error structure.
func TestCollationError_Structure(t *testing.T) {
	originalErr := errors.New("permission denied")

	err := CollationError("legislators", "full_name", originalErr)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.SchemaCreateError, gnErr.Code)
	assert.Equal(t, []any{"legislators", "full_name"}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestAllErrors_ErrorWrapping verifies proper error
// wrapping.
func TestAllErrors_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		error error
		code  gn.ErrorCode
	}{
		{
			name:  "GORMConnectionError",
			error: GORMConnectionError(originalErr),
			code:  errcode.SchemaGORMConnectionError,
		},
		{
			name:  "CreateSchemaError",
			error: CreateSchemaError(originalErr),
			code:  errcode.SchemaCreateError,
		},
		{
			name:  "MigrateSchemaError",
			error: MigrateSchemaError(originalErr),
			code:  errcode.SchemaMigrateError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr := tt.error.(*gn.Error)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
		})
	}
}
