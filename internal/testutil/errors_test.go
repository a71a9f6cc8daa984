package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockErrors_Distinct(t *testing.T) {
	errs := []error{
		ErrMockCommandFailed,
		ErrMockWriteFailed,
		ErrMockPermission,
		ErrMockDiskFull,
		ErrMockEditorMissing,
	}

	seen := make(map[string]bool, len(errs))
	for _, err := range errs {
		require.Error(t, err)
		assert.False(t, seen[err.Error()], "duplicate mock error message: %s", err.Error())
		seen[err.Error()] = true
	}
}
