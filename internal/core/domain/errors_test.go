package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrUnsupportedPlatform", ErrUnsupportedPlatform},
		{"ErrBinaryNotFound", ErrBinaryNotFound},
		{"ErrLoadFailure", ErrLoadFailure},
		{"ErrNullResult", ErrNullResult},
		{"ErrDecodeFailure", ErrDecodeFailure},
		{"ErrNative", ErrNative},
		{"ErrNotInitialized", ErrNotInitialized},
		{"ErrUnsupported", ErrUnsupported},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNotFound", ErrNotFound},
		{"ErrSessionConflict", ErrSessionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotInitialized, ErrUnsupported))
	assert.False(t, errors.Is(ErrDecodeFailure, ErrNullResult))
	assert.False(t, errors.Is(ErrBinaryNotFound, ErrLoadFailure))
}

func TestBinaryNotFoundError(t *testing.T) {
	err := fmt.Errorf("loading: %w", &BinaryNotFoundError{InstallHint: "@ff-labs/fff-bun-linux-x64-gnu"})

	assert.True(t, errors.Is(err, ErrBinaryNotFound))
	assert.Contains(t, err.Error(), "@ff-labs/fff-bun-linux-x64-gnu")

	var target *BinaryNotFoundError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "@ff-labs/fff-bun-linux-x64-gnu", target.InstallHint)
}

func TestNativeError(t *testing.T) {
	t.Run("keeps engine message", func(t *testing.T) {
		err := NewNativeError("fff_search", "invalid query")
		assert.Equal(t, "fff_search: invalid query", err.Error())
		assert.True(t, errors.Is(err, ErrNative))
	})

	t.Run("falls back when message is empty", func(t *testing.T) {
		err := NewNativeError("fff_init", "")
		assert.Equal(t, "Unknown error", err.Message)
	})

	t.Run("omits empty op", func(t *testing.T) {
		err := NewNativeError("", "boom")
		assert.Equal(t, "boom", err.Error())
	})
}
