package fff

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

func TestOpener_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libfff_c.so")

	lib, err := Opener(path)

	require.Error(t, err)
	assert.Nil(t, lib)
	assert.True(t, errors.Is(err, domain.ErrLoadFailure))
	assert.Contains(t, err.Error(), path)
}
