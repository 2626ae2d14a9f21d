package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

func TestConfigCmd_ShowsResolvedValues(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.settings.GrepMode = domain.GrepModeFuzzy
	ts.settings.settings.SearchPageSize = 40

	out, err := execute(t, "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "finder.base_path           (default)")
	assert.Contains(t, out, "grep.mode                  fuzzy")
	assert.Contains(t, out, "search.page_size           40")
}

func TestConfigCmd_DefaultsToShow(t *testing.T) {
	setupTestServices(t)

	out, err := execute(t, "config")

	require.NoError(t, err)
	assert.Contains(t, out, "grep.mode")
}

func TestConfigCmd_Set(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "config", "set", "grep.mode", "regex")

	require.NoError(t, err)
	assert.Equal(t, "grep.mode = regex\n", out)
	assert.Equal(t, "regex", ts.settings.set["grep.mode"])
}

func TestConfigCmd_SetError(t *testing.T) {
	ts := setupTestServices(t)
	ts.settings.setErr = domain.ErrInvalidInput

	_, err := execute(t, "config", "set", "grep.mode", "glob")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "failed to set grep.mode")
}

func TestConfigCmd_Unset(t *testing.T) {
	ts := setupTestServices(t)

	out, err := execute(t, "config", "unset", "grep.mode")

	require.NoError(t, err)
	assert.Equal(t, "grep.mode unset\n", out)
	assert.Equal(t, []string{"grep.mode"}, ts.settings.unset)
}

func TestConfigCmd_SetNeedsTwoArgs(t *testing.T) {
	setupTestServices(t)

	_, err := execute(t, "config", "set", "grep.mode")

	assert.Error(t, err)
}

func TestConfigCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	services.Settings = nil

	_, err := execute(t, "config", "show")

	assert.EqualError(t, err, "settings service not configured")
}

func TestSettingsValues(t *testing.T) {
	s := domain.DefaultSettings()
	s.UseUnsafeNoLock = true
	s.ScanTimeout = 1500 * time.Millisecond
	s.CursorTTL = 48 * time.Hour

	values := settingsValues(s)

	assert.Equal(t, "true", values["finder.use_unsafe_no_lock"])
	assert.Equal(t, "1500", values["finder.scan_timeout_ms"])
	assert.Equal(t, "48", values["storage.cursor_ttl_hours"])
	assert.Equal(t, "", values["grep.page_limit"])
	assert.Equal(t, "plain", values["grep.mode"])
	assert.Len(t, values, 13)
}
