package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AppData", t.TempDir())

	want, err := DefaultDir()
	require.NoError(t, err)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(want, "config.toml"), store.Path())
	assert.Equal(t, "fff", filepath.Base(want))
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "fff")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_GetKeepsDecodedTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("finder.base_path", "/repo"))
	require.NoError(t, store.Set("finder.warmup_mmap_cache", true))

	val, ok := store.Get("finder.base_path")
	assert.True(t, ok)
	assert.Equal(t, "/repo", val)

	val, ok = store.Get("finder.warmup_mmap_cache")
	assert.True(t, ok)
	assert.Equal(t, true, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("finder.base_path", "/repo"))
	require.NoError(t, store.Set("grep.mode", "regex"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[finder]")
	assert.Contains(t, string(data), "[grep]")
	assert.NotContains(t, string(data), `"finder.base_path"`)
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("finder.base_path", "/repo"))
	require.NoError(t, store.Set("search.page_size", 30))
	require.NoError(t, store.Set("finder.use_unsafe_no_lock", true))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assertValue(t, reloaded, "finder.base_path", "/repo")
	// TOML integers decode as int64.
	assertValue(t, reloaded, "search.page_size", int64(30))
	assertValue(t, reloaded, "finder.use_unsafe_no_lock", true)
	assert.Equal(t, []string{"finder.base_path", "finder.use_unsafe_no_lock", "search.page_size"}, reloaded.Keys())
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[finder]
base_path = "/src"
scan_timeout_ms = 800

[grep]
mode = "fuzzy"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assertValue(t, store, "finder.base_path", "/src")
	assertValue(t, store, "finder.scan_timeout_ms", int64(800))
	assertValue(t, store, "grep.mode", "fuzzy")
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Empty(t, store.Keys())
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_SetWriteErrorRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("k", "changed"))
	assert.Error(t, store.Set("other", "v"))

	assertValue(t, store, "k", "v")
	_, ok := store.Get("other")
	assert.False(t, ok)
}

func TestConfigStore_Unset(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("grep.mode", "regex"))
	require.NoError(t, store.Set("search.page_size", 30))

	require.NoError(t, store.Unset("grep.mode"))
	require.NoError(t, store.Unset("grep.mode"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"search.page_size"}, reloaded.Keys())
}

func TestConfigStore_NoTempFilesLeft(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "config.toml", entries[0].Name())
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("channel", make(chan int)))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.Set("search.page_size", 10)
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Get("search.page_size")
		}()
	}
	wg.Wait()

	assertValue(t, store, "search.page_size", 10)
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"a":           1,
		"a.b":         2,
		"finder.path": "/repo",
		"top":         true,
	}

	got := nestMap(flat)

	assert.Equal(t, map[string]any{
		"a":      1,
		"finder": map[string]any{"path": "/repo"},
		"top":    true,
	}, got)
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"finder": map[string]any{
			"base_path": "/repo",
			"deep":      map[string]any{"x": int64(1)},
		},
		"top": "v",
	}

	assert.Equal(t, map[string]any{
		"finder.base_path": "/repo",
		"finder.deep.x":    int64(1),
		"top":              "v",
	}, flattenMap(nested, ""))
}

func assertValue(t *testing.T, store *ConfigStore, key string, want any) {
	t.Helper()
	got, ok := store.Get(key)
	require.True(t, ok, "missing key %s", key)
	assert.Equal(t, want, got)
}
