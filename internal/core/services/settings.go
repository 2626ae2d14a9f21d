package services

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyBasePath         = "finder.base_path"
	keyFrecencyDBPath   = "finder.frecency_db_path"
	keyHistoryDBPath    = "finder.history_db_path"
	keyUseUnsafeNoLock  = "finder.use_unsafe_no_lock"
	keyWarmupMmapCache  = "finder.warmup_mmap_cache"
	keyScanTimeoutMs    = "finder.scan_timeout_ms"
	keyLibraryPath      = "native.library_path"
	keySearchPageSize   = "search.page_size"
	keyGrepMode         = "grep.mode"
	keyGrepPageLimit    = "grep.page_limit"
	keyGrepTimeBudgetMs = "grep.time_budget_ms"
	keyDataDir          = "storage.data_dir"
	keyCursorTTLHours   = "storage.cursor_ttl_hours"
)

// Environment variables that override the config file.
const (
	EnvBasePath       = "FFF_BASE_PATH"
	EnvLibraryPath    = "FFF_LIBRARY_PATH"
	EnvFrecencyDBPath = "FFF_FRECENCY_DB_PATH"
	EnvHistoryDBPath  = "FFF_HISTORY_DB_PATH"
	EnvDataDir        = "FFF_DATA_DIR"
)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
	kindGrepMode
)

var keyKinds = map[string]valueKind{
	keyBasePath:         kindString,
	keyFrecencyDBPath:   kindString,
	keyHistoryDBPath:    kindString,
	keyUseUnsafeNoLock:  kindBool,
	keyWarmupMmapCache:  kindBool,
	keyScanTimeoutMs:    kindInt,
	keyLibraryPath:      kindString,
	keySearchPageSize:   kindInt,
	keyGrepMode:         kindGrepMode,
	keyGrepPageLimit:    kindInt,
	keyGrepTimeBudgetMs: kindInt,
	keyDataDir:          kindString,
	keyCursorTTLHours:   kindInt,
}

// SettingsService resolves settings from defaults, the config file and the
// environment, in that order of increasing precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Load returns the resolved settings.
func (s *SettingsService) Load() domain.Settings {
	settings := domain.DefaultSettings()

	settings.BasePath = s.getString(keyBasePath, EnvBasePath, settings.BasePath)
	settings.FrecencyDBPath = s.getString(keyFrecencyDBPath, EnvFrecencyDBPath, settings.FrecencyDBPath)
	settings.HistoryDBPath = s.getString(keyHistoryDBPath, EnvHistoryDBPath, settings.HistoryDBPath)
	settings.LibraryPath = s.getString(keyLibraryPath, EnvLibraryPath, settings.LibraryPath)
	settings.DataDir = s.getString(keyDataDir, EnvDataDir, settings.DataDir)

	settings.UseUnsafeNoLock = s.configBool(keyUseUnsafeNoLock)
	settings.WarmupMmapCache = s.configBool(keyWarmupMmapCache)

	if ms := s.configInt(keyScanTimeoutMs); ms > 0 {
		settings.ScanTimeout = time.Duration(ms) * time.Millisecond
	}
	if n := s.configInt(keySearchPageSize); n > 0 {
		settings.SearchPageSize = n
	}
	if mode := domain.GrepMode(s.configString(keyGrepMode)); mode != "" && mode.IsValid() {
		settings.GrepMode = mode
	}
	if n := s.configInt(keyGrepPageLimit); n > 0 {
		settings.GrepPageLimit = n
	}
	if n := s.configInt(keyGrepTimeBudgetMs); n > 0 {
		settings.GrepTimeBudgetMs = n
	}
	if h := s.configInt(keyCursorTTLHours); h > 0 {
		settings.CursorTTL = time.Duration(h) * time.Hour
	}

	return settings
}

// Set parses value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	kind, ok := keyKinds[key]
	if !ok {
		return fmt.Errorf("%w: unknown config key %q (valid keys: %s)",
			domain.ErrInvalidInput, key, strings.Join(s.Keys(), ", "))
	}

	var typed any
	switch kind {
	case kindString:
		typed = value
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s expects true or false", domain.ErrInvalidInput, key)
		}
		typed = b
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s expects a non-negative integer", domain.ErrInvalidInput, key)
		}
		typed = n
	case kindGrepMode:
		mode := domain.GrepMode(value)
		if mode == "" || !mode.IsValid() {
			return fmt.Errorf("%w: %s expects plain, regex or fuzzy", domain.ErrInvalidInput, key)
		}
		typed = value
	}

	return s.configStore.Set(key, typed)
}

// Unset removes key from the config file so its default applies again.
func (s *SettingsService) Unset(key string) error {
	if _, ok := keyKinds[key]; !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	return s.configStore.Unset(key)
}

// Keys lists the supported config keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *SettingsService) getString(key, env, fallback string) string {
	if v := s.getenv(env); v != "" {
		return v
	}
	if v := s.configString(key); v != "" {
		return v
	}
	return fallback
}

// The helpers below read a stored value leniently: a hand-edited file may
// quote numbers and booleans. Anything unreadable counts as unset.

func (s *SettingsService) configString(key string) string {
	v, _ := s.configStore.Get(key)
	str, _ := v.(string)
	return str
}

func (s *SettingsService) configInt(key string) int {
	v, _ := s.configStore.Get(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(n))
		return i
	}
	return 0
}

func (s *SettingsService) configBool(key string) bool {
	v, _ := s.configStore.Get(key)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(b))
		return parsed
	}
	return false
}
