package domain

import "time"

// Defaults applied when neither the config file nor the environment set a value.
const (
	DefaultWaitForScanTimeout = 5 * time.Second
	DefaultSessionScanTimeout = 500 * time.Millisecond
	DefaultSearchPageSize     = 20
	DefaultCursorTTL          = 24 * time.Hour
)

// Settings is the resolved runtime configuration.
type Settings struct {
	// Finder engine options.
	BasePath        string
	FrecencyDBPath  string
	HistoryDBPath   string
	UseUnsafeNoLock bool
	WarmupMmapCache bool

	// ScanTimeout bounds the initial scan wait when a session starts.
	ScanTimeout time.Duration

	// LibraryPath points directly at a native library, skipping package lookup.
	LibraryPath string

	// Search and grep defaults.
	SearchPageSize   int
	GrepMode         GrepMode
	GrepPageLimit    int
	GrepTimeBudgetMs int

	// DataDir holds local state such as stored grep cursors.
	DataDir string

	// CursorTTL is how long stored grep cursors remain valid.
	CursorTTL time.Duration
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		ScanTimeout:    DefaultSessionScanTimeout,
		SearchPageSize: DefaultSearchPageSize,
		GrepMode:       GrepModePlain,
		CursorTTL:      DefaultCursorTTL,
	}
}

// InitOptions derives engine init options rooted at basePath.
func (s Settings) InitOptions(basePath string) InitOptions {
	return InitOptions{
		BasePath:        basePath,
		FrecencyDBPath:  s.FrecencyDBPath,
		HistoryDBPath:   s.HistoryDBPath,
		UseUnsafeNoLock: s.UseUnsafeNoLock,
		WarmupMmapCache: s.WarmupMmapCache,
	}
}
