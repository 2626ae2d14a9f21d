package domain

// InitOptions configures a native engine rooted at a directory.
type InitOptions struct {
	// BasePath is the directory to index.
	BasePath string `json:"basePath"`

	// FrecencyDBPath overrides the default frecency database location.
	FrecencyDBPath string `json:"frecencyDbPath,omitempty"`

	// HistoryDBPath overrides the default query history database location.
	HistoryDBPath string `json:"historyDbPath,omitempty"`

	// UseUnsafeNoLock and WarmupMmapCache are engine tuning flags,
	// passed through unchanged.
	UseUnsafeNoLock bool `json:"useUnsafeNoLock"`
	WarmupMmapCache bool `json:"warmupMmapCache"`
}

// Ptr returns a pointer to v, for the option fields where an explicit zero
// differs from the engine default.
func Ptr[T any](v T) *T {
	return &v
}

// SearchOptions tunes a fuzzy file search. Zero values and nil pointers use
// the engine default; a non-nil pointer is sent even when it points at zero.
type SearchOptions struct {
	MaxThreads           int      `json:"maxThreads,omitempty"`
	CurrentFile          string   `json:"currentFile,omitempty"`
	ComboBoostMultiplier *float64 `json:"comboBoostMultiplier,omitempty"`
	MinComboCount        *int     `json:"minComboCount,omitempty"`
	PageIndex            int      `json:"pageIndex,omitempty"`
	PageSize             int      `json:"pageSize,omitempty"`
}

// GrepMode selects how a live-grep query is matched.
type GrepMode string

// Available grep modes.
const (
	GrepModePlain GrepMode = "plain"
	GrepModeRegex GrepMode = "regex"
	GrepModeFuzzy GrepMode = "fuzzy"
)

// IsValid returns true if the grep mode is recognised.
// The empty mode is valid and means engine default.
func (m GrepMode) IsValid() bool {
	switch m {
	case "", GrepModePlain, GrepModeRegex, GrepModeFuzzy:
		return true
	default:
		return false
	}
}

// GrepOptions tunes a live-grep page. Zero values and nil pointers use the
// engine default.
type GrepOptions struct {
	MaxFileSize       int64    `json:"maxFileSize,omitempty"`
	MaxMatchesPerFile *int     `json:"maxMatchesPerFile,omitempty"`
	SmartCase         *bool    `json:"smartCase,omitempty"`
	PageLimit         int      `json:"pageLimit,omitempty"`
	Mode              GrepMode `json:"mode,omitempty"`
	TimeBudgetMs      *int     `json:"timeBudgetMs,omitempty"`

	// Cursor resumes a previous page; nil starts from the beginning.
	Cursor *GrepCursor `json:"-"`
}

// InitRequest is the wire form of InitOptions.
type InitRequest struct {
	BasePath        string `json:"base_path"`
	FrecencyDBPath  string `json:"frecency_db_path,omitempty"`
	HistoryDBPath   string `json:"history_db_path,omitempty"`
	UseUnsafeNoLock bool   `json:"use_unsafe_no_lock"`
	WarmupMmapCache bool   `json:"warmup_mmap_cache"`
}

// SearchRequest is the wire form of SearchOptions.
type SearchRequest struct {
	MaxThreads           int      `json:"max_threads,omitempty"`
	CurrentFile          string   `json:"current_file,omitempty"`
	ComboBoostMultiplier *float64 `json:"combo_boost_multiplier,omitempty"`
	MinComboCount        *int     `json:"min_combo_count,omitempty"`
	PageIndex            int      `json:"page_index,omitempty"`
	PageSize             int      `json:"page_size,omitempty"`
}

// GrepRequest is the wire form of GrepOptions. FileOffset is always sent.
type GrepRequest struct {
	MaxFileSize       int64  `json:"max_file_size,omitempty"`
	MaxMatchesPerFile *int   `json:"max_matches_per_file,omitempty"`
	SmartCase         *bool  `json:"smart_case,omitempty"`
	FileOffset        int64  `json:"file_offset"`
	PageLimit         int    `json:"page_limit,omitempty"`
	Mode              string `json:"mode,omitempty"`
	TimeBudgetMs      *int   `json:"time_budget_ms,omitempty"`
}

// ToWire converts init options to their wire form.
func (o InitOptions) ToWire() InitRequest {
	return InitRequest{
		BasePath:        o.BasePath,
		FrecencyDBPath:  o.FrecencyDBPath,
		HistoryDBPath:   o.HistoryDBPath,
		UseUnsafeNoLock: o.UseUnsafeNoLock,
		WarmupMmapCache: o.WarmupMmapCache,
	}
}

// ToWire converts search options to their wire form.
func (o SearchOptions) ToWire() SearchRequest {
	return SearchRequest{
		MaxThreads:           o.MaxThreads,
		CurrentFile:          o.CurrentFile,
		ComboBoostMultiplier: o.ComboBoostMultiplier,
		MinComboCount:        o.MinComboCount,
		PageIndex:            o.PageIndex,
		PageSize:             o.PageSize,
	}
}

// ToWire converts grep options to their wire form.
func (o GrepOptions) ToWire() GrepRequest {
	return GrepRequest{
		MaxFileSize:       o.MaxFileSize,
		MaxMatchesPerFile: o.MaxMatchesPerFile,
		SmartCase:         o.SmartCase,
		FileOffset:        CursorOffset(o.Cursor),
		PageLimit:         o.PageLimit,
		Mode:              string(o.Mode),
		TimeBudgetMs:      o.TimeBudgetMs,
	}
}
