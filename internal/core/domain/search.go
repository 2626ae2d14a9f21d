package domain

// FileItem is a ranked file returned by Search.
type FileItem struct {
	Path                      string `json:"path"`
	RelativePath              string `json:"relativePath"`
	FileName                  string `json:"fileName"`
	Size                      int64  `json:"size"`
	Modified                  int64  `json:"modified"`
	AccessFrecencyScore       int64  `json:"accessFrecencyScore"`
	ModificationFrecencyScore int64  `json:"modificationFrecencyScore"`
	TotalFrecencyScore        int64  `json:"totalFrecencyScore"`
	GitStatus                 string `json:"gitStatus"`
}

// Score breaks down how a FileItem was ranked.
type Score struct {
	Total                int64  `json:"total"`
	BaseScore            int64  `json:"baseScore"`
	FilenameBonus        int64  `json:"filenameBonus"`
	SpecialFilenameBonus int64  `json:"specialFilenameBonus"`
	FrecencyBoost        int64  `json:"frecencyBoost"`
	DistancePenalty      int64  `json:"distancePenalty"`
	CurrentFilePenalty   int64  `json:"currentFilePenalty"`
	ComboMatchBoost      int64  `json:"comboMatchBoost"`
	ExactMatch           bool   `json:"exactMatch"`
	MatchType            string `json:"matchType"`
}

// Location kinds parsed from a query suffix such as "main.go:12:4".
const (
	LocationLine     = "line"
	LocationPosition = "position"
	LocationRange    = "range"
)

// Position is a line/column pair.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Location is the cursor location the engine parsed out of a query.
// Line and Col are set for line and position kinds; Start and End for range.
type Location struct {
	Type  string    `json:"type"`
	Line  int       `json:"line,omitempty"`
	Col   int       `json:"col,omitempty"`
	Start *Position `json:"start,omitempty"`
	End   *Position `json:"end,omitempty"`
}

// SearchResult is one page of ranked files. Scores is parallel to Items.
type SearchResult struct {
	Items        []FileItem `json:"items"`
	Scores       []Score    `json:"scores"`
	TotalMatched int        `json:"totalMatched"`
	TotalFiles   int        `json:"totalFiles"`
	Location     *Location  `json:"location,omitempty"`
}

// GrepMatch is a single matching line.
type GrepMatch struct {
	Path                      string   `json:"path"`
	RelativePath              string   `json:"relativePath"`
	FileName                  string   `json:"fileName"`
	GitStatus                 string   `json:"gitStatus"`
	Size                      int64    `json:"size"`
	Modified                  int64    `json:"modified"`
	IsBinary                  bool     `json:"isBinary"`
	TotalFrecencyScore        int64    `json:"totalFrecencyScore"`
	AccessFrecencyScore       int64    `json:"accessFrecencyScore"`
	ModificationFrecencyScore int64    `json:"modificationFrecencyScore"`
	LineNumber                int      `json:"lineNumber"`
	Col                       int      `json:"col"`
	ByteOffset                int64    `json:"byteOffset"`
	LineContent               string   `json:"lineContent"`
	MatchRanges               [][2]int `json:"matchRanges"`
	FuzzyScore                *int64   `json:"fuzzyScore,omitempty"`
}

// GrepResult is one page of a live-grep stream.
type GrepResult struct {
	Items              []GrepMatch `json:"items"`
	TotalMatched       int         `json:"totalMatched"`
	TotalFilesSearched int         `json:"totalFilesSearched"`
	TotalFiles         int         `json:"totalFiles"`
	FilteredFileCount  int         `json:"filteredFileCount"`

	// NextCursor is nil when the stream is exhausted.
	NextCursor *GrepCursor `json:"-"`

	// RegexFallbackError is set when a regex failed to compile and the
	// engine fell back to plain matching.
	RegexFallbackError string `json:"regexFallbackError,omitempty"`
}

// HasMore reports whether another page can be requested.
func (r *GrepResult) HasMore() bool {
	return r != nil && r.NextCursor != nil
}

// ScanProgress reports the background scan state.
type ScanProgress struct {
	ScannedFilesCount int  `json:"scannedFilesCount"`
	IsScanning        bool `json:"isScanning"`
}
