package driving

import (
	"context"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// FileFinder drives one native engine instance rooted at a directory.
//
// Operations other than Init, HealthCheck, IsAvailable and EnsureLoaded fail
// with domain.ErrNotInitialized before Init succeeds, except the tracking
// calls which degrade to a false or nil result.
type FileFinder interface {
	// Init creates the engine for opts.BasePath and starts scanning.
	Init(ctx context.Context, opts domain.InitOptions) error

	// Destroy tears the engine down. The finder stays initialized if the
	// native call fails.
	Destroy(ctx context.Context) error

	// Search runs a fuzzy file search.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error)

	// LiveGrep searches file contents one page at a time. Pass the previous
	// result's NextCursor in opts.Cursor to continue.
	LiveGrep(ctx context.Context, query string, opts domain.GrepOptions) (*domain.GrepResult, error)

	// ScanFiles triggers a rescan.
	ScanFiles(ctx context.Context) error

	// IsScanning reports whether a scan is in progress. False when not initialized.
	IsScanning(ctx context.Context) bool

	ScanProgress(ctx context.Context) (domain.ScanProgress, error)

	// WaitForScan waits up to timeout for the scan to finish. A non-positive
	// timeout uses domain.DefaultWaitForScanTimeout. A false result means the
	// wait expired; the scan itself keeps running.
	WaitForScan(ctx context.Context, timeout time.Duration) (bool, error)

	// Reindex points the engine at a new directory.
	Reindex(ctx context.Context, newPath string) error

	TrackAccess(ctx context.Context, path string) (bool, error)
	TrackQuery(ctx context.Context, query, path string) (bool, error)
	RefreshGitStatus(ctx context.Context) (int, error)

	// HistoricalQuery returns the query offset steps back in history.
	HistoricalQuery(ctx context.Context, offset int) (*string, error)

	// HealthCheck works whether or not the finder is initialized.
	HealthCheck(ctx context.Context, testPath string) (*domain.HealthCheck, error)

	// IsAvailable reports whether the native library loads.
	IsAvailable(ctx context.Context) bool

	// EnsureLoaded loads the native library, returning the load error.
	EnsureLoaded(ctx context.Context) error

	IsInitialized() bool
}
