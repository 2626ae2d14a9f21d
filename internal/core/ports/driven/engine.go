package driven

import (
	"context"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// Engine is the typed request/response surface of the native search engine.
//
// Every method loads the native module on first use. Failed native calls
// return a *domain.NativeError; malformed replies return an error matching
// domain.ErrDecodeFailure.
type Engine interface {
	// Load opens the native module. Safe to call repeatedly.
	Load(ctx context.Context) error

	// Available reports whether the native module can be loaded.
	Available(ctx context.Context) bool

	// Init creates the engine instance and starts the background scan.
	Init(ctx context.Context, req domain.InitRequest) error

	// Destroy tears down the engine instance.
	Destroy(ctx context.Context) error

	// Search runs a fuzzy file search.
	Search(ctx context.Context, query string, req domain.SearchRequest) (domain.Payload, error)

	// LiveGrep searches file contents. Fails with domain.ErrUnsupported when
	// the loaded module has no live-grep entry point.
	LiveGrep(ctx context.Context, query string, req domain.GrepRequest) (domain.Payload, error)

	ScanFiles(ctx context.Context) error
	IsScanning(ctx context.Context) (bool, error)
	ScanProgress(ctx context.Context) (domain.Payload, error)

	// WaitForScan blocks for at most timeoutMs and reports whether the scan
	// finished within it.
	WaitForScan(ctx context.Context, timeoutMs uint64) (bool, error)

	RestartIndex(ctx context.Context, newPath string) error
	TrackAccess(ctx context.Context, path string) (bool, error)

	// RefreshGitStatus returns the number of files whose status was updated.
	RefreshGitStatus(ctx context.Context) (int, error)

	TrackQuery(ctx context.Context, query, path string) (bool, error)

	// HistoricalQuery returns the query at offset steps back, nil if none.
	HistoricalQuery(ctx context.Context, offset uint64) (*string, error)

	HealthCheck(ctx context.Context, testPath string) (domain.Payload, error)
}
