package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
	"github.com/ff-labs/fff-go/internal/logger"
)

// Ensure FileFinder implements the interface.
var _ driving.FileFinder = (*FileFinder)(nil)

// FileFinder owns one native engine instance and tracks whether it has been
// initialized. Several finders may coexist, each with its own engine.
type FileFinder struct {
	engine driven.Engine

	// lifecycle serialises Init and Destroy.
	lifecycle   sync.Mutex
	initialized atomic.Bool
}

// NewFileFinder creates an uninitialized finder backed by engine.
func NewFileFinder(engine driven.Engine) *FileFinder {
	return &FileFinder{engine: engine}
}

// IsInitialized reports whether Init has succeeded and Destroy has not.
func (f *FileFinder) IsInitialized() bool {
	return f.initialized.Load()
}

func (f *FileFinder) guard(ctx context.Context) error {
	if !f.initialized.Load() {
		return domain.ErrNotInitialized
	}
	return ctx.Err()
}

// Init creates the native engine rooted at opts.BasePath.
func (f *FileFinder) Init(ctx context.Context, opts domain.InitOptions) error {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug("initializing finder at %s", opts.BasePath)
	if err := f.engine.Init(ctx, opts.ToWire()); err != nil {
		return fmt.Errorf("init %s: %w", opts.BasePath, err)
	}
	f.initialized.Store(true)
	return nil
}

// Destroy tears down the native engine. A failed destroy leaves the finder
// initialized.
func (f *FileFinder) Destroy(ctx context.Context) error {
	f.lifecycle.Lock()
	defer f.lifecycle.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := f.engine.Destroy(ctx); err != nil {
		return fmt.Errorf("destroy: %w", err)
	}
	f.initialized.Store(false)
	return nil
}

// Search runs a fuzzy file search.
func (f *FileFinder) Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	if err := f.guard(ctx); err != nil {
		return nil, err
	}

	payload, err := f.engine.Search(ctx, query, opts.ToWire())
	if err != nil {
		return nil, err
	}

	var result domain.SearchResult
	if err := payload.Decode(&result); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &result, nil
}

// grepReply is the native live-grep reply. The resume offset is turned into
// an opaque cursor before the result leaves the finder.
type grepReply struct {
	domain.GrepResult
	NextFileOffset int64 `json:"nextFileOffset"`
}

// LiveGrep searches file contents one page at a time.
func (f *FileFinder) LiveGrep(ctx context.Context, query string, opts domain.GrepOptions) (*domain.GrepResult, error) {
	if err := f.guard(ctx); err != nil {
		return nil, err
	}
	if !opts.Mode.IsValid() {
		return nil, fmt.Errorf("%w: grep mode %q", domain.ErrInvalidInput, opts.Mode)
	}

	payload, err := f.engine.LiveGrep(ctx, query, opts.ToWire())
	if err != nil {
		return nil, err
	}

	var reply grepReply
	if err := payload.Decode(&reply); err != nil {
		return nil, fmt.Errorf("live grep: %w", err)
	}

	result := reply.GrepResult
	result.NextCursor = domain.NewGrepCursor(reply.NextFileOffset)
	return &result, nil
}

// ScanFiles triggers a background rescan.
func (f *FileFinder) ScanFiles(ctx context.Context) error {
	if err := f.guard(ctx); err != nil {
		return err
	}
	return f.engine.ScanFiles(ctx)
}

// IsScanning polls the scan flag. It is false when the finder is not
// initialized or the library cannot be reached.
func (f *FileFinder) IsScanning(ctx context.Context) bool {
	if !f.initialized.Load() {
		return false
	}
	scanning, err := f.engine.IsScanning(ctx)
	if err != nil {
		logger.Debug("is scanning: %v", err)
		return false
	}
	return scanning
}

// ScanProgress returns the background scan progress.
func (f *FileFinder) ScanProgress(ctx context.Context) (domain.ScanProgress, error) {
	if err := f.guard(ctx); err != nil {
		return domain.ScanProgress{}, err
	}

	payload, err := f.engine.ScanProgress(ctx)
	if err != nil {
		return domain.ScanProgress{}, err
	}

	var progress domain.ScanProgress
	if err := payload.Decode(&progress); err != nil {
		return domain.ScanProgress{}, fmt.Errorf("scan progress: %w", err)
	}
	return progress, nil
}

// WaitForScan blocks for at most timeout. A false result means the wait
// expired; the native scan keeps running.
func (f *FileFinder) WaitForScan(ctx context.Context, timeout time.Duration) (bool, error) {
	if err := f.guard(ctx); err != nil {
		return false, err
	}
	if timeout <= 0 {
		timeout = domain.DefaultWaitForScanTimeout
	}
	return f.engine.WaitForScan(ctx, waitMillis(timeout))
}

// waitMillis converts a positive timeout to whole milliseconds, rounding up
// so a sub-millisecond wait never becomes a zero wait.
func waitMillis(timeout time.Duration) uint64 {
	return uint64((timeout + time.Millisecond - 1) / time.Millisecond)
}

// Reindex rebuilds the index at newPath, reusing the engine instance.
func (f *FileFinder) Reindex(ctx context.Context, newPath string) error {
	if err := f.guard(ctx); err != nil {
		return err
	}
	return f.engine.RestartIndex(ctx, newPath)
}

// TrackAccess records that path was opened. False when not initialized.
func (f *FileFinder) TrackAccess(ctx context.Context, path string) (bool, error) {
	if !f.initialized.Load() {
		return false, nil
	}
	return f.engine.TrackAccess(ctx, path)
}

// TrackQuery records that query led to path. False when not initialized.
func (f *FileFinder) TrackQuery(ctx context.Context, query, path string) (bool, error) {
	if !f.initialized.Load() {
		return false, nil
	}
	return f.engine.TrackQuery(ctx, query, path)
}

// RefreshGitStatus recomputes git status and returns the affected file count.
func (f *FileFinder) RefreshGitStatus(ctx context.Context) (int, error) {
	if err := f.guard(ctx); err != nil {
		return 0, err
	}
	return f.engine.RefreshGitStatus(ctx)
}

// HistoricalQuery returns a tracked query by offset, 0 being the latest.
// Nil when not initialized or when there is no such query.
func (f *FileFinder) HistoricalQuery(ctx context.Context, offset int) (*string, error) {
	if !f.initialized.Load() {
		return nil, nil
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: negative history offset %d", domain.ErrInvalidInput, offset)
	}
	return f.engine.HistoricalQuery(ctx, uint64(offset))
}

// HealthCheck runs the engine self-diagnosis, initialized or not.
func (f *FileFinder) HealthCheck(ctx context.Context, testPath string) (*domain.HealthCheck, error) {
	payload, err := f.engine.HealthCheck(ctx, testPath)
	if err != nil {
		return nil, err
	}

	var health domain.HealthCheck
	if err := payload.Decode(&health); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &health, nil
}

// IsAvailable reports whether the native library loads.
func (f *FileFinder) IsAvailable(ctx context.Context) bool {
	return f.engine.Available(ctx)
}

// EnsureLoaded loads the native library and returns any load error.
func (f *FileFinder) EnsureLoaded(ctx context.Context) error {
	return f.engine.Load(ctx)
}
