// Package native implements driven.Engine on top of a runtime-loaded
// fff_c library.
//
// Every native reply is a result envelope owned by the native side. The
// Bridge decodes it inside a scope that frees it exactly once, whatever the
// outcome of decoding, and converts it into a domain.Payload or a classified
// error.
package native

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/logger"
)

// Verify interface compliance.
var _ driven.Engine = (*Bridge)(nil)

// Bridge is the FFI bridge to one native library.
//
// The library is located and opened on first use. A successful load is kept
// for the life of the Bridge; a failed load is retried on the next call so a
// library installed later is picked up. Native calls themselves are not
// serialised.
type Bridge struct {
	locator driven.BinaryLocator
	open    driven.LibraryOpener

	mu  sync.Mutex
	lib driven.NativeLibrary
}

// New creates a bridge that finds the library with locator and opens it
// with open.
func New(locator driven.BinaryLocator, open driven.LibraryOpener) *Bridge {
	return &Bridge{
		locator: locator,
		open:    open,
	}
}

// Load opens the native library if it is not open yet.
func (b *Bridge) Load(ctx context.Context) error {
	_, err := b.library(ctx)
	return err
}

// Available reports whether the native library can be loaded.
func (b *Bridge) Available(ctx context.Context) bool {
	return b.Load(ctx) == nil
}

func (b *Bridge) library(ctx context.Context) (driven.NativeLibrary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lib != nil {
		return b.lib, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Native Library")
	path, err := b.locator.EnsureBinary(ctx)
	if err != nil {
		logger.Debug("native library not found: %v", err)
		return nil, err
	}

	logger.Debug("opening %s", path)
	lib, err := b.open(path)
	if err != nil {
		logger.Debug("failed to open %s: %v", path, err)
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("live grep supported: %v", lib.HasLiveGrep())

	b.lib = lib
	return lib, nil
}

// call issues one native call and converts its envelope.
// The handle is freed exactly once on every path, including a panic while
// decoding, which is reported as domain.ErrDecodeFailure.
func (b *Bridge) call(ctx context.Context, op string, invoke func(driven.NativeLibrary) driven.ResultHandle) (domain.Payload, error) {
	lib, err := b.library(ctx)
	if err != nil {
		return domain.Payload{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Payload{}, err
	}

	done := logger.Timed(op)
	h := invoke(lib)
	done()

	if h == driven.NilResult {
		return domain.Payload{}, fmt.Errorf("%s: %w", op, domain.ErrNullResult)
	}
	return decode(lib, op, h)
}

func decode(lib driven.NativeLibrary, op string, h driven.ResultHandle) (payload domain.Payload, err error) {
	defer lib.Free(h)
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("%s: panic while decoding result: %v", op, r)
			payload = domain.Payload{}
			err = fmt.Errorf("%s: %w: %v", op, domain.ErrDecodeFailure, r)
		}
	}()

	env, err := lib.Decode(h)
	if err != nil {
		logger.Debug("%s: %v", op, err)
		return domain.Payload{}, fmt.Errorf("%s: %w", op, err)
	}

	if !env.Success {
		msg := ""
		if env.Error != nil {
			msg = *env.Error
		}
		nerr := domain.NewNativeError(op, msg)
		logger.Debug("%s failed: %s", op, nerr.Message)
		return domain.Payload{}, nerr
	}

	return domain.ParsePayload(env.Data), nil
}

func marshal(op string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, domain.ErrInvalidInput, err)
	}
	return string(data), nil
}

// Init creates the engine instance.
func (b *Bridge) Init(ctx context.Context, req domain.InitRequest) error {
	opts, err := marshal("fff_init", req)
	if err != nil {
		return err
	}
	_, err = b.call(ctx, "fff_init", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.Init(opts)
	})
	return err
}

// Destroy tears down the engine instance.
func (b *Bridge) Destroy(ctx context.Context) error {
	_, err := b.call(ctx, "fff_destroy", driven.NativeLibrary.Destroy)
	return err
}

// Search runs a fuzzy file search.
func (b *Bridge) Search(ctx context.Context, query string, req domain.SearchRequest) (domain.Payload, error) {
	opts, err := marshal("fff_search", req)
	if err != nil {
		return domain.Payload{}, err
	}
	return b.call(ctx, "fff_search", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.Search(query, opts)
	})
}

// LiveGrep searches file contents.
func (b *Bridge) LiveGrep(ctx context.Context, query string, req domain.GrepRequest) (domain.Payload, error) {
	lib, err := b.library(ctx)
	if err != nil {
		return domain.Payload{}, err
	}
	if !lib.HasLiveGrep() {
		return domain.Payload{}, fmt.Errorf("fff_live_grep: %w", domain.ErrUnsupported)
	}

	opts, err := marshal("fff_live_grep", req)
	if err != nil {
		return domain.Payload{}, err
	}
	return b.call(ctx, "fff_live_grep", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.LiveGrep(query, opts)
	})
}

// ScanFiles triggers a rescan.
func (b *Bridge) ScanFiles(ctx context.Context) error {
	_, err := b.call(ctx, "fff_scan_files", driven.NativeLibrary.ScanFiles)
	return err
}

// IsScanning reads the scan flag. It returns a plain boolean, not an envelope.
func (b *Bridge) IsScanning(ctx context.Context) (bool, error) {
	lib, err := b.library(ctx)
	if err != nil {
		return false, err
	}
	return lib.IsScanning(), nil
}

// ScanProgress returns the scan progress record.
func (b *Bridge) ScanProgress(ctx context.Context) (domain.Payload, error) {
	return b.call(ctx, "fff_get_scan_progress", driven.NativeLibrary.ScanProgress)
}

// WaitForScan blocks in the native layer for at most timeoutMs.
func (b *Bridge) WaitForScan(ctx context.Context, timeoutMs uint64) (bool, error) {
	p, err := b.call(ctx, "fff_wait_for_scan", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.WaitForScan(timeoutMs)
	})
	if err != nil {
		return false, err
	}
	return p.Bool(), nil
}

// RestartIndex points the engine at newPath.
func (b *Bridge) RestartIndex(ctx context.Context, newPath string) error {
	_, err := b.call(ctx, "fff_restart_index", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.RestartIndex(newPath)
	})
	return err
}

// TrackAccess records that path was opened.
func (b *Bridge) TrackAccess(ctx context.Context, path string) (bool, error) {
	p, err := b.call(ctx, "fff_track_access", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.TrackAccess(path)
	})
	if err != nil {
		return false, err
	}
	return p.Bool(), nil
}

// RefreshGitStatus re-reads git status and returns the updated file count.
func (b *Bridge) RefreshGitStatus(ctx context.Context) (int, error) {
	p, err := b.call(ctx, "fff_refresh_git_status", driven.NativeLibrary.RefreshGitStatus)
	if err != nil {
		return 0, err
	}
	n, err := p.Int()
	if err != nil {
		return 0, fmt.Errorf("fff_refresh_git_status: %w", err)
	}
	return n, nil
}

// TrackQuery records that query led to path.
func (b *Bridge) TrackQuery(ctx context.Context, query, path string) (bool, error) {
	p, err := b.call(ctx, "fff_track_query", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.TrackQuery(query, path)
	})
	if err != nil {
		return false, err
	}
	return p.Bool(), nil
}

// HistoricalQuery returns the query offset steps back, nil if none.
func (b *Bridge) HistoricalQuery(ctx context.Context, offset uint64) (*string, error) {
	p, err := b.call(ctx, "fff_get_historical_query", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.HistoricalQuery(offset)
	})
	if err != nil {
		return nil, err
	}
	return p.NullableString(), nil
}

// HealthCheck runs the engine self-diagnosis. testPath may be empty.
func (b *Bridge) HealthCheck(ctx context.Context, testPath string) (domain.Payload, error) {
	return b.call(ctx, "fff_health_check", func(lib driven.NativeLibrary) driven.ResultHandle {
		return lib.HealthCheck(testPath)
	})
}
