package fff

import (
	"context"

	nativelib "github.com/ff-labs/fff-go/cgo/fff"
	"github.com/ff-labs/fff-go/internal/adapters/driven/native"
	"github.com/ff-labs/fff-go/internal/adapters/driven/platform"
	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
	"github.com/ff-labs/fff-go/internal/core/services"
)

// FileFinder is a handle on one native engine.
type FileFinder = driving.FileFinder

// Session keeps a FileFinder alive for @path prompt completion.
type Session = driving.Session

// Options and results.
type (
	InitOptions       = domain.InitOptions
	SearchOptions     = domain.SearchOptions
	GrepOptions       = domain.GrepOptions
	GrepMode          = domain.GrepMode
	GrepCursor        = domain.GrepCursor
	SearchResult      = domain.SearchResult
	FileItem          = domain.FileItem
	Score             = domain.Score
	Location          = domain.Location
	Position          = domain.Position
	GrepResult        = domain.GrepResult
	GrepMatch         = domain.GrepMatch
	ScanProgress      = domain.ScanProgress
	HealthCheck       = domain.HealthCheck
	DBHealth          = domain.DBHealth
	Suggestion        = domain.Suggestion
	Settings          = domain.Settings
	PlatformReport    = domain.PlatformReport
	GitHealth         = domain.GitHealth
	FilePickerHealth  = domain.FilePickerHealth
	DBComponentHealth = domain.DBComponentHealth
)

// Grep modes.
const (
	GrepModePlain = domain.GrepModePlain
	GrepModeRegex = domain.GrepModeRegex
	GrepModeFuzzy = domain.GrepModeFuzzy
)

// Errors returned by FileFinder operations.
var (
	ErrUnsupportedPlatform = domain.ErrUnsupportedPlatform
	ErrBinaryNotFound      = domain.ErrBinaryNotFound
	ErrLoadFailure         = domain.ErrLoadFailure
	ErrNullResult          = domain.ErrNullResult
	ErrDecodeFailure       = domain.ErrDecodeFailure
	ErrNative              = domain.ErrNative
	ErrNotInitialized      = domain.ErrNotInitialized
	ErrUnsupported         = domain.ErrUnsupported
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrSessionConflict     = domain.ErrSessionConflict
)

// Options configures New.
type Options struct {
	// LibraryPath loads the native library from this file instead of the
	// platform package.
	LibraryPath string
}

// New returns an uninitialized FileFinder. The native library is located
// and loaded on first use.
func New(opts Options) FileFinder {
	return services.NewFileFinder(newBridge(opts))
}

// NewSession returns a completion session over finder using settings.
func NewSession(finder FileFinder, settings Settings) Session {
	return services.NewSession(finder, settings)
}

// Ptr returns a pointer to v. Use it for option fields such as
// SearchOptions.MinComboCount where an explicit zero is meaningful.
func Ptr[T any](v T) *T {
	return domain.Ptr(v)
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return domain.DefaultSettings()
}

// Platform reports how the native library resolves on this host without
// initializing an engine.
func Platform(ctx context.Context, opts Options) PlatformReport {
	resolver := platform.NewResolver()
	locator := platform.NewLocator(resolver, opts.LibraryPath)
	finder := services.NewFileFinder(native.New(locator, nativelib.Opener))
	return services.NewPlatformService(resolver, locator, finder).Report(ctx)
}

func newBridge(opts Options) *native.Bridge {
	locator := platform.NewLocator(platform.NewResolver(), opts.LibraryPath)
	return native.New(locator, nativelib.Opener)
}
