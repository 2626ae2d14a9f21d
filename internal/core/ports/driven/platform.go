package driven

import (
	"context"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// PlatformResolver identifies the running platform.
type PlatformResolver interface {
	// ResolveTarget returns the target of the running process.
	// Fails with domain.ErrUnsupportedPlatform on unknown OS or CPU.
	ResolveTarget(ctx context.Context) (domain.Target, error)

	// PackageName maps a target to its distribution package.
	PackageName(target domain.Target) (string, error)

	// LibraryFilename returns the shared library file name for this OS.
	LibraryFilename() string
}

// BinaryLocator finds the native library on disk.
type BinaryLocator interface {
	// FindBinary returns the library path and whether it was found.
	FindBinary(ctx context.Context) (string, bool)

	// EnsureBinary returns the library path or a *domain.BinaryNotFoundError.
	EnsureBinary(ctx context.Context) (string, error)

	// BinaryExists reports whether FindBinary would succeed.
	BinaryExists(ctx context.Context) bool
}
