package services

import (
	"context"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
)

// Ensure PlatformService implements the interface.
var _ driving.PlatformService = (*PlatformService)(nil)

// PlatformService explains how the native library resolves on this host.
type PlatformService struct {
	resolver driven.PlatformResolver
	locator  driven.BinaryLocator
	finder   driving.FileFinder
}

// NewPlatformService creates a platform service. finder is used for the
// availability check and may be nil.
func NewPlatformService(resolver driven.PlatformResolver, locator driven.BinaryLocator, finder driving.FileFinder) *PlatformService {
	return &PlatformService{
		resolver: resolver,
		locator:  locator,
		finder:   finder,
	}
}

// Report resolves the target, package and library path. Failures are
// recorded in the report rather than returned.
func (s *PlatformService) Report(ctx context.Context) domain.PlatformReport {
	report := domain.PlatformReport{
		LibraryFilename: s.resolver.LibraryFilename(),
	}

	target, err := s.resolver.ResolveTarget(ctx)
	if err != nil {
		report.TargetError = err.Error()
	} else {
		report.Target = target.String()
		if pkg, err := s.resolver.PackageName(target); err != nil {
			report.TargetError = err.Error()
		} else {
			report.PackageName = pkg
		}
	}

	if path, ok := s.locator.FindBinary(ctx); ok {
		report.BinaryPath = path
	}
	if s.finder != nil {
		report.Available = s.finder.IsAvailable(ctx)
	}
	return report
}
