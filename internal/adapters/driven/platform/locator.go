package platform

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/logger"
)

// Verify interface compliance.
var _ driven.BinaryLocator = (*Locator)(nil)

// installRootDepth is how many directories above the executable are checked
// for a project root marker.
const installRootDepth = 4

// unresolvedInstallHint is shown when the platform itself cannot be resolved.
const unresolvedInstallHint = "@ff-labs/fff-bun-<target>"

var rootMarkers = []string{"go.mod", "package.json"}

// Locator finds the native library inside installed distribution packages.
//
// Roots are searched in order: an explicit library path, the working
// directory, then the install directory of the running executable. Within a
// root, node_modules directories are searched from the root upward.
type Locator struct {
	resolver     driven.PlatformResolver
	explicitPath string

	getwd      func() (string, error)
	executable func() (string, error)
}

// NewLocator creates a locator. explicitPath may be empty.
func NewLocator(resolver driven.PlatformResolver, explicitPath string) *Locator {
	return &Locator{
		resolver:     resolver,
		explicitPath: explicitPath,
		getwd:        os.Getwd,
		executable:   os.Executable,
	}
}

// FindBinary returns the library path and whether it was found.
// Platform resolution failures count as not found.
func (l *Locator) FindBinary(ctx context.Context) (string, bool) {
	if l.explicitPath != "" {
		if fileExists(l.explicitPath) {
			return l.explicitPath, true
		}
		logger.Warn("configured library path %s does not exist", l.explicitPath)
	}

	pkg, err := l.packageName(ctx)
	if err != nil {
		logger.Debug("cannot locate native library: %v", err)
		return "", false
	}
	filename := l.resolver.LibraryFilename()

	for _, root := range l.roots() {
		pkgDir, ok := findPackageDir(root, pkg)
		if !ok {
			continue
		}
		candidate := filepath.Join(pkgDir, filename)
		if fileExists(candidate) {
			logger.Debug("found native library at %s", candidate)
			return candidate, true
		}
	}
	return "", false
}

// EnsureBinary returns the library path or a *domain.BinaryNotFoundError.
func (l *Locator) EnsureBinary(ctx context.Context) (string, error) {
	if path, ok := l.FindBinary(ctx); ok {
		return path, nil
	}

	hint, err := l.packageName(ctx)
	if err != nil {
		hint = unresolvedInstallHint
	}
	return "", &domain.BinaryNotFoundError{InstallHint: hint}
}

// BinaryExists reports whether the library can be found.
func (l *Locator) BinaryExists(ctx context.Context) bool {
	_, ok := l.FindBinary(ctx)
	return ok
}

func (l *Locator) packageName(ctx context.Context) (string, error) {
	target, err := l.resolver.ResolveTarget(ctx)
	if err != nil {
		return "", err
	}
	return l.resolver.PackageName(target)
}

func (l *Locator) roots() []string {
	var roots []string
	if wd, err := l.getwd(); err == nil {
		roots = append(roots, wd)
	}
	if exe, err := l.executable(); err == nil {
		roots = append(roots, installRoot(filepath.Dir(exe)))
	}
	return roots
}

// installRoot finds the project directory holding dir. A parent named dist is
// skipped over; otherwise the nearest directory within installRootDepth
// levels that has a root marker wins, falling back to the parent of dir.
func installRoot(dir string) string {
	parent := filepath.Dir(dir)
	if filepath.Base(parent) == "dist" {
		return filepath.Dir(parent)
	}

	current := dir
	for i := 0; i < installRootDepth; i++ {
		for _, marker := range rootMarkers {
			if fileExists(filepath.Join(current, marker)) {
				return current
			}
		}
		next := filepath.Dir(current)
		if next == current {
			break
		}
		current = next
	}
	return parent
}

// findPackageDir resolves pkg the way node does: the first
// node_modules/<pkg>/package.json from root upward.
func findPackageDir(root, pkg string) (string, bool) {
	dir := root
	for {
		pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(pkg))
		if fileExists(filepath.Join(pkgDir, "package.json")) {
			return pkgDir, true
		}
		next := filepath.Dir(dir)
		if next == dir {
			return "", false
		}
		dir = next
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
