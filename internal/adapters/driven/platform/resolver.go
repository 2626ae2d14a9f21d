// Package platform resolves the running host to a prebuilt native library.
package platform

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/logger"
)

// Verify interface compliance.
var _ driven.PlatformResolver = (*Resolver)(nil)

// libcProbeTimeout bounds the ldd probe.
const libcProbeTimeout = 5 * time.Second

// packages maps every supported target to its distribution package.
var packages = map[string]string{
	"aarch64-apple-darwin":       "@ff-labs/fff-bun-darwin-arm64",
	"x86_64-apple-darwin":        "@ff-labs/fff-bun-darwin-x64",
	"x86_64-unknown-linux-gnu":   "@ff-labs/fff-bun-linux-x64-gnu",
	"aarch64-unknown-linux-gnu":  "@ff-labs/fff-bun-linux-arm64-gnu",
	"x86_64-unknown-linux-musl":  "@ff-labs/fff-bun-linux-x64-musl",
	"aarch64-unknown-linux-musl": "@ff-labs/fff-bun-linux-arm64-musl",
	"x86_64-pc-windows-msvc":     "@ff-labs/fff-bun-win32-x64",
	"aarch64-pc-windows-msvc":    "@ff-labs/fff-bun-win32-arm64",
}

// Resolver derives the target triple from the Go runtime and, on Linux,
// from the system libc. The target is resolved once per resolver.
type Resolver struct {
	goos   string
	goarch string

	// libcProbe returns the output of the libc version query.
	libcProbe func(ctx context.Context) string

	once   sync.Once
	target domain.Target
	err    error
}

// NewResolver creates a resolver for the running process.
func NewResolver() *Resolver {
	return &Resolver{
		goos:      runtime.GOOS,
		goarch:    runtime.GOARCH,
		libcProbe: lddVersion,
	}
}

// ResolveTarget returns the target triple of the running process. The first
// call probes the host; later calls return the same result. The probe is
// bounded by its own timeout and is not cut short by ctx.
func (r *Resolver) ResolveTarget(ctx context.Context) (domain.Target, error) {
	r.once.Do(func() {
		r.target, r.err = r.resolve(context.WithoutCancel(ctx))
	})
	return r.target, r.err
}

func (r *Resolver) resolve(ctx context.Context) (domain.Target, error) {
	arch, err := canonicalArch(r.goarch)
	if err != nil {
		return domain.Target{}, err
	}

	switch r.goos {
	case "darwin":
		return domain.Target{Arch: arch, OSVariant: domain.OSDarwin}, nil
	case "windows":
		return domain.Target{Arch: arch, OSVariant: domain.OSWindows}, nil
	case "linux":
		variant := domain.OSLinuxGNU
		if isMusl(r.libcProbe(ctx)) {
			variant = domain.OSLinuxMusl
		}
		return domain.Target{Arch: arch, OSVariant: variant}, nil
	default:
		return domain.Target{}, fmt.Errorf("%w: operating system %s", domain.ErrUnsupportedPlatform, r.goos)
	}
}

// PackageName maps a target to its distribution package.
func (r *Resolver) PackageName(target domain.Target) (string, error) {
	name, ok := packages[target.String()]
	if !ok {
		return "", fmt.Errorf("%w: no package for %s", domain.ErrUnsupportedPlatform, target)
	}
	return name, nil
}

// LibraryFilename returns the shared library file name for the resolver's OS.
func (r *Resolver) LibraryFilename() string {
	return LibraryFilename(r.goos)
}

// LibraryFilename returns the shared library file name used on goos.
func LibraryFilename(goos string) string {
	switch goos {
	case "windows":
		return "fff_c.dll"
	case "darwin":
		return "libfff_c.dylib"
	default:
		return "libfff_c.so"
	}
}

func canonicalArch(goarch string) (string, error) {
	switch goarch {
	case "amd64", "x64":
		return domain.ArchX86_64, nil
	case "arm64":
		return domain.ArchAarch64, nil
	case "arm":
		return domain.ArchARM, nil
	default:
		return "", fmt.Errorf("%w: architecture %s", domain.ErrUnsupportedPlatform, goarch)
	}
}

func isMusl(lddOutput string) bool {
	return strings.Contains(strings.ToLower(lddOutput), "musl")
}

// lddVersion runs `ldd --version`. musl's ldd prints its banner to stderr
// and exits non-zero, so output is kept on exit errors. A missing ldd or a
// timeout yields empty output.
func lddVersion(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, libcProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "ldd", "--version").CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || ctx.Err() != nil {
			logger.Debug("libc probe failed, assuming glibc: %v", err)
			return ""
		}
	}
	return string(out)
}
