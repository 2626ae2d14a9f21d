// Package fff provides CGO bindings for the fff_c native search engine.
// It implements the driven.NativeLibrary interface.
//
// The shared library is not linked at build time. Open loads it at runtime
// with dlopen (LoadLibraryA on Windows) and binds the fff_* entry points, so
// one binary works with whichever prebuilt library is installed.
//
// Build requires:
//   - A C toolchain (CGO_ENABLED=1)
//   - libdl on Linux
//
// Without CGO, Open always fails with domain.ErrLoadFailure.
package fff
