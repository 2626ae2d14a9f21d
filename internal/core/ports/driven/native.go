package driven

import "github.com/ff-labs/fff-go/internal/core/domain"

// ResultHandle references a native result envelope.
// The zero value means the native side returned a null pointer.
type ResultHandle uintptr

// NilResult is the null result handle.
const NilResult ResultHandle = 0

// NativeLibrary is a loaded fff_c module.
//
// Every call except IsScanning returns a handle that the caller owns and must
// pass to Free exactly once. String arguments are copied into native memory
// for the duration of the call.
type NativeLibrary interface {
	Init(optsJSON string) ResultHandle
	Destroy() ResultHandle
	Search(query, optsJSON string) ResultHandle

	// LiveGrep must only be called when HasLiveGrep reports true.
	LiveGrep(query, optsJSON string) ResultHandle

	ScanFiles() ResultHandle
	IsScanning() bool
	ScanProgress() ResultHandle
	WaitForScan(timeoutMs uint64) ResultHandle
	RestartIndex(newPath string) ResultHandle
	TrackAccess(path string) ResultHandle
	RefreshGitStatus() ResultHandle
	TrackQuery(query, path string) ResultHandle
	HistoricalQuery(offset uint64) ResultHandle
	HealthCheck(testPath string) ResultHandle

	// Decode copies the envelope out of native memory. It does not free it.
	Decode(h ResultHandle) (domain.RawEnvelope, error)

	// Free releases the envelope and its strings.
	Free(h ResultHandle)

	// HasLiveGrep reports whether the module exports fff_live_grep.
	HasLiveGrep() bool
}

// LibraryOpener opens the native module at path.
type LibraryOpener func(path string) (NativeLibrary, error)
