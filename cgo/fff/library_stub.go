//go:build !cgo

package fff

import (
	"fmt"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
)

// Library is the fff_c module handle.
// This is a stub for builds without CGO; it can never be opened.
type Library struct {
	path string
}

// Open always fails without CGO.
func Open(path string) (*Library, error) {
	return nil, fmt.Errorf("%w: %s: built without cgo", domain.ErrLoadFailure, path)
}

// Path returns the file the library was loaded from.
func (l *Library) Path() string { return l.path }

func (l *Library) HasLiveGrep() bool { return false }
func (l *Library) Init(string) driven.ResultHandle { return driven.NilResult }
func (l *Library) Destroy() driven.ResultHandle { return driven.NilResult }
func (l *Library) Search(string, string) driven.ResultHandle { return driven.NilResult }
func (l *Library) LiveGrep(string, string) driven.ResultHandle { return driven.NilResult }
func (l *Library) ScanFiles() driven.ResultHandle { return driven.NilResult }
func (l *Library) IsScanning() bool { return false }
func (l *Library) ScanProgress() driven.ResultHandle { return driven.NilResult }
func (l *Library) WaitForScan(uint64) driven.ResultHandle { return driven.NilResult }
func (l *Library) RestartIndex(string) driven.ResultHandle { return driven.NilResult }
func (l *Library) TrackAccess(string) driven.ResultHandle { return driven.NilResult }
func (l *Library) RefreshGitStatus() driven.ResultHandle { return driven.NilResult }
func (l *Library) TrackQuery(string, string) driven.ResultHandle { return driven.NilResult }
func (l *Library) HistoricalQuery(uint64) driven.ResultHandle { return driven.NilResult }
func (l *Library) HealthCheck(string) driven.ResultHandle { return driven.NilResult }
func (l *Library) Free(driven.ResultHandle) {}

// Decode always reports a null result.
func (l *Library) Decode(driven.ResultHandle) (domain.RawEnvelope, error) {
	return domain.RawEnvelope{}, domain.ErrNullResult
}
