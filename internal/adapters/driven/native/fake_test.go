package native

import (
	"context"
	"sync"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
)

// reply is a scripted native result.
type reply struct {
	null bool
	env  domain.RawEnvelope
}

func ok(data string) reply {
	return reply{env: domain.RawEnvelope{Success: true, Data: &data}}
}

func okEmpty() reply {
	return reply{env: domain.RawEnvelope{Success: true}}
}

func fail(msg string) reply {
	return reply{env: domain.RawEnvelope{Success: false, Error: &msg}}
}

// fakeLibrary is a scripted driven.NativeLibrary that tracks every handle it
// hands out and how often each was freed.
type fakeLibrary struct {
	mu sync.Mutex

	replies  map[string]reply
	liveGrep bool
	scanning bool

	decodeErr   error
	decodePanic bool

	next    driven.ResultHandle
	issued  map[driven.ResultHandle]domain.RawEnvelope
	freed   map[driven.ResultHandle]int
	calls   map[string]int
	lastArg map[string][]string
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{
		replies:  map[string]reply{},
		liveGrep: true,
		issued:   map[driven.ResultHandle]domain.RawEnvelope{},
		freed:    map[driven.ResultHandle]int{},
		calls:    map[string]int{},
		lastArg:  map[string][]string{},
	}
}

func (f *fakeLibrary) issue(op string, args ...string) driven.ResultHandle {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[op]++
	f.lastArg[op] = args

	r, ok := f.replies[op]
	if !ok {
		r = okEmpty()
	}
	if r.null {
		return driven.NilResult
	}
	f.next++
	f.issued[f.next] = r.env
	return f.next
}

func (f *fakeLibrary) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// unbalanced returns handles that were not freed exactly once.
func (f *fakeLibrary) unbalanced() []driven.ResultHandle {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []driven.ResultHandle
	for h := range f.issued {
		if f.freed[h] != 1 {
			out = append(out, h)
		}
	}
	for h := range f.freed {
		if _, ok := f.issued[h]; !ok {
			out = append(out, h)
		}
	}
	return out
}

func (f *fakeLibrary) Init(opts string) driven.ResultHandle { return f.issue("fff_init", opts) }
func (f *fakeLibrary) Destroy() driven.ResultHandle { return f.issue("fff_destroy") }
func (f *fakeLibrary) Search(q, opts string) driven.ResultHandle {
	return f.issue("fff_search", q, opts)
}
func (f *fakeLibrary) LiveGrep(q, opts string) driven.ResultHandle {
	return f.issue("fff_live_grep", q, opts)
}
func (f *fakeLibrary) ScanFiles() driven.ResultHandle { return f.issue("fff_scan_files") }
func (f *fakeLibrary) ScanProgress() driven.ResultHandle { return f.issue("fff_get_scan_progress") }
func (f *fakeLibrary) WaitForScan(uint64) driven.ResultHandle {
	return f.issue("fff_wait_for_scan")
}
func (f *fakeLibrary) RestartIndex(p string) driven.ResultHandle {
	return f.issue("fff_restart_index", p)
}
func (f *fakeLibrary) TrackAccess(p string) driven.ResultHandle {
	return f.issue("fff_track_access", p)
}
func (f *fakeLibrary) RefreshGitStatus() driven.ResultHandle {
	return f.issue("fff_refresh_git_status")
}
func (f *fakeLibrary) TrackQuery(q, p string) driven.ResultHandle {
	return f.issue("fff_track_query", q, p)
}
func (f *fakeLibrary) HistoricalQuery(uint64) driven.ResultHandle {
	return f.issue("fff_get_historical_query")
}
func (f *fakeLibrary) HealthCheck(p string) driven.ResultHandle {
	return f.issue("fff_health_check", p)
}

func (f *fakeLibrary) IsScanning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["fff_is_scanning"]++
	return f.scanning
}

func (f *fakeLibrary) HasLiveGrep() bool { return f.liveGrep }

func (f *fakeLibrary) Decode(h driven.ResultHandle) (domain.RawEnvelope, error) {
	if f.decodePanic {
		panic("corrupt envelope")
	}
	if f.decodeErr != nil {
		return domain.RawEnvelope{}, f.decodeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issued[h], nil
}

func (f *fakeLibrary) Free(h driven.ResultHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.freed[h]++
}

// fakeLocator returns a fixed path or error.
type fakeLocator struct {
	path string
	err  error
}

func (l *fakeLocator) FindBinary(context.Context) (string, bool) {
	return l.path, l.err == nil
}

func (l *fakeLocator) EnsureBinary(context.Context) (string, error) {
	return l.path, l.err
}

func (l *fakeLocator) BinaryExists(context.Context) bool {
	return l.err == nil
}

// countingOpener opens lib and counts how often it was asked to.
type countingOpener struct {
	mu    sync.Mutex
	lib   driven.NativeLibrary
	err   error
	count int
	paths []string
}

func (o *countingOpener) open(path string) (driven.NativeLibrary, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.count++
	o.paths = append(o.paths, path)
	if o.err != nil {
		return nil, o.err
	}
	return o.lib, nil
}

func newTestBridge(lib *fakeLibrary) (*Bridge, *countingOpener) {
	opener := &countingOpener{lib: lib}
	return New(&fakeLocator{path: "/opt/fff/libfff_c.so"}, opener.open), opener
}
