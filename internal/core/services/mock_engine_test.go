package services

import (
	"context"
	"sync"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
)

// payload builds a reply payload from raw native data.
func payload(data string) domain.Payload {
	return domain.ParsePayload(&data)
}

// mockEngine implements driven.Engine for testing. Every method counts its
// calls; replies are scripted per operation.
type mockEngine struct {
	mu    sync.Mutex
	calls map[string]int

	loadErr    error
	initErr    error
	destroyErr error

	replies map[string]domain.Payload
	errs    map[string]error

	scanning  bool
	waitDone  bool
	lastInit  domain.InitRequest
	lastGrep  domain.GrepRequest
	lastSrch  domain.SearchRequest
	lastWait  uint64
	lastTrack []string
}

var _ driven.Engine = (*mockEngine)(nil)

func newMockEngine() *mockEngine {
	return &mockEngine{
		calls:   map[string]int{},
		replies: map[string]domain.Payload{},
		errs:    map[string]error{},
	}
}

func (m *mockEngine) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[op]++
}

func (m *mockEngine) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// nativeCalls is the number of calls that would have reached the library.
func (m *mockEngine) nativeCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for op, n := range m.calls {
		if op != "load" && op != "available" {
			total += n
		}
	}
	return total
}

func (m *mockEngine) reply(op string) (domain.Payload, error) {
	m.record(op)
	return m.replies[op], m.errs[op]
}

func (m *mockEngine) Load(context.Context) error {
	m.record("load")
	return m.loadErr
}

func (m *mockEngine) Available(context.Context) bool {
	m.record("available")
	return m.loadErr == nil
}

func (m *mockEngine) Init(_ context.Context, req domain.InitRequest) error {
	m.record("init")
	m.lastInit = req
	return m.initErr
}

func (m *mockEngine) Destroy(context.Context) error {
	m.record("destroy")
	return m.destroyErr
}

func (m *mockEngine) Search(_ context.Context, _ string, req domain.SearchRequest) (domain.Payload, error) {
	m.lastSrch = req
	return m.reply("search")
}

func (m *mockEngine) LiveGrep(_ context.Context, _ string, req domain.GrepRequest) (domain.Payload, error) {
	m.lastGrep = req
	return m.reply("live_grep")
}

func (m *mockEngine) ScanFiles(context.Context) error {
	_, err := m.reply("scan_files")
	return err
}

func (m *mockEngine) IsScanning(context.Context) (bool, error) {
	m.record("is_scanning")
	return m.scanning, nil
}

func (m *mockEngine) ScanProgress(context.Context) (domain.Payload, error) {
	return m.reply("scan_progress")
}

func (m *mockEngine) WaitForScan(_ context.Context, timeoutMs uint64) (bool, error) {
	m.lastWait = timeoutMs
	_, err := m.reply("wait_for_scan")
	return m.waitDone, err
}

func (m *mockEngine) RestartIndex(context.Context, string) error {
	_, err := m.reply("restart_index")
	return err
}

func (m *mockEngine) TrackAccess(_ context.Context, path string) (bool, error) {
	m.lastTrack = append(m.lastTrack, "access:"+path)
	_, err := m.reply("track_access")
	return err == nil, err
}

func (m *mockEngine) RefreshGitStatus(context.Context) (int, error) {
	p, err := m.reply("refresh_git_status")
	if err != nil {
		return 0, err
	}
	return p.Int()
}

func (m *mockEngine) TrackQuery(_ context.Context, query, path string) (bool, error) {
	m.lastTrack = append(m.lastTrack, "query:"+query+"->"+path)
	_, err := m.reply("track_query")
	return err == nil, err
}

func (m *mockEngine) HistoricalQuery(context.Context, uint64) (*string, error) {
	p, err := m.reply("historical_query")
	if err != nil {
		return nil, err
	}
	return p.NullableString(), nil
}

func (m *mockEngine) HealthCheck(context.Context, string) (domain.Payload, error) {
	return m.reply("health_check")
}

// initializedFinder returns a finder that has been through Init.
func initializedFinder(engine *mockEngine) *FileFinder {
	f := NewFileFinder(engine)
	if err := f.Init(context.Background(), domain.InitOptions{BasePath: "/repo"}); err != nil {
		panic(err)
	}
	return f
}
