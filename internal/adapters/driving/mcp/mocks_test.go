package mcp

import (
	"context"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// mockFinder is a mock implementation of driving.FileFinder.
type mockFinder struct {
	searchResult *domain.SearchResult
	health       *domain.HealthCheck
	progress     domain.ScanProgress
	err          error

	lastQuery string
	lastOpts  domain.SearchOptions
}

func (m *mockFinder) Init(context.Context, domain.InitOptions) error { return m.err }

func (m *mockFinder) Destroy(context.Context) error { return m.err }

func (m *mockFinder) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.searchResult, m.err
}

func (m *mockFinder) LiveGrep(context.Context, string, domain.GrepOptions) (*domain.GrepResult, error) {
	return nil, m.err
}

func (m *mockFinder) ScanFiles(context.Context) error { return m.err }

func (m *mockFinder) IsScanning(context.Context) bool { return m.progress.IsScanning }

func (m *mockFinder) ScanProgress(context.Context) (domain.ScanProgress, error) {
	return m.progress, m.err
}

func (m *mockFinder) WaitForScan(context.Context, time.Duration) (bool, error) { return true, m.err }

func (m *mockFinder) Reindex(context.Context, string) error { return m.err }

func (m *mockFinder) TrackAccess(context.Context, string) (bool, error) { return true, m.err }

func (m *mockFinder) TrackQuery(context.Context, string, string) (bool, error) { return true, m.err }

func (m *mockFinder) RefreshGitStatus(context.Context) (int, error) { return 0, m.err }

func (m *mockFinder) HistoricalQuery(context.Context, int) (*string, error) { return nil, m.err }

func (m *mockFinder) HealthCheck(context.Context, string) (*domain.HealthCheck, error) {
	return m.health, m.err
}

func (m *mockFinder) IsAvailable(context.Context) bool { return m.err == nil }

func (m *mockFinder) EnsureLoaded(context.Context) error { return m.err }

func (m *mockFinder) IsInitialized() bool { return true }

// mockGrepPager is a mock implementation of driving.GrepPager.
type mockGrepPager struct {
	page *domain.GrepPage
	err  error

	lastQuery string
	lastOpts  domain.GrepOptions
	lastToken string
}

func (m *mockGrepPager) Page(_ context.Context, query string, opts domain.GrepOptions, token string) (*domain.GrepPage, error) {
	m.lastQuery = query
	m.lastOpts = opts
	m.lastToken = token
	return m.page, m.err
}

// mockPlatform is a mock implementation of driving.PlatformService.
type mockPlatform struct {
	report domain.PlatformReport
}

func (m *mockPlatform) Report(context.Context) domain.PlatformReport { return m.report }

func newTestServer(finder *mockFinder, grep *mockGrepPager) *Server {
	server, err := NewServer(&Ports{Finder: finder, Grep: grep})
	if err != nil {
		panic(err)
	}
	return server
}
