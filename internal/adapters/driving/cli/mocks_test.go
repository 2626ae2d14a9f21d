package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// mockFinder is a mock implementation of driving.FileFinder.
type mockFinder struct {
	searchResult *domain.SearchResult
	health       *domain.HealthCheck
	progress     domain.ScanProgress
	history      *string
	refreshed    int
	waitDone     bool
	initialized  bool
	err          error

	lastQuery   string
	lastOpts    domain.SearchOptions
	lastOffset  int
	lastReindex string
	lastWait    time.Duration
	scans       int
	healthCalls int
}

func (m *mockFinder) Init(context.Context, domain.InitOptions) error { return nil }

func (m *mockFinder) Destroy(context.Context) error { return nil }

func (m *mockFinder) Search(_ context.Context, query string, opts domain.SearchOptions) (*domain.SearchResult, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.searchResult, m.err
}

func (m *mockFinder) LiveGrep(context.Context, string, domain.GrepOptions) (*domain.GrepResult, error) {
	return nil, m.err
}

func (m *mockFinder) ScanFiles(context.Context) error {
	m.scans++
	return m.err
}

func (m *mockFinder) IsScanning(context.Context) bool { return m.progress.IsScanning }

func (m *mockFinder) ScanProgress(context.Context) (domain.ScanProgress, error) {
	return m.progress, m.err
}

func (m *mockFinder) WaitForScan(_ context.Context, timeout time.Duration) (bool, error) {
	m.lastWait = timeout
	return m.waitDone, m.err
}

func (m *mockFinder) Reindex(_ context.Context, path string) error {
	m.lastReindex = path
	return m.err
}

func (m *mockFinder) TrackAccess(context.Context, string) (bool, error) { return true, m.err }

func (m *mockFinder) TrackQuery(context.Context, string, string) (bool, error) { return true, m.err }

func (m *mockFinder) RefreshGitStatus(context.Context) (int, error) { return m.refreshed, m.err }

func (m *mockFinder) HistoricalQuery(_ context.Context, offset int) (*string, error) {
	m.lastOffset = offset
	return m.history, m.err
}

func (m *mockFinder) HealthCheck(context.Context, string) (*domain.HealthCheck, error) {
	m.healthCalls++
	return m.health, nil
}

func (m *mockFinder) IsAvailable(context.Context) bool { return true }

func (m *mockFinder) EnsureLoaded(context.Context) error { return nil }

func (m *mockFinder) IsInitialized() bool { return m.initialized }

// mockSession is a mock implementation of driving.Session.
type mockSession struct {
	suggestions []domain.Suggestion
	startErr    error
	err         error

	started     string
	stopped     int
	lastQuery   string
	lastQuoted  bool
	lastLimit   int
	lastPath    string
	selectQuery string
}

func (m *mockSession) Start(_ context.Context, basePath string) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started = basePath
	return nil
}

func (m *mockSession) Stop(context.Context) error {
	m.stopped++
	return nil
}

func (m *mockSession) Suggest(_ context.Context, query string, quoted bool, limit int) ([]domain.Suggestion, error) {
	m.lastQuery = query
	m.lastQuoted = quoted
	m.lastLimit = limit
	return m.suggestions, m.err
}

func (m *mockSession) Select(_ context.Context, query, path string) error {
	m.selectQuery = query
	m.lastPath = path
	return m.err
}

func (m *mockSession) BasePath() string { return m.started }

func (m *mockSession) Active() bool { return m.started != "" }

// mockSettings is a mock implementation of driving.SettingsService.
type mockSettings struct {
	settings domain.Settings
	setErr   error
	set      map[string]string
	unset    []string
}

func (m *mockSettings) Load() domain.Settings { return m.settings }

func (m *mockSettings) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.set == nil {
		m.set = make(map[string]string)
	}
	m.set[key] = value
	return nil
}

func (m *mockSettings) Unset(key string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.unset = append(m.unset, key)
	return nil
}

func (m *mockSettings) Keys() []string {
	return []string{"finder.base_path", "grep.mode", "search.page_size"}
}

// mockPlatform is a mock implementation of driving.PlatformService.
type mockPlatform struct {
	report domain.PlatformReport
}

func (m *mockPlatform) Report(context.Context) domain.PlatformReport { return m.report }

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

// testServices bundles the mocks injected for a test.
type testServices struct {
	finder   *mockFinder
	session  *mockSession
	settings *mockSettings
	platform *mockPlatform
	grep     *mockGrepPager
}

// setupTestServices injects fresh mocks and restores the previous services
// when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		finder:   &mockFinder{initialized: true, waitDone: true},
		session:  &mockSession{},
		settings: &mockSettings{settings: domain.DefaultSettings()},
		platform: &mockPlatform{},
		grep:     &mockGrepPager{},
	}

	previous := services
	SetServices(&Services{
		Finder:   ts.finder,
		Session:  ts.session,
		Settings: ts.settings,
		Platform: ts.platform,
		Grep:     ts.grep,
		MCPGrep:  ts.grep,
	})
	t.Cleanup(func() { services = previous })

	return ts
}

// execute runs the root command with args and returns everything written.
// Flags are reset first because commands are package-level.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
