package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type mockFinder struct {
	mu         sync.Mutex
	scans      int
	refreshes  int
	scanErr    error
	refreshErr error
}

func (m *mockFinder) ScanFiles(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++
	return m.scanErr
}

func (m *mockFinder) RefreshGitStatus(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshes++
	return 3, m.refreshErr
}

func (m *mockFinder) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scans, m.refreshes
}

func unlimited() Option {
	return WithLimiter(rate.NewLimiter(rate.Inf, 1))
}

func TestClassify(t *testing.T) {
	root := filepath.FromSlash("/repo")
	at := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	tests := []struct {
		name  string
		event fsnotify.Event
		want  Action
	}{
		{"git index", fsnotify.Event{Name: at(".git/index"), Op: fsnotify.Write}, ActionRefreshGit},
		{"git HEAD", fsnotify.Event{Name: at(".git/HEAD"), Op: fsnotify.Write}, ActionRefreshGit},
		{"branch ref", fsnotify.Event{Name: at(".git/refs/heads/main"), Op: fsnotify.Create}, ActionRefreshGit},
		{"ref lock", fsnotify.Event{Name: at(".git/refs/heads/main.lock"), Op: fsnotify.Create}, ActionNone},
		{"index lock", fsnotify.Event{Name: at(".git/index.lock"), Op: fsnotify.Create}, ActionNone},
		{"git objects", fsnotify.Event{Name: at(".git/objects/ab"), Op: fsnotify.Create}, ActionNone},
		{"root create", fsnotify.Event{Name: at("new.go"), Op: fsnotify.Create}, ActionRescan},
		{"root remove", fsnotify.Event{Name: at("old.go"), Op: fsnotify.Remove}, ActionRescan},
		{"root rename", fsnotify.Event{Name: at("src"), Op: fsnotify.Rename}, ActionRescan},
		{"root write", fsnotify.Event{Name: at("main.go"), Op: fsnotify.Write}, ActionNone},
		{"root chmod", fsnotify.Event{Name: at("main.go"), Op: fsnotify.Chmod}, ActionNone},
		{"nested create", fsnotify.Event{Name: at("src/a.go"), Op: fsnotify.Create}, ActionNone},
		{"outside root", fsnotify.Event{Name: filepath.FromSlash("/other/a.go"), Op: fsnotify.Create}, ActionNone},
		{"root itself", fsnotify.Event{Name: root, Op: fsnotify.Remove}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(root, tt.event))
		})
	}
}

func TestAction_Has(t *testing.T) {
	both := ActionRefreshGit | ActionRescan

	assert.True(t, both.Has(ActionRescan))
	assert.True(t, both.Has(ActionRefreshGit))
	assert.False(t, ActionRescan.Has(ActionRefreshGit))
	assert.False(t, ActionNone.Has(ActionRescan))
}

func TestNew(t *testing.T) {
	_, err := New(nil, t.TempDir())
	assert.Error(t, err)

	w, err := New(&mockFinder{}, ".", WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(w.Root()))
	assert.Equal(t, 10*time.Millisecond, w.debounce)
}

func TestWatcher_ObserveAndFlush(t *testing.T) {
	finder := &mockFinder{}
	root := t.TempDir()
	var flushed []Action
	w, err := New(finder, root, unlimited(), WithFlushHook(func(a Action) { flushed = append(flushed, a) }))
	require.NoError(t, err)
	ctx := context.Background()

	w.Observe(fsnotify.Event{Name: filepath.Join(root, ".git", "index"), Op: fsnotify.Write})
	w.Observe(fsnotify.Event{Name: filepath.Join(root, ".git", "HEAD"), Op: fsnotify.Write})
	w.Observe(fsnotify.Event{Name: filepath.Join(root, "src", "a.go"), Op: fsnotify.Write})
	assert.Equal(t, ActionRefreshGit, w.Pending())

	require.NoError(t, w.Flush(ctx))
	scans, refreshes := finder.counts()
	assert.Equal(t, 0, scans)
	assert.Equal(t, 1, refreshes)
	assert.Equal(t, ActionNone, w.Pending())

	// Nothing pending: no calls.
	require.NoError(t, w.Flush(ctx))
	_, refreshes = finder.counts()
	assert.Equal(t, 1, refreshes)

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "b.go"), Op: fsnotify.Create})
	w.Observe(fsnotify.Event{Name: filepath.Join(root, ".git", "index"), Op: fsnotify.Write})
	require.NoError(t, w.Flush(ctx))
	scans, refreshes = finder.counts()
	assert.Equal(t, 1, scans)
	assert.Equal(t, 2, refreshes)

	assert.Equal(t, []Action{ActionRefreshGit, ActionRefreshGit | ActionRescan}, flushed)
}

func TestWatcher_GitignoreSkipsRescan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\ndist\n"), 0o644))
	w, err := New(&mockFinder{}, root, unlimited())
	require.NoError(t, err)

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "debug.log"), Op: fsnotify.Create})
	w.Observe(fsnotify.Event{Name: filepath.Join(root, "dist"), Op: fsnotify.Remove})
	assert.Equal(t, ActionNone, w.Pending())

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "main.go"), Op: fsnotify.Create})
	assert.Equal(t, ActionRescan, w.Pending())
}

func TestWatcher_GitignoreReloads(t *testing.T) {
	root := t.TempDir()
	w, err := New(&mockFinder{}, root, unlimited())
	require.NoError(t, err)

	ignoreFile := filepath.Join(root, ".gitignore")
	require.NoError(t, os.WriteFile(ignoreFile, []byte("tmp\n"), 0o644))
	w.Observe(fsnotify.Event{Name: ignoreFile, Op: fsnotify.Create})
	require.NoError(t, w.Flush(context.Background()))

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "tmp"), Op: fsnotify.Create})
	assert.Equal(t, ActionNone, w.Pending())
}

func TestWatcher_FlushReportsErrors(t *testing.T) {
	finder := &mockFinder{scanErr: errors.New("not initialized")}
	root := t.TempDir()
	w, err := New(finder, root, unlimited())
	require.NoError(t, err)

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "b.go"), Op: fsnotify.Remove})
	err = w.Flush(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rescan")
}

func TestWatcher_FlushRequeuesWhenCancelled(t *testing.T) {
	root := t.TempDir()
	w, err := New(&mockFinder{}, root, WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "a.go"), Op: fsnotify.Create})
	require.NoError(t, w.Flush(ctx))

	w.Observe(fsnotify.Event{Name: filepath.Join(root, "b.go"), Op: fsnotify.Create})
	cancel()
	err = w.Flush(ctx)

	assert.Error(t, err)
	assert.Equal(t, ActionRescan, w.Pending())
}

func TestWatcher_Run(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git", "refs", "heads"), 0o755))

	finder := &mockFinder{}
	flushed := make(chan Action, 8)
	w, err := New(finder, root,
		unlimited(),
		WithDebounce(20*time.Millisecond),
		WithFlushHook(func(a Action) { flushed <- a }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register its directories.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "new.go"), []byte("package x\n"), 0o644))

	select {
	case a := <-flushed:
		assert.True(t, a.Has(ActionRescan))
	case <-time.After(5 * time.Second):
		t.Fatal("no flush after creating a file")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	scans, _ := finder.counts()
	assert.GreaterOrEqual(t, scans, 1)
}

func TestWatcher_RunMissingRoot(t *testing.T) {
	w, err := New(&mockFinder{}, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)

	err = w.Run(context.Background())

	assert.Error(t, err)
}
