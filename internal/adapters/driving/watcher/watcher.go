// Package watcher keeps a running finder in step with the working tree.
//
// Changes to the git index, HEAD or refs schedule a git status refresh.
// Files and directories created, removed or renamed directly under the base
// path schedule a rescan, unless the root .gitignore excludes them. Events
// are collected for a debounce period and
// the resulting engine calls are throttled by a token bucket.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/time/rate"

	"github.com/ff-labs/fff-go/internal/logger"
)

// DefaultDebounce is how long events are collected before acting on them.
const DefaultDebounce = 250 * time.Millisecond

// Action is a set of engine calls an event asks for.
type Action uint8

// Actions, combinable with |.
const (
	ActionRefreshGit Action = 1 << iota
	ActionRescan

	ActionNone Action = 0
)

// Has reports whether a includes b.
func (a Action) Has(b Action) bool {
	return a&b != 0
}

// Finder is the part of driving.FileFinder the watcher calls.
type Finder interface {
	ScanFiles(ctx context.Context) error
	RefreshGitStatus(ctx context.Context) (int, error)
}

// Watcher turns filesystem events into finder calls.
type Watcher struct {
	finder   Finder
	root     string
	debounce time.Duration
	limiter  *rate.Limiter

	mu      sync.Mutex
	pending Action
	ignore  gitignore.IgnoreParser

	// onFlush is called after each flush with the actions taken.
	onFlush func(Action)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLimiter overrides the default throttle of one flush per second with
// a burst of two.
func WithLimiter(l *rate.Limiter) Option {
	return func(w *Watcher) {
		if l != nil {
			w.limiter = l
		}
	}
}

// WithFlushHook registers fn to observe each flush.
func WithFlushHook(fn func(Action)) Option {
	return func(w *Watcher) {
		w.onFlush = fn
	}
}

// New creates a watcher for root. The finder must be initialized on root.
func New(finder Finder, root string, opts ...Option) (*Watcher, error) {
	if finder == nil {
		return nil, errors.New("watcher: finder is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("watcher: resolve %s: %w", root, err)
	}

	w := &Watcher{
		finder:   finder,
		root:     abs,
		debounce: DefaultDebounce,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 2),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.loadIgnore()
	return w, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watcher: create: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.root); err != nil {
		return fmt.Errorf("watcher: watch %s: %w", w.root, err)
	}
	for _, dir := range gitDirs(w.root) {
		if err := fsw.Add(dir); err != nil {
			logger.Debug("watcher: cannot watch %s: %v", dir, err)
		}
	}
	logger.Debug("watcher: watching %s", w.root)

	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.Observe(event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)

		case <-ticker.C:
			if err := w.Flush(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("watcher: %v", err)
			}
		}
	}
}

// Observe records the actions an event asks for.
func (w *Watcher) Observe(event fsnotify.Event) {
	if filepath.Clean(event.Name) == filepath.Join(w.root, ".gitignore") {
		w.loadIgnore()
	}

	action := Classify(w.root, event)
	if action.Has(ActionRescan) && w.ignored(event.Name) {
		action &^= ActionRescan
	}
	if action == ActionNone {
		return
	}
	logger.Debug("watcher: %s %s", event.Op, event.Name)

	w.mu.Lock()
	w.pending |= action
	w.mu.Unlock()
}

// Pending returns the actions waiting for the next flush.
func (w *Watcher) Pending() Action {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Flush performs the pending actions once the limiter allows.
func (w *Watcher) Flush(ctx context.Context) error {
	w.mu.Lock()
	pending := w.pending
	w.pending = ActionNone
	w.mu.Unlock()

	if pending == ActionNone {
		return nil
	}
	if err := w.limiter.Wait(ctx); err != nil {
		w.requeue(pending)
		return err
	}

	var errs []error
	if pending.Has(ActionRescan) {
		if err := w.finder.ScanFiles(ctx); err != nil {
			errs = append(errs, fmt.Errorf("rescan: %w", err))
		} else {
			logger.Debug("watcher: rescan started")
		}
	}
	if pending.Has(ActionRefreshGit) {
		if n, err := w.finder.RefreshGitStatus(ctx); err != nil {
			errs = append(errs, fmt.Errorf("refresh git status: %w", err))
		} else {
			logger.Debug("watcher: git status refreshed for %d files", n)
		}
	}

	if w.onFlush != nil {
		w.onFlush(pending)
	}
	return errors.Join(errs...)
}

func (w *Watcher) requeue(a Action) {
	w.mu.Lock()
	w.pending |= a
	w.mu.Unlock()
}

// loadIgnore compiles the root .gitignore. A missing file ignores nothing.
func (w *Watcher) loadIgnore() {
	var lines []string
	content, err := os.ReadFile(filepath.Join(w.root, ".gitignore"))
	if err == nil {
		lines = strings.Split(string(content), "\n")
	} else if !errors.Is(err, os.ErrNotExist) {
		logger.Debug("watcher: read .gitignore: %v", err)
	}

	matcher := gitignore.CompileIgnoreLines(lines...)
	w.mu.Lock()
	w.ignore = matcher
	w.mu.Unlock()
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	matcher := w.ignore
	w.mu.Unlock()
	return matcher != nil && matcher.MatchesPath(filepath.ToSlash(rel))
}

// Classify maps an event under root to the actions it asks for.
func Classify(root string, event fsnotify.Event) Action {
	rel, err := filepath.Rel(root, event.Name)
	if err != nil {
		return ActionNone
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ActionNone
	}

	if rel == ".git" || strings.HasPrefix(rel, ".git/") {
		switch {
		case rel == ".git/index", rel == ".git/HEAD":
			return ActionRefreshGit
		case strings.HasPrefix(rel, ".git/refs/") && !strings.HasSuffix(rel, ".lock"):
			return ActionRefreshGit
		default:
			return ActionNone
		}
	}

	if strings.Contains(rel, "/") {
		return ActionNone
	}
	if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return ActionRescan
	}
	return ActionNone
}

// gitDirs lists the git metadata directories worth watching under root.
func gitDirs(root string) []string {
	candidates := []string{
		filepath.Join(root, ".git"),
		filepath.Join(root, ".git", "refs", "heads"),
	}
	var dirs []string
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
