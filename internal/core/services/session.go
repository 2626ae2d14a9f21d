package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
	"github.com/ff-labs/fff-go/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.Session = (*Session)(nil)

// Session keeps a finder initialized on one base path and turns searches
// into prompt completions.
type Session struct {
	finder      driving.FileFinder
	settings    domain.Settings
	scanTimeout time.Duration

	mu       sync.Mutex
	active   bool
	basePath string
}

// NewSession creates an inactive session. Finder options other than the base
// path come from settings.
func NewSession(finder driving.FileFinder, settings domain.Settings) *Session {
	timeout := settings.ScanTimeout
	if timeout <= 0 {
		timeout = domain.DefaultSessionScanTimeout
	}
	return &Session{
		finder:      finder,
		settings:    settings,
		scanTimeout: timeout,
	}
}

// Start initializes the finder on basePath and waits briefly for the first
// scan. A wait that times out still leaves the session active.
func (s *Session) Start(ctx context.Context, basePath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		if s.basePath == basePath {
			return nil
		}
		return fmt.Errorf("%w: active on %s, requested %s", domain.ErrSessionConflict, s.basePath, basePath)
	}

	if err := s.finder.Init(ctx, s.settings.InitOptions(basePath)); err != nil {
		return err
	}

	done, err := s.finder.WaitForScan(ctx, s.scanTimeout)
	if err != nil {
		if derr := s.finder.Destroy(ctx); derr != nil {
			logger.Warn("destroy after failed scan wait: %v", derr)
		}
		return fmt.Errorf("wait for scan: %w", err)
	}
	if !done {
		logger.Debug("initial scan still running after %s", s.scanTimeout)
	}

	s.active = true
	s.basePath = basePath
	return nil
}

// Stop destroys the finder if the session is active.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	if err := s.finder.Destroy(ctx); err != nil {
		return err
	}
	s.active = false
	s.basePath = ""
	return nil
}

// Active reports whether the session has a live finder.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// BasePath returns the active base path, empty when inactive.
func (s *Session) BasePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.basePath
}

// Suggest returns up to limit completions for query, best first.
func (s *Session) Suggest(ctx context.Context, query string, quoted bool, limit int) ([]domain.Suggestion, error) {
	if !s.Active() {
		return []domain.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = domain.DefaultSearchPageSize
	}

	result, err := s.finder.Search(ctx, query, domain.SearchOptions{
		PageSize: max(limit, domain.DefaultSearchPageSize),
	})
	if err != nil {
		return nil, err
	}

	items := result.Items
	if len(items) > limit {
		items = items[:limit]
	}

	suggestions := make([]domain.Suggestion, 0, len(items))
	for i, item := range items {
		path := item.RelativePath
		if path == "" {
			path = item.Path
		}
		path = domain.NormalizePath(path)

		score := len(result.Items) - i
		if i < len(result.Scores) {
			score = int(result.Scores[i].Total)
		}

		suggestions = append(suggestions, domain.Suggestion{
			Path:        path,
			Score:       max(1, score),
			Value:       domain.CompletionValue(path, quoted),
			Label:       item.FileName,
			Description: path,
		})
	}
	return suggestions, nil
}

// Select records a picked suggestion. Tracking is best effort.
func (s *Session) Select(ctx context.Context, query, path string) error {
	var errs []error
	if query != "" {
		if _, err := s.finder.TrackQuery(ctx, query, path); err != nil {
			errs = append(errs, fmt.Errorf("track query: %w", err))
		}
	}
	if _, err := s.finder.TrackAccess(ctx, path); err != nil {
		errs = append(errs, fmt.Errorf("track access: %w", err))
	}
	return errors.Join(errs...)
}
