package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
	"github.com/ff-labs/fff-go/internal/core/ports/driving"
	"github.com/ff-labs/fff-go/internal/logger"
)

// Ensure GrepPager implements the interface.
var _ driving.GrepPager = (*GrepPager)(nil)

// rootProvider reports the directory the engine is indexing.
type rootProvider interface {
	BasePath() string
}

// GrepPager stores live-grep cursors so a later call can resume the stream.
// A token only resumes on the same base path with the same file filters.
type GrepPager struct {
	finder  driving.FileFinder
	root    rootProvider
	cursors driven.CursorStore
	ttl     time.Duration
	now     func() time.Time
}

// NewGrepPager creates a pager. root supplies the indexed base path; nil
// means tokens are not bound to a tree. Tokens older than ttl are pruned; a
// non-positive ttl keeps them forever.
func NewGrepPager(finder driving.FileFinder, root rootProvider, cursors driven.CursorStore, ttl time.Duration) *GrepPager {
	return &GrepPager{
		finder:  finder,
		root:    root,
		cursors: cursors,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Page runs one live-grep page, resuming from token when set.
func (p *GrepPager) Page(ctx context.Context, query string, opts domain.GrepOptions, token string) (*domain.GrepPage, error) {
	p.prune(ctx)
	basePath := p.basePath()

	if token != "" {
		entry, err := p.cursors.Load(ctx, token)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown or expired cursor %q", domain.ErrInvalidInput, token)
		}
		if err != nil {
			return nil, fmt.Errorf("load cursor: %w", err)
		}
		if entry.Query != query {
			return nil, fmt.Errorf("%w: cursor %q belongs to query %q", domain.ErrInvalidInput, token, entry.Query)
		}
		if entry.BasePath != basePath {
			return nil, fmt.Errorf("%w: cursor %q was issued for %s", domain.ErrInvalidInput, token, entry.BasePath)
		}
		if opts.Mode == "" {
			opts.Mode = entry.Mode
		}
		if opts.Mode != entry.Mode {
			return nil, fmt.Errorf("%w: cursor %q was issued for mode %q", domain.ErrInvalidInput, token, entry.Mode)
		}
		if filters := opts.Filters(); filters != entry.Filters {
			return nil, fmt.Errorf("%w: cursor %q was issued with %s, got %s", domain.ErrInvalidInput, token, entry.Filters, filters)
		}
		opts.Cursor = entry.Cursor
	}

	result, err := p.finder.LiveGrep(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	page := &domain.GrepPage{Result: result}
	if result.HasMore() {
		id, err := p.cursors.Save(ctx, domain.CursorEntry{
			Query:     query,
			Mode:      opts.Mode,
			BasePath:  basePath,
			Filters:   opts.Filters(),
			Cursor:    result.NextCursor,
			CreatedAt: p.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("save cursor: %w", err)
		}
		page.NextToken = id
	}
	return page, nil
}

func (p *GrepPager) basePath() string {
	if p.root == nil {
		return ""
	}
	return p.root.BasePath()
}

func (p *GrepPager) prune(ctx context.Context) {
	if p.ttl <= 0 {
		return
	}
	n, err := p.cursors.Prune(ctx, p.now().Add(-p.ttl))
	if err != nil {
		logger.Warn("prune grep cursors: %v", err)
		return
	}
	if n > 0 {
		logger.Debug("pruned %d expired grep cursors", n)
	}
}
