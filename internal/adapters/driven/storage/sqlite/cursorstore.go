package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
)

// cursorStore implements driven.CursorStore.
type cursorStore struct {
	store *Store
}

var _ driven.CursorStore = (*cursorStore)(nil)

// Save stores a cursor and returns its token.
func (s *cursorStore) Save(ctx context.Context, entry domain.CursorEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO grep_cursors (id, query, mode, base_path, filters, file_offset, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			mode = excluded.mode,
			base_path = excluded.base_path,
			filters = excluded.filters,
			file_offset = excluded.file_offset,
			created_at = excluded.created_at
	`,
		entry.ID,
		entry.Query,
		string(entry.Mode),
		entry.BasePath,
		entry.Filters,
		domain.CursorOffset(entry.Cursor),
		entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("saving cursor: %w", err)
	}
	return entry.ID, nil
}

// Load retrieves a cursor by token.
func (s *cursorStore) Load(ctx context.Context, id string) (*domain.CursorEntry, error) {
	var (
		entry     domain.CursorEntry
		mode      string
		offset    int64
		createdAt int64
	)

	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, query, mode, base_path, filters, file_offset, created_at
		FROM grep_cursors WHERE id = ?
	`, id)
	err := row.Scan(&entry.ID, &entry.Query, &mode, &entry.BasePath, &entry.Filters, &offset, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading cursor: %w", err)
	}

	entry.Mode = domain.GrepMode(mode)
	entry.Cursor = domain.NewGrepCursor(offset)
	entry.CreatedAt = time.UnixMilli(createdAt)
	return &entry, nil
}

// Prune removes cursors created before the given time.
func (s *cursorStore) Prune(ctx context.Context, before time.Time) (int, error) {
	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM grep_cursors WHERE created_at < ?", before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("pruning cursors: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning cursors: %w", err)
	}
	return int(n), nil
}
