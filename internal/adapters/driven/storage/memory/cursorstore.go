package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ff-labs/fff-go/internal/core/domain"
	"github.com/ff-labs/fff-go/internal/core/ports/driven"
)

// Ensure CursorStore implements the interface.
var _ driven.CursorStore = (*CursorStore)(nil)

// CursorStore is an in-memory implementation of driven.CursorStore.
// Tokens live as long as the process.
type CursorStore struct {
	mu      sync.RWMutex
	entries map[string]domain.CursorEntry
}

// NewCursorStore creates a new in-memory cursor store.
func NewCursorStore() *CursorStore {
	return &CursorStore{
		entries: make(map[string]domain.CursorEntry),
	}
}

// Save stores a cursor and returns its token.
func (s *CursorStore) Save(_ context.Context, entry domain.CursorEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.ID] = entry
	return entry.ID, nil
}

// Load retrieves a cursor by token.
func (s *CursorStore) Load(_ context.Context, id string) (*domain.CursorEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Prune removes cursors created before the given time.
func (s *CursorStore) Prune(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if entry.CreatedAt.Before(before) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed, nil
}
