package driven

import (
	"context"
	"time"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// CursorStore persists grep cursors behind opaque tokens.
type CursorStore interface {
	// Save stores the entry and returns its token. A UUID is assigned when
	// the entry has no ID.
	Save(ctx context.Context, entry domain.CursorEntry) (string, error)

	// Load returns the entry for id, or domain.ErrNotFound.
	Load(ctx context.Context, id string) (*domain.CursorEntry, error)

	// Prune removes entries created before the given time and returns how
	// many were removed.
	Prune(ctx context.Context, before time.Time) (int, error)
}
