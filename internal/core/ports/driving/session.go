package driving

import (
	"context"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// Session keeps a finder alive for prompt completion.
type Session interface {
	// Start initializes the finder for basePath. Calling it again with the
	// same path is a no-op; a different path fails with
	// domain.ErrSessionConflict.
	Start(ctx context.Context, basePath string) error

	Stop(ctx context.Context) error

	// Suggest returns up to limit completions for query. An inactive
	// session yields no suggestions.
	Suggest(ctx context.Context, query string, quoted bool, limit int) ([]domain.Suggestion, error)

	// Select records that path was picked for query.
	Select(ctx context.Context, query, path string) error

	// BasePath returns the active base path, empty when inactive.
	BasePath() string

	Active() bool
}
