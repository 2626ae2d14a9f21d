package driving

import (
	"context"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// GrepPager pages through live-grep results across process or request
// boundaries by storing cursors behind opaque tokens.
type GrepPager interface {
	// Page returns the page after token, or the first page when token is
	// empty. A token is only valid for the query, mode, base path and
	// file filters it was issued for.
	Page(ctx context.Context, query string, opts domain.GrepOptions, token string) (*domain.GrepPage, error)
}
