package driving

import (
	"context"

	"github.com/ff-labs/fff-go/internal/core/domain"
)

// PlatformService reports how the native library resolves on this host.
type PlatformService interface {
	Report(ctx context.Context) domain.PlatformReport
}
