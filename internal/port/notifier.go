package port

import (
	"context"

	"partflow/internal/domain"
)

// Notifier delivers pipeline events to the review team. Implementations must
// be safe to call concurrently; delivery failure is reported, not fatal.
type Notifier interface {
	FileDiscovered(ctx context.Context, f *domain.ImageFile) error
	ReviewReady(ctx context.Context, f *domain.ImageFile) error
	ProcessingComplete(ctx context.Context, f *domain.ImageFile, renditions int) error
	ProcessingFailed(ctx context.Context, f *domain.ImageFile, stage, message string) error
}
