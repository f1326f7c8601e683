package port

import (
	"context"

	"partflow/internal/domain"
)

// BackgroundRemover requests background removal for a source image and
// returns the path of the generated preview. The ML model itself is an
// external service; this is its request/response contract.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, srcPath, dstPath string) (string, error)
}

// Renderer generates the fixed set of output renditions for an approved
// image, embedding the part's descriptive metadata.
type Renderer interface {
	GenerateRenditions(ctx context.Context, srcPath string, meta *domain.PartMetadata) ([]domain.Rendition, error)
}
