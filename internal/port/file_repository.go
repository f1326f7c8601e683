package port

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"partflow/internal/domain"
)

// ImageFileRepository defines the contract for tracked-file persistence.
type ImageFileRepository interface {
	Create(ctx context.Context, f *domain.ImageFile) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImageFile, error)
	GetByChecksum(ctx context.Context, sha256 string) (*domain.ImageFile, error)
	List(ctx context.Context, offset, limit int) ([]domain.ImageFile, int, error)
	ListByStatus(ctx context.Context, status domain.FileStatus, offset, limit int) ([]domain.ImageFile, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
	SetPartNumber(ctx context.Context, id uuid.UUID, partNumber string) error
	SetPreviewPath(ctx context.Context, id uuid.UUID, previewPath string) error
	SetArchiveLocation(ctx context.Context, id uuid.UUID, location string) error

	// ClaimQueued atomically claims up to limit queued files and marks them
	// processing, so concurrent workers never pick up the same file.
	ClaimQueued(ctx context.Context, limit int) ([]domain.ImageFile, error)

	CountByStatus(ctx context.Context) (map[domain.FileStatus]int, error)

	AppendStep(ctx context.Context, fileID uuid.UUID, step string, details json.RawMessage) error
	ListSteps(ctx context.Context, fileID uuid.UUID) ([]domain.ProcessingStep, error)
}

// OverrideRepository defines the contract for the manual-override audit
// trail. Overrides are append-only and never deleted.
type OverrideRepository interface {
	Create(ctx context.Context, o *domain.ManualOverride) error
	ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.ManualOverride, error)
}
