package port

import (
	"context"

	"partflow/internal/domain"
)

// PartsRepository defines read access to the parts database (the FileMaker
// master data mirrored into SQL). All lookups are restricted to active parts;
// the mirror is the source of truth for part currency.
type PartsRepository interface {
	// LoadInterchange returns every interchange row, ordered by new part
	// number then interchange code.
	LoadInterchange(ctx context.Context) ([]domain.InterchangeMapping, error)

	// PartExists reports whether the exact normalized number is a currently
	// active part.
	PartExists(ctx context.Context, partNumber string) (bool, error)

	// SearchByPrefix returns active parts whose number starts with prefix,
	// ordered by part number, at most limit rows.
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.PartNumberSuggestion, error)

	// GetPartMetadata returns descriptive metadata for an active part, or
	// domain.ErrNotFound.
	GetPartMetadata(ctx context.Context, partNumber string) (*domain.PartMetadata, error)

	// Ping verifies connectivity for readiness reporting.
	Ping(ctx context.Context) error
}
