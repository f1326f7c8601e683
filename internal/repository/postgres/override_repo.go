package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"partflow/internal/domain"
	"partflow/internal/port"
)

type overrideRepo struct {
	db *sqlx.DB
}

// NewOverrideRepo creates a new PostgreSQL-backed OverrideRepository.
func NewOverrideRepo(db *sqlx.DB) port.OverrideRepository {
	return &overrideRepo{db: db}
}

func (r *overrideRepo) Create(ctx context.Context, o *domain.ManualOverride) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	o.OverriddenAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO manual_overrides
		 (id, file_id, override_type, system_value, user_value, reason, overridden_by, overridden_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.FileID, o.OverrideType, o.SystemValue, o.UserValue,
		o.Reason, o.OverriddenBy, o.OverriddenAt)
	if err != nil {
		return fmt.Errorf("overrideRepo.Create: %w", err)
	}
	return nil
}

func (r *overrideRepo) ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.ManualOverride, error) {
	var overrides []domain.ManualOverride
	err := r.db.SelectContext(ctx, &overrides,
		"SELECT * FROM manual_overrides WHERE file_id = $1 ORDER BY overridden_at", fileID)
	if err != nil {
		return nil, fmt.Errorf("overrideRepo.ListByFile: %w", err)
	}
	return overrides, nil
}
