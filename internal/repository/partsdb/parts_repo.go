package partsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"partflow/internal/domain"
	"partflow/internal/port"
)

const defaultBrand = "Crown Automotive"

type partsRepo struct {
	db *sqlx.DB
}

// NewPartsRepo creates a PartsRepository over the parts mirror database.
func NewPartsRepo(db *sqlx.DB) port.PartsRepository {
	return &partsRepo{db: db}
}

func (r *partsRepo) LoadInterchange(ctx context.Context) ([]domain.InterchangeMapping, error) {
	var rows []domain.InterchangeMapping
	err := r.db.SelectContext(ctx, &rows,
		`SELECT interchange_code, old_part_number, new_part_number
		 FROM part_interchange
		 ORDER BY new_part_number, interchange_code`)
	if err != nil {
		return nil, fmt.Errorf("partsRepo.LoadInterchange: %w", err)
	}
	return rows, nil
}

func (r *partsRepo) PartExists(ctx context.Context, partNumber string) (bool, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM parts_master WHERE part_number = $1 AND is_active = true",
		normalize(partNumber))
	if err != nil {
		return false, fmt.Errorf("partsRepo.PartExists: %w", err)
	}
	return count > 0, nil
}

func (r *partsRepo) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.PartNumberSuggestion, error) {
	var suggestions []domain.PartNumberSuggestion
	err := r.db.SelectContext(ctx, &suggestions,
		`SELECT part_number, description, brand
		 FROM parts_master
		 WHERE part_number LIKE $1 AND is_active = true
		 ORDER BY part_number
		 LIMIT $2`,
		normalize(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("partsRepo.SearchByPrefix: %w", err)
	}
	return suggestions, nil
}

func (r *partsRepo) GetPartMetadata(ctx context.Context, partNumber string) (*domain.PartMetadata, error) {
	var meta domain.PartMetadata
	err := r.db.GetContext(ctx, &meta,
		`SELECT part_number, brand, title, description, keywords
		 FROM parts_master
		 WHERE part_number = $1 AND is_active = true`,
		normalize(partNumber))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("partsRepo.GetPartMetadata: %w", err)
	}
	if meta.Brand == "" {
		meta.Brand = defaultBrand
	}
	return &meta, nil
}

func (r *partsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func normalize(partNumber string) string {
	return strings.ToUpper(strings.TrimSpace(partNumber))
}
