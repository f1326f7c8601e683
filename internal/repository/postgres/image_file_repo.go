package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"partflow/internal/domain"
	"partflow/internal/port"
)

type imageFileRepo struct {
	db *sqlx.DB
}

// NewImageFileRepo creates a new PostgreSQL-backed ImageFileRepository.
func NewImageFileRepo(db *sqlx.DB) port.ImageFileRepository {
	return &imageFileRepo{db: db}
}

func (r *imageFileRepo) Create(ctx context.Context, f *domain.ImageFile) error {
	now := time.Now().UTC()
	f.DiscoveredAt = now
	f.UpdatedAt = now

	query := `INSERT INTO image_files
		(id, filename, original_path, file_type, size_bytes, checksum_md5, checksum_sha256,
		 status, part_number, mapping_method, mapping_confidence, requires_review,
		 preview_path, archive_location, discovered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Filename, f.OriginalPath, f.FileType, f.SizeBytes, f.ChecksumMD5,
		f.ChecksumSHA256, f.Status, f.PartNumber, f.MappingMethod, f.MappingConfidence,
		f.RequiresReview, f.PreviewPath, f.ArchiveLocation, f.DiscoveredAt, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("imageFileRepo.Create: %w", err)
	}
	return nil
}

func (r *imageFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImageFile, error) {
	var f domain.ImageFile
	err := r.db.GetContext(ctx, &f, "SELECT * FROM image_files WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("imageFileRepo.GetByID: %w", err)
	}
	return &f, nil
}

func (r *imageFileRepo) GetByChecksum(ctx context.Context, sha256 string) (*domain.ImageFile, error) {
	var f domain.ImageFile
	err := r.db.GetContext(ctx, &f,
		"SELECT * FROM image_files WHERE checksum_sha256 = $1", sha256)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("imageFileRepo.GetByChecksum: %w", err)
	}
	return &f, nil
}

func (r *imageFileRepo) List(ctx context.Context, offset, limit int) ([]domain.ImageFile, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM image_files"); err != nil {
		return nil, 0, fmt.Errorf("imageFileRepo.List count: %w", err)
	}

	var files []domain.ImageFile
	err := r.db.SelectContext(ctx, &files,
		`SELECT * FROM image_files
		 ORDER BY discovered_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("imageFileRepo.List: %w", err)
	}
	return files, total, nil
}

func (r *imageFileRepo) ListByStatus(ctx context.Context, status domain.FileStatus, offset, limit int) ([]domain.ImageFile, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM image_files WHERE status = $1", status)
	if err != nil {
		return nil, 0, fmt.Errorf("imageFileRepo.ListByStatus count: %w", err)
	}

	var files []domain.ImageFile
	err = r.db.SelectContext(ctx, &files,
		`SELECT * FROM image_files
		 WHERE status = $1
		 ORDER BY discovered_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("imageFileRepo.ListByStatus: %w", err)
	}
	return files, total, nil
}

func (r *imageFileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE image_files SET status = $1, updated_at = $2 WHERE id = $3",
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("imageFileRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *imageFileRepo) SetPartNumber(ctx context.Context, id uuid.UUID, partNumber string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE image_files SET part_number = $1, requires_review = false, updated_at = $2 WHERE id = $3",
		partNumber, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("imageFileRepo.SetPartNumber: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *imageFileRepo) SetPreviewPath(ctx context.Context, id uuid.UUID, previewPath string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE image_files SET preview_path = $1, updated_at = $2 WHERE id = $3",
		previewPath, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("imageFileRepo.SetPreviewPath: %w", err)
	}
	return nil
}

func (r *imageFileRepo) SetArchiveLocation(ctx context.Context, id uuid.UUID, location string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE image_files SET archive_location = $1, updated_at = $2 WHERE id = $3",
		location, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("imageFileRepo.SetArchiveLocation: %w", err)
	}
	return nil
}

// ClaimQueued marks up to limit queued files as processing and returns them.
// FOR UPDATE SKIP LOCKED prevents two workers from claiming the same file.
func (r *imageFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ImageFile, error) {
	var files []domain.ImageFile
	err := r.db.SelectContext(ctx, &files,
		`UPDATE image_files SET status = $1, updated_at = $2
		 WHERE id IN (
		     SELECT id FROM image_files
		     WHERE status = $3
		     ORDER BY discovered_at
		     LIMIT $4
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING *`,
		domain.FileStatusProcessing, time.Now().UTC(), domain.FileStatusQueued, limit)
	if err != nil {
		return nil, fmt.Errorf("imageFileRepo.ClaimQueued: %w", err)
	}
	return files, nil
}

func (r *imageFileRepo) CountByStatus(ctx context.Context) (map[domain.FileStatus]int, error) {
	rows := []struct {
		Status domain.FileStatus `db:"status"`
		Count  int               `db:"count"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		"SELECT status, COUNT(*) AS count FROM image_files GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("imageFileRepo.CountByStatus: %w", err)
	}
	counts := make(map[domain.FileStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *imageFileRepo) AppendStep(ctx context.Context, fileID uuid.UUID, step string, details json.RawMessage) error {
	if details == nil {
		details = json.RawMessage("{}")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO processing_steps (id, file_id, step, details, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), fileID, step, details, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("imageFileRepo.AppendStep: %w", err)
	}
	return nil
}

func (r *imageFileRepo) ListSteps(ctx context.Context, fileID uuid.UUID) ([]domain.ProcessingStep, error) {
	var steps []domain.ProcessingStep
	err := r.db.SelectContext(ctx, &steps,
		"SELECT * FROM processing_steps WHERE file_id = $1 ORDER BY created_at", fileID)
	if err != nil {
		return nil, fmt.Errorf("imageFileRepo.ListSteps: %w", err)
	}
	return steps, nil
}
