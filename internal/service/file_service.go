package service

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"partflow/internal/domain"
	"partflow/internal/port"
)

// OverrideInput is the DTO for a manual part-number correction.
type OverrideInput struct {
	FileID       uuid.UUID
	PartNumber   string
	Reason       string
	OverriddenBy string
}

// FileDetail bundles a tracked file with its history and overrides.
type FileDetail struct {
	File      *domain.ImageFile       `json:"file"`
	Steps     []domain.ProcessingStep `json:"steps"`
	Overrides []domain.ManualOverride `json:"overrides"`
}

// FileService manages tracked files from discovery through review.
type FileService interface {
	Register(ctx context.Context, path string) (*domain.ImageFile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ImageFile, error)
	GetDetail(ctx context.Context, id uuid.UUID) (*FileDetail, error)
	List(ctx context.Context, offset, limit int) ([]domain.ImageFile, int, error)
	ListByStatus(ctx context.Context, status domain.FileStatus, offset, limit int) ([]domain.ImageFile, int, error)
	Stats(ctx context.Context) (map[domain.FileStatus]int, error)
	ApplyOverride(ctx context.Context, input OverrideInput) (*domain.ImageFile, error)
}

type fileService struct {
	fileRepo     port.ImageFileRepository
	overrideRepo port.OverrideRepository
	mapping      PartMappingService
	notifier     port.Notifier
}

// NewFileService creates a new FileService implementation.
func NewFileService(
	fileRepo port.ImageFileRepository,
	overrideRepo port.OverrideRepository,
	mapping PartMappingService,
	notifier port.Notifier,
) FileService {
	return &fileService{
		fileRepo:     fileRepo,
		overrideRepo: overrideRepo,
		mapping:      mapping,
		notifier:     notifier,
	}
}

// Register tracks a newly discovered file: checksums it, dedupes by content,
// resolves its part number, and queues it for processing. A file whose
// SHA-256 is already tracked returns domain.ErrDuplicateFile.
func (s *fileService) Register(ctx context.Context, path string) (*domain.ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	md5sum, sha256sum, err := checksumFile(path)
	if err != nil {
		return nil, fmt.Errorf("checksumming %s: %w", path, err)
	}

	if existing, err := s.fileRepo.GetByChecksum(ctx, sha256sum); err == nil {
		log.Printf("fileService.Register: %s already tracked as %s", path, existing.ID)
		return nil, domain.ErrDuplicateFile
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	filename := filepath.Base(path)
	mapping := s.mapping.Resolve(ctx, filename)

	f := &domain.ImageFile{
		ID:                uuid.New(),
		Filename:          filename,
		OriginalPath:      path,
		FileType:          fileType,
		SizeBytes:         info.Size(),
		ChecksumMD5:       md5sum,
		ChecksumSHA256:    sha256sum,
		Status:            domain.FileStatusQueued,
		PartNumber:        mapping.MappedPartNumber,
		MappingMethod:     mapping.MappingMethod,
		MappingConfidence: mapping.ConfidenceScore,
		RequiresReview:    mapping.RequiresManualReview,
	}

	if err := s.fileRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("creating tracked file: %w", err)
	}

	s.appendStep(ctx, f.ID, "file_discovered", map[string]any{
		"path":       path,
		"size_bytes": info.Size(),
		"file_type":  string(fileType),
	})
	s.appendStep(ctx, f.ID, "part_mapping", map[string]any{
		"extracted_numbers": mapping.ExtractedNumbers,
		"mapped_part":       mapping.MappedPartNumber,
		"method":            string(mapping.MappingMethod),
		"confidence":        mapping.ConfidenceScore,
	})

	log.Printf("fileService.Register: tracked %s (part=%q method=%s confidence=%.2f)",
		filename, mapping.MappedPartNumber, mapping.MappingMethod, mapping.ConfidenceScore)

	if err := s.notifier.FileDiscovered(ctx, f); err != nil {
		log.Printf("fileService.Register: discovery notification failed for %s: %v", f.ID, err)
	}

	return f, nil
}

func (s *fileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImageFile, error) {
	return s.fileRepo.GetByID(ctx, id)
}

func (s *fileService) GetDetail(ctx context.Context, id uuid.UUID) (*FileDetail, error) {
	f, err := s.fileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	steps, err := s.fileRepo.ListSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrideRepo.ListByFile(ctx, id)
	if err != nil {
		return nil, err
	}
	return &FileDetail{File: f, Steps: steps, Overrides: overrides}, nil
}

func (s *fileService) List(ctx context.Context, offset, limit int) ([]domain.ImageFile, int, error) {
	return s.fileRepo.List(ctx, offset, limit)
}

func (s *fileService) ListByStatus(ctx context.Context, status domain.FileStatus, offset, limit int) ([]domain.ImageFile, int, error) {
	return s.fileRepo.ListByStatus(ctx, status, offset, limit)
}

func (s *fileService) Stats(ctx context.Context) (map[domain.FileStatus]int, error) {
	return s.fileRepo.CountByStatus(ctx)
}

// ApplyOverride records a human correction and applies it directly to the
// file record, bypassing resolver confidence. The override row is append-only
// audit history; once a human has acted, their value is ground truth.
func (s *fileService) ApplyOverride(ctx context.Context, input OverrideInput) (*domain.ImageFile, error) {
	f, err := s.fileRepo.GetByID(ctx, input.FileID)
	if err != nil {
		return nil, err
	}

	partNumber := strings.ToUpper(strings.TrimSpace(input.PartNumber))
	if !s.mapping.Validate(ctx, partNumber) {
		return nil, domain.ErrInvalidPartNumber
	}

	override := &domain.ManualOverride{
		FileID:       f.ID,
		OverrideType: domain.OverrideTypePartNumber,
		SystemValue:  f.PartNumber,
		UserValue:    partNumber,
		Reason:       input.Reason,
		OverriddenBy: input.OverriddenBy,
	}
	if err := s.overrideRepo.Create(ctx, override); err != nil {
		return nil, fmt.Errorf("recording override: %w", err)
	}

	if err := s.fileRepo.SetPartNumber(ctx, f.ID, partNumber); err != nil {
		return nil, fmt.Errorf("applying override: %w", err)
	}

	s.appendStep(ctx, f.ID, "manual_override", map[string]any{
		"system_value":  f.PartNumber,
		"user_value":    partNumber,
		"overridden_by": input.OverriddenBy,
	})

	f.PartNumber = partNumber
	f.RequiresReview = false
	return f, nil
}

func (s *fileService) appendStep(ctx context.Context, fileID uuid.UUID, step string, details map[string]any) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = nil
	}
	if err := s.fileRepo.AppendStep(ctx, fileID, step, payload); err != nil {
		log.Printf("fileService: appending step %q for %s failed: %v", step, fileID, err)
	}
}

// checksumFile computes MD5 and SHA-256 in a single pass over the file.
func checksumFile(path string) (md5Hex, sha256Hex string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = f.Close() }()

	md5Hash := md5.New()
	shaHash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(md5Hash, shaHash), f); err != nil {
		return "", "", err
	}
	return hex.EncodeToString(md5Hash.Sum(nil)), hex.EncodeToString(shaHash.Sum(nil)), nil
}
