package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"partflow/internal/domain"
	"partflow/internal/port"
)

// ProcessingService drives a tracked file through background removal, human
// review, and rendition generation.
type ProcessingService interface {
	// Process runs background removal and moves the file to awaiting_review.
	Process(ctx context.Context, f *domain.ImageFile) error

	// Approve accepts the background-removal result, generates the output
	// renditions with part metadata, archives the original, and marks the
	// file processed.
	Approve(ctx context.Context, fileID uuid.UUID, reviewedBy string) (*domain.ImageFile, error)

	// Reject marks an awaiting-review file rejected with a reason.
	Reject(ctx context.Context, fileID uuid.UUID, reason, reviewedBy string) error

	// OriginalDownloadURL returns a time-limited link to the archived
	// original. Files that were never archived return ErrNotFound.
	OriginalDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error)
}

type processingService struct {
	fileRepo      port.ImageFileRepository
	parts         port.PartsRepository
	remover       port.BackgroundRemover
	renderer      port.Renderer
	storage       port.ObjectStorage
	notifier      port.Notifier
	previewDir    string
	archiveBucket string
	presignExpiry int64
}

// NewProcessingService creates a new ProcessingService implementation.
// storage may be nil when archiving is disabled.
func NewProcessingService(
	fileRepo port.ImageFileRepository,
	parts port.PartsRepository,
	remover port.BackgroundRemover,
	renderer port.Renderer,
	storage port.ObjectStorage,
	notifier port.Notifier,
	previewDir, archiveBucket string,
	presignExpiry int64,
) ProcessingService {
	return &processingService{
		fileRepo:      fileRepo,
		parts:         parts,
		remover:       remover,
		renderer:      renderer,
		storage:       storage,
		notifier:      notifier,
		previewDir:    previewDir,
		archiveBucket: archiveBucket,
		presignExpiry: presignExpiry,
	}
}

func (s *processingService) Process(ctx context.Context, f *domain.ImageFile) error {
	dstPath := filepath.Join(s.previewDir, f.ID.String()+".png")

	preview, err := s.remover.RemoveBackground(ctx, f.OriginalPath, dstPath)
	if err != nil {
		s.fail(ctx, f, "background_removal", err)
		return fmt.Errorf("background removal for %s: %w", f.ID, err)
	}

	if err := s.fileRepo.SetPreviewPath(ctx, f.ID, preview); err != nil {
		return fmt.Errorf("storing preview path: %w", err)
	}
	if err := s.fileRepo.UpdateStatus(ctx, f.ID, domain.FileStatusAwaitingReview); err != nil {
		return fmt.Errorf("marking awaiting review: %w", err)
	}
	f.PreviewPath = preview
	f.Status = domain.FileStatusAwaitingReview

	s.appendStep(ctx, f.ID, "background_removed", map[string]any{"preview": preview})

	if err := s.notifier.ReviewReady(ctx, f); err != nil {
		log.Printf("processingService.Process: review notification failed for %s: %v", f.ID, err)
	}
	return nil
}

func (s *processingService) Approve(ctx context.Context, fileID uuid.UUID, reviewedBy string) (*domain.ImageFile, error) {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if f.Status != domain.FileStatusAwaitingReview {
		return nil, domain.ErrNotAwaitingReview
	}

	if err := s.fileRepo.UpdateStatus(ctx, f.ID, domain.FileStatusApproved); err != nil {
		return nil, err
	}
	s.appendStep(ctx, f.ID, "review_approved", map[string]any{"reviewed_by": reviewedBy})

	meta := s.lookupMetadata(ctx, f)

	renditions, err := s.renderer.GenerateRenditions(ctx, f.PreviewPath, meta)
	if err != nil {
		s.fail(ctx, f, "format_generation", err)
		return nil, fmt.Errorf("generating renditions for %s: %w", f.ID, err)
	}
	s.appendStep(ctx, f.ID, "formats_generated", map[string]any{"count": len(renditions)})

	s.archive(ctx, f)

	if err := s.fileRepo.UpdateStatus(ctx, f.ID, domain.FileStatusProcessed); err != nil {
		return nil, err
	}
	f.Status = domain.FileStatusProcessed

	if err := s.notifier.ProcessingComplete(ctx, f, len(renditions)); err != nil {
		log.Printf("processingService.Approve: completion notification failed for %s: %v", f.ID, err)
	}
	return f, nil
}

func (s *processingService) Reject(ctx context.Context, fileID uuid.UUID, reason, reviewedBy string) error {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if f.Status != domain.FileStatusAwaitingReview {
		return domain.ErrNotAwaitingReview
	}

	if err := s.fileRepo.UpdateStatus(ctx, f.ID, domain.FileStatusRejected); err != nil {
		return err
	}
	s.appendStep(ctx, f.ID, "review_rejected", map[string]any{
		"reason":      reason,
		"reviewed_by": reviewedBy,
	})
	return nil
}

func (s *processingService) OriginalDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		return "", err
	}
	if s.storage == nil || f.ArchiveLocation == "" {
		return "", domain.ErrNotFound
	}

	key := fmt.Sprintf("originals/%s/%s", f.ID, f.Filename)
	url, err := s.storage.GetPresignedURL(ctx, s.archiveBucket, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning original for %s: %w", f.ID, err)
	}
	return url, nil
}

// lookupMetadata fetches descriptive metadata for the mapped part. Missing
// metadata never blocks rendition generation; the renditions just carry the
// bare part number.
func (s *processingService) lookupMetadata(ctx context.Context, f *domain.ImageFile) *domain.PartMetadata {
	if f.PartNumber == "" {
		return &domain.PartMetadata{}
	}
	meta, err := s.parts.GetPartMetadata(ctx, f.PartNumber)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Printf("processingService: metadata lookup failed for %s: %v", f.PartNumber, err)
		}
		return &domain.PartMetadata{PartNumber: f.PartNumber}
	}
	return meta
}

// archive uploads the original to the archive bucket when one is configured.
// Archive failure is logged, not fatal: the renditions already exist.
func (s *processingService) archive(ctx context.Context, f *domain.ImageFile) {
	if s.storage == nil || s.archiveBucket == "" {
		return
	}

	src, err := os.Open(f.OriginalPath)
	if err != nil {
		log.Printf("processingService.archive: opening %s: %v", f.OriginalPath, err)
		return
	}
	defer func() { _ = src.Close() }()

	key := fmt.Sprintf("originals/%s/%s", f.ID, f.Filename)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveBucket,
		Key:         key,
		Body:        src,
		ContentType: "application/octet-stream",
		Size:        f.SizeBytes,
	})
	if err != nil {
		log.Printf("processingService.archive: upload failed for %s: %v", f.ID, err)
		return
	}

	if err := s.fileRepo.SetArchiveLocation(ctx, f.ID, out.Location); err != nil {
		log.Printf("processingService.archive: storing location for %s: %v", f.ID, err)
	}
	s.appendStep(ctx, f.ID, "original_archived", map[string]any{"location": out.Location})
}

func (s *processingService) fail(ctx context.Context, f *domain.ImageFile, stage string, cause error) {
	if err := s.fileRepo.UpdateStatus(ctx, f.ID, domain.FileStatusFailed); err != nil {
		log.Printf("processingService: marking %s failed: %v", f.ID, err)
	}
	s.appendStep(ctx, f.ID, "processing_failed", map[string]any{
		"stage": stage,
		"error": cause.Error(),
	})
	if err := s.notifier.ProcessingFailed(ctx, f, stage, cause.Error()); err != nil {
		log.Printf("processingService: failure notification for %s: %v", f.ID, err)
	}
}

func (s *processingService) appendStep(ctx context.Context, fileID uuid.UUID, step string, details map[string]any) {
	payload, err := json.Marshal(details)
	if err != nil {
		payload = nil
	}
	if err := s.fileRepo.AppendStep(ctx, fileID, step, payload); err != nil {
		log.Printf("processingService: appending step %q for %s failed: %v", step, fileID, err)
	}
}
