package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
	"partflow/internal/port"
	"partflow/internal/service"
	"partflow/mocks"
)

type processingFixture struct {
	fileRepo *mocks.MockImageFileRepo
	parts    *mocks.MockPartsRepo
	remover  *mocks.MockBackgroundRemover
	renderer *mocks.MockRenderer
	storage  *mocks.MockObjectStorage
	notifier *mocks.MockNotifier
}

func newProcessingFixture(previewDir, bucket string) (*processingFixture, service.ProcessingService) {
	fx := &processingFixture{
		fileRepo: new(mocks.MockImageFileRepo),
		parts:    new(mocks.MockPartsRepo),
		remover:  new(mocks.MockBackgroundRemover),
		renderer: new(mocks.MockRenderer),
		storage:  new(mocks.MockObjectStorage),
		notifier: new(mocks.MockNotifier),
	}
	var storage port.ObjectStorage
	if bucket != "" {
		storage = fx.storage
	}
	svc := service.NewProcessingService(
		fx.fileRepo, fx.parts, fx.remover, fx.renderer, storage, fx.notifier,
		previewDir, bucket, 900,
	)
	return fx, svc
}

func TestProcess_Success(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	f := &domain.ImageFile{ID: uuid.New(), OriginalPath: "/input/J1234567.psd", Status: domain.FileStatusQueued}
	previewPath := filepath.Join("/previews", f.ID.String()+".png")

	fx.remover.On("RemoveBackground", mock.Anything, f.OriginalPath, previewPath).
		Return(previewPath, nil)
	fx.fileRepo.On("SetPreviewPath", mock.Anything, f.ID, previewPath).Return(nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, f.ID, domain.FileStatusAwaitingReview).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, f.ID, "background_removed", mock.Anything).Return(nil)
	fx.notifier.On("ReviewReady", mock.Anything, f).Return(nil)

	err := svc.Process(context.Background(), f)

	assert.NoError(t, err)
	assert.Equal(t, domain.FileStatusAwaitingReview, f.Status)
	assert.Equal(t, previewPath, f.PreviewPath)
	fx.fileRepo.AssertExpectations(t)
	fx.notifier.AssertExpectations(t)
}

func TestProcess_RemovalFailureMarksFailed(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	f := &domain.ImageFile{ID: uuid.New(), OriginalPath: "/input/bad.psd"}

	fx.remover.On("RemoveBackground", mock.Anything, f.OriginalPath, mock.AnythingOfType("string")).
		Return("", errors.New("model timed out"))
	fx.fileRepo.On("UpdateStatus", mock.Anything, f.ID, domain.FileStatusFailed).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, f.ID, "processing_failed", mock.Anything).Return(nil)
	fx.notifier.On("ProcessingFailed", mock.Anything, f, "background_removal", "model timed out").Return(nil)

	err := svc.Process(context.Background(), f)

	assert.Error(t, err)
	fx.fileRepo.AssertExpectations(t)
	fx.notifier.AssertExpectations(t)
}

func TestProcess_NotificationFailureNotFatal(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	f := &domain.ImageFile{ID: uuid.New(), OriginalPath: "/input/12345.jpg"}

	fx.remover.On("RemoveBackground", mock.Anything, mock.Anything, mock.Anything).
		Return("/previews/p.png", nil)
	fx.fileRepo.On("SetPreviewPath", mock.Anything, f.ID, "/previews/p.png").Return(nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, f.ID, domain.FileStatusAwaitingReview).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, f.ID, "background_removed", mock.Anything).Return(nil)
	fx.notifier.On("ReviewReady", mock.Anything, f).Return(errors.New("webhook down"))

	assert.NoError(t, svc.Process(context.Background(), f))
}

func TestApprove_Success(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()
	f := &domain.ImageFile{
		ID:          fileID,
		PartNumber:  "J1234567",
		PreviewPath: "/previews/p.png",
		Status:      domain.FileStatusAwaitingReview,
	}
	meta := &domain.PartMetadata{PartNumber: "J1234567", Title: "Brake Caliper Bracket"}

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(f, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusApproved).Return(nil)
	fx.parts.On("GetPartMetadata", mock.Anything, "J1234567").Return(meta, nil)
	fx.renderer.On("GenerateRenditions", mock.Anything, "/previews/p.png", meta).
		Return([]domain.Rendition{{FormatName: "web_large"}, {FormatName: "thumbnail"}}, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusProcessed).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, fileID, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	fx.notifier.On("ProcessingComplete", mock.Anything, f, 2).Return(nil)

	got, err := svc.Approve(context.Background(), fileID, "j.reviewer")

	assert.NoError(t, err)
	assert.Equal(t, domain.FileStatusProcessed, got.Status)
	fx.fileRepo.AssertExpectations(t)
	fx.renderer.AssertExpectations(t)
	fx.notifier.AssertExpectations(t)
}

func TestApprove_NotAwaitingReview(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.ImageFile{
		ID:     fileID,
		Status: domain.FileStatusQueued,
	}, nil)

	_, err := svc.Approve(context.Background(), fileID, "j.reviewer")
	assert.ErrorIs(t, err, domain.ErrNotAwaitingReview)
}

func TestApprove_UnknownPartStillRenders(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()
	f := &domain.ImageFile{
		ID:          fileID,
		PartNumber:  "99999999",
		PreviewPath: "/previews/p.png",
		Status:      domain.FileStatusAwaitingReview,
	}

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(f, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusApproved).Return(nil)
	fx.parts.On("GetPartMetadata", mock.Anything, "99999999").Return(nil, domain.ErrNotFound)
	fx.renderer.On("GenerateRenditions", mock.Anything, "/previews/p.png",
		mock.MatchedBy(func(m *domain.PartMetadata) bool {
			return m.PartNumber == "99999999" && m.Title == ""
		})).
		Return([]domain.Rendition{{FormatName: "web_large"}}, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusProcessed).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, fileID, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	fx.notifier.On("ProcessingComplete", mock.Anything, f, 1).Return(nil)

	_, err := svc.Approve(context.Background(), fileID, "j.reviewer")

	assert.NoError(t, err)
	fx.renderer.AssertExpectations(t)
}

func TestApprove_RenderFailureMarksFailed(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()
	f := &domain.ImageFile{
		ID:          fileID,
		PartNumber:  "12345",
		PreviewPath: "/previews/p.png",
		Status:      domain.FileStatusAwaitingReview,
	}

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(f, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusApproved).Return(nil)
	fx.parts.On("GetPartMetadata", mock.Anything, "12345").Return(&domain.PartMetadata{PartNumber: "12345"}, nil)
	fx.renderer.On("GenerateRenditions", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("corrupt preview"))
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusFailed).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, fileID, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	fx.notifier.On("ProcessingFailed", mock.Anything, f, "format_generation", "corrupt preview").Return(nil)

	_, err := svc.Approve(context.Background(), fileID, "j.reviewer")

	assert.Error(t, err)
	fx.notifier.AssertExpectations(t)
}

func TestApprove_ArchivesOriginal(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "partflow-archive")
	fileID := uuid.New()

	original := filepath.Join(t.TempDir(), "J1234567.psd")
	if err := os.WriteFile(original, []byte("original bytes"), 0o644); err != nil {
		t.Fatalf("writing original: %v", err)
	}

	f := &domain.ImageFile{
		ID:           fileID,
		Filename:     "J1234567.psd",
		OriginalPath: original,
		PartNumber:   "J1234567",
		PreviewPath:  "/previews/p.png",
		SizeBytes:    int64(len("original bytes")),
		Status:       domain.FileStatusAwaitingReview,
	}

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(f, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusApproved).Return(nil)
	fx.parts.On("GetPartMetadata", mock.Anything, "J1234567").
		Return(&domain.PartMetadata{PartNumber: "J1234567"}, nil)
	fx.renderer.On("GenerateRenditions", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Rendition{{FormatName: "web_large"}}, nil)
	fx.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "partflow-archive" && in.Key == "originals/"+fileID.String()+"/J1234567.psd"
	})).Return(&port.UploadOutput{Location: "s3://partflow-archive/originals/x"}, nil)
	fx.fileRepo.On("SetArchiveLocation", mock.Anything, fileID, "s3://partflow-archive/originals/x").Return(nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusProcessed).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, fileID, mock.AnythingOfType("string"), mock.Anything).Return(nil)
	fx.notifier.On("ProcessingComplete", mock.Anything, f, 1).Return(nil)

	_, err := svc.Approve(context.Background(), fileID, "j.reviewer")

	assert.NoError(t, err)
	fx.storage.AssertExpectations(t)
	fx.fileRepo.AssertExpectations(t)
}

func TestReject_Success(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.ImageFile{
		ID:     fileID,
		Status: domain.FileStatusAwaitingReview,
	}, nil)
	fx.fileRepo.On("UpdateStatus", mock.Anything, fileID, domain.FileStatusRejected).Return(nil)
	fx.fileRepo.On("AppendStep", mock.Anything, fileID, "review_rejected", mock.Anything).Return(nil)

	err := svc.Reject(context.Background(), fileID, "background bleed on edges", "j.reviewer")

	assert.NoError(t, err)
	fx.fileRepo.AssertExpectations(t)
}

func TestReject_NotAwaitingReview(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.ImageFile{
		ID:     fileID,
		Status: domain.FileStatusProcessed,
	}, nil)

	err := svc.Reject(context.Background(), fileID, "too late", "j.reviewer")
	assert.ErrorIs(t, err, domain.ErrNotAwaitingReview)
}

func TestOriginalDownloadURL_Success(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "partflow-archive")
	fileID := uuid.New()

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.ImageFile{
		ID:              fileID,
		Filename:        "J1234567.psd",
		ArchiveLocation: "s3://partflow-archive/originals/" + fileID.String() + "/J1234567.psd",
	}, nil)
	fx.storage.On("GetPresignedURL", mock.Anything, "partflow-archive",
		"originals/"+fileID.String()+"/J1234567.psd", int64(900)).
		Return("https://signed.example/original", nil)

	url, err := svc.OriginalDownloadURL(context.Background(), fileID)

	assert.NoError(t, err)
	assert.Equal(t, "https://signed.example/original", url)
	fx.storage.AssertExpectations(t)
}

func TestOriginalDownloadURL_NotArchived(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "partflow-archive")
	fileID := uuid.New()

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.ImageFile{
		ID:       fileID,
		Filename: "J1234567.psd",
	}, nil)

	_, err := svc.OriginalDownloadURL(context.Background(), fileID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	fx.storage.AssertNotCalled(t, "GetPresignedURL")
}

func TestOriginalDownloadURL_ArchivingDisabled(t *testing.T) {
	fx, svc := newProcessingFixture("/previews", "")
	fileID := uuid.New()

	fx.fileRepo.On("GetByID", mock.Anything, fileID).Return(&domain.ImageFile{
		ID:              fileID,
		Filename:        "J1234567.psd",
		ArchiveLocation: "s3://somewhere/else",
	}, nil)

	_, err := svc.OriginalDownloadURL(context.Background(), fileID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
