package mocks

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
)

// MockImageFileRepo is a mock implementation of port.ImageFileRepository.
type MockImageFileRepo struct {
	mock.Mock
}

func (m *MockImageFileRepo) Create(ctx context.Context, f *domain.ImageFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockImageFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImageFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageFile), args.Error(1)
}

func (m *MockImageFileRepo) GetByChecksum(ctx context.Context, sha256 string) (*domain.ImageFile, error) {
	args := m.Called(ctx, sha256)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageFile), args.Error(1)
}

func (m *MockImageFileRepo) List(ctx context.Context, offset, limit int) ([]domain.ImageFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImageFile), args.Int(1), args.Error(2)
}

func (m *MockImageFileRepo) ListByStatus(ctx context.Context, status domain.FileStatus, offset, limit int) ([]domain.ImageFile, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImageFile), args.Int(1), args.Error(2)
}

func (m *MockImageFileRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockImageFileRepo) SetPartNumber(ctx context.Context, id uuid.UUID, partNumber string) error {
	args := m.Called(ctx, id, partNumber)
	return args.Error(0)
}

func (m *MockImageFileRepo) SetPreviewPath(ctx context.Context, id uuid.UUID, previewPath string) error {
	args := m.Called(ctx, id, previewPath)
	return args.Error(0)
}

func (m *MockImageFileRepo) SetArchiveLocation(ctx context.Context, id uuid.UUID, location string) error {
	args := m.Called(ctx, id, location)
	return args.Error(0)
}

func (m *MockImageFileRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.ImageFile, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImageFile), args.Error(1)
}

func (m *MockImageFileRepo) CountByStatus(ctx context.Context) (map[domain.FileStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.FileStatus]int), args.Error(1)
}

func (m *MockImageFileRepo) AppendStep(ctx context.Context, fileID uuid.UUID, step string, details json.RawMessage) error {
	args := m.Called(ctx, fileID, step, details)
	return args.Error(0)
}

func (m *MockImageFileRepo) ListSteps(ctx context.Context, fileID uuid.UUID) ([]domain.ProcessingStep, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProcessingStep), args.Error(1)
}
