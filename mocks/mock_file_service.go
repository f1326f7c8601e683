package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
	"partflow/internal/service"
)

// MockFileService is a mock implementation of service.FileService.
type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Register(ctx context.Context, path string) (*domain.ImageFile, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageFile), args.Error(1)
}

func (m *MockFileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ImageFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageFile), args.Error(1)
}

func (m *MockFileService) GetDetail(ctx context.Context, id uuid.UUID) (*service.FileDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FileDetail), args.Error(1)
}

func (m *MockFileService) List(ctx context.Context, offset, limit int) ([]domain.ImageFile, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImageFile), args.Int(1), args.Error(2)
}

func (m *MockFileService) ListByStatus(ctx context.Context, status domain.FileStatus, offset, limit int) ([]domain.ImageFile, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ImageFile), args.Int(1), args.Error(2)
}

func (m *MockFileService) Stats(ctx context.Context) (map[domain.FileStatus]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.FileStatus]int), args.Error(1)
}

func (m *MockFileService) ApplyOverride(ctx context.Context, input service.OverrideInput) (*domain.ImageFile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageFile), args.Error(1)
}
