package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
)

// MockProcessingService is a mock implementation of service.ProcessingService.
type MockProcessingService struct {
	mock.Mock
}

func (m *MockProcessingService) Process(ctx context.Context, f *domain.ImageFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockProcessingService) Approve(ctx context.Context, fileID uuid.UUID, reviewedBy string) (*domain.ImageFile, error) {
	args := m.Called(ctx, fileID, reviewedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImageFile), args.Error(1)
}

func (m *MockProcessingService) Reject(ctx context.Context, fileID uuid.UUID, reason, reviewedBy string) error {
	args := m.Called(ctx, fileID, reason, reviewedBy)
	return args.Error(0)
}

func (m *MockProcessingService) OriginalDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}
