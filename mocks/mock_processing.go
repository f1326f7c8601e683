package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
	"partflow/internal/port"
)

// MockBackgroundRemover is a mock implementation of port.BackgroundRemover.
type MockBackgroundRemover struct {
	mock.Mock
}

func (m *MockBackgroundRemover) RemoveBackground(ctx context.Context, srcPath, dstPath string) (string, error) {
	args := m.Called(ctx, srcPath, dstPath)
	return args.String(0), args.Error(1)
}

// MockRenderer is a mock implementation of port.Renderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) GenerateRenditions(ctx context.Context, srcPath string, meta *domain.PartMetadata) ([]domain.Rendition, error) {
	args := m.Called(ctx, srcPath, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rendition), args.Error(1)
}

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.UploadOutput), args.Error(1)
}

func (m *MockObjectStorage) GetPresignedURL(ctx context.Context, bucket, key string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, bucket, key, expirySeconds)
	return args.String(0), args.Error(1)
}
