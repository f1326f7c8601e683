package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) FileDiscovered(ctx context.Context, f *domain.ImageFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockNotifier) ReviewReady(ctx context.Context, f *domain.ImageFile) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockNotifier) ProcessingComplete(ctx context.Context, f *domain.ImageFile, renditions int) error {
	args := m.Called(ctx, f, renditions)
	return args.Error(0)
}

func (m *MockNotifier) ProcessingFailed(ctx context.Context, f *domain.ImageFile, stage, message string) error {
	args := m.Called(ctx, f, stage, message)
	return args.Error(0)
}
