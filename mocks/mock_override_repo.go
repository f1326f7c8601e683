package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
)

// MockOverrideRepo is a mock implementation of port.OverrideRepository.
type MockOverrideRepo struct {
	mock.Mock
}

func (m *MockOverrideRepo) Create(ctx context.Context, o *domain.ManualOverride) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOverrideRepo) ListByFile(ctx context.Context, fileID uuid.UUID) ([]domain.ManualOverride, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ManualOverride), args.Error(1)
}
