package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
)

// MockPartsRepo is a mock implementation of port.PartsRepository.
type MockPartsRepo struct {
	mock.Mock
}

func (m *MockPartsRepo) LoadInterchange(ctx context.Context) ([]domain.InterchangeMapping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterchangeMapping), args.Error(1)
}

func (m *MockPartsRepo) PartExists(ctx context.Context, partNumber string) (bool, error) {
	args := m.Called(ctx, partNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartsRepo) SearchByPrefix(ctx context.Context, prefix string, limit int) ([]domain.PartNumberSuggestion, error) {
	args := m.Called(ctx, prefix, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartNumberSuggestion), args.Error(1)
}

func (m *MockPartsRepo) GetPartMetadata(ctx context.Context, partNumber string) (*domain.PartMetadata, error) {
	args := m.Called(ctx, partNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartMetadata), args.Error(1)
}

func (m *MockPartsRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
