package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
)

// MockPartMappingService is a mock implementation of service.PartMappingService.
type MockPartMappingService struct {
	mock.Mock
}

func (m *MockPartMappingService) Resolve(ctx context.Context, filename string) domain.PartMappingResult {
	args := m.Called(ctx, filename)
	return args.Get(0).(domain.PartMappingResult)
}

func (m *MockPartMappingService) Suggest(ctx context.Context, filename, partial string) []domain.PartNumberSuggestion {
	args := m.Called(ctx, filename, partial)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.PartNumberSuggestion)
}

func (m *MockPartMappingService) Validate(ctx context.Context, partNumber string) bool {
	args := m.Called(ctx, partNumber)
	return args.Bool(0)
}

func (m *MockPartMappingService) GetMetadata(ctx context.Context, partNumber string) (*domain.PartMetadata, error) {
	args := m.Called(ctx, partNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PartMetadata), args.Error(1)
}

func (m *MockPartMappingService) RefreshCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPartMappingService) CacheSize() int {
	args := m.Called()
	return args.Int(0)
}
