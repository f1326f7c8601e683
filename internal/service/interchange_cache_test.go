package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"partflow/internal/domain"
	"partflow/internal/service"
	"partflow/mocks"
)

func TestInterchangeCache_LoadAndLookup(t *testing.T) {
	parts := new(mocks.MockPartsRepo)
	parts.On("LoadInterchange", mock.Anything).Return([]domain.InterchangeMapping{
		{OldPartNumber: "OLD12345", NewPartNumber: "12345", InterchangeCode: "S1"},
		{OldPartNumber: "old99999", NewPartNumber: "j7654321", InterchangeCode: "S2"},
	}, nil)

	cache := service.NewInterchangeCache(parts)
	assert.NoError(t, cache.Load(context.Background()))
	assert.Equal(t, 2, cache.Size())

	m := cache.Lookup("OLD12345")
	if assert.NotNil(t, m) {
		assert.Equal(t, "12345", m.NewPartNumber)
		assert.Equal(t, "S1", m.InterchangeCode)
	}

	// Keys are case-normalized on load and lookup.
	m = cache.Lookup("old99999")
	if assert.NotNil(t, m) {
		assert.Equal(t, "J7654321", m.NewPartNumber)
	}

	assert.Nil(t, cache.Lookup("MISSING"))
}

func TestInterchangeCache_EmptyBeforeLoad(t *testing.T) {
	cache := service.NewInterchangeCache(new(mocks.MockPartsRepo))
	assert.Equal(t, 0, cache.Size())
	assert.Nil(t, cache.Lookup("OLD12345"))
}

func TestInterchangeCache_SkipsEmptyNumbers(t *testing.T) {
	parts := new(mocks.MockPartsRepo)
	parts.On("LoadInterchange", mock.Anything).Return([]domain.InterchangeMapping{
		{OldPartNumber: "", NewPartNumber: "12345"},
		{OldPartNumber: "OLD12345", NewPartNumber: "  "},
		{OldPartNumber: "OLD55555", NewPartNumber: "55555"},
	}, nil)

	cache := service.NewInterchangeCache(parts)
	assert.NoError(t, cache.Load(context.Background()))
	assert.Equal(t, 1, cache.Size())
}

func TestInterchangeCache_DuplicateOldNumberLastWins(t *testing.T) {
	parts := new(mocks.MockPartsRepo)
	parts.On("LoadInterchange", mock.Anything).Return([]domain.InterchangeMapping{
		{OldPartNumber: "OLD12345", NewPartNumber: "11111"},
		{OldPartNumber: "OLD12345", NewPartNumber: "22222"},
	}, nil)

	cache := service.NewInterchangeCache(parts)
	assert.NoError(t, cache.Load(context.Background()))
	assert.Equal(t, 1, cache.Size())
	assert.Equal(t, "22222", cache.Lookup("OLD12345").NewPartNumber)
}

func TestInterchangeCache_LoadFailureClearsCache(t *testing.T) {
	parts := new(mocks.MockPartsRepo)
	parts.On("LoadInterchange", mock.Anything).Return([]domain.InterchangeMapping{
		{OldPartNumber: "OLD12345", NewPartNumber: "12345"},
	}, nil).Once()
	parts.On("LoadInterchange", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	cache := service.NewInterchangeCache(parts)
	assert.NoError(t, cache.Load(context.Background()))
	assert.Equal(t, 1, cache.Size())

	assert.Error(t, cache.Load(context.Background()))
	assert.Equal(t, 0, cache.Size())
	assert.Nil(t, cache.Lookup("OLD12345"))
}
