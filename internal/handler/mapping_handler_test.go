package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"partflow/internal/domain"
	"partflow/internal/handler"
	"partflow/internal/service"
	"partflow/mocks"
)

func newMappingRouter(mappingSvc service.PartMappingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewMappingHandler(mappingSvc)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.POST("/mappings/resolve", h.Resolve)
	v1.POST("/mappings/cache/refresh", h.RefreshCache)
	v1.GET("/parts/suggestions", h.Suggest)
	v1.GET("/parts/:number", h.GetMetadata)
	v1.GET("/parts/:number/validate", h.Validate)
	return r
}

func TestMappingHandler_Resolve(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("Resolve", mock.Anything, "J1234567_DETAIL.psd").Return(domain.PartMappingResult{
		OriginalFilename: "J1234567_DETAIL.psd",
		ExtractedNumbers: []string{"J1234567"},
		MappedPartNumber: "J1234567",
		ConfidenceScore:  domain.ConfidenceDirectMatch,
		MappingMethod:    domain.MappingDirectMatch,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings/resolve",
		strings.NewReader(`{"filename":"J1234567_DETAIL.psd"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var result domain.PartMappingResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "J1234567", result.MappedPartNumber)
	assert.Equal(t, domain.MappingDirectMatch, result.MappingMethod)
}

func TestMappingHandler_Resolve_MissingFilename(t *testing.T) {
	router := newMappingRouter(new(mocks.MockPartMappingService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings/resolve",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
}

func TestMappingHandler_Suggest_Prefix(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("Suggest", mock.Anything, "", "J123").Return([]domain.PartNumberSuggestion{
		{PartNumber: "J1234567", MatchScore: 0.8},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/suggestions?q=J123", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var suggestions []domain.PartNumberSuggestion
	require.NoError(t, json.Unmarshal(env.Data, &suggestions))
	require.Len(t, suggestions, 1)
	assert.Equal(t, "J1234567", suggestions[0].PartNumber)
}

func TestMappingHandler_Suggest_FromFilename(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("Suggest", mock.Anything, "J1234567_OLD.psd", "").
		Return([]domain.PartNumberSuggestion{{PartNumber: "J1234567"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/suggestions?filename=J1234567_OLD.psd", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mappingSvc.AssertExpectations(t)
}

func TestMappingHandler_Suggest_MissingQuery(t *testing.T) {
	router := newMappingRouter(new(mocks.MockPartMappingService))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/suggestions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMappingHandler_Validate(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("Validate", mock.Anything, "J1234567").Return(true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/J1234567/validate", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var body map[string]bool
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.True(t, body["valid"])
}

func TestMappingHandler_GetMetadata(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("GetMetadata", mock.Anything, "J1234567").Return(&domain.PartMetadata{
		PartNumber: "J1234567",
		Brand:      "ACME",
		Title:      "Brake Caliper Bracket",
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/J1234567", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var meta domain.PartMetadata
	require.NoError(t, json.Unmarshal(env.Data, &meta))
	assert.Equal(t, "Brake Caliper Bracket", meta.Title)
}

func TestMappingHandler_GetMetadata_NotFound(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("GetMetadata", mock.Anything, "99999999").Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts/99999999", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMappingHandler_RefreshCache(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("RefreshCache", mock.Anything).Return(nil)
	mappingSvc.On("CacheSize").Return(1200)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings/cache/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var body map[string]int
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, 1200, body["cache_size"])
}

func TestMappingHandler_RefreshCache_PartsDBDown(t *testing.T) {
	mappingSvc := new(mocks.MockPartMappingService)
	router := newMappingRouter(mappingSvc)

	mappingSvc.On("RefreshCache", mock.Anything).Return(domain.ErrPartsDBUnavailable)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/mappings/cache/refresh", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "PARTS_DB_UNAVAILABLE", env.Error.Code)
}
