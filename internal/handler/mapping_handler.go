package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partflow/internal/service"
)

// MappingHandler handles part-number resolution and lookup endpoints.
type MappingHandler struct {
	mappingService service.PartMappingService
}

// NewMappingHandler creates a new MappingHandler.
func NewMappingHandler(mappingService service.PartMappingService) *MappingHandler {
	return &MappingHandler{mappingService: mappingService}
}

// Resolve handles POST /api/v1/mappings/resolve
// @Summary Resolve a filename to a part number
// @Description Dry-run resolution: extract candidates from the filename and map them to an active part number without tracking a file
// @Tags mappings
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Filename to resolve"
// @Success 200 {object} Response{data=domain.PartMappingResult} "Resolution result"
// @Failure 400 {object} ErrorResponseBody "Missing filename"
// @Router /mappings/resolve [post]
func (h *MappingHandler) Resolve(c *gin.Context) {
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "filename is required")
		return
	}

	result := h.mappingService.Resolve(c.Request.Context(), req.Filename)
	RespondOK(c, result)
}

// Suggest handles GET /api/v1/parts/suggestions
// @Summary Suggest part numbers
// @Description Autocomplete suggestions for the manual override UI; pass q for a prefix search or filename to suggest from extracted candidates
// @Tags parts
// @Produce json
// @Param q query string false "Part number prefix (min 2 chars)"
// @Param filename query string false "Filename to extract candidates from"
// @Success 200 {object} Response{data=[]domain.PartNumberSuggestion} "Suggestions"
// @Failure 400 {object} ErrorResponseBody "Missing query"
// @Router /parts/suggestions [get]
func (h *MappingHandler) Suggest(c *gin.Context) {
	q := c.Query("q")
	filename := c.Query("filename")
	if q == "" && filename == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "q or filename is required")
		return
	}

	suggestions := h.mappingService.Suggest(c.Request.Context(), filename, q)
	RespondOK(c, suggestions)
}

// Validate handles GET /api/v1/parts/:number/validate
// @Summary Validate a part number
// @Description Reports whether the given number is a currently active part
// @Tags parts
// @Produce json
// @Param number path string true "Part number"
// @Success 200 {object} Response{data=map[string]bool} "Validation result"
// @Router /parts/{number}/validate [get]
func (h *MappingHandler) Validate(c *gin.Context) {
	valid := h.mappingService.Validate(c.Request.Context(), c.Param("number"))
	RespondOK(c, gin.H{"valid": valid})
}

// GetMetadata handles GET /api/v1/parts/:number
// @Summary Get part metadata
// @Description Descriptive metadata for an active part
// @Tags parts
// @Produce json
// @Param number path string true "Part number"
// @Success 200 {object} Response{data=domain.PartMetadata} "Part metadata"
// @Failure 404 {object} ErrorResponseBody "Part not found"
// @Router /parts/{number} [get]
func (h *MappingHandler) GetMetadata(c *gin.Context) {
	meta, err := h.mappingService.GetMetadata(c.Request.Context(), c.Param("number"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, meta)
}

// RefreshCache handles POST /api/v1/mappings/cache/refresh
// @Summary Refresh the interchange cache
// @Description Reloads the interchange table from the parts database
// @Tags mappings
// @Produce json
// @Success 200 {object} Response{data=map[string]int} "New cache size"
// @Failure 503 {object} ErrorResponseBody "Parts database unavailable"
// @Security ApiKeyAuth
// @Router /mappings/cache/refresh [post]
func (h *MappingHandler) RefreshCache(c *gin.Context) {
	if err := h.mappingService.RefreshCache(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"cache_size": h.mappingService.CacheSize()})
}
