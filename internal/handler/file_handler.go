package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partflow/internal/csvexport"
	"partflow/internal/domain"
	"partflow/internal/service"
)

// FileHandler handles tracked-file listing, review, and override endpoints.
type FileHandler struct {
	fileService       service.FileService
	processingService service.ProcessingService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(fileService service.FileService, processingService service.ProcessingService) *FileHandler {
	return &FileHandler{fileService: fileService, processingService: processingService}
}

// List handles GET /api/v1/files
// @Summary List tracked files
// @Description List tracked image files with optional status filter and pagination
// @Tags files
// @Produce json
// @Param status query string false "Filter by status (queued, awaiting_review, processed, ...)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ImageFile,meta=PagMeta} "List of files"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Router /files [get]
func (h *FileHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	status := c.Query("status")
	if status == "" {
		files, total, err := h.fileService.List(c.Request.Context(), offset, limit)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
		return
	}

	if !validStatus(status) {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "unknown file status: "+status)
		return
	}

	files, total, err := h.fileService.ListByStatus(c.Request.Context(), domain.FileStatus(status), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Pending handles GET /api/v1/files/pending
// @Summary List files awaiting review
// @Description Shortcut for listing files in awaiting_review status
// @Tags files
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ImageFile,meta=PagMeta} "Files awaiting review"
// @Router /files/pending [get]
func (h *FileHandler) Pending(c *gin.Context) {
	offset, limit := parsePagination(c)

	files, total, err := h.fileService.ListByStatus(c.Request.Context(), domain.FileStatusAwaitingReview, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/files/:id
// @Summary Get file detail
// @Description Get a tracked file with its processing history and overrides
// @Tags files
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Success 200 {object} Response{data=service.FileDetail} "File detail"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Router /files/{id} [get]
func (h *FileHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	detail, err := h.fileService.GetDetail(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// Stats handles GET /api/v1/files/stats
// @Summary File counts by status
// @Description Counts of tracked files grouped by status
// @Tags files
// @Produce json
// @Success 200 {object} Response{data=map[string]int} "Counts by status"
// @Router /files/stats [get]
func (h *FileHandler) Stats(c *gin.Context) {
	stats, err := h.fileService.Stats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// Export handles GET /api/v1/files/export
// @Summary Export tracked files as CSV
// @Description Streams all tracked files (optionally filtered by status) as a CSV download
// @Tags files
// @Produce text/csv
// @Param status query string false "Filter by status"
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Router /files/export [get]
func (h *FileHandler) Export(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !validStatus(status) {
		RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "unknown file status: "+status)
		return
	}

	const batchSize = 500

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename()+`"`)
	_, _ = c.Writer.Write(csvexport.BOM)

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}

	for offset := 0; ; offset += batchSize {
		var (
			files []domain.ImageFile
			err   error
		)
		if status == "" {
			files, _, err = h.fileService.List(c.Request.Context(), offset, batchSize)
		} else {
			files, _, err = h.fileService.ListByStatus(c.Request.Context(), domain.FileStatus(status), offset, batchSize)
		}
		if err != nil || len(files) == 0 {
			break
		}
		if err := w.WriteFiles(files); err != nil {
			break
		}
		if len(files) < batchSize {
			break
		}
	}
	w.Flush()
}

// Original handles GET /api/v1/files/:id/original
// @Summary Download link for the archived original
// @Description Returns a time-limited presigned URL for the archived original file
// @Tags files
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Success 200 {object} Response{data=map[string]string} "Presigned URL"
// @Failure 404 {object} ErrorResponseBody "File not archived"
// @Router /files/{id}/original [get]
func (h *FileHandler) Original(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	url, err := h.processingService.OriginalDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Approve handles POST /api/v1/files/:id/approve
// @Summary Approve a reviewed file
// @Description Accept the background-removal result and generate output renditions
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Param request body ReviewRequest true "Reviewer identity"
// @Success 200 {object} Response{data=domain.ImageFile} "Approved file"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Failure 409 {object} ErrorResponseBody "File is not awaiting review"
// @Security ApiKeyAuth
// @Router /files/{id}/approve [post]
func (h *FileHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "reviewed_by is required")
		return
	}

	f, err := h.processingService.Approve(c.Request.Context(), id, req.ReviewedBy)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, f)
}

// Reject handles POST /api/v1/files/:id/reject
// @Summary Reject a reviewed file
// @Description Reject the background-removal result with a reason
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Param request body ReviewRequest true "Reviewer identity and reason"
// @Success 200 {object} Response "Rejected"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Failure 409 {object} ErrorResponseBody "File is not awaiting review"
// @Security ApiKeyAuth
// @Router /files/{id}/reject [post]
func (h *FileHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "reviewed_by is required")
		return
	}

	if err := h.processingService.Reject(c.Request.Context(), id, req.Reason, req.ReviewedBy); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"status": string(domain.FileStatusRejected)})
}

// Override handles POST /api/v1/files/:id/override
// @Summary Override the mapped part number
// @Description Record a manual part-number correction and update the file
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Param request body OverrideRequest true "Corrected part number"
// @Success 200 {object} Response{data=domain.ImageFile} "Updated file"
// @Failure 400 {object} ErrorResponseBody "Invalid or inactive part number"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Security ApiKeyAuth
// @Router /files/{id}/override [post]
func (h *FileHandler) Override(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "part_number and overridden_by are required")
		return
	}

	f, err := h.fileService.ApplyOverride(c.Request.Context(), service.OverrideInput{
		FileID:       id,
		PartNumber:   req.PartNumber,
		Reason:       req.Reason,
		OverriddenBy: req.OverriddenBy,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, f)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func validStatus(s string) bool {
	switch domain.FileStatus(s) {
	case domain.FileStatusDiscovered, domain.FileStatusQueued, domain.FileStatusProcessing,
		domain.FileStatusAwaitingReview, domain.FileStatusApproved, domain.FileStatusRejected,
		domain.FileStatusProcessed, domain.FileStatusFailed:
		return true
	}
	return false
}
