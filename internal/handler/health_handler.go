package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"partflow/internal/port"
	"partflow/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      *sqlx.DB
	parts   port.PartsRepository
	mapping service.PartMappingService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sqlx.DB, parts port.PartsRepository, mapping service.PartMappingService) *HealthHandler {
	return &HealthHandler{db: db, parts: parts, mapping: mapping}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// The tracking database is required; a degraded parts mirror is reported but
// still ready, since resolution soft-fails to best guess without it.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "tracking database not reachable"})
		return
	}

	partsStatus := "ok"
	if err := h.parts.Ping(c.Request.Context()); err != nil {
		partsStatus = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"parts_db":   partsStatus,
		"cache_size": h.mapping.CacheSize(),
	})
}
