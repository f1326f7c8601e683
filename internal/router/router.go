package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "partflow/docs"
	"partflow/internal/config"
	"partflow/internal/handler"
	"partflow/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	mappingH *handler.MappingHandler,
	fileH *handler.FileHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Resolution and part lookup (read-only)
	v1.POST("/mappings/resolve", mappingH.Resolve)
	parts := v1.Group("/parts")
	parts.GET("/suggestions", mappingH.Suggest)
	parts.GET("/:number", mappingH.GetMetadata)
	parts.GET("/:number/validate", mappingH.Validate)

	// Tracked files (read-only)
	files := v1.Group("/files")
	files.GET("", fileH.List)
	files.GET("/pending", fileH.Pending)
	files.GET("/stats", fileH.Stats)
	files.GET("/export", fileH.Export)
	files.GET("/:id", fileH.GetByID)
	files.GET("/:id/original", fileH.Original)

	// Mutating routes - require API key
	protected := v1.Group("")
	protected.Use(middleware.APIKeyAuth(cfg.Auth.APIKey))
	protected.POST("/mappings/cache/refresh", mappingH.RefreshCache)
	protected.POST("/files/:id/approve", fileH.Approve)
	protected.POST("/files/:id/reject", fileH.Reject)
	protected.POST("/files/:id/override", fileH.Override)

	return r
}
