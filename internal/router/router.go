package router

import (
	"github.com/gin-gonic/gin"

	"docsift/internal/config"
	"docsift/internal/handler"
	"docsift/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	uploadH *handler.UploadHandler,
	ingestH *handler.IngestHandler,
	extractH *handler.ExtractHandler,
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

	v1 := r.Group("/api/v1")

	// Document intake
	uploads := v1.Group("/uploads")
	uploads.POST("", uploadH.Upload)
	uploads.POST("/presign", uploadH.PresignUpload)
	uploads.GET("/download", uploadH.Download)

	// Ingestion pipelines
	ingest := v1.Group("/ingest")
	ingest.POST("/ocr", ingestH.OCR)
	ingest.POST("/office", ingestH.Office)
	ingest.POST("/transcribe", ingestH.Transcribe)

	// Attribute extraction
	extract := v1.Group("/extract")
	extract.POST("", extractH.Extract)
	extract.POST("/image", extractH.ExtractImage)
	extract.POST("/summary", extractH.Summarize)

	return r
}
