package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docsift/internal/model"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /health/ready. It verifies the model parameter
// registry is internally consistent and reports the supported models.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := model.CheckRegistry(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "models": model.SupportedModels()})
}
