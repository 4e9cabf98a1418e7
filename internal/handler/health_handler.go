package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"claimdesk/internal/schema"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// The service is ready once every registered schema compiles. Schemas are
// compiled at startup, so this mostly guards against a broken deploy.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := schema.Check(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "schema registry invalid"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
