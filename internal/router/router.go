package router

import (
	"github.com/gin-gonic/gin"

	"claimdesk/internal/config"
	"claimdesk/internal/handler"
	"claimdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	claimsH *handler.ClaimsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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
	v1.Use(middleware.APIKeyAuth(cfg.Auth.APIKey))

	claims := v1.Group("/claims")
	claims.POST("/generate", claimsH.Generate)
	claims.POST("/generate-fast", claimsH.GenerateFast)
	claims.POST("/report/export", claimsH.ExportReport)

	return r
}
